package telemetry

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/pthm-cable/metaballs/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds a scene that can be restored with the same field.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`

	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	Frame int32 `json:"frame"`

	Resolution     int    `json:"resolution"`
	Interpolated   bool   `json:"interpolated"`
	Filled         bool   `json:"filled"`
	Outlined       bool   `json:"outlined"`
	ResolveSaddles bool   `json:"resolve_saddles"`
	Falloff        string `json:"falloff"`

	Sources []SourceState `json:"sources"`
}

// SourceState holds one influence source.
type SourceState struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	VelX   float32 `json:"vel_x"`
	VelY   float32 `json:"vel_y"`
	Radius float32 `json:"radius"`
}

// FieldSources converts the snapshot's sources for the field renderer.
func (s *Snapshot) FieldSources() []systems.Source {
	out := make([]systems.Source, len(s.Sources))
	for i, src := range s.Sources {
		out[i] = systems.Source{X: src.X, Y: src.Y, Radius: src.Radius}
	}
	return out
}

// SaveSnapshot writes a snapshot to dir as scene_<frame>.json.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("scene_%d.json", snapshot.Frame))

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}
	return &snapshot, nil
}

// UpscaleImage returns buf enlarged by an integer factor with hard pixel edges.
func UpscaleImage(buf *systems.PixelBuffer, scale int) *image.RGBA {
	src := buf.Image()
	if scale <= 1 {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, buf.W*scale, buf.H*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// WriteImage encodes buf as a PNG at path, scaled up by scale.
func WriteImage(path string, buf *systems.PixelBuffer, scale int) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	if err := png.Encode(f, UpscaleImage(buf, scale)); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}
