package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title      string
	Frame      int32
	Sources    int
	Resolution int
	Falloff    string
	FPS        int32
	Paused     bool
	Selected   int // index of the dragged source, -1 for none
	Stats      systems.FrameStats
	Field      telemetry.FieldStats
}

// hudSections describes the field readout below the title.
var hudSections = []SectionDescriptor{
	{
		ID:    "frame",
		Title: "Frame",
		Fields: []FieldDescriptor{
			{ID: "sources", Label: "Sources", Widget: WidgetText, TextGetter: func(d any) string {
				return fmt.Sprintf("%d", d.(HUDData).Sources)
			}},
			{ID: "resolution", Label: "Resolution", Widget: WidgetText, TextGetter: func(d any) string {
				h := d.(HUDData)
				return fmt.Sprintf("%d px (%d cells)", h.Resolution, h.Stats.Cells)
			}},
			{ID: "falloff", Label: "Falloff", Widget: WidgetText, TextGetter: func(d any) string {
				return d.(HUDData).Falloff
			}},
			{ID: "selected", Label: "Dragging", Widget: WidgetText,
				Visible: func(d any) bool { return d.(HUDData).Selected >= 0 },
				TextGetter: func(d any) string {
					return fmt.Sprintf("#%d", d.(HUDData).Selected)
				}},
		},
	},
	{
		ID:    "field",
		Title: "Field",
		Fields: []FieldDescriptor{
			{ID: "coverage", Label: "Coverage", Widget: WidgetBar, Getter: func(d any) float32 {
				return float32(d.(HUDData).Field.Coverage)
			}},
			{ID: "peak", Label: "Peak", Widget: WidgetText, Format: "%.2f", Getter: func(d any) float32 {
				return float32(d.(HUDData).Field.Peak)
			}},
			{ID: "segments", Label: "Segments", Widget: WidgetText, TextGetter: func(d any) string {
				s := d.(HUDData).Stats
				return fmt.Sprintf("%d (+%d points)", s.Segments, s.Points)
			}},
		},
	},
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		width:    230,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	status := fmt.Sprintf("Frame: %d | FPS: %d", data.Frame, data.FPS)
	rl.DrawText(status, 10, 35, 16, rl.LightGray)
	if data.Paused {
		rl.DrawText("PAUSED", 10, 55, 16, rl.Yellow)
	}

	height := r.Theme.Padding * 2
	for _, sd := range hudSections {
		height += r.Theme.SectionHeight(sd, data)
	}
	x, y := int32(10), int32(80)
	r.DrawPanel(x, y, h.width, height)
	y += r.Theme.Padding
	for _, sd := range hudSections {
		y = r.DrawSection(x+r.Theme.Padding, y, sd, data, h.width-r.Theme.Padding*2)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x := p.x
	y := p.y

	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s", stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)), x, y, 14, rl.Yellow)
	y += 16

	for _, phase := range telemetry.FramePhases() {
		avg, ok := stats.PhaseAvg[phase]
		if !ok {
			continue
		}
		pct := stats.PhasePct[phase]

		color := rl.LightGray
		if pct > 40 {
			color = rl.Red
		} else if pct > 20 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", phase, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}
