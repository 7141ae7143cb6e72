package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/metaballs/camera"
	"github.com/pthm-cable/metaballs/systems"
)

// CanvasTexture mirrors a CPU pixel buffer in a GPU texture and draws it
// scaled into the window with hard pixel edges.
type CanvasTexture struct {
	texture     rl.Texture2D
	width       int
	height      int
	initialized bool
}

// NewCanvasTexture creates a texture for a canvas of the given size.
func NewCanvasTexture(width, height int) *CanvasTexture {
	return &CanvasTexture{width: width, height: height}
}

// Init allocates the texture (must be called after raylib window is created).
func (c *CanvasTexture) Init() {
	if c.initialized {
		return
	}
	img := rl.GenImageColor(c.width, c.height, rl.Blank)
	c.texture = rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(c.texture, rl.FilterPoint)
	c.initialized = true
}

// Upload copies buf into the texture. buf must match the texture size.
func (c *CanvasTexture) Upload(buf *systems.PixelBuffer) {
	if !c.initialized {
		c.Init()
	}
	if buf.W != c.width || buf.H != c.height {
		return
	}
	rl.UpdateTexture(c.texture, buf.Pix)
}

// Draw renders the texture into the viewport's destination rectangle.
func (c *CanvasTexture) Draw(vp *camera.Viewport) {
	if !c.initialized {
		return
	}
	x, y, w, h := vp.DestRect()
	src := rl.NewRectangle(0, 0, float32(c.width), float32(c.height))
	dst := rl.NewRectangle(x, y, w, h)
	rl.DrawTexturePro(c.texture, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// Unload frees resources.
func (c *CanvasTexture) Unload() {
	if c.initialized {
		rl.UnloadTexture(c.texture)
		c.initialized = false
	}
}
