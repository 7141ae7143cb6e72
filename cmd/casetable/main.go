// Command casetable prints the marching squares case table and renders each
// of the 16 corner classifications into a PNG contact sheet.
//
// Usage: go run ./cmd/casetable -out cases.png
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/telemetry"
)

const (
	quadSize = 16 // canvas pixels per quad edge
	gutter   = 4
	columns  = 4
)

var (
	background = color.RGBA{R: 16, G: 16, B: 32, A: 255}
	segment    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	inside     = color.RGBA{R: 255, G: 200, B: 40, A: 255}
	outside    = color.RGBA{R: 90, G: 90, B: 120, A: 255}
)

func main() {
	out := flag.String("out", "cases.png", "Output PNG path (empty to skip)")
	scale := flag.Int("scale", 6, "Upscale factor for the PNG")
	interpolated := flag.Bool("interpolated", false, "Interpolate edge points from corner values")
	resolve := flag.Bool("resolve-saddles", false, "Resolve saddles with the quad center value")
	flag.Parse()

	printTable()

	if *out == "" {
		return
	}
	if err := writeSheet(*out, *scale, *interpolated, *resolve); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write contact sheet: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

// printTable lists every code with its corner bits and segments.
func printTable() {
	fmt.Println("code  tl tr br bl  segments")
	for code := 0; code < 16; code++ {
		var pairs []string
		for _, p := range systems.CaseTable(code).List() {
			pairs = append(pairs, p[0].String()+"-"+p[1].String())
		}
		note := ""
		if systems.IsSaddle(code) {
			note = "  (saddle)"
		}
		fmt.Printf("%4d   %d  %d  %d  %d  %s%s\n", code,
			code>>3&1, code>>2&1, code>>1&1, code&1, strings.Join(pairs, " "), note)
	}
}

// cornerValue returns a sample for one corner bit, far enough from the
// threshold that interpolated edge points stay visibly inside the quad.
func cornerValue(code, bit int) float32 {
	if code&bit != 0 {
		return 1.6
	}
	return 0.4
}

// writeSheet renders all cases into one canvas and saves it upscaled.
func writeSheet(path string, scale int, interpolated, resolve bool) error {
	tile := quadSize + 1 + gutter
	rows := 16 / columns
	sheet := systems.NewPixelBuffer(columns*tile+gutter, rows*tile+gutter)
	sheet.Fill(background)

	tileBuf := systems.NewPixelBuffer(quadSize+1, quadSize+1)
	grid := systems.NewSampleGrid(2, 2)
	ex := systems.NewContourExtractor(quadSize, interpolated, nil)
	ex.ResolveSaddles = resolve
	var segs []systems.Segment

	for code := 0; code < 16; code++ {
		grid.Set(0, 0, cornerValue(code, 8))
		grid.Set(1, 0, cornerValue(code, 4))
		grid.Set(1, 1, cornerValue(code, 2))
		grid.Set(0, 1, cornerValue(code, 1))

		tileBuf.Fill(background)
		// Only the quad anchored at (0, 0); the others would read the border
		segs = ex.QuadSegments(segs[:0], grid, 0, 0)
		for _, sg := range segs {
			systems.DrawLine(tileBuf, sg.P0.X, sg.P0.Y, sg.P1.X, sg.P1.Y, segment)
		}
		for _, c := range [...]struct{ x, y, bit int }{{0, 0, 8}, {1, 0, 4}, {1, 1, 2}, {0, 1, 1}} {
			col := outside
			if code&c.bit != 0 {
				col = inside
			}
			tileBuf.SetPixel(c.x*quadSize, c.y*quadSize, col)
		}

		ox := gutter + (code%columns)*tile
		oy := gutter + (code/columns)*tile
		for y := 0; y < tileBuf.H; y++ {
			for x := 0; x < tileBuf.W; x++ {
				sheet.SetPixel(ox+x, oy+y, tileBuf.At(x, y))
			}
		}
	}

	img := telemetry.UpscaleImage(sheet, max(scale, 1))
	labelTiles(img, max(scale, 1), tile)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

// labelTiles writes each case code in the top-left of its tile.
func labelTiles(img *image.RGBA, scale, tile int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 120, G: 220, B: 255, A: 255}),
		Face: basicfont.Face7x13,
	}
	for code := 0; code < 16; code++ {
		x := (gutter+(code%columns)*tile)*scale + 4
		y := (gutter+(code/columns)*tile)*scale + 14
		d.Dot = fixed.P(x, y)
		d.DrawString(fmt.Sprint(code))
	}
}
