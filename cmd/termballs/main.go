// Command termballs renders the metaball field in a terminal. Each cell shows
// two canvas pixels with an upper half block: the top pixel as foreground and
// the bottom pixel as background.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/scene"
	"github.com/pthm-cable/metaballs/systems"
	"github.com/pthm-cable/metaballs/ui"
)

const halfBlock = '▀'

// term holds the terminal demo state.
type term struct {
	screen tcell.Screen
	cfg    *config.Config

	scene  *scene.Scene
	pool   *systems.WorkerPool
	field  *systems.Metaballs
	canvas *systems.PixelBuffer
	opts   systems.MetaballOptions
	bg     systems.Radial

	falloff   string
	paused    bool
	stats     systems.FrameStats
	frameTime time.Duration
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if empty)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	fps := flag.Int("fps", 30, "Frames per second")
	logPath := flag.String("log", "", "Write JSON logs to this file")
	flag.Parse()

	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	t, err := newTerm(screen, cfg, *seed)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer t.pool.Close()

	events := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	interval := time.Second / time.Duration(max(*fps, 1))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	dt := float32(interval.Seconds())
	for {
		select {
		case ev := <-events:
			if !t.handleEvent(ev) {
				slog.Info("termballs exiting")
				return
			}
		case <-ticker.C:
			t.frame(dt)
		}
	}
}

// newTerm builds the scene and renderer for the current terminal size.
func newTerm(screen tcell.Screen, cfg *config.Config, seed int64) (*term, error) {
	opts, err := scene.FieldOptions(cfg)
	if err != nil {
		return nil, err
	}
	t := &term{
		screen:  screen,
		cfg:     cfg,
		pool:    systems.NewWorkerPool(cfg.Parallel.Workers, cfg.Parallel.MinRows),
		opts:    opts,
		bg:      systems.RadialFromTriple(cfg.Derived.Background),
		falloff: cfg.Field.Falloff,
	}
	w, h := canvasSize(screen.Size())
	t.scene = scene.New(systems.Bounds{Width: float32(w), Height: float32(h)}, scene.SpawnFromConfig(cfg), seed)
	t.resize(w, h)
	t.scene.SpawnInitial()

	slog.Info("termballs started", "canvas_w", w, "canvas_h", h, "seed", seed, "workers", t.pool.Workers())
	return t, nil
}

// canvasSize maps a terminal size to canvas pixels, keeping the last row for
// the status line.
func canvasSize(cols, rows int) (int, int) {
	return max(cols, 1), max(rows-1, 1) * 2
}

// resize rebuilds the canvas and renderer for a new size.
func (t *term) resize(w, h int) {
	t.canvas = systems.NewPixelBuffer(w, h)
	t.field = systems.NewMetaballs(w, h, t.opts, t.pool)
	t.scene.SetBounds(systems.Bounds{Width: float32(w), Height: float32(h)})
}

// handleEvent applies one terminal event. Returns false to quit.
func (t *term) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			return t.handleRune(ev.Rune())
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		cx, cy := float32(x)+0.5, float32(y*2)+1
		switch {
		case ev.Buttons()&tcell.Button1 != 0:
			if _, held := t.scene.Dragging(); held {
				t.scene.DragTo(cx, cy)
			} else {
				t.scene.BeginDrag(cx, cy)
			}
		case ev.Buttons()&tcell.Button2 != 0:
			t.scene.SpawnAt(cx, cy)
		case ev.Buttons()&tcell.Button3 != 0:
			if e, ok := t.scene.SourceAt(cx, cy); ok {
				t.scene.Remove(e)
			}
		default:
			t.scene.EndDrag()
		}
	case *tcell.EventResize:
		t.screen.Sync()
		w, h := canvasSize(t.screen.Size())
		t.resize(w, h)
	}
	return true
}

func (t *term) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case ' ':
		t.paused = !t.paused
	case '+', '=':
		t.setResolution(t.opts.Resolution + 1)
	case '-':
		t.setResolution(t.opts.Resolution - 1)
	case 'f':
		t.opts.Filled = !t.opts.Filled
	case 'o':
		t.opts.Outlined = !t.opts.Outlined
	case 'i':
		t.opts.Interpolated = !t.opts.Interpolated
	case 'x':
		t.opts.ResolveSaddles = !t.opts.ResolveSaddles
	case 'g':
		t.cycleFalloff()
	case 'r':
		t.scene.Respawn()
	}
	t.field.SetOptions(t.opts)
	return true
}

func (t *term) setResolution(res int) {
	t.opts.Resolution = min(max(res, ui.MinResolution), ui.MaxResolution)
}

func (t *term) cycleFalloff() {
	names := systems.FalloffNames()
	next := names[0]
	for i, n := range names {
		if n == t.falloff {
			next = names[(i+1)%len(names)]
			break
		}
	}
	fn, err := systems.FalloffByName(next)
	if err != nil {
		slog.Error("falloff", "name", next, "error", err)
		return
	}
	t.falloff = next
	t.opts.Falloff = fn
}

// frame advances the sources, renders the field and presents it.
func (t *term) frame(dt float32) {
	start := time.Now()
	if !t.paused {
		t.scene.Step(dt)
	}
	sources := t.scene.Collect()

	t.canvas.Fill(t.bg.RGBA())
	t.stats = t.field.Render(t.canvas, sources)
	t.frameTime = time.Since(start)

	t.present()
}

// present copies the canvas into terminal cells and draws the status line.
func (t *term) present() {
	cols, rows := t.screen.Size()
	for row := 0; row < rows-1; row++ {
		for x := 0; x < cols && x < t.canvas.W; x++ {
			top := t.canvas.At(x, row*2)
			bottom := t.canvas.At(x, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(x, row, halfBlock, nil, style)
		}
	}

	status := fmt.Sprintf(" res %d  %s  fill %s  outline %s  interp %s  saddles %s  segs %d  %.1fms  [q]uit [space] pause [+/-] [f/o/i/x] [g] [r]",
		t.opts.Resolution, t.falloff, onOff(t.opts.Filled), onOff(t.opts.Outlined),
		onOff(t.opts.Interpolated), onOff(t.opts.ResolveSaddles),
		t.stats.Segments, float64(t.frameTime.Microseconds())/1000)
	if t.paused {
		status = " PAUSED" + status
	}
	drawText(t.screen, 0, rows-1, cols, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack))

	t.screen.Show()
}

// drawText writes s on one row, padding or truncating to width.
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style) {
	runes := []rune(s)
	for i := 0; i < width; i++ {
		r := ' '
		if i < len(runes) {
			r = runes[i]
		}
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
