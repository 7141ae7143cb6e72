package systems

import (
	"fmt"
	"math"
	"sort"

	"github.com/tanema/gween/ease"
)

// Falloff shapes fill intensity in [0, 1] before dithering.
type Falloff func(float32) float32

// SineFalloff is the classic curve: sin(intensity).
func SineFalloff(t float32) float32 {
	return float32(math.Sin(float64(t)))
}

// LinearFalloff leaves intensity unchanged.
func LinearFalloff(t float32) float32 {
	return t
}

// EaseFalloff adapts a tween easing function to a Falloff.
func EaseFalloff(fn ease.TweenFunc) Falloff {
	return func(t float32) float32 {
		return clamp01(fn(t, 0, 1, 1))
	}
}

// falloffs maps config names to curves.
var falloffs = map[string]Falloff{
	"sine":         SineFalloff,
	"linear":       LinearFalloff,
	"in_quad":      EaseFalloff(ease.InQuad),
	"out_quad":     EaseFalloff(ease.OutQuad),
	"in_out_quad":  EaseFalloff(ease.InOutQuad),
	"in_out_sine":  EaseFalloff(ease.InOutSine),
	"out_sine":     EaseFalloff(ease.OutSine),
	"out_cubic":    EaseFalloff(ease.OutCubic),
	"in_out_cubic": EaseFalloff(ease.InOutCubic),
	"out_quart":    EaseFalloff(ease.OutQuart),
}

// FalloffByName looks up a named curve. An empty name selects "sine".
func FalloffByName(name string) (Falloff, error) {
	if name == "" {
		name = "sine"
	}
	f, ok := falloffs[name]
	if !ok {
		return nil, fmt.Errorf("unknown falloff %q", name)
	}
	return f, nil
}

// FalloffNames returns all registered curve names in sorted order.
func FalloffNames() []string {
	names := make([]string, 0, len(falloffs))
	for name := range falloffs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
