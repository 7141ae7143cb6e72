package scene

import (
	"fmt"

	"github.com/pthm-cable/metaballs/config"
	"github.com/pthm-cable/metaballs/systems"
)

// FieldOptions builds renderer options from a loaded config.
func FieldOptions(cfg *config.Config) (systems.MetaballOptions, error) {
	falloff, err := systems.FalloffByName(cfg.Field.Falloff)
	if err != nil {
		return systems.MetaballOptions{}, fmt.Errorf("field.falloff: %w", err)
	}
	return systems.MetaballOptions{
		Resolution:     cfg.Field.Resolution,
		Interpolated:   cfg.Field.Interpolated,
		Filled:         cfg.Field.Filled,
		Outlined:       cfg.Field.Outlined,
		ResolveSaddles: cfg.Field.ResolveSaddles,
		Primary:        systems.RadialFromTriple(cfg.Derived.Primary),
		Secondary:      systems.RadialFromTriple(cfg.Derived.Secondary),
		Outline:        systems.RadialFromTriple(cfg.Derived.Outline),
		Falloff:        falloff,
	}, nil
}

// CanvasBounds returns the configured canvas rectangle.
func CanvasBounds(cfg *config.Config) systems.Bounds {
	return systems.Bounds{Width: float32(cfg.Screen.Width), Height: float32(cfg.Screen.Height)}
}

// SpawnFromConfig converts the sources section.
func SpawnFromConfig(cfg *config.Config) SpawnConfig {
	return SpawnConfig{
		Count:     cfg.Sources.Count,
		MinRadius: float32(cfg.Sources.MinRadius),
		MaxRadius: float32(cfg.Sources.MaxRadius),
		MaxSpeed:  float32(cfg.Sources.MaxSpeed),
	}
}
