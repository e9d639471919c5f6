package game

import (
	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/renderer"
	"github.com/pthm-cable/drift/systems"
)

// Settings holds everything the controller needs to build a field.
type Settings struct {
	Count      int
	Spawn      systems.SpawnConfig
	Integrator systems.Integrator
	Paint      renderer.Paint
}

// DefaultSettings returns the settings of the embedded default config.
func DefaultSettings() Settings {
	return SettingsFromConfig(config.Default())
}

// SettingsFromConfig maps a loaded config onto controller settings.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Count: cfg.Field.Count,
		Spawn: systems.SpawnConfig{
			VXJitter:   cfg.Field.VXJitter,
			VYBase:     cfg.Field.VYBase,
			VYJitter:   cfg.Field.VYJitter,
			SizeMin:    cfg.Field.SizeMin,
			SizeRange:  cfg.Field.SizeRange,
			AlphaMin:   cfg.Field.AlphaMin,
			AlphaRange: cfg.Field.AlphaRange,
		},
		Integrator: systems.Integrator{
			Force: systems.ForceField{
				Radius:   cfg.Force.Radius,
				Strength: cfg.Force.Strength,
			},
			Damping: cfg.Physics.Damping,
			Drift:   cfg.Physics.Drift,
		},
		Paint: renderer.Paint{
			Color:     cfg.Derived.PaintColor,
			Blur:      cfg.Paint.Blur,
			BlurColor: cfg.Derived.BlurColor,
		},
	}
}
