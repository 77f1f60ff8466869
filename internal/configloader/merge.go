package configloader

import "github.com/yaklabco/pixdeck/pkg/config"

// merge applies the CLI-level settings of override on top of base.
// Only the settings exposed as flags take part:
//   - Scalars: override wins if non-zero
//   - Slices: override replaces base if non-nil
//   - Booleans: override can only switch a setting on
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.Present.Scale != 0 {
		result.Present.Scale = override.Present.Scale
	}
	if override.Present.FPS != 0 {
		result.Present.FPS = override.Present.FPS
	}
	if override.Present.ShowFPS {
		result.Present.ShowFPS = true
	}
	if override.Export.Dir != "" {
		result.Export.Dir = override.Export.Dir
	}
	if override.Export.GIF {
		result.Export.GIF = true
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return result
}
