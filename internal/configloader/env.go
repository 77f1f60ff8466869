package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/pixdeck/pkg/config"
)

// envVarPrefix is the prefix for all pixdeck environment variables.
const envVarPrefix = "PIXDECK_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeFloat
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TITLE":           {field: "present.title", typ: envTypeString, help: "Window title"},
	"SCALE":           {field: "present.scale", typ: envTypeInt, help: "Integer window magnification"},
	"FPS":             {field: "present.fps", typ: envTypeInt, help: "Target frame rate"},
	"TRANSITION_RATE": {field: "present.transition_rate", typ: envTypeFloat, help: "Transition progress decay per second"},
	"SHOW_FPS":        {field: "present.show_fps", typ: envTypeBool, help: "Draw the measured frame rate: true or false"},
	"WALKER":          {field: "present.walker", typ: envTypeBool, help: "Draw the progress walker: true or false"},
	"LINKIFY":         {field: "parser.linkify", typ: envTypeBool, help: "Turn bare URLs into links: true or false"},
	"HIGHLIGHT":       {field: "highlight.enabled", typ: envTypeBool, help: "Highlight fenced code: true or false"},
	"EXPORT_DIR":      {field: "export.dir", typ: envTypeString, help: "Export output directory"},
	"GIF":             {field: "export.gif", typ: envTypeBool, help: "Write a walkthrough GIF on export: true or false"},
	"JOBS":            {field: "jobs", typ: envTypeInt, help: "Number of parallel export workers (0 = auto)"},
	"FORMAT":          {field: "format", typ: envTypeString, help: "Outline format: text, table, or json"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, help: "Comma-separated list of ignore patterns"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with PIXDECK_ (e.g., PIXDECK_SCALE).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number for %s: %q", envVar, value)
		}
		return setFloatField(cfg, mapping.field, f)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "present.title":
		cfg.Present.Title = value
	case "export.dir":
		cfg.Export.Dir = value
	case "format":
		cfg.Format = config.OutputFormat(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "present.show_fps":
		cfg.Present.ShowFPS = value
	case "present.walker":
		cfg.Present.Walker = value
	case "parser.linkify":
		cfg.Parser.Linkify = value
	case "highlight.enabled":
		cfg.Highlight.Enabled = value
	case "export.gif":
		cfg.Export.GIF = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "present.scale":
		cfg.Present.Scale = value
	case "present.fps":
		cfg.Present.FPS = value
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setFloatField(cfg *config.Config, field string, value float64) error {
	switch field {
	case "present.transition_rate":
		cfg.Present.TransitionRate = value
	default:
		return fmt.Errorf("unknown number field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name string
	Help string
}

// ListEnvVars returns every supported environment variable, sorted by name.
func ListEnvVars() []EnvVar {
	out := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		out = append(out, EnvVar{Name: envVarPrefix + suffix, Help: mapping.help})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
