package applet

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/pixdeck/pkg/fsutil"
)

// Ext is the file extension of applet descriptors.
const Ext = ".app"

// Descriptor is the YAML file a figure directive points at to embed an app:
//
//	app: bounce
//	width: 200
//	height: 120
//	options:
//	  speed: "3"
type Descriptor struct {
	App     string            `yaml:"app"`
	Width   int               `yaml:"width,omitempty"`
	Height  int               `yaml:"height,omitempty"`
	Options map[string]string `yaml:"options,omitempty"`
}

// LoadDescriptor reads and parses a descriptor file.
func LoadDescriptor(ctx context.Context, path string) (*Descriptor, error) {
	data, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load applet descriptor: %w", err)
	}

	var desc Descriptor
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if desc.App == "" {
		return nil, fmt.Errorf("%s: missing app name", path)
	}

	return &desc, nil
}
