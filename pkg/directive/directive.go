// Package directive parses the fenced-block directive syntax used to embed
// figures in slides:
//
//	```{figure} assets/diagram.*
//	:scale: 50
//	```
package directive

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NameFigure is the only directive with behaviour.
const NameFigure = "figure"

// Figure option keys.
const (
	OptScale  = "scale"
	OptWidth  = "width"
	OptHeight = "height"
)

// ErrOption is returned for option values that do not parse.
var ErrOption = errors.New("invalid directive option")

//nolint:gochecknoglobals // compiled once
var (
	headerPattern = regexp.MustCompile(`^{(.+?)}\s*(.*)$`)
	optionPattern = regexp.MustCompile(`(?m):(\w+): (.+)`)
)

// Option is one ":key: value" line.
type Option struct {
	Key   string
	Value string
}

// Directive is a parsed directive block.
type Directive struct {
	Name    string
	Args    string
	Options []Option
}

// Match reports whether a fence info string is a directive header.
func Match(info string) bool {
	return headerPattern.MatchString(info)
}

// Parse parses a fence info string and body. It returns false when info is
// not a directive header.
func Parse(info, body string) (*Directive, bool) {
	m := headerPattern.FindStringSubmatch(info)
	if m == nil {
		return nil, false
	}

	d := &Directive{
		Name: m[1],
		Args: strings.TrimSpace(m[2]),
	}
	for _, opt := range optionPattern.FindAllStringSubmatch(body, -1) {
		d.Options = append(d.Options, Option{Key: opt[1], Value: strings.TrimSpace(opt[2])})
	}

	return d, true
}

// Lookup returns the value of key. A key given twice keeps its last value.
func (d *Directive) Lookup(key string) (string, bool) {
	for i := len(d.Options) - 1; i >= 0; i-- {
		if d.Options[i].Key == key {
			return d.Options[i].Value, true
		}
	}
	return "", false
}

// Int returns key parsed as a base-10 integer. The bool is false when the
// key is absent.
func (d *Directive) Int(key string) (int, bool, error) {
	raw, ok := d.Lookup(key)
	if !ok {
		return 0, false, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true, fmt.Errorf("%w: %s %q: not an integer", ErrOption, key, raw)
	}
	if n <= 0 {
		return 0, true, fmt.Errorf("%w: %s %q: must be positive", ErrOption, key, raw)
	}

	return n, true, nil
}

// Unconsumed returns the option keys not in known, in source order and
// without duplicates.
func (d *Directive) Unconsumed(known ...string) []string {
	var out []string
	seen := make(map[string]bool, len(d.Options))
	for _, k := range known {
		seen[k] = true
	}
	for _, opt := range d.Options {
		if seen[opt.Key] {
			continue
		}
		seen[opt.Key] = true
		out = append(out, opt.Key)
	}
	return out
}

// Validate checks the numeric options of a figure directive. Other
// directive names have no options to check.
func (d *Directive) Validate() error {
	if d.Name != NameFigure {
		return nil
	}
	for _, key := range []string{OptScale, OptWidth, OptHeight} {
		if _, _, err := d.Int(key); err != nil {
			return err
		}
	}
	return nil
}

// Figure holds the resolved numeric options of a figure directive.
type Figure struct {
	// Scale is the percentage, or 0 when not given.
	Scale int

	Width  int
	Height int
}

// Figure resolves the figure options, falling back to the given default
// width and height.
func (d *Directive) Figure(defaultWidth, defaultHeight int) (Figure, error) {
	fig := Figure{Width: defaultWidth, Height: defaultHeight}

	scale, _, err := d.Int(OptScale)
	if err != nil {
		return Figure{}, err
	}
	fig.Scale = scale

	if w, ok, err := d.Int(OptWidth); err != nil {
		return Figure{}, err
	} else if ok {
		fig.Width = w
	}

	if h, ok, err := d.Int(OptHeight); err != nil {
		return Figure{}, err
	} else if ok {
		fig.Height = h
	}

	return fig, nil
}
