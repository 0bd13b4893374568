package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Formats understood by Structured.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Structured writes values as JSON or YAML.
type Structured struct {
	Format string
	// Out defaults to color.Output.
	Out io.Writer
}

func (s *Structured) Print(v any) error {
	out := s.Out
	if out == nil {
		out = color.Output
	}
	switch strings.ToLower(s.Format) {
	case "", FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(b))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", s.Format)
	}
}
