// Package existing reads the menu items another tool already placed on the
// avatar's expression menu.
package existing

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"tableflip.dev/facemenu/pkg/menu"
)

type file struct {
	Items []item `yaml:"items"`
}

type item struct {
	Name      string  `yaml:"name"`
	Type      string  `yaml:"type"`
	Parameter string  `yaml:"parameter"`
	Value     float64 `yaml:"value"`
}

// Load reads path. An empty path yields no items.
func Load(path string) ([]menu.ExistingItem, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("existing: %w", err)
	}
	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("existing: %s: %w", path, err)
	}
	return items, nil
}

// Parse decodes either {items: [...]} or a bare list of items. JSON input is
// accepted as YAML.
func Parse(data []byte) ([]menu.ExistingItem, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	var raw []item
	switch root := node.Content[0]; root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&raw); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		var f file
		if err := root.Decode(&f); err != nil {
			return nil, err
		}
		raw = f.Items
	default:
		return nil, errors.New("expected a list of items or a mapping with an items key")
	}

	out := make([]menu.ExistingItem, 0, len(raw))
	for i, it := range raw {
		name := strings.TrimSpace(it.Name)
		if name == "" {
			return nil, fmt.Errorf("item %d: name required", i)
		}
		out = append(out, menu.ExistingItem{
			Name:      name,
			Type:      menu.ParseExistingItemType(it.Type),
			Parameter: strings.TrimSpace(it.Parameter),
			Value:     it.Value,
		})
	}
	return out, nil
}
