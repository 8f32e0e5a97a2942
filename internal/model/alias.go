package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// AliasGroup lists the alternate canonical keys that may hold the value of Key.
type AliasGroup struct {
	Key     string   `yaml:"key" toml:"key" json:"key"`
	Aliases []string `yaml:"aliases" toml:"aliases" json:"aliases"`
}

// AliasTable is an ordered list of alias groups. Order matters: the first
// matching group that yields a value wins.
type AliasTable []AliasGroup

// Clone returns a deep copy of the table.
func (t AliasTable) Clone() AliasTable {
	if t == nil {
		return nil
	}
	out := make(AliasTable, len(t))
	for i, g := range t {
		out[i] = AliasGroup{Key: g.Key, Aliases: append([]string(nil), g.Aliases...)}
	}
	return out
}

// UnmarshalYAML accepts either an ordered mapping
//
//	avg_price: [average_price]
//
// or a sequence of {key, aliases} groups. Mapping order is preserved.
func (t *AliasTable) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.MappingNode:
		table := make(AliasTable, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			var aliases []string
			if err := node.Content[i+1].Decode(&aliases); err != nil {
				return fmt.Errorf("aliases for %q: %w", node.Content[i].Value, err)
			}
			table = append(table, AliasGroup{Key: node.Content[i].Value, Aliases: aliases})
		}
		*t = table
		return nil
	case yaml.SequenceNode:
		var groups []AliasGroup
		if err := node.Decode(&groups); err != nil {
			return err
		}
		*t = groups
		return nil
	default:
		return fmt.Errorf("line %d: aliases must be a mapping or a list", node.Line)
	}
}
