package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Mapping is the declarative mapping configuration loaded once per run
// and treated as read-only. Block and field order is preserved from the
// YAML document so output assembly is deterministic.
type Mapping struct {
	Profile     OutputProfile `yaml:"profile"`
	AuthorDedup string        `yaml:"author_dedup"`
	Blocks      BlockList     `yaml:"blocks"`
}

func (m Mapping) Block(name string) (Block, bool) {
	for _, entry := range m.Blocks {
		if entry.Name == name {
			return entry.Block, true
		}
	}
	return Block{}, false
}

type BlockEntry struct {
	Name  string
	Block Block
}

// BlockList decodes a YAML mapping of block name to block definition
// while keeping the document order.
type BlockList []BlockEntry

func (l *BlockList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("blocks must be a mapping, got %s", nodeKind(node))
	}
	out := make(BlockList, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var block Block
		if err := node.Content[i+1].Decode(&block); err != nil {
			return err
		}
		out = append(out, BlockEntry{Name: node.Content[i].Value, Block: block})
	}
	*l = out
	return nil
}

type Block struct {
	DisplayName string    `yaml:"displayName"`
	Fields      FieldList `yaml:"fields"`
}

func (b Block) Field(name string) (FieldConfig, bool) {
	for _, field := range b.Fields {
		if field.Name == name {
			return field.Config, true
		}
	}
	return FieldConfig{}, false
}

type Field struct {
	Name   string
	Config FieldConfig
}

// FieldList decodes the `fields` sequence of single-key maps
// (`- title: {...}`) into an ordered field slice.
type FieldList []Field

func (l *FieldList) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("fields must be a sequence, got %s", nodeKind(node))
	}
	out := make(FieldList, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.MappingNode || len(item.Content) < 2 {
			return fmt.Errorf("each field entry must be a single-key mapping")
		}
		var cfg FieldConfig
		if err := item.Content[1].Decode(&cfg); err != nil {
			return err
		}
		out = append(out, Field{Name: item.Content[0].Value, Config: cfg})
	}
	*l = out
	return nil
}

type FieldConfig struct {
	// Source lists dot-path candidates in priority order; the first
	// path yielding a non-empty value wins, with no merging.
	Source   []string   `yaml:"source"`
	Kind     FieldKind  `yaml:"type"`
	Default  any        `yaml:"default"`
	ItemKey  string     `yaml:"item_key"`
	Wrap     bool       `yaml:"wrap"`
	Mapping  SubMapping `yaml:"mapping"`
	Required bool       `yaml:"required"`
	Fallback any        `yaml:"fallback"`
}

func (c FieldConfig) HasMapping() bool {
	return len(c.Mapping) > 0
}

// SubMapping decodes the recursive `mapping` block. Each entry is
// either a full field configuration or, in the shorthand form, a bare
// list of source paths.
type SubMapping []Field

func (l *SubMapping) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("mapping must be a mapping, got %s", nodeKind(node))
	}
	out := make(SubMapping, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		value := node.Content[i+1]
		var cfg FieldConfig
		switch value.Kind {
		case yaml.SequenceNode:
			if err := value.Decode(&cfg.Source); err != nil {
				return err
			}
		default:
			if err := value.Decode(&cfg); err != nil {
				return err
			}
		}
		out = append(out, Field{Name: name, Config: cfg})
	}
	*l = out
	return nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
