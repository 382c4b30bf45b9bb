package loader

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// GraphYAML represents the YAML file structure.
type GraphYAML struct {
	Name  string     `yaml:"name,omitempty"`
	Root  string     `yaml:"root"`
	Nodes []NodeYAML `yaml:"nodes"`
}

// NodeYAML represents one node. Exactly one of Value and Op is set.
type NodeYAML struct {
	Label    string   `yaml:"label"`
	Value    *float64 `yaml:"value,omitempty"`
	Op       string   `yaml:"op,omitempty"`
	Operands []string `yaml:"operands,omitempty"`
}

// IsLeaf reports whether the node is declared without an operation.
func (n NodeYAML) IsLeaf() bool {
	return n.Op == ""
}

// LoadFile reads and parses a graph definition. The definition is not
// validated; Build does that.
func LoadFile(path string) (*GraphYAML, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read graph file")
	}
	def, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return def, nil
}

// Parse parses a graph definition. Unknown keys are rejected.
func Parse(data []byte) (*GraphYAML, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var def GraphYAML
	if err := dec.Decode(&def); err != nil {
		return nil, errors.Wrap(err, "failed to parse YAML")
	}
	return &def, nil
}

// Marshal encodes a definition back to YAML.
func Marshal(def *GraphYAML) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(def); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to encode YAML")
	}
	return buf.Bytes(), nil
}
