package slump

import (
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/zyedidia/generic/mapset"
	"gopkg.in/yaml.v3"
)

// Params is the host's view of generation parameters: every value is a string
// looked up by name, plus a set of named mods that are switched on or off.
type Params interface {
	Get(name string) string
	ModEnabled(name string) bool
}

// ParamMap is a Params backed by a map.
type ParamMap struct {
	Values map[string]string
	Mods   mapset.Set[string]
}

func NewParamMap() *ParamMap {
	return &ParamMap{Values: make(map[string]string), Mods: mapset.New[string]()}
}

func (p *ParamMap) Get(name string) string     { return p.Values[name] }
func (p *ParamMap) ModEnabled(name string) bool { return p.Mods.Has(name) }

// Set stores a parameter value and returns p so calls can be chained.
func (p *ParamMap) Set(name, value string) *ParamMap {
	p.Values[name] = value
	return p
}

// Enable switches a mod on and returns p.
func (p *ParamMap) Enable(mod string) *ParamMap {
	p.Mods.Put(mod)
	return p
}

// LoadParams reads a YAML parameter file.
func LoadParams(path string) (*ParamMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening parameter file")
	}
	defer f.Close()
	p, err := ReadParams(f)
	if err != nil {
		return nil, errors.Wrapf(err, "in %s", path)
	}
	return p, nil
}

// ReadParams decodes a YAML mapping of parameters. Scalars keep their textual
// form; the "mods" key holds a list of enabled mods.
func ReadParams(r io.Reader) (*ParamMap, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewParamMap(), nil
		}
		return nil, errors.Wrap(err, "decoding parameters")
	}
	p := NewParamMap()
	if len(doc.Content) == 0 {
		return p, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, errors.Errorf("line %d: parameters must be a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, val := root.Content[i].Value, root.Content[i+1]
		switch {
		case key == "mods" && val.Kind == yaml.SequenceNode:
			for _, m := range val.Content {
				p.Enable(strings.ToLower(m.Value))
			}
		case val.Kind == yaml.ScalarNode:
			p.Set(key, val.Value)
		default:
			return nil, errors.Errorf("line %d: parameter %q must be a scalar", val.Line, key)
		}
	}
	return p, nil
}
