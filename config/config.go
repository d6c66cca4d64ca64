// Package config provides YAML configuration sections that keep the order of
// their keys and load typed values with the validation games need.
package config

import (
	"fmt"
	"github.com/lefinal/flier/errors"
	"gopkg.in/yaml.v3"
	"os"
)

// Section is a YAML mapping. The zero value is an empty section.
type Section struct {
	// path is the dotted path of the section used in error details.
	path string
	node *yaml.Node
}

// Parse parses the given YAML document. An empty document yields an empty
// Section.
func Parse(raw []byte) (Section, error) {
	var doc yaml.Node
	err := yaml.Unmarshal(raw, &doc)
	if err != nil {
		return Section{}, errors.Error{
			Code:    errors.ErrLoading,
			Kind:    errors.KindDecodeYAML,
			Err:     err,
			Message: "parse yaml",
		}
	}
	if len(doc.Content) == 0 {
		return Section{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Section{}, errors.NewLoadingError(errors.KindInvalidValue, "root is not a mapping", nil)
	}
	return Section{node: root}, nil
}

// ReadFile reads and parses the YAML file at the given path.
func ReadFile(filename string) (Section, error) {
	raw, err := os.ReadFile(filename)
	if err != nil {
		return Section{}, errors.Error{
			Code:    errors.ErrLoading,
			Err:     err,
			Message: "read file",
			Details: errors.Details{"filename": filename},
		}
	}
	s, err := Parse(raw)
	if err != nil {
		return Section{}, errors.Wrap(err, "parse file", errors.Details{"filename": filename})
	}
	return s, nil
}

// Path returns the dotted path of the section.
func (s Section) Path() string {
	return s.path
}

// Name returns the last element of the path which usually is the id of the
// configured object.
func (s Section) Name() string {
	for i := len(s.path) - 1; i >= 0; i-- {
		if s.path[i] == '.' {
			return s.path[i+1:]
		}
	}
	return s.path
}

// Keys returns all keys in document order.
func (s Section) Keys() []string {
	if s.node == nil {
		return nil
	}
	keys := make([]string, 0, len(s.node.Content)/2)
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		keys = append(keys, s.node.Content[i].Value)
	}
	return keys
}

// Has reports whether the key is set.
func (s Section) Has(key string) bool {
	return s.value(key) != nil
}

func (s Section) value(key string) *yaml.Node {
	if s.node == nil {
		return nil
	}
	for i := 0; i+1 < len(s.node.Content); i += 2 {
		if s.node.Content[i].Value == key {
			v := s.node.Content[i+1]
			if v.Kind == yaml.AliasNode {
				return v.Alias
			}
			return v
		}
	}
	return nil
}

func (s Section) keyPath(key string) string {
	if s.path == "" {
		return key
	}
	return s.path + "." + key
}

// Section returns the sub-section with the given key. The second return value
// is false if there is no mapping for the key.
func (s Section) Section(key string) (Section, bool) {
	v := s.value(key)
	if v == nil || v.Kind != yaml.MappingNode {
		return Section{path: s.keyPath(key)}, false
	}
	return Section{path: s.keyPath(key), node: v}, true
}

// Decode decodes the whole section into the given value.
func (s Section) Decode(v interface{}) error {
	if s.node == nil {
		return nil
	}
	err := s.node.Decode(v)
	if err != nil {
		return errors.Error{
			Code:    errors.ErrLoading,
			Kind:    errors.KindDecodeYAML,
			Err:     err,
			Message: "decode section",
			Details: errors.Details{"path": s.path},
		}
	}
	return nil
}

// decode decodes the value for the key into v. It returns a loading error
// with KindMissingValue if not set.
func (s Section) decode(key string, v interface{}) error {
	node := s.value(key)
	if node == nil {
		return errors.NewLoadingError(errors.KindMissingValue, fmt.Sprintf("'%s' must be specified", key),
			errors.Details{"path": s.keyPath(key)})
	}
	err := node.Decode(v)
	if err != nil {
		return errors.Error{
			Code:    errors.ErrLoading,
			Kind:    errors.KindInvalidValue,
			Err:     err,
			Message: fmt.Sprintf("'%s' has an invalid value", key),
			Details: errors.Details{"path": s.keyPath(key), "was": node.Value},
		}
	}
	return nil
}

func (s Section) notPositive(key string, was interface{}) error {
	return errors.NewLoadingError(errors.KindInvalidValue, fmt.Sprintf("'%s' must be positive", key),
		errors.Details{"path": s.keyPath(key), "was": was})
}
