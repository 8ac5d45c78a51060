package evaluator

import (
	"strings"

	"github.com/google/uuid"
)

// Metadata is a decorator metadata container: one mutable key/value
// store per owner (a function value, or an object literal whose
// element decorators all share it). Writes are plain assignment, so a
// key written by several decorators resolves to the later-applied
// decorator's value. The ID gives the container a stable identity for
// reflection output.
type Metadata struct {
	ID    string
	Pairs map[string]Object
	order []string
}

func NewMetadata() *Metadata {
	return &Metadata{
		ID:    uuid.NewString(),
		Pairs: make(map[string]Object),
	}
}

func (m *Metadata) Type() ObjectType { return METADATA_OBJ }
func (m *Metadata) Inspect() string {
	parts := make([]string, 0, len(m.order))
	for _, key := range m.order {
		parts = append(parts, key+": "+inspectQuoted(m.Pairs[key]))
	}
	return "metadata#" + m.ID[:8] + "{" + strings.Join(parts, ", ") + "}"
}

func (m *Metadata) Get(key string) (Object, bool) {
	v, ok := m.Pairs[key]
	return v, ok
}

// Set writes a key, last writer wins.
func (m *Metadata) Set(key string, val Object) {
	if _, exists := m.Pairs[key]; !exists {
		m.order = append(m.order, key)
	}
	m.Pairs[key] = val
}

func (m *Metadata) Keys() []string {
	keys := make([]string, len(m.order))
	copy(keys, m.order)
	return keys
}

// metadataFor returns the container attached to a value, if any. This
// is the external reflection hook behind the getMetadata builtin.
func metadataFor(obj Object) *Metadata {
	switch owner := obj.(type) {
	case *Function:
		return owner.Metadata
	case *ObjectInstance:
		return owner.Metadata
	}
	return nil
}
