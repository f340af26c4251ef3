package host

import (
	"sort"

	"github.com/goccy/go-json"
)

// Bundle is the container the embedding environment hands to the surface on save
// and gives back on restore. Values are opaque bytes keyed by name.
type Bundle struct {
	values map[string][]byte
}

// NewBundle creates an empty bundle
func NewBundle() *Bundle {
	return &Bundle{values: make(map[string][]byte)}
}

// Put stores a copy of value under key
func (b *Bundle) Put(key string, value []byte) {
	if b.values == nil {
		b.values = make(map[string][]byte)
	}
	b.values[key] = append([]byte(nil), value...)
}

// Get returns the value under key
func (b *Bundle) Get(key string) ([]byte, bool) {
	if b == nil {
		return nil, false
	}
	v, ok := b.values[key]
	return v, ok
}

// Keys returns the stored keys in sorted order
func (b *Bundle) Keys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.values))
	for k := range b.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored values
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return len(b.values)
}

func (b *Bundle) MarshalJSON() ([]byte, error) {
	if b == nil || b.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(b.values)
}

func (b *Bundle) UnmarshalJSON(data []byte) error {
	values := make(map[string][]byte)
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	b.values = values
	return nil
}
