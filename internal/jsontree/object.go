package jsontree

import (
	"bytes"
	"encoding/json"
)

// Member is one key/value pair of an Object.
type Member struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers the order its keys first appeared in.
type Object struct {
	members []Member
	index   map[string]int
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{index: make(map[string]int)}
}

// Set stores value under key. A repeated key keeps its first position and
// takes the new value.
func (o *Object) Set(key string, value any) {
	if i, ok := o.index[key]; ok {
		o.members[i].Value = value
		return
	}
	o.index[key] = len(o.members)
	o.members = append(o.members, Member{Key: key, Value: value})
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.members[i].Value, true
}

// Len returns the number of distinct keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.members)
}

// Members returns the pairs in insertion order. The slice must not be modified.
func (o *Object) Members() []Member {
	if o == nil {
		return nil
	}
	return o.members
}

// MarshalJSON writes the object with its keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	if o == nil {
		return []byte("null"), nil
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range o.members {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(m.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := marshal(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Marshal encodes v without HTML escaping, so response text round-trips as typed.
func Marshal(v any) ([]byte, error) {
	return marshal(v)
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
