package jsontree

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

// Parse decodes a JSON document into the values Project understands: *Object
// for objects (source key order kept), []any, string, json.Number, bool and nil.
func Parse(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, apperrors.NewParsingError("document is not valid JSON", apperrors.ErrInvalidJSON)
	}
	return convert(gjson.ParseBytes(data)), nil
}

// Valid reports whether data is a single well-formed JSON value.
func Valid(data []byte) bool {
	return gjson.ValidBytes(data)
}

func convert(r gjson.Result) any {
	switch r.Type {
	case gjson.Null:
		return nil
	case gjson.False:
		return false
	case gjson.True:
		return true
	case gjson.Number:
		return json.Number(r.Raw)
	case gjson.String:
		return r.Str
	}

	if r.IsArray() {
		arr := make([]any, 0)
		r.ForEach(func(_, v gjson.Result) bool {
			arr = append(arr, convert(v))
			return true
		})
		return arr
	}

	obj := NewObject()
	r.ForEach(func(k, v gjson.Result) bool {
		obj.Set(k.Str, convert(v))
		return true
	})
	return obj
}
