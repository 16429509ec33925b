package request

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	apperrors "github.com/cnharrison/zirest/internal/errors"
)

// Items is the result of parsing command-line request items.
type Items struct {
	Body    string
	Headers []Pair
	Query   []Pair
}

// Item separators, longest first so "==" wins over "=" at the same position.
var itemSeparators = []string{"==", ":=", "=", ":"}

// ParseItems reads httpie-style items:
//
//	Header:Value    request header
//	name==value     query parameter
//	field=value     JSON string field
//	field:=json     raw JSON field (number, bool, object, ...)
//
// Field names are sjson paths, so "user.name=x" builds nested objects.
func ParseItems(items []string) (Items, error) {
	var out Items
	for _, item := range items {
		key, sep, value, ok := splitItem(item)
		if !ok {
			return Items{}, apperrors.NewInputError(fmt.Sprintf("item %q has no separator", item), nil)
		}
		if strings.TrimSpace(key) == "" {
			return Items{}, apperrors.NewInputError(fmt.Sprintf("item %q has an empty name", item), nil)
		}

		var err error
		switch sep {
		case ":":
			out.Headers = append(out.Headers, Pair{Key: key, Value: strings.TrimSpace(value)})
		case "==":
			out.Query = append(out.Query, Pair{Key: key, Value: value})
		case "=":
			out.Body, err = sjson.Set(out.Body, key, value)
		case ":=":
			if !gjson.Valid(value) {
				return Items{}, apperrors.NewInputError(fmt.Sprintf("value of %q", key), apperrors.ErrInvalidJSON)
			}
			out.Body, err = sjson.SetRaw(out.Body, key, value)
		}
		if err != nil {
			return Items{}, apperrors.NewInputError(fmt.Sprintf("field %q", key), err)
		}
	}
	return out, nil
}

func splitItem(item string) (key, sep, value string, ok bool) {
	for i := 0; i < len(item); i++ {
		for _, s := range itemSeparators {
			if strings.HasPrefix(item[i:], s) {
				return item[:i], s, item[i+len(s):], true
			}
		}
	}
	return "", "", "", false
}
