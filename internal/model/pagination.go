package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// pageShape tags the list layouts the backend produces in practice.
type pageShape int

const (
	shapeUnknown pageShape = iota
	// {"items": [...], "pagination": {...}}
	shapeItems
	// {"users": [...], "pagination": {...}}
	shapeNamed
	// {"data": {...}} wrapping one of the shapes above
	shapeNested
	// [...]
	shapeBare
)

const maxPageNesting = 2

var ErrUnrecognizedPage = errors.New("unrecognized paginated payload")

// DecodePage normalizes the data field of a list response into a Page.
// collection is the resource-named array key (e.g. "users"); it may be empty.
func DecodePage[T any](data json.RawMessage, collection string) (Page[T], error) {
	return decodePage[T](data, collection, 0)
}

func decodePage[T any](data json.RawMessage, collection string, depth int) (Page[T], error) {
	shape, fields, err := classifyPage(data, collection)
	if err != nil {
		return Page[T]{}, err
	}

	switch shape {
	case shapeBare:
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return Page[T]{}, fmt.Errorf("decode items: %w", err)
		}
		return newPage(items, nil), nil
	case shapeItems:
		return decodeFields[T](fields, "items")
	case shapeNamed:
		return decodeFields[T](fields, namedArrayKey(fields, collection))
	case shapeNested:
		if depth >= maxPageNesting {
			return Page[T]{}, fmt.Errorf("%w: nested too deep", ErrUnrecognizedPage)
		}
		return decodePage[T](fields["data"], collection, depth+1)
	default:
		return Page[T]{}, ErrUnrecognizedPage
	}
}

func classifyPage(data json.RawMessage, collection string) (pageShape, map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return shapeUnknown, nil, fmt.Errorf("%w: empty payload", ErrUnrecognizedPage)
	}

	if trimmed[0] == '[' {
		return shapeBare, nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return shapeUnknown, nil, fmt.Errorf("%w: %v", ErrUnrecognizedPage, err)
	}

	if isArray(fields["items"]) {
		return shapeItems, fields, nil
	}
	if namedArrayKey(fields, collection) != "" {
		return shapeNamed, fields, nil
	}
	if raw, ok := fields["data"]; ok && len(bytes.TrimSpace(raw)) > 0 {
		return shapeNested, fields, nil
	}

	return shapeUnknown, nil, ErrUnrecognizedPage
}

// namedArrayKey prefers the declared collection key and otherwise falls back
// to the only array-valued field.
func namedArrayKey(fields map[string]json.RawMessage, collection string) string {
	if collection != "" && isArray(fields[collection]) {
		return collection
	}

	found := ""
	for key, raw := range fields {
		if key == "pagination" || !isArray(raw) {
			continue
		}
		if found != "" {
			return ""
		}
		found = key
	}
	return found
}

func decodeFields[T any](fields map[string]json.RawMessage, key string) (Page[T], error) {
	var items []T
	if err := json.Unmarshal(fields[key], &items); err != nil {
		return Page[T]{}, fmt.Errorf("decode %s: %w", key, err)
	}

	var pagination *Pagination
	if raw, ok := fields["pagination"]; ok && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		pagination = &Pagination{}
		if err := json.Unmarshal(raw, pagination); err != nil {
			return Page[T]{}, fmt.Errorf("decode pagination: %w", err)
		}
	}

	return newPage(items, pagination), nil
}

func newPage[T any](items []T, pagination *Pagination) Page[T] {
	if items == nil {
		items = []T{}
	}

	if pagination == nil {
		pagination = &Pagination{Page: 1, Limit: len(items), Total: len(items)}
		if len(items) > 0 {
			pagination.TotalPages = 1
		}
	}

	return Page[T]{Items: items, Pagination: *pagination}
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
