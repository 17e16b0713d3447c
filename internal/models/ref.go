package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Referable is implemented by documents that can appear populated inside a Ref.
type Referable interface {
	RefID() string
	RefName() string
}

// Ref holds either a bare document id or the populated document itself.
// The API returns both shapes for the same field depending on whether the
// server populated the relation.
type Ref[T Referable] struct {
	id  string
	doc *T
}

// IDRef returns a Ref carrying only an id.
func IDRef[T Referable](id string) Ref[T] {
	return Ref[T]{id: id}
}

// PopulatedRef returns a Ref carrying the full document.
func PopulatedRef[T Referable](doc T) Ref[T] {
	return Ref[T]{doc: &doc}
}

// ID resolves the referenced id for either shape.
func (r Ref[T]) ID() string {
	if r.doc != nil {
		return (*r.doc).RefID()
	}
	return r.id
}

// Name resolves a display name. A bare id has no name, so the id is used.
func (r Ref[T]) Name() string {
	if r.doc != nil {
		return (*r.doc).RefName()
	}
	return r.id
}

// Populated returns the document when the relation was populated.
func (r Ref[T]) Populated() (T, bool) {
	if r.doc == nil {
		var zero T
		return zero, false
	}
	return *r.doc, true
}

// IsZero reports whether the relation is unset.
func (r Ref[T]) IsZero() bool {
	return r.doc == nil && r.id == ""
}

// MarshalJSON writes the same shape that was read.
func (r Ref[T]) MarshalJSON() ([]byte, error) {
	switch {
	case r.doc != nil:
		return json.Marshal(r.doc)
	case r.id != "":
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts null, a bare id string or a populated object.
func (r *Ref[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*r = Ref[T]{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &r.id)
	}
	var doc T
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode populated reference: %w", err)
	}
	r.doc = &doc
	return nil
}
