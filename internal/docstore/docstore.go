// Package docstore abstracts the document database behind a small
// collection API with MongoDB query semantics. Implementations include
// MongoDB, SQLite (local development) and an in-memory store for tests.
package docstore

import (
	"context"
	"encoding/json"
	"reflect"
)

// IDField is the store-generated identifier. It is never returned by Find.
const IDField = "_id"

// Document is a schemaless record.
type Document map[string]interface{}

// Filter selects documents by equality on top-level fields. A scalar value
// matches an array field when the array contains it.
type Filter map[string]interface{}

// Collection is a named set of documents.
type Collection interface {
	// Name returns the collection name.
	Name() string

	// Find returns every matching document in insertion order, without IDField.
	Find(ctx context.Context, filter Filter) ([]Document, error)

	// Count returns the number of matching documents.
	Count(ctx context.Context, filter Filter) (int64, error)

	// InsertMany appends documents. It is not atomic across documents.
	InsertMany(ctx context.Context, docs []Document) error

	// UpdateOne sets fields on the first matching document. With upsert, a
	// missing document is created from filter and set. Reports whether a
	// document was matched or created.
	UpdateOne(ctx context.Context, filter Filter, set Document, upsert bool) (bool, error)

	// DeleteMany removes every matching document and returns the count.
	DeleteMany(ctx context.Context, filter Filter) (int64, error)
}

// Database is a handle to one logical database.
type Database interface {
	Name() string
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Matches reports whether doc satisfies filter.
func Matches(doc Document, filter Filter) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok {
			return false
		}
		if !fieldMatches(normalize(got), normalize(want)) {
			return false
		}
	}
	return true
}

func fieldMatches(got, want interface{}) bool {
	if arr, ok := got.([]interface{}); ok {
		if _, wantArr := want.([]interface{}); wantArr {
			return reflect.DeepEqual(arr, want)
		}
		for _, el := range arr {
			if valuesEqual(el, want) {
				return true
			}
		}
		return false
	}
	return valuesEqual(got, want)
}

func valuesEqual(a, b interface{}) bool {
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// normalize converts values to the shapes every backend returns: []interface{}
// for arrays, Document for nested objects, int64 for integers.
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int32:
		return int64(t)
	case float32:
		return float64(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		f, _ := t.Float64()
		return f
	case []string:
		out := make([]interface{}, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, el := range t {
			out[i] = normalize(el)
		}
		return out
	case map[string]interface{}:
		return normalizeDoc(Document(t))
	case Document:
		return normalizeDoc(t)
	}
	return v
}

func normalizeDoc(d Document) Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = normalize(v)
	}
	return out
}

// Clone returns a deep, normalized copy of d.
func Clone(d Document) Document {
	return normalizeDoc(d)
}

// StripID returns a copy of d without IDField.
func StripID(d Document) Document {
	out := normalizeDoc(d)
	delete(out, IDField)
	return out
}

// String reads a string field.
func String(d Document, key string) string {
	s, _ := d[key].(string)
	return s
}

// Strings reads an array-of-strings field.
func Strings(d Document, key string) []string {
	switch t := d[key].(type) {
	case []string:
		return append([]string(nil), t...)
	case []interface{}:
		out := make([]string, 0, len(t))
		for _, el := range t {
			if s, ok := el.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Int64 reads an integer field regardless of the backend's numeric type.
func Int64(d Document, key string) int64 {
	switch n := normalize(d[key]).(type) {
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}
