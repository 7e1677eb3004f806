package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Field names shared by the normalizer and validator when reshaping records.
const (
	FieldID               = "id"
	FieldURL              = "url"
	FieldPubDate          = "pub_date"
	FieldModDate          = "mod_date"
	FieldPublicationDate  = "publication_date"
	FieldModificationDate = "modification_date"
	FieldSections         = "sections"
)

// RawRecord is the dictionary-shaped article payload as fetched from the
// source, alive only while it transits the pipeline.
type RawRecord map[string]any

// Clone returns a shallow copy so normalization never mutates the caller's map.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Descriptor is a lightweight catalog entry identifying one article to fetch.
// Descriptors are compared by ID when diffing poll cycles.
type Descriptor struct {
	ID     string
	Fields map[string]any
}

// DescriptorFromValue converts one decoded catalog element into a Descriptor.
// Elements without a usable id are rejected.
func DescriptorFromValue(v any) (Descriptor, bool) {
	fields, ok := v.(map[string]any)
	if !ok {
		return Descriptor{}, false
	}
	id, ok := CoerceID(fields[FieldID])
	if !ok {
		return Descriptor{}, false
	}
	return Descriptor{ID: strconv.FormatInt(id, 10), Fields: fields}, true
}

// CoerceID accepts JSON numbers and numeric strings as article identifiers.
func CoerceID(v any) (int64, bool) {
	switch id := v.(type) {
	case json.Number:
		n, err := id.Int64()
		return n, err == nil
	case float64:
		if id != float64(int64(id)) {
			return 0, false
		}
		return int64(id), true
	case int64:
		return id, true
	case int:
		return int64(id), true
	case string:
		n, err := strconv.ParseInt(id, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

// Section is one content block of an article. Text sections carry markup-free
// text after normalization; media sections keep their fields in Attrs.
type Section struct {
	Type  string
	Text  *string
	Attrs map[string]any
}

// Article is the validated canonical entity. Immutable once constructed and
// uniquely identified by ID.
type Article struct {
	ID               int64
	URL              string
	PublicationDate  time.Time
	ModificationDate *time.Time
	Sections         []Section
	Extra            map[string]any
}

// ValidationError records a terminal schema failure for one record.
type ValidationError struct {
	Record RawRecord
	Err    error
}

func (e *ValidationError) Error() string {
	id := "?"
	if n, ok := CoerceID(e.Record[FieldID]); ok {
		id = strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("record %s: %v", id, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
