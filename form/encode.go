package form

import (
	"io"
	"reflect"
	"slices"
	"strings"
)

// Entry is one key/value pair awaiting serialization. Key must resolve to a
// single string; Value may be a string, an optional or a flat sequence.
type Entry struct {
	Key   any
	Value any
}

var entrySliceType = reflect.TypeOf([]Entry(nil))

// field is an entry whose key has already been resolved.
type field struct {
	key   string
	value any
}

// Marshal encodes a record as application/x-www-form-urlencoded text.
func Marshal(v any) ([]byte, error) {
	var values Values
	if err := AppendRecord(&values, v); err != nil {
		return nil, err
	}
	return values.Bytes(), nil
}

// Encoder writes encoded records to an io.Writer.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes the encoding of v. Nothing is written if encoding fails.
func (e *Encoder) Encode(v any) error {
	var values Values
	if err := AppendRecord(&values, v); err != nil {
		return err
	}
	_, err := io.WriteString(e.w, values.Encode())
	return err
}

// AppendRecord appends the pairs of a struct, map or []Entry to t.
//
// Struct fields are emitted in declaration order. Map entries are emitted
// sorted by key. All keys are resolved before the first pair is appended, so a
// key error leaves t untouched; a value error leaves the pairs of earlier
// fields in place.
func AppendRecord(t Target, v any) error {
	fields, err := recordFields(v)
	if err != nil {
		return err
	}
	return appendFields(t, fields)
}

// AppendEntries appends entries to t in order, with the same key-first
// guarantee as AppendRecord.
func AppendEntries(t Target, entries ...Entry) error {
	fields, err := resolveEntries(entries)
	if err != nil {
		return err
	}
	return appendFields(t, fields)
}

func recordFields(v any) ([]field, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, ErrNotRecord
	}
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrNotRecord
		}
		rv = rv.Elem()
	}

	switch {
	case rv.Type() == entrySliceType:
		return resolveEntries(rv.Interface().([]Entry))
	case rv.Kind() == reflect.Struct:
		return structFields(rv)
	case rv.Kind() == reflect.Map:
		return mapFields(rv)
	}
	return nil, ErrNotRecord
}

func structFields(rv reflect.Value) ([]field, error) {
	meta, err := getRecordMetadata(rv.Type())
	if err != nil {
		return nil, err
	}

	// an addressable copy lets pointer-receiver MarshalText methods run
	if !rv.CanAddr() {
		cp := reflect.New(rv.Type()).Elem()
		cp.Set(rv)
		rv = cp
	}

	entries := make([]Entry, 0, len(meta.Fields))
	for _, fd := range meta.Fields {
		fv, err := rv.FieldByIndexErr(fd.Index)
		if err != nil {
			// nil embedded pointer
			continue
		}
		if fd.OmitEmpty && fv.IsZero() {
			continue
		}
		entries = append(entries, Entry{Key: Static(fd.FormName), Value: interfaceOf(fv)})
	}
	return resolveEntries(entries)
}

func mapFields(rv reflect.Value) ([]field, error) {
	entries := make([]Entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		entries = append(entries, Entry{Key: iter.Key().Interface(), Value: iter.Value().Interface()})
	}

	fields, err := resolveEntries(entries)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(fields, func(a, b field) int {
		return strings.Compare(a.key, b.key)
	})
	return fields, nil
}

func resolveEntries(entries []Entry) ([]field, error) {
	fields := make([]field, len(entries))
	for i, e := range entries {
		key, err := resolveKey(e.Key)
		if err != nil {
			return nil, err
		}
		fields[i] = field{key: key, value: e.Value}
	}
	return fields, nil
}

func resolveKey(v any) (string, error) {
	return Serialize[string](NewKeySink(func(k Key) (string, error) {
		return k.Persist(), nil
	}), v)
}

func appendFields(t Target, fields []field) error {
	for _, f := range fields {
		if _, err := Serialize[struct{}](NewValueSink(t, f.key), f.value); err != nil {
			return err
		}
	}
	return nil
}
