package form

import (
	"encoding"
	"fmt"
	"reflect"
)

var (
	staticType        = reflect.TypeOf(Static(""))
	textMarshalerType = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Serialize drives value into sink, invoking exactly one sink operation.
//
//	nil, nil pointer          SerializeNone
//	encoding.TextMarshaler    SerializeString
//	non-nil pointer           SerializeSome(*p)
//	Static                    SerializeStaticStr
//	[]byte                    SerializeString
//	string kinds              SerializeStr
//	slices and arrays         SerializeSeq, then one SerializeElement per item
//	anything else             Unsupported
func Serialize[T any](sink Sink[T], value any) (T, error) {
	var zero T

	if value == nil {
		return sink.SerializeNone()
	}

	rv := reflect.ValueOf(value)
	isPointer := rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface
	if isPointer && rv.IsNil() {
		return sink.SerializeNone()
	}

	if m, ok := value.(encoding.TextMarshaler); ok {
		text, err := m.MarshalText()
		if err != nil {
			return zero, fmt.Errorf("form: marshal %s: %w", rv.Type(), err)
		}
		return sink.SerializeString(string(text))
	}

	if isPointer {
		return sink.SerializeSome(rv.Elem().Interface())
	}

	if rv.Type() == staticType {
		return sink.SerializeStaticStr(rv.String())
	}

	switch rv.Kind() {
	case reflect.String:
		return sink.SerializeStr(rv.String())
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return sink.SerializeString(string(bytesOf(rv)))
		}
		return serializeSeq(sink, rv)
	}

	return zero, sink.Unsupported(rv.Type().String())
}

func serializeSeq[T any](sink Sink[T], rv reflect.Value) (T, error) {
	var zero T

	seq, err := sink.SerializeSeq()
	if err != nil {
		return zero, err
	}
	for i := 0; i < rv.Len(); i++ {
		if err := seq.SerializeElement(interfaceOf(rv.Index(i))); err != nil {
			return zero, err
		}
	}
	return seq.End()
}

func bytesOf(rv reflect.Value) []byte {
	if rv.Kind() == reflect.Slice {
		return rv.Bytes()
	}
	b := make([]byte, rv.Len())
	for i := range b {
		b[i] = byte(rv.Index(i).Uint())
	}
	return b
}

// interfaceOf returns v as an interface, taking its address when only the
// pointer type implements encoding.TextMarshaler.
func interfaceOf(v reflect.Value) any {
	if v.Kind() != reflect.Pointer && v.CanAddr() && v.Addr().CanInterface() &&
		reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		return v.Addr().Interface()
	}
	return v.Interface()
}
