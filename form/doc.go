// Package form encodes Go values as application/x-www-form-urlencoded pairs.
//
// Only shapes that flatten to name=value text are accepted:
//
//   - keys: a single string (struct field names, string map keys, Entry keys)
//   - values: strings, encoding.TextMarshaler, []byte, optionals (pointers,
//     nil) and one level of sequence (slices and arrays)
//
// A nil optional emits no pair. A sequence emits one pair per element under
// the same key, so Tag []string{"a", "b"} encodes as tag=a&tag=b. Everything
// else, including numbers, booleans, maps and structs in value position, is
// rejected with an *Error matching ErrUnsupportedKey or ErrUnsupportedValue.
//
//	type Search struct {
//		Query string   `form:"q"`
//		Tags  []string `form:"tag"`
//		Page  *string  `form:"page"`
//	}
//
//	body, err := form.Marshal(Search{Query: "gopher", Tags: []string{"a", "b"}})
//	// q=gopher&tag=a&tag=b
//
// Serialization is built from two sinks driven by Serialize: KeySink resolves
// the key of a pair and ValueSink appends the pairs for its value to a Target.
package form
