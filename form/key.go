package form

import "strings"

// Static marks a string as process-lifetime text. A Static value is handed to
// sinks through SerializeStaticStr, so keys built from it are never copied.
type Static string

// Key is the field name half of a pair. It is either static (process-lifetime
// text, never copied) or dynamic (text computed while serializing).
type Key struct {
	text   string
	static bool
}

// StaticKey returns a Key over process-lifetime text.
func StaticKey(text string) Key {
	return Key{text: text, static: true}
}

// DynamicKey returns a Key over text produced during serialization.
func DynamicKey(text string) Key {
	return Key{text: text}
}

// String returns the key text.
func (k Key) String() string {
	return k.text
}

// IsStatic reports whether the key refers to process-lifetime text.
func (k Key) IsStatic() bool {
	return k.static
}

// Persist returns text that may be retained after the serialization call.
// Static keys are returned as-is; dynamic keys are copied so they no longer
// share memory with whatever buffer produced them.
func (k Key) Persist() string {
	if k.static {
		return k.text
	}
	return strings.Clone(k.text)
}
