package form

import (
	"net/url"
	"strings"
)

// Target collects pairs in the order they are appended.
type Target interface {
	AppendPair(name, value string)
}

// Pair is one name=value entry of a form.
type Pair struct {
	Name  string
	Value string
}

// Values is an ordered, append-only list of pairs. Unlike url.Values it keeps
// insertion order and duplicate names exactly as appended.
// Values is not safe for concurrent use.
type Values struct {
	pairs []Pair
}

// AppendPair appends name=value to the end of the list.
func (v *Values) AppendPair(name, value string) {
	v.pairs = append(v.pairs, Pair{Name: name, Value: value})
}

// Pairs returns the collected pairs in append order.
func (v *Values) Pairs() []Pair {
	return v.pairs
}

// Len returns the number of collected pairs.
func (v *Values) Len() int {
	return len(v.pairs)
}

// Reset discards all collected pairs.
func (v *Values) Reset() {
	v.pairs = v.pairs[:0]
}

// Encode escapes each name and value with url.QueryEscape and joins them as
// name=value pairs separated by '&'.
func (v *Values) Encode() string {
	var b strings.Builder
	for i, p := range v.pairs {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// Bytes returns Encode as a byte slice, ready to be used as a request body.
func (v *Values) Bytes() []byte {
	return []byte(v.Encode())
}

// URLValues converts the pairs into a url.Values. Order between different
// names is lost; order within a name is kept.
func (v *Values) URLValues() url.Values {
	out := make(url.Values, len(v.pairs))
	for _, p := range v.pairs {
		out.Add(p.Name, p.Value)
	}
	return out
}
