package form_test

import (
	"net/url"
	"testing"

	"github.com/caelisco/form-client/form"
	"github.com/stretchr/testify/assert"
)

func TestValuesEncode(t *testing.T) {
	var values form.Values
	values.AppendPair("q", "hello world")
	values.AppendPair("tag", "a&b")
	values.AppendPair("tag", "c=d")
	values.AppendPair("", "")

	assert.Equal(t, 4, values.Len())
	assert.Equal(t, "q=hello+world&tag=a%26b&tag=c%3Dd&=", values.Encode())
	assert.Equal(t, []byte(values.Encode()), values.Bytes())

	parsed, err := url.ParseQuery(values.Encode())
	assert.NoError(t, err)
	assert.Equal(t, []string{"a&b", "c=d"}, parsed["tag"])

	assert.Equal(t, url.Values{
		"q":   {"hello world"},
		"tag": {"a&b", "c=d"},
		"":    {""},
	}, values.URLValues())

	values.Reset()
	assert.Equal(t, 0, values.Len())
	assert.Equal(t, "", values.Encode())
}
