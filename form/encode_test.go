package form_test

import (
	"bytes"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/caelisco/form-client/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type search struct {
	Query string   `form:"q"`
	Tags  []string `form:"tag"`
	Opt   *string  `form:"opt"`
}

type paging struct {
	Cursor string `form:"cursor,omitempty"`
	Limit  string `form:"limit"`
}

type listing struct {
	search
	*paging
	Sort     string
	internal string
	Skipped  string `form:"-"`
}

func TestAppendRecordStruct(t *testing.T) {
	var values form.Values
	err := form.AppendRecord(&values, search{Query: "rust", Tags: []string{"a", "b"}})
	require.NoError(t, err)

	assert.Equal(t, []form.Pair{
		{Name: "q", Value: "rust"},
		{Name: "tag", Value: "a"},
		{Name: "tag", Value: "b"},
	}, values.Pairs())
}

func TestAppendRecordEmbedded(t *testing.T) {
	t.Run("flattened in declaration order", func(t *testing.T) {
		var values form.Values
		err := form.AppendRecord(&values, &listing{
			search:   search{Query: "go"},
			paging:   &paging{Limit: "10"},
			Sort:     "asc",
			internal: "hidden",
			Skipped:  "hidden",
		})
		require.NoError(t, err)

		assert.Equal(t, []form.Pair{
			{Name: "q", Value: "go"},
			{Name: "limit", Value: "10"},
			{Name: "Sort", Value: "asc"},
		}, values.Pairs())
	})

	t.Run("nil embedded pointer is skipped", func(t *testing.T) {
		var values form.Values
		err := form.AppendRecord(&values, listing{Sort: "desc"})
		require.NoError(t, err)
		assert.Equal(t, []form.Pair{
			{Name: "q", Value: ""},
			{Name: "Sort", Value: "desc"},
		}, values.Pairs())
	})
}

func TestAppendRecordMap(t *testing.T) {
	var values form.Values
	err := form.AppendRecord(&values, map[string]any{
		"b":   "2",
		"a":   []string{"x", "y"},
		"c":   nil,
		"opt": (*string)(nil),
	})
	require.NoError(t, err)

	assert.Equal(t, []form.Pair{
		{Name: "a", Value: "x"},
		{Name: "a", Value: "y"},
		{Name: "b", Value: "2"},
	}, values.Pairs())
}

func TestAppendEntries(t *testing.T) {
	t.Run("keeps order and duplicates", func(t *testing.T) {
		var values form.Values
		err := form.AppendEntries(&values,
			form.Entry{Key: "z", Value: "1"},
			form.Entry{Key: form.Static("a"), Value: "2"},
			form.Entry{Key: "z", Value: "3"},
		)
		require.NoError(t, err)
		assert.Equal(t, "z=1&a=2&z=3", values.Encode())
	})

	t.Run("key error appends nothing", func(t *testing.T) {
		var values form.Values
		err := form.AppendEntries(&values,
			form.Entry{Key: "first", Value: "ok"},
			form.Entry{Key: true, Value: "x"},
		)
		assert.ErrorIs(t, err, form.ErrUnsupportedKey)
		assert.Equal(t, 0, values.Len())
	})

	t.Run("value error keeps earlier fields", func(t *testing.T) {
		var values form.Values
		err := form.AppendEntries(&values,
			form.Entry{Key: "first", Value: "ok"},
			form.Entry{Key: "second", Value: 42},
			form.Entry{Key: "third", Value: "never"},
		)
		assert.ErrorIs(t, err, form.ErrUnsupportedValue)
		assert.Equal(t, []form.Pair{{Name: "first", Value: "ok"}}, values.Pairs())
	})
}

func TestEndToEnd(t *testing.T) {
	t.Run("record with optional and sequence", func(t *testing.T) {
		var values form.Values
		err := form.AppendRecord(&values, search{Query: "rust", Tags: []string{"a", "b"}, Opt: nil})
		require.NoError(t, err)
		assert.Equal(t, []form.Pair{
			{Name: "q", Value: "rust"},
			{Name: "tag", Value: "a"},
			{Name: "tag", Value: "b"},
		}, values.Pairs())
	})

	t.Run("boolean key fails the whole call", func(t *testing.T) {
		var values form.Values
		err := form.AppendRecord(&values, map[bool]string{true: "yes"})
		assert.ErrorIs(t, err, form.ErrUnsupportedKey)
		assert.Equal(t, 0, values.Len())
	})
}

func TestAppendRecordRejectsNonRecords(t *testing.T) {
	tests := []struct {
		name  string
		value any
	}{
		{"nil", nil},
		{"nil pointer", (*search)(nil)},
		{"string", "q=1"},
		{"slice", []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var values form.Values
			err := form.AppendRecord(&values, tt.value)
			assert.True(t, errors.Is(err, form.ErrNotRecord))
		})
	}
}

func TestMarshal(t *testing.T) {
	type event struct {
		Name  string    `form:"name"`
		At    time.Time `form:"at"`
		Notes []byte    `form:"notes,omitempty"`
	}

	body, err := form.Marshal(event{
		Name: "launch day & more",
		At:   time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "name=launch+day+%26+more&at=2024-03-01T12%3A00%3A00Z", string(body))
}

func TestMarshalPointerReceiverTextMarshaler(t *testing.T) {
	type amount struct {
		Total big.Int  `form:"total"`
		Tip   *big.Int `form:"tip"`
		Fee   *big.Int `form:"fee"`
	}

	record := amount{Total: *big.NewInt(120), Tip: big.NewInt(7)}

	body, err := form.Marshal(record)
	require.NoError(t, err)
	assert.Equal(t, "total=120&tip=7", string(body))

	body, err = form.Marshal(&record)
	require.NoError(t, err)
	assert.Equal(t, "total=120&tip=7", string(body))
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := form.NewEncoder(&buf)

	require.NoError(t, enc.Encode([]form.Entry{{Key: "a b", Value: "c/d"}}))
	assert.Equal(t, "a+b=c%2Fd", buf.String())

	buf.Reset()
	err := enc.Encode(map[string]any{"a": "ok", "b": [][]string{{"x"}}})
	assert.ErrorIs(t, err, form.ErrUnsupportedValue)
	assert.Equal(t, 0, buf.Len(), "nothing is written on failure")
}
