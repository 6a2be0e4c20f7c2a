package form_test

import (
	"errors"
	"testing"

	"github.com/caelisco/form-client/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectKey(called *int) *form.KeySink[form.Key] {
	return form.NewKeySink(func(k form.Key) (form.Key, error) {
		*called++
		return k, nil
	})
}

func TestKeySinkStrings(t *testing.T) {
	tests := []struct {
		name   string
		value  any
		text   string
		static bool
	}{
		{"static", form.Static("q"), "q", true},
		{"borrowed", "tag", "tag", false},
		{"owned bytes", []byte("opt"), "opt", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called int
			key, err := form.Serialize[form.Key](collectKey(&called), tt.value)
			require.NoError(t, err)
			assert.Equal(t, 1, called)
			assert.Equal(t, tt.text, key.String())
			assert.Equal(t, tt.static, key.IsStatic())
			assert.Equal(t, tt.text, key.Persist())
		})
	}
}

func TestKeySinkRejectsNonStrings(t *testing.T) {
	name := "q"
	tests := []struct {
		name  string
		value any
	}{
		{"none", nil},
		{"nil pointer", (*string)(nil)},
		{"some", &name},
		{"sequence", []string{"a", "b"}},
		{"bool", true},
		{"int", 42},
		{"float", 1.5},
		{"map", map[string]string{}},
		{"struct", struct{}{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called int
			_, err := form.Serialize[form.Key](collectKey(&called), tt.value)
			require.Error(t, err)
			assert.True(t, errors.Is(err, form.ErrUnsupportedKey))
			assert.False(t, errors.Is(err, form.ErrUnsupportedValue))
			assert.Equal(t, 0, called, "continuation must not run")
		})
	}
}

func TestKeySinkReturnsContinuationError(t *testing.T) {
	boom := errors.New("boom")
	sink := form.NewKeySink(func(k form.Key) (string, error) {
		return "", boom
	})

	_, err := sink.SerializeStr("q")
	assert.ErrorIs(t, err, boom)
}

func TestKeySinkSingleUse(t *testing.T) {
	sink := form.NewKeySink(func(k form.Key) (string, error) {
		return k.String(), nil
	})

	_, err := sink.SerializeStaticStr("q")
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = sink.SerializeStr("again")
	})
}

func TestStaticKeyPersist(t *testing.T) {
	key := form.StaticKey("name")
	assert.True(t, key.IsStatic())
	assert.Equal(t, "name", key.Persist())

	dynamic := form.DynamicKey("name")
	assert.False(t, dynamic.IsStatic())
	assert.Equal(t, key.String(), dynamic.Persist())
}
