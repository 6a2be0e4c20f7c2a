package form

// KeySink turns a single string-like value into a Key and hands it to a
// continuation. Optional, sequence and every non-string shape are rejected
// as unsupported keys.
type KeySink[T any] struct {
	UnsupportedSink[T]
	end func(Key) (T, error)
}

// NewKeySink returns a KeySink that calls end exactly once with the resolved key.
func NewKeySink[T any](end func(Key) (T, error)) *KeySink[T] {
	return &KeySink[T]{
		UnsupportedSink: NewUnsupportedSink[T](PositionKey, ""),
		end:             end,
	}
}

func (s *KeySink[T]) SerializeStaticStr(value string) (T, error) {
	s.consume()
	return s.end(StaticKey(value))
}

func (s *KeySink[T]) SerializeStr(value string) (T, error) {
	s.consume()
	return s.end(DynamicKey(value))
}

func (s *KeySink[T]) SerializeString(value string) (T, error) {
	s.consume()
	return s.end(DynamicKey(value))
}
