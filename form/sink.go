package form

// Sink is the destination a serializer drives with exactly one terminal event
// per value. T is the result produced on success.
//
// A sink is single-use: once any method has run, calling another one panics.
type Sink[T any] interface {
	SerializeStaticStr(value string) (T, error)

	SerializeStr(value string) (T, error)

	SerializeString(value string) (T, error)

	SerializeNone() (T, error)

	SerializeSome(value any) (T, error)

	SerializeSeq() (SeqSink[T], error)

	// Unsupported consumes the sink and returns an error describing shape as
	// rejected in this sink's position.
	Unsupported(shape string) error
}

// SeqSink receives the items of a sequence started by Sink.SerializeSeq.
type SeqSink[T any] interface {
	SerializeElement(value any) error

	End() (T, error)
}

// UnsupportedSink is a partial Sink implementation that rejects every event.
// Concrete sinks embed it and override the operations they accept.
type UnsupportedSink[T any] struct {
	position Position
	key      string
	used     bool
}

// NewUnsupportedSink returns a base sink whose errors are tagged with position.
// key is reported on value errors and may be empty.
func NewUnsupportedSink[T any](position Position, key string) UnsupportedSink[T] {
	return UnsupportedSink[T]{position: position, key: key}
}

// consume enforces the single-use contract.
func (s *UnsupportedSink[T]) consume() {
	if s.used {
		panic("form: sink used after it was consumed")
	}
	s.used = true
}

func (s *UnsupportedSink[T]) fail(shape string) (T, error) {
	var zero T
	return zero, s.err(shape)
}

func (s *UnsupportedSink[T]) err(shape string) *Error {
	if s.position == PositionKey {
		return unsupportedKey(shape)
	}
	return unsupportedValue(s.key, shape)
}

func (s *UnsupportedSink[T]) SerializeStaticStr(value string) (T, error) {
	s.consume()
	return s.fail("static string")
}

func (s *UnsupportedSink[T]) SerializeStr(value string) (T, error) {
	s.consume()
	return s.fail("string")
}

func (s *UnsupportedSink[T]) SerializeString(value string) (T, error) {
	s.consume()
	return s.fail("string")
}

func (s *UnsupportedSink[T]) SerializeNone() (T, error) {
	s.consume()
	return s.fail("none")
}

func (s *UnsupportedSink[T]) SerializeSome(value any) (T, error) {
	s.consume()
	return s.fail("optional")
}

func (s *UnsupportedSink[T]) SerializeSeq() (SeqSink[T], error) {
	s.consume()
	return nil, s.err("sequence")
}

func (s *UnsupportedSink[T]) Unsupported(shape string) error {
	s.consume()
	return s.err(shape)
}
