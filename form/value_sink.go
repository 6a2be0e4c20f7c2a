package form

// ValueSink renders a value as zero, one or many pairs under an already
// resolved key. Strings emit one pair, absent optionals emit nothing and a
// sequence emits one pair per item using the same key.
type ValueSink struct {
	UnsupportedSink[struct{}]
	target Target
	key    string
	nested bool
}

// NewValueSink returns a top-level ValueSink appending to target under key.
func NewValueSink(target Target, key string) *ValueSink {
	return newValueSink(target, key, false)
}

func newValueSink(target Target, key string, nested bool) *ValueSink {
	return &ValueSink{
		UnsupportedSink: NewUnsupportedSink[struct{}](PositionValue, key),
		target:          target,
		key:             key,
		nested:          nested,
	}
}

func (s *ValueSink) SerializeStr(value string) (struct{}, error) {
	s.consume()
	s.target.AppendPair(s.key, value)
	return struct{}{}, nil
}

func (s *ValueSink) SerializeStaticStr(value string) (struct{}, error) {
	return s.SerializeStr(value)
}

func (s *ValueSink) SerializeString(value string) (struct{}, error) {
	return s.SerializeStr(value)
}

func (s *ValueSink) SerializeNone() (struct{}, error) {
	s.consume()
	return struct{}{}, nil
}

// SerializeSome serializes value as if the optional wrapper were not there.
func (s *ValueSink) SerializeSome(value any) (struct{}, error) {
	s.consume()
	return Serialize[struct{}](newValueSink(s.target, s.key, s.nested), value)
}

// SerializeSeq starts a repeated-key sequence. Sequences may not nest.
func (s *ValueSink) SerializeSeq() (SeqSink[struct{}], error) {
	s.consume()
	if s.nested {
		return nil, s.err("nested sequence")
	}
	return &valueSeq{target: s.target, key: s.key}, nil
}

// valueSeq emits every element under the same key.
type valueSeq struct {
	target Target
	key    string
	ended  bool
}

func (q *valueSeq) SerializeElement(value any) error {
	if q.ended {
		panic("form: sequence element after End")
	}
	_, err := Serialize[struct{}](newValueSink(q.target, q.key, true), value)
	return err
}

func (q *valueSeq) End() (struct{}, error) {
	if q.ended {
		panic("form: sequence ended twice")
	}
	q.ended = true
	return struct{}{}, nil
}
