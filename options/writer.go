package options

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

type ResponseWriterType string

const (
	WriteToBuffer ResponseWriterType = "buffer"
	WriteToFile   ResponseWriterType = "file"
)

// ResponseWriter selects where a response body is written. FilePath is only
// read for WriteToFile.
type ResponseWriter struct {
	Type     ResponseWriterType
	FilePath string
	writer   io.WriteCloser
}

// WriteCloserBuffer is a bytes.Buffer with a no-op Close, used as the default
// response destination.
type WriteCloserBuffer struct {
	*bytes.Buffer
}

func (w *WriteCloserBuffer) Close() error {
	return nil
}

// IsEmpty reports whether nothing has been written to the buffer.
func (w *WriteCloserBuffer) IsEmpty() bool {
	return w == nil || w.Buffer == nil || w.Buffer.Len() == 0
}

// SetFileOutput streams the response body to the file at path instead of
// keeping it in memory.
func (opt *Option) SetFileOutput(path string) {
	opt.ResponseWriter = ResponseWriter{Type: WriteToFile, FilePath: path}
}

// InitialiseWriter creates the destination for the next response body.
func (opt *Option) InitialiseWriter() (io.WriteCloser, error) {
	switch opt.ResponseWriter.Type {
	case WriteToFile:
		if opt.ResponseWriter.FilePath == "" {
			return nil, fmt.Errorf("file path must be specified when using WriteToFile")
		}
		file, err := os.Create(opt.ResponseWriter.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to create file: %w", err)
		}
		opt.ResponseWriter.writer = file
	case WriteToBuffer:
		opt.ResponseWriter.writer = &WriteCloserBuffer{Buffer: &bytes.Buffer{}}
	default:
		return nil, fmt.Errorf("invalid writer type: %s", opt.ResponseWriter.Type)
	}
	return opt.ResponseWriter.writer, nil
}

// GetWriter returns the writer created by the last InitialiseWriter call.
func (opt *Option) GetWriter() io.WriteCloser {
	return opt.ResponseWriter.writer
}
