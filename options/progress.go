package options

import (
	"io"
	"sync"
	"sync/atomic"
)

// ProgressReader reports how much of a request body has been read.
// total is -1 when the body size is unknown.
type ProgressReader struct {
	reader     io.Reader
	total      int64
	read       atomic.Int64
	onProgress func(read, total int64)
	mu         sync.Mutex // serialises onProgress
}

func NewProgressReader(reader io.Reader, total int64, onProgress func(read, total int64)) *ProgressReader {
	return &ProgressReader{reader: reader, total: total, onProgress: onProgress}
}

func (pr *ProgressReader) Read(p []byte) (int, error) {
	n, err := pr.reader.Read(p)
	if n > 0 {
		report(&pr.mu, pr.onProgress, pr.read.Add(int64(n)), pr.total)
	}
	return n, err
}

// GetProgress returns the number of bytes read so far.
func (pr *ProgressReader) GetProgress() int64 {
	return pr.read.Load()
}

// ProgressWriter reports how much of a response body has been written to the
// destination chosen by ResponseWriter.
type ProgressWriter struct {
	writer     io.WriteCloser
	total      int64
	written    atomic.Int64
	onProgress func(written, total int64)
	mu         sync.Mutex // serialises onProgress
}

func NewProgressWriter(writer io.WriteCloser, total int64, onProgress func(written, total int64)) *ProgressWriter {
	return &ProgressWriter{writer: writer, total: total, onProgress: onProgress}
}

func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n, err := pw.writer.Write(p)
	if n > 0 {
		report(&pw.mu, pw.onProgress, pw.written.Add(int64(n)), pw.total)
	}
	return n, err
}

func (pw *ProgressWriter) Close() error {
	return pw.writer.Close()
}

// GetProgress returns the number of bytes written so far.
func (pw *ProgressWriter) GetProgress() int64 {
	return pw.written.Load()
}

func report(mu *sync.Mutex, onProgress func(done, total int64), done, total int64) {
	if onProgress == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	onProgress(done, total)
}
