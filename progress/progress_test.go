package progress

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatSpeed(t *testing.T) {
	tests := []struct {
		speed    float64
		expected string
	}{
		{0, "0.00 B/s"},
		{512, "512.00 B/s"},
		{2048, "2.00 KB/s"},
		{3 * 1024 * 1024, "3.00 MB/s"},
		{1.5 * 1024 * 1024 * 1024, "1.50 GB/s"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatSpeed(tt.speed))
		})
	}
}

func TestFormatETA(t *testing.T) {
	assert.Equal(t, "-", formatETA(0))
	assert.Equal(t, "42s", formatETA(42*time.Second))
	assert.Equal(t, "1.5m", formatETA(90*time.Second))
	assert.Equal(t, "2.0h", formatETA(2*time.Hour))
}

func TestNewWriter(t *testing.T) {
	var buf bytes.Buffer
	report := NewWriter(&buf, "Uploading form", func() int { return 0 })

	report(10, 100)
	assert.Contains(t, buf.String(), "Uploading form [")
	assert.Contains(t, buf.String(), "10.00%")

	// throttled: a second update straight away is dropped
	buf.Reset()
	report(20, 100)
	assert.Empty(t, buf.String())

	// completion is always drawn
	report(100, 100)
	assert.True(t, strings.HasSuffix(buf.String(), "complete\n"))
}

func TestNewWriterUnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	report := NewWriter(&buf, "Downloading", func() int { return 60 })

	report(2048, -1)
	assert.Contains(t, buf.String(), "Downloading: 2048 bytes")
	assert.GreaterOrEqual(t, len(buf.String()), 60)
}
