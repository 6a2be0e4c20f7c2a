// Package progress draws a single-line terminal progress bar suitable for the
// OnUploadProgress and OnDownloadProgress callbacks of options.Option.
package progress

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

const (
	barWidth       = 50
	updateInterval = 100 * time.Millisecond
)

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80 // Default fallback width
	}
	return width
}

// New returns a progress callback that writes to stdout. label names the
// transfer, e.g. "Uploading form" or "Downloading".
func New(label string) func(done, total int64) {
	return NewWriter(os.Stdout, label, getTerminalWidth)
}

// NewWriter is New with an explicit destination and terminal width source.
func NewWriter(w io.Writer, label string, width func() int) func(done, total int64) {
	var lastUpdate time.Time
	var lastBytes int64

	return func(done, total int64) {
		now := time.Now()
		finished := total > 0 && done >= total
		if !finished && now.Sub(lastUpdate) < updateInterval {
			return
		}

		var speed float64
		if elapsed := now.Sub(lastUpdate); !lastUpdate.IsZero() && elapsed > 0 {
			speed = float64(done-lastBytes) / elapsed.Seconds()
		}

		var message string
		if total > 0 {
			message = barMessage(label, done, total, speed)
		} else {
			message = fmt.Sprintf("\r%s: %d bytes | Speed: %s", label, done, formatSpeed(speed))
		}

		if pad := width() - len(message); pad > 0 {
			message += strings.Repeat(" ", pad)
		}
		if finished {
			message += "\n"
		}
		fmt.Fprint(w, message)

		lastUpdate = now
		lastBytes = done
	}
}

func barMessage(label string, done, total int64, speed float64) string {
	percentage := float64(done) / float64(total) * 100
	if done >= total {
		return fmt.Sprintf("\r%s [%s] 100.00%% | complete", label, strings.Repeat("=", barWidth))
	}

	var eta time.Duration
	if speed > 0 {
		eta = time.Duration(float64(total-done) / speed * float64(time.Second))
	}

	filled := int(float64(barWidth) * percentage / 100)
	bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
	return fmt.Sprintf("\r%s [%s] %.2f%% | Speed: %s | ETA: %s", label, bar, percentage, formatSpeed(speed), formatETA(eta))
}

func formatSpeed(speed float64) string {
	switch {
	case speed >= 1024*1024*1024:
		return fmt.Sprintf("%.2f GB/s", speed/(1024*1024*1024))
	case speed >= 1024*1024:
		return fmt.Sprintf("%.2f MB/s", speed/(1024*1024))
	case speed >= 1024:
		return fmt.Sprintf("%.2f KB/s", speed/1024)
	default:
		return fmt.Sprintf("%.2f B/s", speed)
	}
}

func formatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "-"
	case eta >= time.Hour:
		return fmt.Sprintf("%.1fh", eta.Hours())
	case eta >= time.Minute:
		return fmt.Sprintf("%.1fm", eta.Minutes())
	default:
		return fmt.Sprintf("%.0fs", eta.Seconds())
	}
}
