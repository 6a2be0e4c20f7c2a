package client

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// createPayloadReader turns a request payload into a reader and its size.
// The size is -1 when it cannot be known in advance.
func createPayloadReader(payload any) (io.Reader, int64, error) {
	switch p := payload.(type) {
	case nil:
		return nil, 0, nil
	case []byte:
		return bytes.NewReader(p), int64(len(p)), nil
	case string:
		return strings.NewReader(p), int64(len(p)), nil
	case *os.File:
		info, err := p.Stat()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to access file: %w", err)
		}
		return p, info.Size(), nil
	case io.Reader:
		return p, -1, nil
	default:
		return nil, 0, fmt.Errorf("unsupported payload type %T", payload)
	}
}
