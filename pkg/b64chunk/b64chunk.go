// Package b64chunk encodes binary payloads to standard base64 text in fixed
// size steps so large uploads never need one giant intermediate buffer.
package b64chunk

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// ChunkSize is the number of raw bytes consumed per encoding step.
const ChunkSize = 8192

// Encode returns the standard base64 encoding of data. The output is identical
// to a single-shot encoding regardless of chunk boundaries.
func Encode(data []byte) string {
	var b strings.Builder
	b.Grow(base64.StdEncoding.EncodedLen(len(data)))

	enc := base64.NewEncoder(base64.StdEncoding, &b)
	for off := 0; off < len(data); off += ChunkSize {
		end := min(off+ChunkSize, len(data))
		// strings.Builder never fails
		_, _ = enc.Write(data[off:end])
	}
	_ = enc.Close()

	return b.String()
}

// Decode reverses Encode.
func Decode(s string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return data, nil
}
