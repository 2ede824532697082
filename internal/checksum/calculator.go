package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Calculator is an interface for computing batch file checksums.
type Calculator interface {
	// CalculateRaw computes a checksum of the raw, unmodified content.
	CalculateRaw(content []byte) string

	// CalculateNormalized computes a checksum of the content with
	// insignificant JSON whitespace removed.
	CalculateNormalized(content []byte) string
}

// SHA256 implements checksum calculation using SHA-256.
//
// SHA256 is a zero-size type and is safe for concurrent use by multiple goroutines.
type SHA256 struct{}

// New creates a new SHA-256 based calculator.
func New() SHA256 {
	return SHA256{}
}

// CalculateRaw computes SHA-256 of raw content.
func (c SHA256) CalculateRaw(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

// CalculateNormalized computes SHA-256 of compacted JSON. Content that is
// not valid JSON is hashed as is.
func (c SHA256) CalculateNormalized(content []byte) string {
	return c.CalculateRaw(c.normalize(content))
}

func (c SHA256) normalize(content []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(content))
	if err := json.Compact(&b, content); err != nil {
		return content
	}
	return b.Bytes()
}
