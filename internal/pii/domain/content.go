package domain

import (
	"fmt"
	"strings"
)

// Content is the logical value of a protected field: either staging
// plaintext or a sealed record. A Content is owned exclusively by the
// caller for the duration of one operation; no component retains it.
type Content interface {
	// Encode converts the content back to its raw storage bytes.
	Encode() ([]byte, error)

	// String renders the content for debug inspection.
	String() string
}

// StagingText is an unencrypted value, logically "not yet protected".
// It is opaque to the key cache and the crypto engine.
type StagingText string

// Encode returns the raw UTF-8 bytes of the text.
func (s StagingText) Encode() ([]byte, error) {
	return []byte(s), nil
}

// String renders the staging text for debug inspection.
func (s StagingText) String() string {
	return fmt.Sprintf("Staging(%q)", string(s))
}

// Decode converts raw storage bytes into their logical content.
//
// Decode is total: bytes carrying the sealed marker that parse into a valid
// record become a SealedRecord; everything else is treated as UTF-8 text
// (lossy on invalid sequences) and becomes StagingText.
func Decode(raw []byte) Content {
	if hasSealedMagic(raw) {
		if record, err := decodeSealedRecord(raw); err == nil {
			return record
		}
	}
	return StagingText(strings.ToValidUTF8(string(raw), "�"))
}
