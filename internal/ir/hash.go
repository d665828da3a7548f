package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix enables future algorithm migration.
const (
	DomainConversion = "svgreact/conversion/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ConversionID computes the content-addressed ID of one conversion: the
// markup text plus every option that shapes the generated module. Two
// requests with the same ID produce byte-identical output, which is what
// makes the conversion cache safe.
func ConversionID(markup string, options map[string]any) (string, error) {
	obj := map[string]any{
		"markup":     markup,
		"options":    options,
		"ir_version": IRVersion,
		"compiler":   CompilerVersion,
	}
	if options == nil {
		obj["options"] = map[string]any{}
	}

	canonical, err := MarshalCanonical(obj)
	if err != nil {
		return "", fmt.Errorf("ConversionID: failed to marshal: %w", err)
	}

	return hashWithDomain(DomainConversion, canonical), nil
}

// MustConversionID is like ConversionID but panics on error.
// Use only in tests or when options are known to be valid.
func MustConversionID(markup string, options map[string]any) string {
	id, err := ConversionID(markup, options)
	if err != nil {
		panic(err)
	}
	return id
}
