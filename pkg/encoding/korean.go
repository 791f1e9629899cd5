// Package encoding decodes legacy-encoded names found in mesh files.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// Name returns s as UTF-8. Names that are already valid UTF-8 are kept;
// anything else is decoded as EUC-KR, the code page of the Korean modelling
// tools many legacy assets come from. When that fails too, invalid bytes
// are replaced with U+FFFD.
func Name(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if decoded, ok := EUCKRToUTF8([]byte(s)); ok {
		return decoded
	}
	return strings.ToValidUTF8(s, "�")
}

// EUCKRToUTF8 converts EUC-KR encoded bytes to a UTF-8 string.
func EUCKRToUTF8(data []byte) (string, bool) {
	result, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil || !utf8.Valid(result) {
		return "", false
	}
	return string(result), true
}

// UTF8ToEUCKR converts a UTF-8 string to EUC-KR encoded bytes.
func UTF8ToEUCKR(s string) ([]byte, bool) {
	result, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return nil, false
	}
	return result, true
}
