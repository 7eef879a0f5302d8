package ivr

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Sanitize repairs raw export bytes into text the XML parser can work with.
// It strips a leading byte-order mark and every C0 control character the XML
// grammar disallows (everything below 0x20 except tab, LF, CR). It never
// fails and never modifies the input slice. Stray ampersands are left as-is:
// an unescaped entity is a per-script parse failure, not byte corruption.
func Sanitize(raw []byte) string {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	return stripControls(string(raw))
}

// stripControls removes XML-illegal C0 control characters. Also applied to
// embedded script payloads after entity unescaping, since character
// references can smuggle the same bytes back in.
func stripControls(text string) string {
	if !strings.ContainsFunc(text, isIllegalControl) {
		return text
	}
	return strings.Map(func(r rune) rune {
		if isIllegalControl(r) {
			return -1
		}
		return r
	}, text)
}

func isIllegalControl(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}
