package ivr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsBOM(t *testing.T) {
	t.Parallel()

	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<ivrScript/>")...)
	assert.Equal(t, "<ivrScript/>", Sanitize(raw))
}

func TestSanitize_StripsIllegalControls(t *testing.T) {
	t.Parallel()

	raw := []byte("<a>\x00x\x01y\x1Fz</a>")
	assert.Equal(t, "<a>xyz</a>", Sanitize(raw))
}

func TestSanitize_KeepsLegalWhitespace(t *testing.T) {
	t.Parallel()

	raw := []byte("<a>\tline\r\nnext</a>")
	assert.Equal(t, "<a>\tline\r\nnext</a>", Sanitize(raw))
}

func TestSanitize_LeavesStrayAmpersands(t *testing.T) {
	t.Parallel()

	// Unescaped entities are a parse failure, not byte corruption; the
	// sanitizer must not paper over them.
	raw := []byte("<a>Fish & Chips</a>")
	assert.Equal(t, "<a>Fish & Chips</a>", Sanitize(raw))
}

func TestSanitize_CleanInputUnchanged(t *testing.T) {
	t.Parallel()

	raw := []byte("<a>ok</a>")
	assert.Equal(t, "<a>ok</a>", Sanitize(raw))
}
