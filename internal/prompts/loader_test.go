package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	for _, key := range []string{"extract-job-record", "extract-resume-record", "detect-ai-content"} {
		prompt, err := Get("parsing.json", key)
		require.NoError(t, err, "key=%s", key)
		assert.Contains(t, prompt, "{{.Text}}", "key=%s", key)
		assert.Contains(t, prompt, "JSON", "key=%s", key)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("parsing.json", "no-such-prompt")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "extract-job-record")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() { MustGet("parsing.json", "no-such-prompt") })
}

func TestFormat(t *testing.T) {
	out := Format("Parse this:\n{{.Text}}", map[string]string{"Text": "resume body"})
	assert.True(t, strings.HasSuffix(out, "resume body"))
	assert.NotContains(t, out, "{{.Text}}")
}
