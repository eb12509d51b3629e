package save_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/codesync/pkg/save"
)

func TestDefaults(t *testing.T) {
	opts := save.Defaults()
	assert.Equal(t, save.FormatJSON, opts.Format())
	assert.Equal(t, "  ", opts.Indent())
	assert.Empty(t, opts.Path())
	assert.Nil(t, opts.Writer())
}

func TestApply(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := save.Defaults().Apply(
		save.WithPath("output.yaml"),
		save.WithWriter(buf),
		save.WithFormat(save.FormatYAML),
		save.WithIndent(""),
	)

	assert.Equal(t, "output.yaml", opts.Path())
	assert.Equal(t, buf, opts.Writer())
	assert.Equal(t, save.FormatYAML, opts.Format())
	assert.Empty(t, opts.Indent())
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "json", save.FormatJSON.String())
	assert.Equal(t, "yaml", save.FormatYAML.String())
	assert.Equal(t, "unknown", save.Format(9).String())
	assert.True(t, save.FormatYAML.IsValid())
	assert.False(t, save.Format(9).IsValid())
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]save.Format{
		"output.json":       save.FormatJSON,
		"output.yaml":       save.FormatYAML,
		"OUTPUT.YML":        save.FormatYAML,
		"new-codes":         save.FormatJSON,
		"dir.yaml/out.json": save.FormatJSON,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, save.FormatFromPath(path))
		})
	}
}
