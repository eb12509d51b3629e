package codesystem

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/save"
)

// Save writes the code system to the configured writer or path.
func (cs *CodeSystem) Save(opts ...save.Option) error {
	options := save.Defaults().Apply(opts...)

	if options.Writer() == nil && options.Path() == "" {
		return &errors.ConfigError{
			Component: "codesystem",
			Message:   "no writer or path configured for saving",
		}
	}

	data, err := cs.Marshal(options.Format(), options.Indent())
	if err != nil {
		return err
	}

	if w := options.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return errors.WrapIO("write", options.Path(), err)
		}
		return nil
	}

	path := options.Path()
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
			return errors.WrapIO("create", dir, err)
		}
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}

// Marshal serializes the document. JSON keeps struct field order and does
// not HTML-escape display text.
func (cs *CodeSystem) Marshal(format save.Format, indent string) ([]byte, error) {
	switch format {
	case save.FormatYAML:
		data, err := yaml.MarshalWithOptions(cs,
			yaml.Indent(2),
			yaml.IndentSequence(true),
		)
		if err != nil {
			return nil, errors.NewParseError("yaml", "", err.Error(), err)
		}
		return data, nil
	case save.FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if indent != "" {
			enc.SetIndent("", indent)
		}
		if err := enc.Encode(cs); err != nil {
			return nil, errors.NewParseError("json", "", err.Error(), err)
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.NewValidationError("format", format.String(), "unsupported save format")
	}
}
