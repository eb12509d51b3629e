package codesystem

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/save"
)

// Load reads a code system document from disk. The format is chosen from
// the file extension.
func Load(path string) (*CodeSystem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only

	return parse(f, save.FormatFromPath(path), path)
}

// Parse reads a code system document from r in the given format.
func Parse(r io.Reader, format save.Format) (*CodeSystem, error) {
	return parse(r, format, "")
}

func parse(r io.Reader, format save.Format, name string) (*CodeSystem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}

	var cs CodeSystem
	if err := decode(data, format, name, &cs); err != nil {
		return nil, err
	}
	var doc document
	if err := decode(data, format, name, &doc); err != nil {
		return nil, err
	}
	if field := doc.missing(); field != "" {
		return nil, errors.NewValidationError(field, nil, "required field is missing")
	}

	if cs.Concept == nil {
		cs.Concept = []Concept{}
	}
	return &cs, nil
}

// decode unmarshals the whole of data into v. Trailing content after the
// JSON document is a syntax error.
func decode(data []byte, format save.Format, name string, v any) error {
	if format == save.FormatYAML {
		if err := yaml.Unmarshal(data, v); err != nil {
			return errors.NewParseError("yaml", name, err.Error(), err)
		}
		return nil
	}

	err := json.Unmarshal(data, v)
	if err == nil {
		return nil
	}
	perr := errors.NewParseError("json", name, err.Error(), err)
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case stderrors.As(err, &syntaxErr):
		perr.Line, perr.Column = position(data, syntaxErr.Offset)
	case stderrors.As(err, &typeErr):
		perr.Line, perr.Column = position(data, typeErr.Offset)
		perr.Field = typeErr.Field
	}
	return perr
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line := bytes.Count(before, []byte("\n")) + 1
	col := int(offset) - bytes.LastIndexByte(before, '\n')
	return line, col
}
