package codesystem_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/codesync/pkg/codesystem"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/save"
)

func TestLoad(t *testing.T) {
	cs, err := codesystem.Load(filepath.Join("testdata", "existing.json"))
	require.NoError(t, err)

	assert.Equal(t, "nciThesaurus-fragment", cs.ID)
	assert.Equal(t, "CodeSystem", cs.ResourceType)
	assert.True(t, cs.CaseSensitive)
	assert.Equal(t, "fragment", cs.Content)
	require.Len(t, cs.Concept, 2)

	tablet := cs.Find("C200")
	require.NotNil(t, tablet)
	require.NotNil(t, tablet.Definition)
	assert.Equal(t, "A solid dosage form.", *tablet.Definition)
	require.Len(t, tablet.Designation, 1)
	assert.Equal(t, codesystem.SynonymUse(), tablet.Designation[0].Use)
	require.Len(t, tablet.Concept, 1)
	assert.Equal(t, "C201", tablet.Concept[0].Code)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := codesystem.Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		var ioErr *errors.IOError
		require.ErrorAs(t, err, &ioErr)
		assert.Equal(t, "open", ioErr.Operation)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("malformed json reports position", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{\n  \"id\": \"x\",\n  oops\n}"), 0o644))

		_, err := codesystem.Load(path)
		require.Error(t, err)
		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "json", parseErr.Format)
		assert.Equal(t, path, parseErr.File)
		assert.Equal(t, 3, parseErr.Line)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("wrong shape", func(t *testing.T) {
		_, err := codesystem.Parse(strings.NewReader(`{"concept": "not a list"}`), save.FormatJSON)
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := codesystem.Parse(strings.NewReader("concept: [\n  - code"), save.FormatYAML)
		require.Error(t, err)
		var parseErr *errors.ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "yaml", parseErr.Format)
	})
}

const header = `"id":"pqcmc","resourceType":"CodeSystem","url":"http://example.org/pqcmc",` +
	`"name":"PQCMC","title":"PQCMC","status":"draft","experimental":true,"date":"2024-02-01",` +
	`"publisher":"PQCMC","description":"","copyright":"","caseSensitive":true,"content":"fragment"`

func document(concepts string) string {
	return "{" + header + `,"concept":` + concepts + "}"
}

func TestParseEmptyConceptList(t *testing.T) {
	cs, err := codesystem.Parse(strings.NewReader(document("[]")), save.FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, cs.Concept)
	assert.Empty(t, cs.Concept)
	assert.Equal(t, "http://example.org/pqcmc", cs.URL)
	assert.Empty(t, cs.Copyright, "empty strings are present values")
}

func TestParseRequiredFields(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		format    save.Format
		wantField string
	}{
		{
			name:      "concept without display",
			input:     document(`[{"code":"C123"}]`),
			wantField: "concept[0].display",
		},
		{
			name:      "null display",
			input:     document(`[{"code":"C1","display":"One"},{"code":"C123","display":null}]`),
			wantField: "concept[1].display",
		},
		{
			name:      "concept without code",
			input:     document(`[{"display":"Tumor"}]`),
			wantField: "concept[0].code",
		},
		{
			name:      "nested concept without display",
			input:     document(`[{"code":"C200","display":"Tablet","concept":[{"code":"C201"}]}]`),
			wantField: "concept[0].concept[0].display",
		},
		{
			name:      "designation without value",
			input:     document(`[{"code":"C1","display":"One","designation":[{"use":{"system":"http://snomed.info/sct","code":"900000000000013009"}}]}]`),
			wantField: "concept[0].designation[0].value",
		},
		{
			name:      "designation use without code",
			input:     document(`[{"code":"C1","display":"One","designation":[{"use":{"system":"http://snomed.info/sct"},"value":"Uno"}]}]`),
			wantField: "concept[0].designation[0].use.code",
		},
		{
			name:      "header without url",
			input:     strings.Replace(document("[]"), `"url":"http://example.org/pqcmc",`, "", 1),
			wantField: "url",
		},
		{
			name:      "header without caseSensitive",
			input:     strings.Replace(document("[]"), `"caseSensitive":true,`, "", 1),
			wantField: "caseSensitive",
		},
		{
			name:      "no concept list",
			input:     "{" + header + "}",
			wantField: "concept",
		},
		{
			name:      "resourceType only",
			input:     `{"resourceType":"CodeSystem","concept":[{"code":"C123"}]}`,
			wantField: "id",
		},
		{
			name:      "yaml concept without display",
			input:     "id: pqcmc\nresourceType: CodeSystem\nurl: http://example.org\nname: P\ntitle: P\nstatus: draft\nexperimental: false\ndate: \"2024-02-01\"\npublisher: P\ndescription: \"\"\ncopyright: \"\"\ncaseSensitive: true\ncontent: fragment\nconcept:\n  - code: C123\n",
			format:    save.FormatYAML,
			wantField: "concept[0].display",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format := tt.format
			if format == 0 {
				format = save.FormatJSON
			}
			cs, err := codesystem.Parse(strings.NewReader(tt.input), format)
			require.Error(t, err)
			assert.Nil(t, cs)

			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestParseRejectsTrailingData(t *testing.T) {
	for _, trailing := range []string{`{"concept":[]}`, "\n}", " x"} {
		_, err := codesystem.Parse(strings.NewReader(document("[]")+trailing), save.FormatJSON)
		require.Error(t, err, "trailing %q", trailing)

		var perr *errors.ParseError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "json", perr.Format)
		assert.Positive(t, perr.Line)
		assert.Positive(t, perr.Column)
	}
}

func TestSaveOmitsAbsentFields(t *testing.T) {
	cs := codesystem.New()
	cs.Add(codesystem.Concept{Code: "C1", Display: "Age < 18 & older"})

	var buf bytes.Buffer
	require.NoError(t, cs.Save(save.WithWriter(&buf)))

	out := buf.String()
	assert.NotContains(t, out, "designation")
	assert.NotContains(t, out, "definition")
	assert.NotContains(t, out, "null")
	assert.Contains(t, out, `"display": "Age < 18 & older"`, "display text is not HTML-escaped")
	assert.Less(t, strings.Index(out, `"code": "C1"`), strings.Index(out, `"display"`), "code precedes display")
}

func TestSaveWithoutTarget(t *testing.T) {
	err := codesystem.New().Save()
	require.Error(t, err)
	var cfgErr *errors.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestRoundTrip(t *testing.T) {
	original, err := codesystem.Load(filepath.Join("testdata", "existing.json"))
	require.NoError(t, err)
	original.Find("C123").AddSynonym("Neoplasm")
	original.Find("C123").AddSynonym("Growth")

	for _, format := range []save.Format{save.FormatJSON, save.FormatYAML} {
		t.Run(format.String(), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "output."+format.String())
			require.NoError(t, original.Save(save.WithPath(path), save.WithFormat(format)))

			reloaded, err := codesystem.Load(path)
			require.NoError(t, err)
			assert.Equal(t, original, reloaded)
			assert.Equal(t, "Neoplasm", reloaded.Find("C123").Designation[0].Value)
			assert.Equal(t, "Growth", reloaded.Find("C123").Designation[1].Value)
		})
	}
}
