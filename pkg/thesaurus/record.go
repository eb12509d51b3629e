// Package thesaurus builds the authoritative lookup from the NCI Thesaurus
// flat file. The lookup is immutable once built and answers a single
// question: which record, if any, carries a given code.
package thesaurus

import (
	"fmt"
	"strings"

	"github.com/agentstation/codesync/internal/utils/ptr"
	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
)

// Row is one raw tab-delimited line. Multi-valued columns are still
// pipe-joined here.
type Row struct {
	Line            int
	Code            string
	IRI             string
	Parent          string
	Synonyms        string
	Definition      string
	DisplayName     string
	ConceptStatus   string
	SemanticType    string
	ConceptInSubset string
}

// Record is one authoritative thesaurus entry.
type Record struct {
	Code            string   `json:"code" yaml:"code"`
	IRI             string   `json:"iri" yaml:"iri"`
	Parent          []string `json:"parent,omitempty" yaml:"parent,omitempty"`
	Synonyms        []string `json:"synonyms" yaml:"synonyms"` // first is always the preferred term
	Definition      string   `json:"definition,omitempty" yaml:"definition,omitempty"`
	DisplayName     *string  `json:"display_name,omitempty" yaml:"display_name,omitempty"`
	ConceptStatus   *string  `json:"concept_status,omitempty" yaml:"concept_status,omitempty"`
	SemanticType    string   `json:"semantic_type" yaml:"semantic_type"`
	ConceptInSubset []string `json:"concept_in_subset,omitempty" yaml:"concept_in_subset,omitempty"`
}

// PreferredTerm returns the NCIt preferred term, the first synonym.
func (r *Record) PreferredTerm() string {
	if len(r.Synonyms) == 0 {
		return ""
	}
	return r.Synonyms[0]
}

// columns names the flat file's fields in order.
var columns = [...]string{
	"code", "iri", "parent", "synonyms", "definition",
	"display_name", "concept_status", "semantic_type", "concept_in_subset",
}

// columnError reports a bad value in the given 0-based column.
func columnError(line, column int, message string) *errors.ParseError {
	return &errors.ParseError{
		Format:  "tsv",
		Line:    line,
		Column:  column + 1,
		Field:   columns[column],
		Message: message,
	}
}

// rowFromFields maps the fixed column order onto a Row.
func rowFromFields(line int, fields []string) (Row, error) {
	if len(fields) != constants.ThesaurusColumns {
		return Row{}, &errors.ParseError{
			Format:  "tsv",
			Line:    line,
			Message: fmt.Sprintf("expected %d fields, got %d", constants.ThesaurusColumns, len(fields)),
		}
	}
	return Row{
		Line:            line,
		Code:            fields[0],
		IRI:             fields[1],
		Parent:          fields[2],
		Synonyms:        fields[3],
		Definition:      fields[4],
		DisplayName:     fields[5],
		ConceptStatus:   fields[6],
		SemanticType:    fields[7],
		ConceptInSubset: fields[8],
	}, nil
}

// record converts a raw row, splitting the pipe-delimited columns.
func (row Row) record() (*Record, error) {
	if row.Code == "" {
		return nil, columnError(row.Line, 0, "empty code")
	}
	synonyms := split(row.Synonyms)
	if len(synonyms) == 0 {
		return nil, columnError(row.Line, 3, fmt.Sprintf("code %s has no preferred term", row.Code))
	}
	return &Record{
		Code:            row.Code,
		IRI:             row.IRI,
		Parent:          split(row.Parent),
		Synonyms:        synonyms,
		Definition:      row.Definition,
		DisplayName:     ptr.NonEmpty(row.DisplayName),
		ConceptStatus:   ptr.NonEmpty(row.ConceptStatus),
		SemanticType:    row.SemanticType,
		ConceptInSubset: split(row.ConceptInSubset),
	}, nil
}

// split breaks a pipe-delimited column into its ordered values. An empty
// column yields nil.
func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, constants.ThesaurusListSeparator)
}
