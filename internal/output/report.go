package output

import (
	"strconv"
	"strings"

	"github.com/agentstation/codesync/internal/utils/ptr"
	"github.com/agentstation/codesync/pkg/reconciler"
	"github.com/agentstation/codesync/pkg/tally"
	"github.com/agentstation/codesync/pkg/thesaurus"
)

// Report is the merge summary written to stdout.
type Report struct {
	RunID       string                  `json:"run_id" yaml:"run_id"`
	Output      string                  `json:"output" yaml:"output"`
	Concepts    int                     `json:"concepts" yaml:"concepts"`
	Tally       tally.Tally             `json:"tally" yaml:"tally"`
	Diagnostics []reconciler.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// String renders the plain statistics block.
func (r Report) String() string {
	return r.Tally.String()
}

// TallyData converts a tally into a two-column table.
func TallyData(t tally.Tally) Data {
	data := Data{
		Headers:         []string{"Outcome", "Count"},
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
	for _, row := range t.Rows() {
		data.Rows = append(data.Rows, []string{row.Label, strconv.Itoa(row.Value)})
	}
	return data
}

// DiagnosticsData converts diagnostics into a table in their original
// order.
func DiagnosticsData(diagnostics []reconciler.Diagnostic) Data {
	data := Data{Headers: []string{"Severity", "Code", "Message", "Detail"}}
	for _, d := range diagnostics {
		data.Rows = append(data.Rows, []string{
			strings.ToUpper(string(d.Severity)),
			d.Code,
			d.Message,
			detail(d),
		})
	}
	return data
}

func detail(d reconciler.Diagnostic) string {
	switch {
	case d.Old != "" || d.New != "":
		return strconv.Quote(d.Old) + " -> " + strconv.Quote(d.New)
	case d.Authoritative != "":
		return strconv.Quote(d.Proposed) + " -> " + strconv.Quote(d.Authoritative)
	default:
		return ""
	}
}

// RecordsData converts thesaurus records into a table.
func RecordsData(records []*thesaurus.Record) Data {
	data := Data{Headers: []string{"Code", "Preferred Term", "Semantic Type", "Status", "Synonyms"}}
	for _, r := range records {
		synonyms := ""
		if len(r.Synonyms) > 1 {
			synonyms = strings.Join(r.Synonyms[1:], " | ")
		}
		data.Rows = append(data.Rows, []string{r.Code, r.PreferredTerm(), r.SemanticType, ptr.Deref(r.ConceptStatus), synonyms})
	}
	return data
}
