// Package tally counts reconciliation outcomes for a single run.
package tally

import (
	"fmt"
	"strings"
)

// Tally holds the four outcome counters. Counters only ever grow.
type Tally struct {
	AlreadyExists  int `json:"already_exists" yaml:"already_exists"`
	WrongDisplay   int `json:"wrong_display" yaml:"wrong_display"`
	NotInThesaurus int `json:"not_in_thesaurus" yaml:"not_in_thesaurus"`
	NewCode        int `json:"new_code" yaml:"new_code"`
}

// Row is one labelled counter in report order.
type Row struct {
	Label string `json:"label" yaml:"label"`
	Value int    `json:"value" yaml:"value"`
}

// Report labels, in the order they are rendered.
const (
	LabelAlreadyExists  = "pre-existing codes"
	LabelWrongDisplay   = "wrong displays"
	LabelNotInThesaurus = "non-NCIT codes"
	LabelNewCode        = "new codes"
)

// IncAlreadyExists records a proposed code found in the existing system.
func (t *Tally) IncAlreadyExists() { t.AlreadyExists++ }

// IncWrongDisplay records a synonym added to an existing concept.
func (t *Tally) IncWrongDisplay() { t.WrongDisplay++ }

// IncNotInThesaurus records a rejected code.
func (t *Tally) IncNotInThesaurus() { t.NotInThesaurus++ }

// IncNewCode records a concept added to the system.
func (t *Tally) IncNewCode() { t.NewCode++ }

// Rows returns the counters as label/value pairs in report order.
func (t Tally) Rows() []Row {
	return []Row{
		{Label: LabelAlreadyExists, Value: t.AlreadyExists},
		{Label: LabelWrongDisplay, Value: t.WrongDisplay},
		{Label: LabelNotInThesaurus, Value: t.NotInThesaurus},
		{Label: LabelNewCode, Value: t.NewCode},
	}
}

// String renders the plain-text statistics block.
func (t Tally) String() string {
	var b strings.Builder
	b.WriteString("STATISTICS:\n")
	fmt.Fprintf(&b, "%s:\t%d\n", LabelAlreadyExists, t.AlreadyExists)
	fmt.Fprintf(&b, "%s:\t\t%d\n", LabelWrongDisplay, t.WrongDisplay)
	fmt.Fprintf(&b, "%s:\t\t%d\n", LabelNotInThesaurus, t.NotInThesaurus)
	fmt.Fprintf(&b, "%s:\t\t%d", LabelNewCode, t.NewCode)
	return b.String()
}
