package codesystem

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"

	"github.com/agentstation/codesync/pkg/constants"
)

// Concept is one entry in a code system. Code never changes after
// creation and Designation only ever grows by appending.
type Concept struct {
	Code        string        `json:"code" yaml:"code"`
	Display     string        `json:"display" yaml:"display"`
	Designation []Designation `json:"designation,omitempty" yaml:"designation,omitempty"`
	Definition  *string       `json:"definition,omitempty" yaml:"definition,omitempty"`
	Concept     []Concept     `json:"concept,omitempty" yaml:"concept,omitempty"`
}

// Designation is an alternate textual representation of a concept.
type Designation struct {
	Use   *Use   `json:"use,omitempty" yaml:"use,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// Use classifies a designation.
type Use struct {
	System string `json:"system" yaml:"system"`
	Code   string `json:"code" yaml:"code"`
}

// SynonymUse returns the SNOMED CT "Synonym" designation use.
func SynonymUse() *Use {
	return &Use{
		System: constants.SNOMEDSystem,
		Code:   constants.SynonymCode,
	}
}

// Synonym returns a designation tagged as a synonym.
func Synonym(value string) Designation {
	return Designation{Use: SynonymUse(), Value: value}
}

// String renders the concept as CODE "display".
func (c Concept) String() string {
	return fmt.Sprintf("%s %q", c.Code, c.Display)
}

// AddDesignation appends a designation, initializing the list if absent.
func (c *Concept) AddDesignation(d Designation) {
	c.Designation = append(c.Designation, d)
}

// AddSynonym appends text as a synonym designation.
func (c *Concept) AddSynonym(text string) {
	c.AddDesignation(Synonym(text))
}

// HasSynonym reports whether text already appears, ignoring case, among
// the concept's designation values.
func (c *Concept) HasSynonym(text string) bool {
	return slices.ContainsFunc(c.Designation, func(d Designation) bool {
		return EqualFold(d.Value, text)
	})
}

// DisplayOverride records a proposed term that lost to the authoritative
// preferred term and was kept as a synonym.
type DisplayOverride struct {
	Code          string
	Rejected      string
	Authoritative string
}

// AdoptAuthoritativeDisplay returns a copy of c whose display is the
// authoritative term and whose definition is dropped. When the current
// display differs from the authoritative term beyond case, it is kept as
// a synonym on the copy and the returned override describes the swap.
// c itself is left untouched.
func AdoptAuthoritativeDisplay(c Concept, authoritative string) (Concept, *DisplayOverride) {
	adopted := c
	adopted.Display = authoritative
	adopted.Definition = nil

	if EqualFold(c.Display, authoritative) {
		return adopted, nil
	}

	adopted.Designation = slices.Clone(c.Designation)
	adopted.AddSynonym(c.Display)

	return adopted, &DisplayOverride{
		Code:          c.Code,
		Rejected:      c.Display,
		Authoritative: authoritative,
	}
}

// EqualFold compares two display strings under Unicode case folding.
func EqualFold(a, b string) bool {
	fold := cases.Fold()
	return fold.String(a) == fold.String(b)
}
