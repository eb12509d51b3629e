// Package codesystem models a FHIR CodeSystem resource as far as concept
// reconciliation needs it: header metadata passed through untouched and
// an ordered, append-only list of concepts.
package codesystem

import (
	"fmt"

	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
)

// CodeSystem is the (de)serialized document. Only these properties of the
// source resource survive a load/save cycle.
type CodeSystem struct {
	ID            string    `json:"id" yaml:"id"`
	ResourceType  string    `json:"resourceType" yaml:"resourceType"`
	URL           string    `json:"url" yaml:"url"`
	Name          string    `json:"name" yaml:"name"`
	Title         string    `json:"title" yaml:"title"`
	Status        string    `json:"status" yaml:"status"`
	Experimental  bool      `json:"experimental" yaml:"experimental"`
	Date          string    `json:"date" yaml:"date"`
	Publisher     string    `json:"publisher" yaml:"publisher"`
	Description   string    `json:"description" yaml:"description"`
	Copyright     string    `json:"copyright" yaml:"copyright"`
	CaseSensitive bool      `json:"caseSensitive" yaml:"caseSensitive"`
	Content       string    `json:"content" yaml:"content"`
	Concept       []Concept `json:"concept" yaml:"concept"`
}

// New returns an empty code system with the resourceType set.
func New() *CodeSystem {
	return &CodeSystem{
		ResourceType: constants.ResourceTypeCodeSystem,
		Concept:      []Concept{},
	}
}

// Find returns the top-level concept with the given code, or nil. The
// pointer is only valid until the next Add.
func (cs *CodeSystem) Find(code string) *Concept {
	for i := range cs.Concept {
		if cs.Concept[i].Code == code {
			return &cs.Concept[i]
		}
	}
	return nil
}

// Add appends a concept. Callers check uniqueness with Find first.
func (cs *CodeSystem) Add(c Concept) {
	cs.Concept = append(cs.Concept, c)
}

// Len returns the number of top-level concepts.
func (cs *CodeSystem) Len() int {
	return len(cs.Concept)
}

// Validate checks the document shape: the resourceType, non-empty codes
// and, when unique is set, that no two top-level concepts share a code.
func (cs *CodeSystem) Validate(unique bool) error {
	if cs.ResourceType != constants.ResourceTypeCodeSystem {
		return errors.NewValidationError("resourceType", cs.ResourceType,
			fmt.Sprintf("expected %q, got %q", constants.ResourceTypeCodeSystem, cs.ResourceType))
	}

	seen := make(map[string]int, len(cs.Concept))
	for i, c := range cs.Concept {
		if c.Code == "" {
			return errors.NewValidationError(fmt.Sprintf("concept[%d].code", i), c.Code, "must not be empty")
		}
		if !unique {
			continue
		}
		if first, ok := seen[c.Code]; ok {
			return errors.NewValidationError(fmt.Sprintf("concept[%d].code", i), c.Code,
				fmt.Sprintf("duplicate of concept[%d]", first))
		}
		seen[c.Code] = i
	}
	return nil
}
