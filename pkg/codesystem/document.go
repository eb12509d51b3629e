package codesystem

import "fmt"

// document mirrors CodeSystem with pointer fields so that a missing or
// null key can be told apart from an empty value. Every header field is
// required, as are code and display on each concept at any depth, value on
// each designation, and system and code on a designation use.
type document struct {
	ID            *string          `json:"id" yaml:"id"`
	ResourceType  *string          `json:"resourceType" yaml:"resourceType"`
	URL           *string          `json:"url" yaml:"url"`
	Name          *string          `json:"name" yaml:"name"`
	Title         *string          `json:"title" yaml:"title"`
	Status        *string          `json:"status" yaml:"status"`
	Experimental  *bool            `json:"experimental" yaml:"experimental"`
	Date          *string          `json:"date" yaml:"date"`
	Publisher     *string          `json:"publisher" yaml:"publisher"`
	Description   *string          `json:"description" yaml:"description"`
	Copyright     *string          `json:"copyright" yaml:"copyright"`
	CaseSensitive *bool            `json:"caseSensitive" yaml:"caseSensitive"`
	Content       *string          `json:"content" yaml:"content"`
	Concept       *[]conceptFields `json:"concept" yaml:"concept"`
}

type conceptFields struct {
	Code        *string             `json:"code" yaml:"code"`
	Display     *string             `json:"display" yaml:"display"`
	Designation []designationFields `json:"designation" yaml:"designation"`
	Concept     []conceptFields     `json:"concept" yaml:"concept"`
}

type designationFields struct {
	Use *struct {
		System *string `json:"system" yaml:"system"`
		Code   *string `json:"code" yaml:"code"`
	} `json:"use" yaml:"use"`
	Value *string `json:"value" yaml:"value"`
}

// missing returns the path of the first required field that is absent,
// or "" when the document is complete.
func (d *document) missing() string {
	header := []struct {
		key     string
		present bool
	}{
		{"id", d.ID != nil},
		{"resourceType", d.ResourceType != nil},
		{"url", d.URL != nil},
		{"name", d.Name != nil},
		{"title", d.Title != nil},
		{"status", d.Status != nil},
		{"experimental", d.Experimental != nil},
		{"date", d.Date != nil},
		{"publisher", d.Publisher != nil},
		{"description", d.Description != nil},
		{"copyright", d.Copyright != nil},
		{"caseSensitive", d.CaseSensitive != nil},
		{"content", d.Content != nil},
		{"concept", d.Concept != nil},
	}
	for _, h := range header {
		if !h.present {
			return h.key
		}
	}
	return missingInConcepts("concept", *d.Concept)
}

func missingInConcepts(path string, concepts []conceptFields) string {
	for i, c := range concepts {
		at := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case c.Code == nil:
			return at + ".code"
		case c.Display == nil:
			return at + ".display"
		}
		for j, d := range c.Designation {
			dat := fmt.Sprintf("%s.designation[%d]", at, j)
			switch {
			case d.Value == nil:
				return dat + ".value"
			case d.Use != nil && d.Use.System == nil:
				return dat + ".use.system"
			case d.Use != nil && d.Use.Code == nil:
				return dat + ".use.code"
			}
		}
		if field := missingInConcepts(at+".concept", c.Concept); field != "" {
			return field
		}
	}
	return ""
}
