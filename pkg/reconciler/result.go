package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/codesync/pkg/tally"
)

// State is the terminal state of one proposed concept.
type State int

// Concept states. Every proposed concept moves from StatePending to exactly
// one other state.
const (
	StatePending State = iota
	StateUnchanged
	StateSynonymAdded
	StateAdded
	StateRejected
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateUnchanged:
		return "unchanged"
	case StateSynonymAdded:
		return "synonym-added"
	case StateAdded:
		return "added"
	case StateRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON and YAML.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Outcome records what happened to one proposed concept.
type Outcome struct {
	Code  string `json:"code" yaml:"code"`
	State State  `json:"state" yaml:"state"`
}

// Severity classifies a diagnostic.
type Severity string

// Diagnostic severities.
const (
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Level maps the severity onto a zerolog level.
func (s Severity) Level() zerolog.Level {
	switch s {
	case SeverityWarn:
		return zerolog.WarnLevel
	case SeverityError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Diagnostic messages.
const (
	MsgCorrectDisplay    = "Code already present with correct display"
	MsgKnownSynonym      = "Code already present with display recorded as synonym"
	MsgMismatchedDisplay = "Mismatched displays for code"
	MsgNotInThesaurus    = "Code not found in NCI Thesaurus"
	MsgTermMismatch      = "Proposed term does not match NCIt preferred term"
)

// Diagnostic is one human-readable event produced while reconciling.
type Diagnostic struct {
	Severity Severity `json:"severity" yaml:"severity"`
	Code     string   `json:"code" yaml:"code"`
	Message  string   `json:"message" yaml:"message"`

	// Old and New are the existing and proposed displays of a pre-existing
	// code.
	Old string `json:"old,omitempty" yaml:"old,omitempty"`
	New string `json:"new,omitempty" yaml:"new,omitempty"`

	// Proposed and Authoritative describe a new or rejected code.
	Proposed      string `json:"proposed,omitempty" yaml:"proposed,omitempty"`
	Authoritative string `json:"authoritative,omitempty" yaml:"authoritative,omitempty"`
}

// Result is the outcome of one reconciliation run.
type Result struct {
	Tally       tally.Tally  `json:"tally" yaml:"tally"`
	Outcomes    []Outcome    `json:"outcomes" yaml:"outcomes"`
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Count returns how many outcomes ended in state.
func (r *Result) Count(state State) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.State == state {
			n++
		}
	}
	return n
}

// HasErrors reports whether any proposed code was rejected.
func (r *Result) HasErrors() bool {
	return r.Tally.NotInThesaurus > 0
}

// Log replays the diagnostics to logger in the order they were produced.
func (r *Result) Log(logger *zerolog.Logger) {
	for _, d := range r.Diagnostics {
		event := logger.WithLevel(d.Severity.Level()).Str("code", d.Code)
		if d.Old != "" || d.New != "" {
			event = event.Str("old", d.Old).Str("new", d.New)
		}
		if d.Proposed != "" {
			event = event.Str("proposed", d.Proposed)
		}
		if d.Authoritative != "" {
			event = event.Str("authoritative", d.Authoritative)
		}
		event.Msg(d.Message)
	}
}
