// Package reconciler merges a batch of proposed concepts into an existing
// code system, using the NCI Thesaurus as the source of truth for which
// codes exist and what their preferred display is.
//
// Each proposed concept ends in exactly one of four outcomes: already
// present and unchanged, already present with its display recorded as a new
// synonym, added as a new concept, or rejected because the thesaurus does
// not know the code. The engine never prints; it returns a Result carrying
// the tally, per-concept outcomes and diagnostics in input order.
package reconciler

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/codesync/pkg/codesystem"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/logging"
	"github.com/agentstation/codesync/pkg/thesaurus"
)

// Lookup answers whether the thesaurus carries a code.
// *thesaurus.Lookup satisfies it.
type Lookup interface {
	Get(code string) (*thesaurus.Record, bool)
}

// Reconciler merges proposed concepts into a code system.
type Reconciler interface {
	// Reconcile processes proposed in order, mutating existing in place.
	//
	// For a code already in existing, only the proposed display is
	// considered; the proposed designations, definition and children are
	// discarded. Later entries in proposed observe concepts added by
	// earlier ones.
	//
	// If ctx is canceled between concepts, Reconcile returns an error
	// satisfying errors.IsCanceled and existing may be partially updated.
	Reconcile(ctx context.Context, existing *codesystem.CodeSystem, proposed []codesystem.Concept) (*Result, error)
}

// reconciler is the default implementation of Reconciler.
type reconciler struct {
	lookup       Lookup
	suppressInfo bool
	logger       *zerolog.Logger
}

// New creates a new Reconciler with options. WithLookup is required.
func New(opts ...Option) (Reconciler, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	return &reconciler{
		lookup:       options.lookup,
		suppressInfo: options.suppressInfo,
		logger:       options.logger,
	}, nil
}

// Reconcile implements Reconciler.
func (r *reconciler) Reconcile(ctx context.Context, existing *codesystem.CodeSystem, proposed []codesystem.Concept) (*Result, error) {
	if existing == nil {
		return nil, &errors.ValidationError{
			Field:   "existing",
			Message: "code system cannot be nil",
		}
	}

	logger := r.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	result := &Result{
		Outcomes: make([]Outcome, 0, len(proposed)),
	}

	for _, p := range proposed {
		if err := ctx.Err(); err != nil {
			return nil, errors.WrapCanceled(err)
		}

		var state State
		if current := existing.Find(p.Code); current != nil {
			state = r.reconcileExisting(result, current, p)
		} else {
			state = r.reconcileNew(result, existing, p)
		}
		result.Outcomes = append(result.Outcomes, Outcome{Code: p.Code, State: state})

		logger.Trace().
			Str("code", p.Code).
			Stringer("state", state).
			Msg("Reconciled concept")
	}

	logger.Debug().
		Int("proposed", len(proposed)).
		Int("already_exists", result.Tally.AlreadyExists).
		Int("wrong_display", result.Tally.WrongDisplay).
		Int("not_in_thesaurus", result.Tally.NotInThesaurus).
		Int("new_code", result.Tally.NewCode).
		Int("concepts", existing.Len()).
		Msg("Reconciliation complete")

	return result, nil
}

// reconcileExisting handles a proposed code that is already present.
func (r *reconciler) reconcileExisting(result *Result, current *codesystem.Concept, p codesystem.Concept) State {
	result.Tally.IncAlreadyExists()

	if codesystem.EqualFold(current.Display, p.Display) {
		r.info(result, Diagnostic{Code: p.Code, Message: MsgCorrectDisplay})
		return StateUnchanged
	}

	if current.HasSynonym(p.Display) {
		r.info(result, Diagnostic{
			Code:    p.Code,
			Message: MsgKnownSynonym,
			Old:     current.Display,
			New:     p.Display,
		})
		return StateUnchanged
	}

	current.AddSynonym(p.Display)
	result.Tally.IncWrongDisplay()
	result.Diagnostics = append(result.Diagnostics, Diagnostic{
		Severity: SeverityWarn,
		Code:     p.Code,
		Message:  MsgMismatchedDisplay,
		Old:      current.Display,
		New:      p.Display,
	})
	return StateSynonymAdded
}

// reconcileNew handles a proposed code absent from the existing system.
func (r *reconciler) reconcileNew(result *Result, existing *codesystem.CodeSystem, p codesystem.Concept) State {
	record, ok := r.lookup.Get(p.Code)
	if !ok {
		result.Tally.IncNotInThesaurus()
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Code:     p.Code,
			Message:  MsgNotInThesaurus + ": " + p.String(),
			Proposed: p.Display,
		})
		return StateRejected
	}

	adopted, override := codesystem.AdoptAuthoritativeDisplay(p, record.PreferredTerm())
	if override != nil {
		result.Diagnostics = append(result.Diagnostics, Diagnostic{
			Severity:      SeverityWarn,
			Code:          override.Code,
			Message:       MsgTermMismatch,
			Proposed:      override.Rejected,
			Authoritative: override.Authoritative,
		})
	}
	existing.Add(adopted)
	result.Tally.IncNewCode()
	return StateAdded
}

func (r *reconciler) info(result *Result, d Diagnostic) {
	if r.suppressInfo {
		return
	}
	d.Severity = SeverityInfo
	result.Diagnostics = append(result.Diagnostics, d)
}
