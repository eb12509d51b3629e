// Package merge implements the merge command: reconcile proposed codes
// against the thesaurus and write the merged code system.
package merge

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/agentstation/codesync/cmd/application"
	"github.com/agentstation/codesync/internal/metrics"
	"github.com/agentstation/codesync/internal/output"
	"github.com/agentstation/codesync/pkg/codesystem"
	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/logging"
	"github.com/agentstation/codesync/pkg/reconciler"
	"github.com/agentstation/codesync/pkg/save"
	"github.com/agentstation/codesync/pkg/thesaurus"
)

// Options is a fully resolved merge run.
type Options struct {
	application.Inputs
	SuppressInfo bool
	MetricsFile  string
	Format       string

	// Strict turns rejected codes into a fatal error.
	Strict bool
}

type flags struct {
	thesaurus    string
	newCodes     string
	existing     string
	out          string
	metricsFile  string
	suppressInfo bool
	strict       bool
}

// NewCommand creates the merge command.
func NewCommand(app application.Application) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge proposed codes into the existing code system",
		Long: `Merge reconciles every proposed concept against the existing code system
and the NCI Thesaurus, then writes the merged code system.

Each proposed concept ends in one of four outcomes:
  - already present with the same display: left unchanged
  - already present with a different display: display added as a synonym
  - unknown to the code system but in the thesaurus: added with the
    thesaurus preferred term as its display
  - unknown to the thesaurus: rejected

Running merge with no subcommand is the same as running codesync.`,
		Example: `  codesync merge
  THESAURUS=Thesaurus.txt NEW_CODES=new-codes.json codesync merge --out merged.json
  codesync merge --existing current.yaml --out merged.yaml --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := resolve(cmd, app, f)
			_, err := Run(cmd.Context(), app, opts, cmd.OutOrStdout())
			return err
		},
	}

	cmd.Flags().StringVar(&f.thesaurus, "thesaurus", constants.DefaultThesaurusPath,
		"NCI Thesaurus flat file (env "+constants.EnvThesaurus+")")
	cmd.Flags().StringVar(&f.newCodes, "new-codes", constants.DefaultNewCodesPath,
		"proposed codes document (env "+constants.EnvNewCodes+")")
	cmd.Flags().StringVar(&f.existing, "existing", constants.DefaultExistingPath,
		"existing code system document")
	cmd.Flags().StringVar(&f.out, "out", constants.DefaultOutputPath,
		"merged code system output (.json, .yaml or .yml)")
	cmd.Flags().BoolVar(&f.suppressInfo, "suppress-info", true,
		"drop info diagnostics (env "+constants.EnvSuppressInfo+")")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "",
		"write run metrics in Prometheus text format to this file")
	cmd.Flags().BoolVar(&f.strict, "strict", false,
		"fail without writing output if any proposed code is not in the thesaurus")

	return cmd
}

// resolve layers explicitly set flags over the application configuration.
func resolve(cmd *cobra.Command, app application.Application, f *flags) Options {
	opts := Options{
		Inputs:       app.Inputs(),
		SuppressInfo: app.SuppressInfo(),
		MetricsFile:  app.MetricsFile(),
		Format:       app.OutputFormat(),
		Strict:       f.strict,
	}

	set := cmd.Flags().Changed
	if set("thesaurus") {
		opts.Thesaurus = f.thesaurus
	}
	if set("new-codes") {
		opts.NewCodes = f.newCodes
	}
	if set("existing") {
		opts.Existing = f.existing
	}
	if set("out") {
		opts.Out = f.out
	}
	if set("suppress-info") {
		opts.SuppressInfo = f.suppressInfo
	}
	if set("metrics-file") {
		opts.MetricsFile = f.metricsFile
	}
	return opts
}

// Run loads the inputs, reconciles, writes the merged code system and
// prints the report to w. Nothing is written if any input fails to load
// or ctx is canceled before reconciliation finishes. With a metrics file
// configured, metrics are written on every exit, recording whether the run
// succeeded.
func Run(ctx context.Context, app application.Application, opts Options, w io.Writer) (report *output.Report, err error) {
	var recorder *metrics.Recorder
	if opts.MetricsFile != "" {
		recorder = metrics.NewRecorder()
		defer func() {
			recorder.SetSuccess(err == nil)
			if werr := recorder.WriteTextfile(opts.MetricsFile); werr != nil && err == nil {
				report, err = nil, werr
			}
		}()
	}

	format, err := output.ParseFormat(opts.Format)
	if err != nil {
		return nil, errors.WrapValidation("format", err)
	}
	if opts.Out == "" {
		return nil, &errors.ValidationError{Field: "out", Message: "output path is required"}
	}

	runID := uuid.NewString()
	ctx = logging.WithRunID(logging.WithLogger(ctx, app.Logger()), runID)
	logger := logging.FromContext(ctx)

	lookup, err := thesaurus.Load(ctx, opts.Thesaurus)
	if err != nil {
		return nil, errors.WrapResource("load", "thesaurus", opts.Thesaurus, err)
	}

	existing, err := loadCodeSystem(ctx, opts.Existing, true)
	if err != nil {
		return nil, err
	}
	proposed, err := loadCodeSystem(ctx, opts.NewCodes, false)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("thesaurus_codes", lookup.Len()).
		Int("existing_concepts", existing.Len()).
		Int("proposed_concepts", proposed.Len()).
		Msg("Loaded inputs")
	if n := lookup.Duplicates(); n > 0 {
		logger.Debug().Int("duplicates", n).Msg("Thesaurus rows overwrote earlier rows with the same code")
	}

	r, err := reconciler.New(
		reconciler.WithLookup(lookup),
		reconciler.WithSuppressInfo(opts.SuppressInfo),
	)
	if err != nil {
		return nil, err
	}

	result, err := r.Reconcile(ctx, existing, proposed.Concept)
	if err != nil {
		return nil, err
	}
	result.Log(logger)
	if recorder != nil {
		recorder.Observe(result.Tally, existing.Len(), lookup.Len())
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapCanceled(err)
	}
	if opts.Strict && result.HasErrors() {
		return nil, &errors.ValidationError{
			Field:   "new_codes",
			Value:   result.Tally.NotInThesaurus,
			Message: fmt.Sprintf("%d proposed codes are not in the NCI Thesaurus", result.Tally.NotInThesaurus),
		}
	}

	if err := existing.Save(save.WithPath(opts.Out), save.WithFormat(save.FormatFromPath(opts.Out))); err != nil {
		return nil, errors.WrapResource("save", "code system", opts.Out, err)
	}
	logger.Info().Str("output", opts.Out).Int("concepts", existing.Len()).Msg("Wrote merged code system")

	report = &output.Report{
		RunID:       runID,
		Output:      opts.Out,
		Concepts:    existing.Len(),
		Tally:       result.Tally,
		Diagnostics: result.Diagnostics,
	}
	if err := printReport(w, output.DetectFormat(string(format)), report); err != nil {
		return nil, errors.WrapIO("write", "report", err)
	}
	return report, nil
}

func loadCodeSystem(ctx context.Context, path string, unique bool) (*codesystem.CodeSystem, error) {
	cs, err := codesystem.Load(path)
	if err == nil {
		err = cs.Validate(unique)
	}
	if err != nil {
		return nil, errors.WrapResource("load", "code system", path, err)
	}
	logging.FromContext(logging.WithSource(ctx, path)).Debug().
		Str("url", cs.URL).
		Int("concepts", cs.Len()).
		Msg("Loaded code system")
	return cs, nil
}

// printReport writes the report. Tables show the tally, then any
// diagnostics in input order.
func printReport(w io.Writer, format output.Format, report *output.Report) error {
	formatter := output.NewFormatter(format)
	if format != output.FormatTable {
		return formatter.Format(w, *report)
	}

	if err := formatter.Format(w, output.TallyData(report.Tally)); err != nil {
		return err
	}
	if len(report.Diagnostics) > 0 {
		if err := formatter.Format(w, output.DiagnosticsData(report.Diagnostics)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Wrote %d concepts to %s\n", report.Concepts, report.Output)
	return err
}
