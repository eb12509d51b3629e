// Package lookup implements the lookup command, which prints thesaurus
// records for one or more codes.
package lookup

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/codesync/cmd/application"
	"github.com/agentstation/codesync/internal/output"
	"github.com/agentstation/codesync/pkg/constants"
	"github.com/agentstation/codesync/pkg/errors"
	"github.com/agentstation/codesync/pkg/thesaurus"
)

// NewCommand creates the lookup command.
func NewCommand(app application.Application) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "lookup CODE...",
		Short: "Show NCI Thesaurus records for codes",
		Long: `Lookup prints the thesaurus record for each code, including the preferred
term a merge would adopt as display. Codes are matched exactly.`,
		Example: `  codesync lookup C555
  codesync lookup C123 C555 --format yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, codes []string) error {
			if !cmd.Flags().Changed("thesaurus") {
				path = app.Inputs().Thesaurus
			}

			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return errors.WrapValidation("format", err)
			}

			lookup, err := thesaurus.Load(cmd.Context(), path)
			if err != nil {
				return errors.WrapResource("load", "thesaurus", path, err)
			}

			records := make([]*thesaurus.Record, 0, len(codes))
			var missing []string
			for _, code := range codes {
				rec, ok := lookup.Get(code)
				if !ok {
					missing = append(missing, code)
					continue
				}
				records = append(records, rec)
			}

			if err := printRecords(cmd, output.DetectFormat(string(format)), records); err != nil {
				return err
			}

			if len(missing) > 0 {
				return &errors.NotFoundError{Resource: "thesaurus", Codes: missing}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "thesaurus", constants.DefaultThesaurusPath,
		"NCI Thesaurus flat file (env "+constants.EnvThesaurus+")")

	return cmd
}

func printRecords(cmd *cobra.Command, format output.Format, records []*thesaurus.Record) error {
	w := cmd.OutOrStdout()
	switch format {
	case output.FormatTable:
		return output.NewFormatter(format).Format(w, output.RecordsData(records))
	case output.FormatText:
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", r.Code, r.PreferredTerm()); err != nil {
				return err
			}
		}
		return nil
	default:
		return output.NewFormatter(format).Format(w, records)
	}
}
