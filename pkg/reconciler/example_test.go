package reconciler_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentstation/codesync/pkg/codesystem"
	"github.com/agentstation/codesync/pkg/reconciler"
	"github.com/agentstation/codesync/pkg/thesaurus"
)

func Example() {
	ctx := context.Background()

	tsv := "C123\tiri#C123\t\tNeoplasm|Tumor\t\t\t\tNeoplastic Process\t\n" +
		"C555\tiri#C555\t\tKidney Failure|Renal Failure\t\t\t\tDisease or Syndrome\t\n"
	lookup, err := thesaurus.Parse(ctx, strings.NewReader(tsv))
	if err != nil {
		fmt.Println(err)
		return
	}

	existing := codesystem.New()
	existing.Add(codesystem.Concept{Code: "C123", Display: "Tumor"})

	r, err := reconciler.New(reconciler.WithLookup(lookup))
	if err != nil {
		fmt.Println(err)
		return
	}

	result, err := r.Reconcile(ctx, existing, []codesystem.Concept{
		{Code: "C123", Display: "Neoplasm"},
		{Code: "C999", Display: "Widget"},
		{Code: "C555", Display: "Renal Failure"},
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, o := range result.Outcomes {
		fmt.Println(o.Code, o.State)
	}
	for _, c := range existing.Concept {
		fmt.Println(c.String(), len(c.Designation))
	}
	fmt.Println(result.Tally)
	// Output:
	// C123 synonym-added
	// C999 rejected
	// C555 added
	// C123 "Tumor" 1
	// C555 "Kidney Failure" 1
	// STATISTICS:
	// pre-existing codes:	1
	// wrong displays:		1
	// non-NCIT codes:		1
	// new codes:		1
}
