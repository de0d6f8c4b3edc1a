package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteJSON renders the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteMarkdown renders the report in the Markdown layout used for
// posting run summaries.
func (r *Report) WriteMarkdown(w io.Writer) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Validation report\n\n")
	fmt.Fprintf(&b, "- run: `%s`\n", r.RunID)
	if r.Input != "" {
		fmt.Fprintf(&b, "- input: `%s`\n", r.Input)
	}
	fmt.Fprintf(&b, "- records: %d (%d skipped, %d malformed)\n", r.TotalRecords, r.SkippedRecords, r.MalformedRecords)
	fmt.Fprintf(&b, "- finished: %s\n", r.FinishedAt.Format("2006-01-02 15:04:05 MST"))

	if len(r.CountsBySeverity) > 0 {
		fmt.Fprintf(&b, "\n## Findings by severity\n\n")
		for _, sev := range []string{"error", "warning", "info"} {
			if n, ok := r.CountsBySeverity[sev]; ok {
				fmt.Fprintf(&b, "- %s: %d\n", sev, n)
			}
		}
	}

	if len(r.Rules) > 0 {
		fmt.Fprintf(&b, "\n## Findings by rule\n")
		for _, summary := range r.Rules {
			fmt.Fprintf(&b, "\n### %s", summary.Rule)
			if summary.Name != "" {
				fmt.Fprintf(&b, " - %s", summary.Name)
			}
			fmt.Fprintf(&b, "\n\n%d finding(s)", summary.Count)
			if summary.Count > len(summary.Samples) {
				fmt.Fprintf(&b, ", first %d shown", len(summary.Samples))
			}
			fmt.Fprintf(&b, "\n\n")
			for _, sample := range summary.Samples {
				fmt.Fprintf(&b, "- line %d", sample.Line)
				if sample.Field != "" {
					fmt.Fprintf(&b, ", %s", sample.Field)
				}
				fmt.Fprintf(&b, " (%s): %s\n", sample.Severity, sample.Message)
			}
		}
	} else if r.MalformedRecords == 0 {
		fmt.Fprintf(&b, "\nNo findings.\n")
	}

	if len(r.LoadWarnings) > 0 {
		fmt.Fprintf(&b, "\n## Ontology load warnings\n\n")
		for _, warning := range r.LoadWarnings {
			fmt.Fprintf(&b, "- %s\n", warning)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
