package predictor

import (
	"fmt"
	"slices"
	"strings"
)

// FormatReport renders a prediction as the text panel shown to the user.
func FormatReport(schema Schema, result *Result, home, away string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Prediction for %s vs %s:\n\n", home, away)

	for _, f := range schema.Fields {
		switch f.Kind {
		case KindNumeric:
			if v, ok := result.Number(f.Name); ok {
				fmt.Fprintf(&b, "%s: %.2f\n", f.Label, v)
			}
		case KindText:
			if v, ok := result.Text(f.Name); ok {
				fmt.Fprintf(&b, "%s: %s\n", f.Label, v)
			}
		}
	}

	if schema.ShowRawData && len(result.Raw) > 0 {
		b.WriteString("\nFull Prediction Data:\n")
		keys := make([]string, 0, len(result.Raw))
		for k := range result.Raw {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, formatRaw(result.Raw[k]))
		}
	}
	return b.String()
}
