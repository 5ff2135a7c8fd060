package summary

import (
	"fmt"
	"strings"
)

// Outline renders every section in full as plain text, regardless of
// which sections are expanded.
func Outline(s State) string {
	var b strings.Builder
	for i, sec := range s.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d. %s\n\n", i+1, sec.Title)
		if c := strings.TrimSpace(sec.Content); c != "" {
			b.WriteString(c)
			b.WriteString("\n")
		}

		if len(sec.KeyTerms) > 0 {
			b.WriteString("\nTermes clés:\n")
			for _, kt := range sec.KeyTerms {
				fmt.Fprintf(&b, "  - %s: %s\n", kt.Term, kt.Definition)
				if kt.DefinitionDarija != "" {
					fmt.Fprintf(&b, "    (darija) %s\n", kt.DefinitionDarija)
				}
			}
		}

		if len(sec.EssentialPoints) > 0 {
			b.WriteString("\nPoints essentiels:\n")
			for _, p := range sec.EssentialPoints {
				fmt.Fprintf(&b, "  • %s\n", p)
			}
		}
	}
	return b.String()
}
