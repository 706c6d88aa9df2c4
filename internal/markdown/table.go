// Package markdown renders small Markdown fragments for chat output.
package markdown

import "strings"

const cellSep = "|"

// Table renders a header row, a separator row and one row per item.
// Every row joins its cells with the same delimiter.
func Table(header []string, rows [][]string) string {
	var b strings.Builder

	b.WriteString(strings.Join(header, cellSep))
	b.WriteByte('\n')

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	b.WriteString(strings.Join(sep, cellSep))

	for _, row := range rows {
		b.WriteByte('\n')
		b.WriteString(strings.Join(row, cellSep))
	}
	return b.String()
}
