// Package csvutil builds CSV documents with the quoting rules expected by
// spreadsheet imports: a field is quoted only when it contains a comma,
// double quote or newline, and embedded quotes are doubled.
package csvutil

import "strings"

// EscapeField quotes a field if it contains a comma, quote or newline,
// doubling any embedded quotes. Other fields pass through unchanged.
func EscapeField(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// Document joins a header row and data rows into a CSV document.
// Every field is escaped; rows are joined with \n.
func Document(header []string, rows [][]string) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, row := range rows {
		b.WriteByte('\n')
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, row []string) {
	for i, field := range row {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(EscapeField(field))
	}
}
