package csvutil

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Acme Labs", "Acme Labs"},
		{"comma", "Smith, John", `"Smith, John"`},
		{"quote", `5mg "research" vial`, `"5mg ""research"" vial"`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"empty", "", ""},
		{"quote and comma", `a,"b`, `"a,""b"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeField(tt.in))
		})
	}
}

// Escaped fields must survive a round trip through a standard CSV parser.
func TestDocumentRoundTrip(t *testing.T) {
	header := []string{"Name", "Notes"}
	rows := [][]string{
		{"Smith, John", `said "hi"`},
		{"Plain", "multi\nline"},
	}

	doc := Document(header, rows)

	parsed, err := csv.NewReader(strings.NewReader(doc)).ReadAll()
	require.NoError(t, err)
	require.Len(t, parsed, 3)
	assert.Equal(t, header, parsed[0])
	assert.Equal(t, rows[0], parsed[1])
	assert.Equal(t, rows[1], parsed[2])
}
