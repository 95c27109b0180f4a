package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelIndex_Find(t *testing.T) {
	idx := newLabelIndex([]string{"Invoice No", "Invoice Date", "GSTIN/UIN", "GSTIN", "Bill To", "Place of Supply"})

	tests := []struct {
		name   string
		lines  []string
		labels []string
		want   string
		line   int
		ok     bool
	}{
		{"colon", []string{"Invoice No: INV-1"}, []string{"Invoice No"}, "INV-1", 0, true},
		{"dot colon", []string{"Invoice No.: INV-2"}, []string{"Invoice No"}, "INV-2", 0, true},
		{"hash", []string{"invoice no # INV-3"}, []string{"Invoice No"}, "INV-3", 0, true},
		{"cut at next label", []string{"Invoice No: INV-4 Invoice Date: 01-01-2024"}, []string{"Invoice Date"}, "01-01-2024", 0, true},
		{"value before next label", []string{"Invoice No: INV-4 Invoice Date: 01-01-2024"}, []string{"Invoice No"}, "INV-4", 0, true},
		{"longer label wins", []string{"GSTIN/UIN: 29AAACM1234A1Z5"}, []string{"GSTIN/UIN", "GSTIN"}, "29AAACM1234A1Z5", 0, true},
		{"label prefix of a word", []string{"Invoice Notes: none"}, []string{"Invoice No"}, "", -1, false},
		{"value on next line", []string{"Bill To", "Acme Corp"}, []string{"Bill To"}, "Acme Corp", 0, true},
		{"next line is another label", []string{"Bill To", "GSTIN: 29AAACM1234A1Z5"}, []string{"Bill To"}, "", 0, false},
		{"first line wins", []string{"x", "Place of Supply: 29-Karnataka", "Place of Supply: 07-Delhi"}, []string{"Place of Supply"}, "29-Karnataka", 1, true},
		{"missing", []string{"nothing here"}, []string{"Invoice No"}, "", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, line, ok := idx.find(tt.lines, tt.labels, 0, len(tt.lines))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, v)
			assert.Equal(t, tt.line, line)
		})
	}
}

func TestLabelIndex_FindRespectsRange(t *testing.T) {
	idx := newLabelIndex([]string{"GSTIN"})
	lines := []string{"GSTIN: AAA", "Bill To: X", "GSTIN: BBB"}

	v, _, ok := idx.find(lines, []string{"GSTIN"}, 1, len(lines))
	assert.True(t, ok)
	assert.Equal(t, "BBB", v)

	_, _, ok = idx.find(lines, []string{"GSTIN"}, 1, 2)
	assert.False(t, ok)
}

func TestFirstToken(t *testing.T) {
	assert.Equal(t, "29AAACM1234A1Z5", firstToken("29AAACM1234A1Z5 State: Karnataka"))
	assert.Equal(t, "", firstToken("   "))
}
