package jsonexport_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
	"invex/internal/jsonexport"
)

func strPtr(s string) *string { return &s }

func rawDoc() *domain.RawDocument {
	return &domain.RawDocument{
		FileName: "report.pdf",
		FilePath: "/data/report.pdf",
		Pages: []domain.Page{
			{Number: 1, Text: "  Résumé ₹ 1,180.00 <b>\n"},
			{Number: 2, Text: "\n"},
		},
		Metadata: map[string]*string{"Title": strPtr("Quarterly"), "Author": nil},
	}
}

func TestFromRaw(t *testing.T) {
	d := jsonexport.FromRaw(rawDoc())

	assert.Equal(t, "report.pdf", d.FileName)
	assert.Equal(t, "/data/report.pdf", d.FilePath)
	assert.Equal(t, 2, d.TotalPages)
	require.Len(t, d.Pages, 2)
	assert.Equal(t, "Résumé ₹ 1,180.00 <b>", d.Pages[0].Text)
	assert.Equal(t, "", d.Pages[1].Text)
	assert.Equal(t, 2, d.Pages[1].PageNumber)
}

func TestMarshal_Shape(t *testing.T) {
	data, err := jsonexport.Marshal(jsonexport.FromRaw(rawDoc()))
	require.NoError(t, err)

	s := string(data)
	assert.Contains(t, s, "\n  \"file_name\": \"report.pdf\"")
	assert.Contains(t, s, "Résumé ₹ 1,180.00 <b>")
	assert.NotContains(t, s, `\u20b9`)
	assert.NotContains(t, s, `\u003c`)
	assert.Contains(t, s, `"Author": null`)

	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	assert.ElementsMatch(t, []string{"file_name", "file_path", "total_pages", "metadata", "pages"}, keys(generic))
}

func TestMarshal_NilMetadataIsEmptyObject(t *testing.T) {
	raw := rawDoc()
	raw.Metadata = nil
	data, err := jsonexport.Marshal(jsonexport.FromRaw(raw))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"metadata": {}`)
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "invoice.json"), jsonexport.OutputPath("out", "/in/invoice.PDF"))
	assert.Equal(t, filepath.Join("out", "a.b.json"), jsonexport.OutputPath("out", "a.b.pdf"))
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, jsonexport.WriteFile(path, jsonexport.FromRaw(rawDoc())))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "{\n  \""))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
