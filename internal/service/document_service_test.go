package service_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
	"invex/internal/service"
	"invex/mocks"
)

func TestValidatePDFPath(t *testing.T) {
	dir := t.TempDir()
	paths := touch(t, dir, "ok.PDF", "notes.txt")

	assert.NoError(t, service.ValidatePDFPath(paths[0]))
	assert.ErrorIs(t, service.ValidatePDFPath(paths[1]), domain.ErrNotPDF)
	assert.ErrorIs(t, service.ValidatePDFPath(dir), domain.ErrNotRegularFile)
	assert.ErrorIs(t, service.ValidatePDFPath(filepath.Join(dir, "missing.pdf")), os.ErrNotExist)
}

func TestDocumentService_ExportPages(t *testing.T) {
	loader := new(mocks.MockTextLoader)
	svc := service.NewDocumentService(loader, newProcessor())
	pdf := touch(t, t.TempDir(), "report.pdf")[0]
	outDir := filepath.Join(t.TempDir(), "nested", "out")

	title := "Quarterly"
	loader.On("Load", mock.Anything, pdf).Return(&domain.RawDocument{
		FileName: "report.pdf",
		FilePath: pdf,
		Pages:    []domain.Page{{Number: 1, Text: " first page \n"}, {Number: 2, Text: "second"}},
		Metadata: map[string]*string{"Title": &title, "Subject": nil},
	}, nil)

	out, err := svc.ExportPages(context.Background(), pdf, outDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "report.json"), out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var got struct {
		FileName   string             `json:"file_name"`
		TotalPages int                `json:"total_pages"`
		Metadata   map[string]*string `json:"metadata"`
		Pages      []struct {
			PageNumber int    `json:"page_number"`
			Text       string `json:"text"`
		} `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, "report.pdf", got.FileName)
	assert.Equal(t, 2, got.TotalPages)
	assert.Equal(t, "first page", got.Pages[0].Text)
	assert.Nil(t, got.Metadata["Subject"])
	require.NotNil(t, got.Metadata["Title"])
	assert.Equal(t, "Quarterly", *got.Metadata["Title"])
}

func TestDocumentService_ExportPages_InvalidPath(t *testing.T) {
	loader := new(mocks.MockTextLoader)
	svc := service.NewDocumentService(loader, newProcessor())
	txt := touch(t, t.TempDir(), "notes.txt")[0]

	_, err := svc.ExportPages(context.Background(), txt, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotPDF)
	loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything)
}

func TestDocumentService_ExportPages_LoadError(t *testing.T) {
	loader := new(mocks.MockTextLoader)
	svc := service.NewDocumentService(loader, newProcessor())
	pdf := touch(t, t.TempDir(), "broken.pdf")[0]
	loader.On("Load", mock.Anything, pdf).Return(nil, domain.ErrUnreadablePDF)

	_, err := svc.ExportPages(context.Background(), pdf, t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnreadablePDF)
}

func TestDocumentService_Pages(t *testing.T) {
	loader := new(mocks.MockTextLoader)
	svc := service.NewDocumentService(loader, newProcessor())
	data := []byte("%PDF-1.4")
	loader.On("Parse", mock.Anything, "upload.pdf", data).Return(rawDocument("upload.pdf", "hello"), nil)

	doc, err := svc.Pages(context.Background(), "upload.pdf", data)
	require.NoError(t, err)
	assert.Equal(t, 1, doc.TotalPages)
	assert.Equal(t, "hello", doc.Pages[0].Text)

	_, err = svc.Pages(context.Background(), "upload.docx", data)
	assert.ErrorIs(t, err, domain.ErrNotPDF)
}

func TestDocumentService_Invoice(t *testing.T) {
	loader := new(mocks.MockTextLoader)
	svc := service.NewDocumentService(loader, newProcessor())
	data := []byte("%PDF-1.4")
	loader.On("Parse", mock.Anything, "mogli.pdf", data).Return(mogliDocument("mogli.pdf"), nil)
	loader.On("Parse", mock.Anything, "other.pdf", data).Return(unknownDocument("other.pdf"), nil)
	loader.On("Parse", mock.Anything, "broken.pdf", data).Return(nil, domain.ErrUnreadablePDF)

	rec, f, err := svc.Invoice(context.Background(), "mogli.pdf", data)
	require.NoError(t, err)
	assert.Nil(t, f)
	assert.Equal(t, domain.IssuerMogliLab, rec.Issuer)

	rec, f, err = svc.Invoice(context.Background(), "other.pdf", data)
	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.Equal(t, domain.FailureUnrecognized, f.Kind)

	_, _, err = svc.Invoice(context.Background(), "broken.pdf", data)
	assert.ErrorIs(t, err, domain.ErrUnreadablePDF)
}
