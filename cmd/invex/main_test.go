package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invex/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("INVEX_EMAIL_PROVIDER", "noop")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInvoicesCmd_EmptyInputDir(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "reports")

	stdout, err := execute(t, "invoices", "-i", in, "-o", out)
	require.NoError(t, err)

	assert.Contains(t, stdout, "files:        0")
	assert.FileExists(t, filepath.Join(out, "invoices.xlsx"))
	assert.FileExists(t, filepath.Join(out, "failures.csv"))
}

func TestInvoicesCmd_UnreadablePDFStillExitsZero(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.pdf"), []byte("not a pdf"), 0o600))

	stdout, err := execute(t, "invoices", "-i", in, "-o", t.TempDir(), "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, stdout, "failed:       1")
	assert.Contains(t, stdout, "broken.pdf")
}

func TestInvoicesCmd_MissingInputDir(t *testing.T) {
	_, err := execute(t, "invoices", "-i", filepath.Join(t.TempDir(), "nope"), "-o", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInputDirInvalid)
}

func TestInvoicesCmd_RequiredFlags(t *testing.T) {
	_, err := execute(t, "invoices", "-i", t.TempDir())
	assert.Error(t, err)
}

func TestExtractCmd_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("hi"), 0o600))

	_, err := execute(t, "extract", "-p", txt, "-o", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotPDF)

	_, err = execute(t, "extract", "-p", dir, "-o", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrNotRegularFile)
}

func TestExtractCmd_UnreadablePDF(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "broken.PDF")
	require.NoError(t, os.WriteFile(pdf, []byte("garbage"), 0o600))

	_, err := execute(t, "extract", "-p", pdf, "-o", t.TempDir())
	assert.ErrorIs(t, err, domain.ErrUnreadablePDF)
}
