package domain

import "errors"

var (
	ErrInputDirInvalid    = errors.New("input directory is missing or not a directory")
	ErrNotPDF             = errors.New("file is not a pdf")
	ErrNotRegularFile     = errors.New("path is not a regular file")
	ErrUnreadablePDF      = errors.New("pdf could not be read")
	ErrEmptyDocument      = errors.New("document contains no text")
	ErrUnrecognizedIssuer = errors.New("unrecognized issuer")
	ErrTableNotFound      = errors.New("line-item table not found")
	ErrNoExtractor        = errors.New("no extractor registered for issuer")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed       = errors.New("file upload to storage failed")
	ErrUnauthorized       = errors.New("unauthorized")
)
