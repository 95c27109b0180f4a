package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invex/internal/pdftext"
	"invex/internal/service"
)

type extractOptions struct {
	pdfPath   string
	outputDir string
}

func newExtractCmd(_ *rootOptions) *cobra.Command {
	opts := &extractOptions{}

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the page text and metadata of one PDF as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			docs := service.NewDocumentService(pdftext.NewLoader(), nil)
			out, err := docs.ExportPages(cmd.Context(), opts.pdfPath, opts.outputDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.pdfPath, "pdf-path", "p", "", "path of the PDF to extract")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "directory to write <name>.json to")
	_ = cmd.MarkFlagRequired("pdf-path")
	_ = cmd.MarkFlagRequired("output-dir")
	return cmd
}
