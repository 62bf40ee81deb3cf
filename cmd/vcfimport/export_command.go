package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"vcfimport/internal/csvexport"
	"vcfimport/internal/importer"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Convert a contact export to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(outputPath)
			if target == "" || target == "-" {
				return exportCSV(cmd, ctx, args[0], cmd.OutOrStdout())
			}
			return writeFileAtomic(target, 0o644, func(w io.Writer) error {
				return exportCSV(cmd, ctx, args[0], w)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write CSV to this file instead of stdout")
	return cmd
}

func exportCSV(cmd *cobra.Command, ctx *commandContext, input string, out io.Writer) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	writer, err := csvexport.NewWriter(out, csvexport.Options{
		Delimiter: cfg.DelimiterRune(),
		Header:    cfg.Export.Header,
		Fields:    cfg.Export.Fields,
	})
	if err != nil {
		return err
	}

	opts, closeLog, err := ctx.importOptions(cmd, writer)
	if err != nil {
		return err
	}
	defer closeLog()

	_, err = importer.ImportFile(cmd.Context(), input, opts)
	return err
}

// writeFileAtomic fills a temp file next to path and renames it into place
// only when fill succeeds. An existing file at path is left untouched on
// failure.
func writeFileAtomic(path string, perm os.FileMode, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".vcfimport-*.tmp")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmpName := tmp.Name()
	if err := fill(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("chmod output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
