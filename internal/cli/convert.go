package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/export"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/extract"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/parser"
	"github.com/illusionist-creator/NB-RTV-PDF-to-Excel/internal/pipeline"
)

var (
	convertFamily  string
	convertOut     string
	convertSQLite  string
	convertErrors  string
	convertWorkers int
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Extract records from document exports",
	Long: `Extracts every GRN or PRN document found in the given files and writes
one row per line item. The output format follows the --out extension
(.xlsx or .csv). Files that fail are listed in the error log and do not
stop the batch.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFamily, "family", "f", string(extract.FamilyPRN), "document family (prn or grn)")
	convertCmd.Flags().StringVarP(&convertOut, "out", "o", "", "output file (.xlsx or .csv); defaults to the family workbook name")
	convertCmd.Flags().StringVar(&convertSQLite, "sqlite", "", "also append records to this SQLite database")
	convertCmd.Flags().StringVar(&convertErrors, "errors", export.ErrorLogName, "where to write the error log when files fail")
	convertCmd.Flags().IntVarP(&convertWorkers, "workers", "w", 0, "files parsed in parallel (default from config)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	family, err := extract.ParseFamily(convertFamily)
	if err != nil {
		return err
	}
	cfg, log, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	inputs := make([]pipeline.Input, len(args))
	for i, path := range args {
		data, err := os.ReadFile(path)
		inputs[i] = pipeline.Input{Filename: filepath.Base(path), Data: data, Err: err}
	}

	workers := convertWorkers
	if workers <= 0 {
		workers = cfg.FileWorkers
	}
	stderr := cmd.ErrOrStderr()
	batch := &pipeline.Batch{
		Extractor: parser.NewExtractor(parser.Options{PDFFallbackPdftotext: cfg.PDFFallbackPdftotext}),
		Workers:   workers,
		Log:       log,
		OnProgress: func(p pipeline.Progress) {
			status := fmt.Sprintf("%d record(s)", p.Records)
			if p.Failed {
				status = "failed"
			}
			fmt.Fprintf(stderr, "[%d/%d] %s: %s\n", p.Done, p.Total, p.Filename, status)
		},
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res := batch.Run(ctx, inputs, family)

	if len(res.Errors) > 0 && convertErrors != "" {
		if err := os.WriteFile(convertErrors, []byte(export.ErrorLog(res.ErrorLines())+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing error log: %w", err)
		}
		cmd.Printf("%d file(s) failed, see %s\n", len(res.Errors), convertErrors)
	}

	if len(res.Records) == 0 {
		cmd.Println("No valid data extracted from the uploaded files.")
		return nil
	}

	out := convertOut
	if out == "" {
		out = export.WorkbookName(family)
	}
	if err := writeOutput(out, res, family); err != nil {
		return err
	}
	if convertSQLite != "" {
		if err := export.SQLite(ctx, convertSQLite, export.TableName(family), res.Records, family.Columns()); err != nil {
			return fmt.Errorf("writing sqlite: %w", err)
		}
	}

	cmd.Printf("Processed %d file(s)\n", res.Files)
	cmd.Printf("Extracted %d record(s)\n", len(res.Records))
	cmd.Printf("Wrote %s\n", out)
	return nil
}

func writeOutput(path string, res pipeline.Result, family extract.Family) error {
	columns := family.Columns()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("creating %s: %w", path, err)
		}
		if err := export.CSV(f, res.Records, columns); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		data, err := export.XLSX(res.Records, columns, family.Title())
		if err != nil {
			return err
		}
		return os.WriteFile(path, data, 0o644)
	default:
		return fmt.Errorf("unsupported output extension %q (want .xlsx or .csv)", filepath.Ext(path))
	}
}
