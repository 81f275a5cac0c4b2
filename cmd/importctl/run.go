package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	app "github.com/mohammadpnp/contact-import/internal/application/contact"
	"github.com/mohammadpnp/contact-import/internal/bootstrap"
	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
	infrafile "github.com/mohammadpnp/contact-import/internal/infrastructure/file"
)

type runOptions struct {
	file   string
	name   string
	notify bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Import a contacts CSV file synchronously and print its summary",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if !app.IsCSVFileName(opts.file) {
				return fmt.Errorf("invalid --file %q: must be a .csv or .txt file", opts.file)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path of the CSV file to import (required)")
	cmd.Flags().StringVar(&opts.name, "name", "", "File name recorded in the summary (default: base name of --file)")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "Publish the import-completed notification to redis")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func runImport(cmd *cobra.Command, opts runOptions) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	if !opts.notify {
		cfg.Redis.Addr = ""
	}
	// The file is read from the local disk whatever the upload backend is.
	cfg.Upload.Backend = bootstrap.UploadBackendLocal

	ctx := cmd.Context()

	infra, err := bootstrap.NewInfrastructure(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.Close()

	path, err := filepath.Abs(opts.file)
	if err != nil {
		return fmt.Errorf("resolve --file: %w", err)
	}

	name := strings.TrimSpace(opts.name)
	if name == "" {
		name = filepath.Base(path)
	}

	reconciler := infra.NewReconciler(infrafile.NewLocalSource(filepath.Dir(path)), log)
	summary, err := reconciler.Run(ctx, domain.ImportRun{
		ID:       uuid.NewString(),
		FilePath: path,
		FileName: name,
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(summaryView(summary))
}

func summaryView(s domain.ImportSummary) app.ImportSummaryOutput {
	return app.ImportSummaryOutput{
		ID:            s.ID,
		FileName:      s.FileName,
		InsertedCount: s.InsertedCount,
		UpdatedCount:  s.UpdatedCount,
		SkippedCount:  s.SkippedCount,
		CreatedAt:     s.CreatedAt,
	}
}
