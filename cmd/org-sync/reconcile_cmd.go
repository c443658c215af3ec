package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgsync/pkg/configuration"
	"github.com/iota-uz/orgsync/pkg/dataset"
	"github.com/iota-uz/orgsync/pkg/export"
	"github.com/iota-uz/orgsync/pkg/pipeline"
	"github.com/iota-uz/orgsync/pkg/reconcile"
)

type reconcileOptions struct {
	local      string
	downloaded string
	config     string
	sheet      string
	output     string
	userLike   bool
	chunkSize  int
}

func newReconcileCmd() *cobra.Command {
	var opts reconcileOptions

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a local master against the downloaded state and export the change set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReconcile(opts)
		},
	}

	conf := configuration.Use()
	cmd.Flags().StringVar(&opts.local, "local", "", "Local master file or glob (required)")
	cmd.Flags().StringVar(&opts.downloaded, "downloaded", "", "Downloaded state file or glob (required)")
	cmd.Flags().StringVar(&opts.config, "config", "", "Configuration workbook path (required)")
	cmd.Flags().StringVar(&opts.sheet, "sheet", "", "Config workbook sheet name (required)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Output path, extension included (required)")
	cmd.Flags().BoolVar(&opts.userLike, "user-like", false, "Use user-style retirement semantics")
	cmd.Flags().IntVar(&opts.chunkSize, "chunk-size", conf.ExportChunkSize, "Max rows per exported chunk")
	_ = cmd.MarkFlagRequired("local")
	_ = cmd.MarkFlagRequired("downloaded")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("sheet")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runReconcile(opts reconcileOptions) error {
	if opts.chunkSize <= 0 {
		return withCode(exitUsage, fmt.Errorf("--chunk-size must be positive"))
	}
	if strings.TrimSpace(opts.sheet) == "" {
		return withCode(exitUsage, fmt.Errorf("--sheet is required"))
	}
	conf := configuration.Use()
	log := conf.Logger()

	cfg, err := reconcile.LoadSheetConfig(opts.config, opts.sheet)
	if err != nil {
		return withCode(exitValidation, err)
	}

	local, err := dataset.LoadTable(opts.local, "")
	if err != nil {
		return withCode(exitIO, err)
	}
	downloaded, err := pipeline.LoadPrepared(opts.downloaded, "", cfg)
	if err != nil {
		return withCode(exitIO, err)
	}

	changes, err := reconcile.ProcessMasterUpdate(local, downloaded, cfg, reconcile.ClassifyOptions{
		UserLike:           opts.userLike,
		RetirementSentinel: conf.RetirementSentinel,
	}, log)
	if err != nil {
		return withCode(exitValidation, err)
	}

	written, err := export.SplitAndSave(changes, opts.chunkSize, opts.output, log)
	if err != nil {
		return withCode(exitIO, err)
	}

	type reconcileSummary struct {
		Status  string   `json:"status"`
		RunID   string   `json:"run_id"`
		Sheet   string   `json:"sheet"`
		Changes int      `json:"changes"`
		Written []string `json:"written"`
	}
	return writeJSONLine(reconcileSummary{
		Status:  "reconciled",
		RunID:   uuid.New().String(),
		Sheet:   opts.sheet,
		Changes: changes.Len(),
		Written: written,
	})
}
