package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgsync/pkg/configuration"
	"github.com/iota-uz/orgsync/pkg/dataset"
	"github.com/iota-uz/orgsync/pkg/hierarchy"
)

type organizationOptions struct {
	input   string
	mapping string
	output  string
}

func newOrganizationCmd() *cobra.Command {
	var opts organizationOptions

	cmd := &cobra.Command{
		Use:   "organization",
		Short: "Build the disambiguated organization master from the flat org export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrganization(opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "Org export file or glob (required)")
	cmd.Flags().StringVar(&opts.mapping, "mapping", "", "Abbreviation mapping file or glob (required)")
	cmd.Flags().StringVar(&opts.output, "output", "", "Output workbook path (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("mapping")
	_ = cmd.MarkFlagRequired("output")

	return cmd
}

func runOrganization(opts organizationOptions) error {
	if strings.TrimSpace(opts.output) == "" {
		return withCode(exitUsage, fmt.Errorf("--output is required"))
	}
	log := configuration.Use().Logger()

	orgs, err := dataset.LoadTable(opts.input, "")
	if err != nil {
		return withCode(exitIO, err)
	}
	mapping, err := dataset.LoadTable(opts.mapping, "")
	if err != nil {
		return withCode(exitIO, err)
	}

	master, err := hierarchy.CreateOrganization(orgs, mapping, log)
	if err != nil {
		return withCode(exitValidation, err)
	}
	if err := dataset.WriteExcel(opts.output, master, ""); err != nil {
		return withCode(exitIO, err)
	}

	type organizationSummary struct {
		Status string `json:"status"`
		RunID  string `json:"run_id"`
		Rows   int    `json:"rows"`
		Output string `json:"output"`
	}
	return writeJSONLine(organizationSummary{
		Status: "built",
		RunID:  uuid.New().String(),
		Rows:   master.Len(),
		Output: opts.output,
	})
}
