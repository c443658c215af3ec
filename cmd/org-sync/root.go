package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "org-sync",
		Short:         "Org master-data build and reconciliation tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newOrganizationCmd())
	cmd.AddCommand(newReconcileCmd())
	cmd.AddCommand(newRunCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
