package main

import (
	"os"

	"github.com/spf13/cobra"

	"carelink/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carelink",
		Short: "Carelink - support ticket service backed by a remote helpdesk",
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
