package main

import (
	"github.com/bodil/vscode-use-package/internal/log"
)

var Version = "dev"

func init() {
	applyCmd.Flags().StringP("file", "f", "", "Path to the package manifest")
	applyCmd.Flags().String("only", "", "Apply only packages matching this query")
	applyCmd.Flags().Bool("no-tui", false, "Disable the progress UI")

	rootCmd.AddCommand(versionCmd, applyCmd, installCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
