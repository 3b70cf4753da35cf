package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Interactively explore stored projects",
	Long: `Opens an interactive shell against the project store.

Commands: ls, show <project>, check <project>, prompt <id>, quit.`,
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		tui.PrintBanner()

		runner := adkflow.NewRunner()
		runner.Input = os.Stdin
		runner.Output = os.Stdout
		runner.Renderer = tui.NewRenderer()

		if err := runner.Run(context.Background(), editor); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
