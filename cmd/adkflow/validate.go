package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check a project graph for consistency",
	Long:  `Loads a project and reports duplicate node IDs, dangling edges, broken parent references and nesting cycles.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		issues, err := editor.Validate(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Println(issue)
			}
			os.Exit(1)
		}
		fmt.Println("Graph is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
