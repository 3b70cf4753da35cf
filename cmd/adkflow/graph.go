package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <project>",
	Short: "Export the project graph visualization",
	Long:  `Loads a project and outputs a Mermaid diagram (graph TD) of its canvas, with groups rendered as subgraphs.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		output, err := editor.ExportMermaid(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Error exporting graph: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(output)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
