package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transparentlyai/adkflow-sub012/internal/presentation/tui"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "Work with the prompt library",
}

var promptPreviewCmd = &cobra.Command{
	Use:   "preview <id>",
	Short: "Render a prompt to the terminal",
	Long:  `Loads a prompt from the markdown library and renders it with terminal styling, wrapped to the current terminal width.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}
		if editor.Prompts() == nil {
			fmt.Println("No prompt store configured")
			os.Exit(1)
		}

		prompt, err := editor.Prompts().Get(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Error loading prompt: %v\n", err)
			os.Exit(1)
		}

		render := tui.NewRenderer()
		out, err := render(prompt.Content)
		if err != nil {
			// Fall back to the raw markdown.
			out = prompt.Content
		}
		fmt.Print(out)
	},
}

var promptLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List prompts in the library",
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}
		if editor.Prompts() == nil {
			fmt.Println("No prompt store configured")
			os.Exit(1)
		}

		ids, err := editor.Prompts().List(context.Background())
		if err != nil {
			fmt.Printf("Error listing prompts: %v\n", err)
			os.Exit(1)
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.AddCommand(promptPreviewCmd)
	promptCmd.AddCommand(promptLsCmd)
}
