package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gopkg.in/yaml.v3"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage stored projects",
}

var projectLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List stored project IDs",
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		ids, err := editor.Store().List(context.Background())
		if err != nil {
			fmt.Printf("Error listing projects: %v\n", err)
			os.Exit(1)
		}
		if len(ids) == 0 {
			fmt.Println("(no projects)")
			return
		}
		for _, id := range ids {
			fmt.Println(id)
		}
	},
}

var projectInspectCmd = &cobra.Command{
	Use:   "inspect <project>",
	Short: "Print a project manifest",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		project, err := editor.Project(context.Background(), args[0])
		if err != nil {
			fmt.Printf("Error loading project: %v\n", err)
			os.Exit(1)
		}
		out, err := yaml.Marshal(project)
		if err != nil {
			fmt.Printf("Error encoding project: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
	},
}

var projectRmCmd = &cobra.Command{
	Use:   "rm <project>",
	Short: "Delete a stored project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		if err := editor.Store().Delete(context.Background(), args[0]); err != nil {
			fmt.Printf("Error deleting project: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectLsCmd)
	projectCmd.AddCommand(projectInspectCmd)
	projectCmd.AddCommand(projectRmCmd)
}
