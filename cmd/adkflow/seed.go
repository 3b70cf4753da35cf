package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// seedCmd generates a small demo pipeline, useful for trying the
// editor without wiring a frontend first.
var seedCmd = &cobra.Command{
	Use:   "seed [project]",
	Short: "Create a demo pipeline project",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		projectID := "demo"
		if len(args) > 0 {
			projectID = args[0]
		}

		editor, _, err := buildEditor(cmd)
		if err != nil {
			fmt.Printf("Error initializing adkflow: %v\n", err)
			os.Exit(1)
		}

		b := graph.NewBuilder()
		b.Add("research").Group("Research").At(100, 100).Done()
		b.Add("researcher").Agent("Researcher").In("research").At(20, 40).
			Set("model", "gemini-2.5-pro").Done()
		b.Add("search").Tool("web_search").In("research").At(20, 160).
			Set("name", "web_search").Done()
		b.Add("sys").Prompt("System Prompt").At(100, 320).
			Set("path", "prompts/system.md").Done()
		b.Add("topic").Variable("topic").At(320, 320).
			Set("name", "topic").Done()
		b.Add("writer").Agent("Writer").At(540, 100).
			Set("model", "gemini-2.5-flash").Done()
		b.Add("latency").Probe("latency").At(540, 320).Done()
		b.Connect("search", "researcher").
			Connect("sys", "researcher").
			Connect("topic", "researcher").
			Connect("researcher", "writer").
			Connect("writer", "latency")

		project := manifest.New(projectID)
		project.Description = "Seeded demo pipeline"
		project.Graph = b.Build()

		if err := editor.Store().Save(context.Background(), projectID, project); err != nil {
			fmt.Printf("Error saving project: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Seeded project %q (%d nodes, %d edges)\n",
			projectID, len(project.Graph.Nodes), len(project.Graph.Edges))
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
