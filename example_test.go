package adkflow_test

import (
	"context"
	"fmt"
	"log"
	"os"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/pkg/graph"
	"github.com/transparentlyai/adkflow-sub012/pkg/manifest"
)

// ExampleNew demonstrates building a pipeline in pure Go and copying a
// group through a workspace clipboard. Selecting the group captures its
// children and the edge between them; pasting produces fresh IDs.
func ExampleNew() {
	dir, err := os.MkdirTemp("", "adkflow-example")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(dir)

	// 1. Define the pipeline using the builder
	b := graph.NewBuilder()
	b.Add("research").Group("Research").Done()
	b.Add("researcher").Agent("Researcher").In("research").Done()
	b.Add("search").Tool("Web Search").In("research").Done()
	b.Connect("search", "researcher")

	project := manifest.New("demo")
	project.Graph = b.Build()

	// 2. Initialize the editor and persist the project
	editor, err := adkflow.New(dir)
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	if err := editor.Store().Save(ctx, "demo", project); err != nil {
		log.Fatal(err)
	}

	// 3. Open a workspace and copy the group
	ws, err := editor.Sessions().Open(ctx, "tab-1", "demo")
	if err != nil {
		log.Fatal(err)
	}
	g := ws.Graph()
	for i := range g.Nodes {
		if g.Nodes[i].ID == "research" {
			g.Nodes[i].Selected = true
		}
	}
	ws.Clipboard.Copy(g.Nodes, g.Edges, ws.ProjectID)

	payload, _ := ws.Clipboard.Payload()
	fmt.Printf("captured %d nodes and %d edges\n", len(payload.Nodes), len(payload.Edges))
	// Output: captured 3 nodes and 1 edges
}
