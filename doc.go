/*
Package adkflow is the core of a node-based editor for AI agent
pipelines. Projects are canvases of typed nodes (agents, prompts,
tools, variables, probes and groups for nesting) connected by edges,
persisted as YAML manifests.

The package separates the editing model from its adapters: storage
backends (filesystem, Redis), a prompt store backed by markdown files,
and serving surfaces (REST, MCP, CLI) all sit behind small interfaces.

# Clipboard semantics

Copying a selection captures its downward closure: selecting a group
pulls in everything nested beneath it, however deep, plus every edge
whose two endpoints made it into the capture. Copy with an empty
selection changes nothing, and the single clipboard slot is replaced
wholesale on each effective copy. Pasting materializes fresh node IDs,
so a payload can be pasted repeatedly.

Clipboards are scoped to the editing session that issued them; a
clipboard used after its workspace closed panics rather than corrupting
state.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		adkflow "github.com/transparentlyai/adkflow-sub012"
	)

	func main() {
		ed, err := adkflow.New("./my-project")
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		ws, err := ed.Sessions().Open(ctx, "tab-1", "pipeline")
		if err != nil {
			log.Fatal(err)
		}
		defer ed.Sessions().Close(ctx, "tab-1")

		g := ws.Graph()
		ws.Clipboard.Copy(g.Nodes, g.Edges, ws.ProjectID)

		if payload, ok := ws.Clipboard.Payload(); ok {
			fmt.Printf("captured %d nodes\n", len(payload.Nodes))
		}
	}
*/
package adkflow
