package adkflow

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Runner is an interactive inspector for an Editor using provided IO.
// Injected readers and writers keep it testable and frontend-agnostic
// (plain CLI, TUI, scripted sessions).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Renderer ContentRenderer
}

// ContentRenderer transforms prompt markdown before it is written.
// This allows TUI rendering (markdown to ANSI) without coupling the
// core package to a terminal library.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner. Set Input and Output before calling Run.
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the inspector loop until EOF or "quit". Commands:
//
//	ls                  list project IDs
//	show <project>      print the project graph as Mermaid
//	check <project>     validate a project graph
//	prompt <id>         render a prompt (through the Renderer, if set)
//	quit
func (r *Runner) Run(ctx context.Context, editor *Editor) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	for {
		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			fmt.Fprintln(writer, "Bye!")
			return nil

		case "ls":
			ids, err := editor.Store().List(ctx)
			if err != nil {
				fmt.Fprintf(writer, "error: %v\n", err)
				continue
			}
			if len(ids) == 0 {
				fmt.Fprintln(writer, "(no projects)")
				continue
			}
			for _, id := range ids {
				fmt.Fprintln(writer, id)
			}

		case "show":
			if len(args) != 1 {
				fmt.Fprintln(writer, "usage: show <project>")
				continue
			}
			out, err := editor.ExportMermaid(ctx, args[0])
			if err != nil {
				fmt.Fprintf(writer, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(writer, strings.TrimSpace(out))

		case "check":
			if len(args) != 1 {
				fmt.Fprintln(writer, "usage: check <project>")
				continue
			}
			issues, err := editor.Validate(ctx, args[0])
			if err != nil {
				fmt.Fprintf(writer, "error: %v\n", err)
				continue
			}
			if len(issues) == 0 {
				fmt.Fprintln(writer, "OK")
				continue
			}
			for _, issue := range issues {
				fmt.Fprintf(writer, "%s\n", issue)
			}

		case "prompt":
			if len(args) != 1 {
				fmt.Fprintln(writer, "usage: prompt <id>")
				continue
			}
			if editor.Prompts() == nil {
				fmt.Fprintln(writer, "error: no prompt store configured")
				continue
			}
			p, err := editor.Prompts().Get(ctx, args[0])
			if err != nil {
				fmt.Fprintf(writer, "error: %v\n", err)
				continue
			}
			output := p.Content
			if r.Renderer != nil {
				if rendered, err := r.Renderer(p.Content); err == nil {
					output = rendered
				}
			}
			fmt.Fprintln(writer, strings.TrimSpace(output))

		default:
			fmt.Fprintf(writer, "unknown command: %s\n", cmd)
		}
	}
}
