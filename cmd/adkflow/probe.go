package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/transparentlyai/adkflow-sub012/internal/loglang"
	"github.com/transparentlyai/adkflow-sub012/internal/tracetree"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Explore captured agent run output",
}

var probeLogsCmd = &cobra.Command{
	Use:   "logs <file>",
	Short: "Colorize a captured log file",
	Long:  `Reads a log file captured by a probe node and prints it with timestamps, levels, keys and payloads highlighted.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fmt.Printf("Error opening log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()

		out := termenv.NewOutput(os.Stdout)
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			printLogLine(out, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			fmt.Printf("Error reading log file: %v\n", err)
			os.Exit(1)
		}
	},
}

func printLogLine(out *termenv.Output, line string) {
	var b strings.Builder
	prev := 0
	for _, tok := range loglang.Tokenize(line) {
		b.WriteString(line[prev:tok.Start])
		b.WriteString(styleToken(out, tok))
		prev = tok.End
	}
	b.WriteString(line[prev:])
	fmt.Fprintln(out, b.String())
}

func styleToken(out *termenv.Output, tok loglang.Token) string {
	s := out.String(tok.Text)
	switch tok.Kind {
	case loglang.TokenTimestamp:
		s = s.Faint()
	case loglang.TokenLevel:
		switch strings.ToUpper(strings.Trim(tok.Text, "[]")) {
		case "ERROR", "FATAL":
			s = s.Foreground(out.Color("1")).Bold()
		case "WARN", "WARNING":
			s = s.Foreground(out.Color("3"))
		default:
			s = s.Foreground(out.Color("2"))
		}
	case loglang.TokenLogger:
		s = s.Foreground(out.Color("6"))
	case loglang.TokenKey:
		s = s.Foreground(out.Color("4"))
	case loglang.TokenString, loglang.TokenJSON:
		s = s.Foreground(out.Color("5"))
	}
	return s.String()
}

var probeTraceCmd = &cobra.Command{
	Use:   "trace <file>",
	Short: "Print a captured span file as a tree",
	Long:  `Reads a JSON span list captured by a probe node, assembles it into a tree by parent reference and prints it with per-subtree durations.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error opening trace file: %v\n", err)
			os.Exit(1)
		}
		var spans []tracetree.Span
		if err := json.Unmarshal(data, &spans); err != nil {
			fmt.Printf("Error parsing trace file: %v\n", err)
			os.Exit(1)
		}

		for _, root := range tracetree.Assemble(spans) {
			root.Walk(func(n *tracetree.Node, depth int) {
				fmt.Printf("%s%s (%s)\n", strings.Repeat("  ", depth), n.Span.Name, n.SubtreeDuration())
			})
		}
	},
}

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.AddCommand(probeLogsCmd)
	probeCmd.AddCommand(probeTraceCmd)
}
