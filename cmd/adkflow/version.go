package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	adkflow "github.com/transparentlyai/adkflow-sub012"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of adkflow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("adkflow version %s\n", strings.TrimSpace(adkflow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
