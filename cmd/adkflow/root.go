package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	adkflow "github.com/transparentlyai/adkflow-sub012"
	"github.com/transparentlyai/adkflow-sub012/internal/adapters/redis"
	"github.com/transparentlyai/adkflow-sub012/internal/config"
	"github.com/transparentlyai/adkflow-sub012/internal/logging"
	"github.com/transparentlyai/adkflow-sub012/pkg/storemw"
)

var rootCmd = &cobra.Command{
	Use:   "adkflow",
	Short: "adkflow is a node-based editor service for AI agent pipelines",
	Long:  `adkflow manages pipeline canvases: typed nodes nested in groups, connected by edges, stored as YAML manifests with a markdown prompt library alongside.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory containing the adkflow project data")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")
}

// buildEditor assembles an Editor from flags and config. The storage
// backend, encryption and log level all come from the config layer.
func buildEditor(cmd *cobra.Command) (*adkflow.Editor, *config.Config, error) {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel))

	opts := []adkflow.Option{adkflow.WithLogger(logger)}

	if cfg.StorageBackend == "redis" {
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		opts = append(opts, adkflow.WithStore(store))
	}
	if cfg.EncryptionKey != "" {
		opts = append(opts, adkflow.WithEncryption(storemw.EncryptionConfig{
			ActiveKey: []byte(cfg.EncryptionKey),
		}))
	}

	editor, err := adkflow.New(dir, opts...)
	if err != nil {
		return nil, nil, err
	}
	return editor, cfg, nil
}
