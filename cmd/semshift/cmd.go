package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/semshift/semshift/config"
	"github.com/semshift/semshift/internal"
)

var (
	log *logrus.Logger

	cfgFile         string
	showVersion     bool
	dumpConfig      bool
	rebuildTemplate string
)

var cmd = &cobra.Command{
	Use:   "semshift",
	Short: "semshift learns a semantic shift from example word pairs and finds the nearest vocabulary words to a shifted target",
	Run:   func(cmd *cobra.Command, args []string) { run() },
}

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the vocabulary embedding cache",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Error configuring semshift: %s", err)
		}
		config.SetLogLevel(cfg)

		appState := NewAppState(cfg)
		matrix, err := appState.Cache.Rebuild(context.Background(), rebuildTemplate)
		if err != nil {
			log.Fatalf("Cache rebuild failed: %s", err)
		}
		fmt.Printf("Rebuilt embedding cache: %d rows, dim %d, signature %s\n",
			matrix.Rows(), matrix.Dim, matrix.Signature)
	},
}

func init() {
	cmd.AddCommand(rebuildCmd)

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default config.yaml)")
	cmd.PersistentFlags().BoolVarP(&showVersion, "version", "v", false, "print version number")
	cmd.PersistentFlags().BoolVarP(&dumpConfig, "dump-config", "d", false, "dump config")

	rebuildCmd.Flags().
		StringVarP(&rebuildTemplate, "template", "t", "", "context template, e.g. \"I saw {w}\"")
}

// Execute executes the root cobra command.
func Execute() {
	log = internal.GetLogger()
	log.SetLevel(logrus.InfoLevel)

	err := cmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}

// handleCLIOptions handles CLI options that don't require the server to run
func handleCLIOptions(cfg *config.Config) {
	if showVersion {
		fmt.Println(config.VersionString)
		os.Exit(0)
	}
	if dumpConfig {
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			log.Fatalf("Error dumping config: %s", err)
		}
		fmt.Println(string(out))
		os.Exit(0)
	}
}
