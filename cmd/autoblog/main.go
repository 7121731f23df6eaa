// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the autoblog CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/autoblog/internal/config"
	"github.com/pdiddy/autoblog/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// appConfig is built once in PersistentPreRunE and read by every subcommand.
// Malformed values fall back to their defaults and are kept in configErr;
// each subcommand fails only on the sections it uses.
var (
	appConfig types.Config
	configErr error
)

// rootCmd is the base command for the autoblog CLI.
var rootCmd = &cobra.Command{
	Use:   "autoblog",
	Short: "Generate Hugo blog posts with a chat completion model",
	Long: `autoblog asks an OpenAI-compatible chat completion API for blog
articles, writes them as Hugo content files with TOML front matter, and can
commit and push them to a git repository on a schedule.

Subcommands: generate (one-shot or batch), schedule (daily and weekly jobs),
topics (manage the topic catalog), validate (check the setup), and history
(list or export what was generated).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd {
			return nil
		}
		envFile, _ := cmd.Flags().GetString("env-file")
		if loaded, err := config.LoadDotEnv(envFile); err != nil {
			return err
		} else if loaded {
			fmt.Fprintln(os.Stderr, "Loaded environment from", envFile)
		}

		secretsDir, _ := cmd.Flags().GetString("secrets-dir")
		s, err := config.LoadSecrets(secretsDir, os.Stderr)
		if err != nil {
			return err
		}
		if applied := config.ApplySecrets(viper.GetViper(), s); len(applied) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %s\n", strings.Join(applied, ", "))
		}

		appConfig, configErr = config.Load(viper.GetViper())
		return nil
	},
}

// requireConfig returns the load problems in the given sections.
func requireConfig(sections ...string) error {
	if err := config.Filter(configErr, sections...); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./autoblog.yaml or ~/.config/autoblog/config.yaml)")
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")
	rootCmd.PersistentFlags().String("secrets-dir", ".secrets/", "directory of secret files (openai-api-key, github-token)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("autoblog")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "autoblog"))
		}
	}

	config.SetDefaults(viper.GetViper())
	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
