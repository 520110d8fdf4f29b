// Package cli wires the cobra commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/whichlang/whichlang/internal/config"
)

var (
	cfgFile string
	debug   bool
	seed    int64
)

var rootCmd = &cobra.Command{
	Use:   "whichlang",
	Short: "Guess the programming language of random code from GitHub",
	Long: `whichlang fetches a random source file from GitHub — public gists or
repository code search — hides it behind dots, and reveals it line by line
while you guess the language. Guess early to keep your streak alive.

A GitHub personal access token (GITHUB_TOKEN or --token, no scopes needed)
raises the API quota; without one the game still works, just rate-limited
sooner.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/whichlang/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to whichlang.log")

	rootCmd.Flags().StringP("token", "t", "", "GitHub personal access token (raises the API quota)")
	rootCmd.Flags().StringP("provider", "p", "", "candidate source: gist or repository")
	rootCmd.Flags().Bool("shuffle", false, "reveal lines in random order")
	rootCmd.Flags().Bool("randomize-options", false, "shuffle the option list each round")
	rootCmd.Flags().IntP("wait", "w", 0, "milliseconds before the first line is revealed")
	rootCmd.Flags().Int("reveal-every", 0, "milliseconds between line reveals")
	rootCmd.Flags().String("theme", "", "syntax theme: dark or light")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 means time-based)")

	bindings := map[string]string{
		config.KeyToken:            "token",
		config.KeyProvider:         "provider",
		config.KeyShuffle:          "shuffle",
		config.KeyRandomizeOptions: "randomize-options",
		config.KeyInitialWaitMs:    "wait",
		config.KeyRevealEveryMs:    "reveal-every",
		config.KeyTheme:            "theme",
	}
	for key, flag := range bindings {
		if err := viper.BindPFlag(key, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(languagesCmd)
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
