package cmd

import (
	"fmt"
	"os"

	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliName = "argo-helm-deploy"

var (
	// Version represents the current version of the deploy tooling
	Version = "v0.0.0-dev"
	// GitCommit represents the latest commit when building this tool
	GitCommit = "HEAD"
	// Date represents the build timestamp
	Date = "now"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "Automation for Argo CD Application version pins",
	Long: `A CLI tool that keeps Argo CD Application manifests in a GitOps repo
pointed at the right Helm chart version.

Given a package index mapping package names to manifest locations, it clones
the repo, rewrites the matching Application's targetRevision, and commits and
pushes the change with a bot identity. Intended to run from CI; configuration
comes from environment variables (plain names or the INPUT_* convention).`,
	Version:       fmt.Sprintf("v%s (%s) Built at %s", Version, GitCommit, Date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logging.Configure(cmd)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Setup log-level global flag
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "Set the logging level (debug, info, warn, error, fatal, panic)")

	// Viper config
	viper.SetEnvPrefix("ARGO_HELM")
	viper.AutomaticEnv()
	err := viper.BindEnv("log_level", "ARGO_HELM_LOG_LEVEL")
	if err != nil {
		logging.Log.Error(err)
		return
	}

	// Bind the log-level flag to Viper (this also makes it available via viper.GetString)
	err = viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	if err != nil {
		logging.Log.Error(err)
		return
	}
}
