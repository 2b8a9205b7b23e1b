package cmd

import (
	"fmt"
	"os"

	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/cmd/updaterevision"
	"github.com/ValoriaTechnologia/ArgoHelmDeploy/internal/config"

	"github.com/jedib0t/go-pretty/text"
	"github.com/spf13/cobra"
)

// updateRevisionCmd represents the updateRevision command
var updateRevisionCmd = &cobra.Command{
	Use:   "updateRevision",
	Short: "Update an Application's targetRevision pin and push the change",
	Long: `Clones the configured GitOps repository, looks the package up in the
package index, rewrites the matching Application manifest's targetRevision,
and commits and pushes the result. Configuration is read from the
environment (plain names like REPO_URL, or INPUT_REPO_URL from CI).`,
	Args: cobra.NoArgs,
	RunE: updateRevisionHandler,
}

func init() {
	rootCmd.AddCommand(updateRevisionCmd)
}

func updateRevisionHandler(_ *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	// The mask line must be the first observable output once the token is
	// known, before anything can echo the authenticated URL.
	config.AnnounceSecret(os.Stdout, settings.Token)

	fmt.Println(
		text.Color.Sprintf(text.FgBlue, "Updating package `%s` to version `%s`...", settings.PackageName, settings.Version),
	)

	return updaterevision.Run(settings)
}
