// ABOUTME: Root command definition and CLI setup
// ABOUTME: Shared client construction for the subcommands
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
	"github.com/contentgrid/alfresco-mcp/internal/config"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "alfresco-mcp",
	Short: "Alfresco content services over MCP",
	Long: `alfresco-mcp exposes an Alfresco repository to AI assistants over the
Model Context Protocol: search, upload, download, and document lifecycle
management (checkout, checkin, cancel). The same operations are available
directly from the terminal via subcommands.`,
}

func Execute() error {
	logging.Setup()
	return rootCmd.Execute()
}

// newClient loads the configuration and builds a repository client.
func newClient() (*config.Config, *alfresco.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, alfresco.New(cfg), nil
}
