// ABOUTME: MCP subcommand for running the Alfresco MCP server
// ABOUTME: Handles stdio transport initialization and server lifecycle
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/contentgrid/alfresco-mcp/internal/checkout"
	"github.com/contentgrid/alfresco-mcp/internal/config"
	"github.com/contentgrid/alfresco-mcp/internal/logging"
	"github.com/contentgrid/alfresco-mcp/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Alfresco MCP server",
	Long:  `Start the Model Context Protocol server for AI assistants to interact with the Alfresco repository over stdio.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, client, err := newClient()
		if err != nil {
			return err
		}

		store := checkout.NewStore(checkout.DefaultDir())
		server := mcp.NewServer(cfg, client, store, config.GetDownloadsDir())

		logging.Info("starting MCP server", "url", cfg.URL, "user", cfg.Username)
		return server.Run(context.Background())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
