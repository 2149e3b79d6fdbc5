// ABOUTME: Download command for fetching document content to a local file
// ABOUTME: Writes to the node's repository name unless --output is given
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <node-id>",
	Short: "Download a document's content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		nodeID := args[0]
		node, err := client.GetNode(cmd.Context(), nodeID)
		if err != nil {
			return fmt.Errorf("failed to fetch node %s: %w", nodeID, err)
		}
		if !node.IsFile {
			return fmt.Errorf("node %s is not a document", nodeID)
		}

		body, err := client.GetContent(cmd.Context(), nodeID, true)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", nodeID, err)
		}
		defer body.Close()

		target := downloadOutput
		if target == "" {
			target = node.Name
		}
		f, err := os.Create(target)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", target, err)
		}
		size, err := io.Copy(f, body)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}

		color.Green("Downloaded %s (%d bytes) to %s", node.Name, size, target)
		return nil
	},
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "Output file path")
	rootCmd.AddCommand(downloadCmd)
}
