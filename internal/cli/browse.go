// ABOUTME: Browse command for listing folder children
// ABOUTME: Defaults to the user's home folder (-my-)
package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var browseLimit int

var browseCmd = &cobra.Command{
	Use:   "browse [parent-id]",
	Short: "List the children of a repository folder",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		parentID := "-my-"
		if len(args) > 0 {
			parentID = args[0]
		}

		nodes, err := client.ListChildren(cmd.Context(), parentID, browseLimit)
		if err != nil {
			return fmt.Errorf("failed to browse %s: %w", parentID, err)
		}

		if len(nodes) == 0 {
			fmt.Printf("Folder %s is empty.\n", parentID)
			return nil
		}

		for _, node := range nodes {
			kind := "file  "
			name := node.Name
			if node.IsFolder {
				kind = color.BlueString("folder")
				name = color.BlueString(name)
			}
			fmt.Printf("%s  %s  %s\n", node.ID, kind, name)
		}
		return nil
	},
}

func init() {
	browseCmd.Flags().IntVarP(&browseLimit, "limit", "n", 100, "Maximum entries")
	rootCmd.AddCommand(browseCmd)
}
