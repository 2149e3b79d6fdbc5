// ABOUTME: Search command for querying repository content from the terminal
// ABOUTME: Supports AFTS and CMIS queries with date range filters
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/araddon/dateparse"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/contentgrid/alfresco-mcp/internal/alfresco"
)

var (
	searchCMIS       bool
	searchSince      string
	searchUntil      string
	searchLimit      int
	searchJSONOutput bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search repository content",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, client, err := newClient()
		if err != nil {
			return err
		}

		query := args[0]
		opts := alfresco.SearchOptions{MaxItems: searchLimit}
		if searchCMIS {
			opts.Language = alfresco.LanguageCMIS
		}

		// Date filters only make sense for AFTS queries.
		if (searchSince != "" || searchUntil != "") && searchCMIS {
			return fmt.Errorf("--since/--until cannot be combined with --cmis")
		}
		if searchSince != "" || searchUntil != "" {
			rangeClause, err := modifiedRange(searchSince, searchUntil)
			if err != nil {
				return err
			}
			query = fmt.Sprintf("(%s) AND %s", query, rangeClause)
		}

		nodes, err := client.Search(cmd.Context(), query, opts)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if searchJSONOutput {
			data, err := json.MarshalIndent(nodes, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(nodes) == 0 {
			fmt.Println("No results.")
			return nil
		}

		header := color.New(color.Bold)
		header.Println("ID\t\t\t\t\tType\t\tName")
		for _, node := range nodes {
			name := node.Name
			if node.IsFolder {
				name = color.BlueString(name)
			}
			fmt.Printf("%s\t%s\t%s\n", node.ID, node.NodeType, name)
		}
		return nil
	},
}

// modifiedRange builds a cm:modified AFTS range clause from natural-language
// or ISO date bounds. Open ends become MIN/MAX.
func modifiedRange(since, until string) (string, error) {
	from := "MIN"
	to := "MAX"
	if since != "" {
		t, err := dateparse.ParseAny(since)
		if err != nil {
			return "", fmt.Errorf("invalid --since date: %w", err)
		}
		from = t.Format("2006-01-02")
	}
	if until != "" {
		t, err := dateparse.ParseAny(until)
		if err != nil {
			return "", fmt.Errorf("invalid --until date: %w", err)
		}
		to = t.Format("2006-01-02")
	}
	return fmt.Sprintf("cm:modified:[%s TO %s]", from, to), nil
}

func init() {
	searchCmd.Flags().BoolVar(&searchCMIS, "cmis", false, "Treat the query as CMIS SQL")
	searchCmd.Flags().StringVar(&searchSince, "since", "", "Only items modified after this date (natural language or ISO)")
	searchCmd.Flags().StringVar(&searchUntil, "until", "", "Only items modified before this date (natural language or ISO)")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 25, "Maximum results")
	searchCmd.Flags().BoolVar(&searchJSONOutput, "json", false, "Output as JSON")
	rootCmd.AddCommand(searchCmd)
}
