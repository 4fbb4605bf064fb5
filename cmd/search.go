package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/indigotools/hq/pkg/config"
	"github.com/indigotools/hq/pkg/search"
)

func NewSearchCmd() *cobra.Command {
	var (
		mode            string
		collection      string
		limit           int
		local           bool
		jsonOutput      bool
		listCollections bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search indexed documents",
		Long: `Search runs the query through the external qmd indexer, or through
the local index built by "hq index" when --local is given.

Examples:
  hq search "deployment checklist"
  hq search "auth" --mode keyword -n 5
  hq search "rollout plan" --local
  hq search --collections               # List qmd collections`,
		Args: func(cmd *cobra.Command, args []string) error {
			if listCollections {
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if listCollections {
				collections, err := search.NewClient().Collections()
				if err != nil {
					return err
				}
				for _, c := range collections {
					fmt.Println(c)
				}
				return nil
			}

			query := strings.Join(args, " ")

			if local {
				return runLocalSearch(query, collection, limit, jsonOutput)
			}

			resp, err := search.NewClient().Search(query, mode, collection, limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}

			if resp.Error != "" {
				fmt.Fprintln(os.Stderr, resp.Error)
			}
			if len(resp.Results) == 0 {
				fmt.Println("No results found.")
				return nil
			}

			fmt.Printf("Found %d results:\n\n", resp.Total)
			for i, r := range resp.Results {
				fmt.Printf("%d. %s (%.2f)\n   %s\n", i+1, r.Title, r.Score, r.FilePath)
				if r.Snippet != "" {
					fmt.Printf("   %s\n", r.Snippet)
				}
				fmt.Println()
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "hybrid", "Search mode: keyword, semantic or hybrid")
	cmd.Flags().StringVarP(&collection, "collection", "c", "", "Collection to scope the search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum results")
	cmd.Flags().BoolVar(&local, "local", false, "Query the local index instead of qmd")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().BoolVar(&listCollections, "collections", false, "List available qmd collections")

	return cmd
}

func runLocalSearch(query, scope string, limit int, jsonOutput bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	idx, err := search.NewIndex(filepath.Join(cfg.DataDir, "index.db"))
	if err != nil {
		return fmt.Errorf("open local index: %w", err)
	}
	defer idx.Close()

	docs, err := idx.Search(query, &search.Options{Scope: scope, Limit: limit})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(docs)
	}

	if len(docs) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(docs))
	for i, doc := range docs {
		fmt.Printf("%d. %s\n   %s\n", i+1, doc.Title, doc.Path)
		if doc.Snippet != "" {
			fmt.Printf("   %s\n", doc.Snippet)
		}
		fmt.Println()
	}
	return nil
}
