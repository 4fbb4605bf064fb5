package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/indigotools/hq/pkg/models"
	"github.com/indigotools/hq/pkg/scan"
)

func NewScanCmd() *cobra.Command {
	var (
		jsonOutput bool
		scopes     []string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan the HQ directory for markdown files",
		Long: `Scan resolves the configured scope patterns against the HQ root and
prints one filtered file tree per matched scope directory. Only
directories containing markdown files appear.

Examples:
  hq scan                          # Configured scopes, tree output
  hq scan --json                   # Machine-readable output
  hq scan -s "teams/*/knowledge"   # Override scopes for this run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hqPath, cfgScopes, err := resolveScanTarget(scopes)
			if err != nil {
				return err
			}

			nodes, err := scan.ScanScopes(hqPath, cfgScopes)
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(nodes)
			}

			if len(nodes) == 0 {
				fmt.Println("No markdown files found in the configured scopes.")
				return nil
			}
			for _, node := range nodes {
				printTree(node)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output trees as JSON")
	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", nil, "Scope pattern (repeatable, overrides config)")

	return cmd
}

var (
	dirStyle   = color.New(color.FgBlue, color.Bold)
	countStyle = color.New(color.Faint)
	titleStyle = color.New(color.FgGreen)
)

func printTree(node *models.TreeNode) {
	indent := strings.Repeat("  ", node.Depth)
	if node.IsDirectory {
		dirStyle.Printf("%s%s/", indent, node.Name)
		countStyle.Printf(" (%d)\n", node.FileCount)
	} else {
		fmt.Printf("%s%s", indent, node.Name)
		if node.Title != "" {
			titleStyle.Printf("  %s", node.Title)
		}
		fmt.Println()
	}
	for _, child := range node.Children {
		printTree(child)
	}
}
