package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indigotools/hq/pkg/config"
	"github.com/indigotools/hq/pkg/models"
	"github.com/indigotools/hq/pkg/scan"
	"github.com/indigotools/hq/pkg/search"
)

func NewIndexCmd(log *logrus.Logger) *cobra.Command {
	var (
		scopes  []string
		rebuild bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the local search index",
		Long: `Index scans the configured scopes and writes every markdown file
into the local sqlite full-text index used by "hq search --local".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hqPath, cfgScopes, err := resolveScanTarget(scopes)
			if err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			idx, err := search.NewIndex(filepath.Join(cfg.DataDir, "index.db"))
			if err != nil {
				return fmt.Errorf("open local index: %w", err)
			}
			defer idx.Close()

			if rebuild {
				if err := idx.Reset(); err != nil {
					return fmt.Errorf("reset index: %w", err)
				}
			}

			indexed := 0
			for _, scopePattern := range cfgScopes {
				nodes, err := scan.ScanScopes(hqPath, []string{scopePattern})
				if err != nil {
					return err
				}
				for _, node := range nodes {
					indexed += indexTree(idx, node, scopePattern, log)
				}
			}

			fmt.Printf("Indexed %d files.\n", indexed)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", nil, "Scope pattern (repeatable, overrides config)")
	cmd.Flags().BoolVar(&rebuild, "rebuild", false, "Drop existing entries before indexing")

	return cmd
}

func indexTree(idx *search.Index, node *models.TreeNode, scope string, log *logrus.Logger) int {
	if !node.IsDirectory {
		if err := idx.IndexFile(node.Path, scope); err != nil {
			log.WithError(err).WithField("path", node.Path).Warn("index file")
			return 0
		}
		return 1
	}

	indexed := 0
	for _, child := range node.Children {
		indexed += indexTree(idx, child, scope, log)
	}
	return indexed
}
