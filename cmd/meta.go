package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/indigotools/hq/pkg/note"
)

func NewMetaCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "meta <file>",
		Short: "Show metadata for one file",
		Long: `Meta prints word count, estimated reading time, file size, modified
time, symlink resolution and the last git commit date for a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := note.Metadata(args[0])
			if err != nil {
				return err
			}

			commitDate, err := note.LastCommitDate(args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				out := struct {
					WordCount          int    `json:"wordCount"`
					ReadingTimeMinutes int    `json:"readingTimeMinutes"`
					FileSize           int64  `json:"fileSize"`
					Modified           int64  `json:"modified,omitempty"`
					FilePath           string `json:"filePath"`
					SymlinkTarget      string `json:"symlinkTarget,omitempty"`
					SourceRepoName     string `json:"sourceRepoName,omitempty"`
					LastCommitDate     string `json:"lastCommitDate,omitempty"`
				}{
					meta.WordCount, meta.ReadingTimeMinutes, meta.FileSize,
					meta.Modified, meta.FilePath, meta.SymlinkTarget,
					meta.SourceRepoName, commitDate,
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			fmt.Printf("Path:         %s\n", meta.FilePath)
			fmt.Printf("Words:        %d\n", meta.WordCount)
			fmt.Printf("Reading time: %d min\n", meta.ReadingTimeMinutes)
			fmt.Printf("Size:         %d bytes\n", meta.FileSize)
			if meta.SymlinkTarget != "" {
				fmt.Printf("Resolves to:  %s\n", meta.SymlinkTarget)
			}
			if meta.SourceRepoName != "" {
				fmt.Printf("Source repo:  %s\n", meta.SourceRepoName)
			}
			if commitDate != "" {
				fmt.Printf("Last commit:  %s\n", commitDate)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output metadata as JSON")

	return cmd
}
