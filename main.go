package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/indigotools/hq/cmd"
	"github.com/indigotools/hq/pkg/config"
)

var (
	cfgFile string
	verbose bool
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	rootCmd := &cobra.Command{
		Use:   "hq",
		Short: "Index and watch a markdown document workspace",
		Long: `hq indexes a document workspace rooted at an HQ directory. Scope
patterns select which subtrees are visible; scan builds filtered trees
of markdown files, watch streams debounced change events for them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cobra.OnInitialize(func() {
		config.Init(cfgFile)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default ~/.config/hq/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("hq", "", "HQ root directory (overrides config)")
	cobra.CheckErr(viper.BindPFlag("hq_path", rootCmd.PersistentFlags().Lookup("hq")))

	rootCmd.AddCommand(cmd.NewScanCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd(log))
	rootCmd.AddCommand(cmd.NewSearchCmd())
	rootCmd.AddCommand(cmd.NewIndexCmd(log))
	rootCmd.AddCommand(cmd.NewMetaCmd())
	rootCmd.AddCommand(cmd.NewConfigCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
