package cmd

import (
	"encoding/json"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/indigotools/hq/pkg/models"
	"github.com/indigotools/hq/pkg/watch"
)

func NewWatchCmd(log *logrus.Logger) *cobra.Command {
	var scopes []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch scope directories and stream change events",
		Long: `Watch resolves the configured scope patterns like scan does, then
watches every resolved directory recursively. Debounced change events
are written to stdout as JSON lines until interrupted:

  {"path":"/hq/knowledge/public/api.md","kind":"modify"}`,
		RunE: func(cmd *cobra.Command, args []string) error {
			hqPath, cfgScopes, err := resolveScanTarget(scopes)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			var encMu sync.Mutex
			sink := func(event models.ChangeEvent) {
				encMu.Lock()
				defer encMu.Unlock()
				if err := enc.Encode(event); err != nil {
					log.WithError(err).Warn("write change event")
				}
			}

			handle := watch.NewHandle(log)
			if err := handle.Start(hqPath, cfgScopes, sink); err != nil {
				return err
			}
			defer handle.Stop()

			log.WithField("hq", hqPath).Debug("watching")

			interrupt := make(chan os.Signal, 1)
			signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
			<-interrupt
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&scopes, "scope", "s", nil, "Scope pattern (repeatable, overrides config)")

	return cmd
}
