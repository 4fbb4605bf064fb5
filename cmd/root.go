// Package cmd holds the hq subcommand constructors.
package cmd

import (
	"fmt"

	"github.com/indigotools/hq/pkg/config"
)

// resolveScanTarget returns the HQ root and the scope patterns to use,
// preferring an explicit per-run override over the configuration.
func resolveScanTarget(override []string) (string, []string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", nil, err
	}
	if cfg.HQPath == "" {
		return "", nil, fmt.Errorf("no HQ path configured; set hq_path in the config file or pass --hq")
	}

	scopes := cfg.Scopes
	if len(override) > 0 {
		scopes = override
	}
	if len(scopes) == 0 {
		scopes = config.DefaultScopes
	}
	return cfg.HQPath, scopes, nil
}
