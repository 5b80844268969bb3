package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/warehouse"
)

func newInitCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize stockroom storage",
		Long:  "Create the configuration and data directories, then initialize the configured backend.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := os.MkdirAll(s.cfg.DataDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create data directory: %w", err))
			}
			if err := s.withManager(cmd, func(*warehouse.Manager) error { return nil }); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Stockroom initialized (backend: %s, data: %s, config: %s)\n",
				s.cfg.Backend, s.cfg.DataDir, configPath(s.configDir))
			return nil
		},
	}
}
