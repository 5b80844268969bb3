package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/memory"
	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newSeedCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the starting set of items",
		Long: `Seed inserts three electronics and three groceries. Items whose ID is
already taken are skipped, so seeding twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				report := m.Seed()
				if s.flags.jsonMode {
					return writeJSON(cmd.OutOrStdout(), report)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d items (%d skipped)\n", report.Inserted, report.Skipped)
				return nil
			})
		},
	}
}

func newDemoCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the reference scenario against a fresh in-memory store",
		Long: `Demo seeds an empty in-memory store, lists both repositories, then
shows the three error kinds: a duplicate insert, removing a missing item and
setting a negative quantity. Nothing is persisted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m := warehouse.New(
				memory.New[types.ElectronicItem](),
				memory.New[types.GroceryItem](),
				warehouse.WithOutput(cmd.OutOrStdout()),
				warehouse.WithLogger(s.log),
			)
			if err := warehouse.RunDemo(m); err != nil {
				return sysError(fmt.Errorf("demo: %w", err))
			}
			return nil
		},
	}
}
