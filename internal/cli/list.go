package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list <kind>",
		Short: "List every item of a kind",
		Long: `List prints one line per item, ordered by ID. With --json the items are
written as a JSON array including every field.

Example:
  stockroom list electronics
  stockroom list groceries --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(args[0])
			if err != nil {
				return err
			}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				if kind == types.KindElectronics {
					return listItems(cmd, m, m.Electronics, s.flags.jsonMode)
				}
				return listItems(cmd, m, m.Groceries, s.flags.jsonMode)
			})
		},
	}
}

func listItems[V types.Stockable[V]](cmd *cobra.Command, m *warehouse.Manager, repo types.Repository[V], jsonMode bool) error {
	if !jsonMode {
		warehouse.PrintAll(m, repo)
		return nil
	}
	items, err := repo.All()
	if err != nil {
		return sysError(fmt.Errorf("list: %w", err))
	}
	if items == nil {
		items = []V{}
	}
	return writeJSON(cmd.OutOrStdout(), items)
}
