package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// parseTarget parses the <kind> <id> <n> arguments shared by the stock
// commands.
func parseTarget(args []string, valueName string) (kind string, id, value int, err error) {
	if kind, err = parseKind(args[0]); err != nil {
		return "", 0, 0, err
	}
	if id, err = parseInt("id", args[1]); err != nil {
		return "", 0, 0, err
	}
	if len(args) > 2 {
		if value, err = parseInt(valueName, args[2]); err != nil {
			return "", 0, 0, err
		}
	}
	return kind, id, value, nil
}

func newRestockCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "restock <kind> <id> <delta>",
		Short: "Change an item's quantity by delta",
		Long: `Restock adds delta (which may be negative) to the item's quantity.
A missing item or a result below zero is reported and nothing changes; the
command still succeeds.

Example:
  stockroom restock electronics 1 5
  stockroom restock groceries 101 -- -10`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, delta, err := parseTarget(args, "delta")
			if err != nil {
				return err
			}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				if kind == types.KindElectronics {
					return restock(s, cmd, m, m.Electronics, id, delta)
				}
				return restock(s, cmd, m, m.Groceries, id, delta)
			})
		},
	}
}

func restock[V types.Stockable[V]](s *session, cmd *cobra.Command, m *warehouse.Manager, repo types.Repository[V], id, delta int) error {
	if !warehouse.IncreaseStock(m, repo, id, delta) {
		return nil
	}
	item, err := repo.Get(id)
	if err != nil {
		return classify(err)
	}
	return s.emitItem(cmd, item)
}

func newRemoveCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <kind> <id>",
		Short: "Remove an item by ID",
		Long: `Remove deletes the item permanently. A missing item is reported and the
command still succeeds.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, _, err := parseTarget(args, "")
			if err != nil {
				return err
			}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				var removed bool
				if kind == types.KindElectronics {
					removed = warehouse.RemoveByID(m, m.Electronics, id)
				} else {
					removed = warehouse.RemoveByID(m, m.Groceries, id)
				}
				if removed {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed %s/%d\n", kind, id)
				}
				return nil
			})
		},
	}
}

func newSetQuantityCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "set-quantity <kind> <id> <quantity>",
		Short: "Replace an item's quantity",
		Long: `Set-quantity calls the repository directly. A negative quantity or a
missing item fails the command with exit code 1.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, id, quantity, err := parseTarget(args, "quantity")
			if err != nil {
				return err
			}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				if kind == types.KindElectronics {
					return setQuantity(s, cmd, m.Electronics, id, quantity)
				}
				return setQuantity(s, cmd, m.Groceries, id, quantity)
			})
		},
	}
}

func setQuantity[V types.Stockable[V]](s *session, cmd *cobra.Command, repo types.Repository[V], id, quantity int) error {
	if err := repo.UpdateQuantity(id, quantity); err != nil {
		return classify(err)
	}
	item, err := repo.Get(id)
	if err != nil {
		return classify(err)
	}
	return s.emitItem(cmd, item)
}
