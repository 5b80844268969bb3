package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/warehouse"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

// expiryLayout is the date format accepted by --expiry.
const expiryLayout = time.DateOnly

func newAddCmd(s *session) *cobra.Command {
	add := &cobra.Command{
		Use:   "add",
		Short: "Insert a new item",
		Long: `Add inserts an item directly into its repository. The insert is not
caught: an ID that is already taken fails the command.`,
	}
	add.AddCommand(newAddElectronicsCmd(s))
	add.AddCommand(newAddGroceriesCmd(s))
	return add
}

func newAddElectronicsCmd(s *session) *cobra.Command {
	var brand string
	var warranty int

	cmd := &cobra.Command{
		Use:   "electronics <id> <name> <quantity>",
		Short: "Insert an electronic item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, quantity, err := parseItemArgs(args)
			if err != nil {
				return err
			}
			item := types.ElectronicItem{ID: id, Name: name, Quantity: quantity, Brand: brand, WarrantyMonths: warranty}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				return insertItem(s, cmd, m.Electronics, item)
			})
		},
	}
	cmd.Flags().StringVar(&brand, "brand", "", "manufacturer brand")
	cmd.Flags().IntVar(&warranty, "warranty-months", 0, "warranty period in months")
	return cmd
}

func newAddGroceriesCmd(s *session) *cobra.Command {
	var expiry string

	cmd := &cobra.Command{
		Use:   "groceries <id> <name> <quantity>",
		Short: "Insert a grocery item",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, quantity, err := parseItemArgs(args)
			if err != nil {
				return err
			}
			item := types.GroceryItem{ID: id, Name: name, Quantity: quantity}
			if expiry != "" {
				item.ExpiryDate, err = time.ParseInLocation(expiryLayout, expiry, time.UTC)
				if err != nil {
					return userError(fmt.Errorf("invalid --expiry %q: want YYYY-MM-DD", expiry))
				}
			}
			return s.withManager(cmd, func(m *warehouse.Manager) error {
				return insertItem(s, cmd, m.Groceries, item)
			})
		},
	}
	cmd.Flags().StringVar(&expiry, "expiry", "", "expiry date (YYYY-MM-DD)")
	return cmd
}

// parseItemArgs parses <id> <name> <quantity>. A negative quantity is
// rejected before anything is stored.
func parseItemArgs(args []string) (id int, name string, quantity int, err error) {
	if id, err = parseInt("id", args[0]); err != nil {
		return 0, "", 0, err
	}
	if quantity, err = parseInt("quantity", args[2]); err != nil {
		return 0, "", 0, err
	}
	if quantity < 0 {
		return 0, "", 0, userError(types.InvalidQuantity(types.OpInsert, id, quantity))
	}
	return id, args[1], quantity, nil
}

// insertItem inserts item into repo and echoes it back.
func insertItem[V types.Stockable[V]](s *session, cmd *cobra.Command, repo types.Repository[V], item V) error {
	if err := repo.Insert(item); err != nil {
		return classify(err)
	}
	return s.emitItem(cmd, item)
}
