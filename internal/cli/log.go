package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/stockroom/internal/ledger"
	"github.com/mesh-intelligence/stockroom/pkg/types"
)

func newLogCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Append to and read the inventory ledger",
		Long: `The ledger is an append-only record of stock arrivals kept in
inventory_log.jsonl inside the data directory. It is independent of the
item repositories.`,
	}
	cmd.AddCommand(newLogAddCmd(s))
	cmd.AddCommand(newLogListCmd(s))
	return cmd
}

// openLedger loads the ledger file from the data directory.
func (s *session) openLedger() (*ledger.Ledger[types.LogEntry], error) {
	l := ledger.New[types.LogEntry](filepath.Join(s.cfg.DataDir, ledger.FileName))
	if err := l.Load(); err != nil {
		return nil, sysError(fmt.Errorf("%s: %w", l.Path(), err))
	}
	return l, nil
}

func newLogAddCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <name> <quantity>",
		Short: "Append an entry to the ledger",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, name, quantity, err := parseItemArgs(args)
			if err != nil {
				return err
			}
			l, err := s.openLedger()
			if err != nil {
				return err
			}
			entry := ledger.NewEntry(id, name, quantity, nil)
			l.Add(entry)
			if err := l.Save(); err != nil {
				return sysError(fmt.Errorf("%s: %w", l.Path(), err))
			}
			if s.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entry)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatEntry(entry))
			return nil
		},
	}
}

func newLogListCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every ledger entry in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := s.openLedger()
			if err != nil {
				return err
			}
			entries := l.All()
			if s.flags.jsonMode {
				if entries == nil {
					entries = []types.LogEntry{}
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			for _, e := range entries {
				fmt.Fprintln(cmd.OutOrStdout(), formatEntry(e))
			}
			return nil
		},
	}
}

func formatEntry(e types.LogEntry) string {
	return fmt.Sprintf("ID: %d, Name: %s, Quantity: %d, Date Added: %s, Ref: %s",
		e.ID, e.Name, e.Quantity, e.DateAdded.Format(time.RFC3339), e.Ref)
}
