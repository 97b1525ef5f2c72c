package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"progman/internal/domain"
	"progman/internal/manager"
)

func transferCmd() *cobra.Command {
	var fee uint64
	cmd := &cobra.Command{
		Use:   "transfer <recipient> <amount>",
		Short: "Transfer credits to another address",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseUint(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}
			return withManager(func(m *manager.Manager) error {
				tx, err := m.Transfer(cmd.Context(), domain.Address(args[0]), amount, fee, passphrase)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}
	cmd.Flags().Uint64Var(&fee, "fee", 0, "fee offered for the transfer")
	return cmd
}

func broadcastCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "broadcast <transaction.json>",
		Short: "Broadcast a previously built transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			var tx domain.Transaction
			if err := json.Unmarshal(b, &tx); err != nil {
				return fmt.Errorf("failed to parse transaction: %w", err)
			}
			return withManager(func(m *manager.Manager) error {
				if err := m.SendTransaction(cmd.Context(), tx); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Broadcast %s\n", tx.ID)
				return nil
			})
		},
	}
}
