package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"progman/internal/crypto"
)

var overwrite bool

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the local account key",
	}
	cmd.AddCommand(accountNewCmd(), accountAddressCmd())
	return cmd
}

func accountNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate an account key, encrypted when a passphrase is given",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := wire.Accounts.Generate(passphrase)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Account created.\nAddress:     %s\nFingerprint: %s\n", addr, crypto.Fingerprint(addr))
			if passphrase == "" {
				fmt.Fprintln(out, "Warning: key stored unencrypted; use -p to protect it.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&overwrite, "force", false, "replace an existing key")
	return cmd
}

func accountAddressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "address",
		Short: "Print the account address",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, err := wire.Accounts.Address(passphrase)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Address:     %s\nFingerprint: %s\n", addr, crypto.Fingerprint(addr))
			return nil
		},
	}
}
