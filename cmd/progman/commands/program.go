package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"progman/internal/domain"
	"progman/internal/manager"
)

func resolveCmd() *cobra.Command {
	var showImports bool
	cmd := &cobra.Command{
		Use:   "resolve <program>",
		Short: "Print a program's source as the configured resolver finds it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(func(m *manager.Manager) error {
				p, imports, err := m.ResolveProgram(cmd.Context(), domain.ProgramID(args[0]))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if showImports {
					for _, imp := range imports {
						fmt.Fprintf(out, "// %s\n%s\n", imp.ID, imp.Source)
					}
					fmt.Fprintf(out, "// %s\n", p.ID)
				}
				fmt.Fprint(out, p.Source)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&showImports, "imports", false, "print imported programs first")
	return cmd
}

func buildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <program>",
		Short: "Resolve a program and check it against its imports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(func(m *manager.Manager) error {
				p, err := m.BuildProgram(cmd.Context(), domain.ProgramID(args[0]))
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Built %s\n", p.ID)
				for _, f := range p.Functions {
					fmt.Fprintf(out, "  %s (%d inputs)\n", f.Name, len(f.Inputs))
				}
				return nil
			})
		},
	}
}

func deployCmd() *cobra.Command {
	var fee uint64
	cmd := &cobra.Command{
		Use:   "deploy <program>",
		Short: "Deploy a program and broadcast the deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(func(m *manager.Manager) error {
				tx, err := m.DeployProgram(cmd.Context(), domain.ProgramID(args[0]), fee, passphrase)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deployed %s in transaction %s\n", args[0], tx.ID)
				return nil
			})
		},
	}
	cmd.Flags().Uint64Var(&fee, "fee", 0, "fee offered for the deployment")
	return cmd
}

func executeCmd() *cobra.Command {
	var fee uint64
	cmd := &cobra.Command{
		Use:   "execute <program> <function> [inputs...]",
		Short: "Execute a program function; broadcasts when a network is configured",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withManager(func(m *manager.Manager) error {
				tx, err := m.ExecuteProgram(cmd.Context(), domain.ProgramID(args[0]), args[1], args[2:], fee, passphrase)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), tx)
			})
		},
	}
	cmd.Flags().Uint64Var(&fee, "fee", 0, "fee offered for the execution")
	return cmd
}
