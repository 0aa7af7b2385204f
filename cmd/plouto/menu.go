package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/b/plouto/pkg/menu"
)

func newMenuCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Inspect the menu registry",
	}

	var role string
	printCmd := &cobra.Command{
		Use:   "print",
		Short: "Print the registry as a tree",
		Example: `  # Everything
  plouto menu print

  # What a vendor workspace sees
  plouto menu print --role VENDOR`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forest, err := a.registry()
			if err != nil {
				return err
			}
			if role != "" {
				r, err := menu.ParseRole(role)
				if err != nil {
					return err
				}
				forest = menu.FilterRoots(forest, r)
			}
			fmt.Fprint(cmd.OutOrStdout(), menu.Format(forest))
			return nil
		},
	}
	printCmd.Flags().StringVar(&role, "role", "", "show only roots visible to this role")

	validateCmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a registry file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfg.Registry.Path
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("no registry file given and registry.path is not set")
			}
			forest, err := menu.Load(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d roots, %d nodes\n", path, len(forest), forest.Len())
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write the active registry as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forest, err := a.registry()
			if err != nil {
				return err
			}
			return menu.Encode(cmd.OutOrStdout(), forest)
		},
	}

	cmd.AddCommand(printCmd, validateCmd, exportCmd)
	return cmd
}
