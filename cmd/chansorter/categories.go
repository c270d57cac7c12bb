package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/UberPyro/ChannelSorter2/registry"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Read or replace the project-category registry",
}

var categoriesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the registered project category ids",
	RunE: func(cmd *cobra.Command, _ []string) error {
		reg := registry.NewFile(cfg.RegistryPath)
		ids, err := reg.IDs(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			fmt.Println(id)
		}

		return nil
	},
}

var categoriesSetCmd = &cobra.Command{
	Use:   "set <id>...",
	Short: "Replace the registered project category ids",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ids := make([]int64, 0, len(args))
		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q: %w", arg, err)
			}
			ids = append(ids, id)
		}

		reg := registry.NewFile(cfg.RegistryPath)
		if err := reg.SetIDs(cmd.Context(), ids); err != nil {
			return err
		}
		fmt.Printf("registered %d categories in %s\n", len(ids), cfg.RegistryPath)

		return nil
	},
}

func init() {
	categoriesCmd.AddCommand(categoriesGetCmd)
	categoriesCmd.AddCommand(categoriesSetCmd)
}
