package main

import (
	"fmt"
	"os"

	"github.com/pdbtools/msfrewrite/pdb"
	"github.com/spf13/cobra"
)

var modulesCmd = &cobra.Command{
	Use:   "modules <pdb-file>",
	Short: "List the compilands contributing to this PDB",
	Args:  cobra.ExactArgs(1),
	RunE:  runModules,
}

func runModules(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read PDB: %w", err)
	}

	f, err := pdb.OpenBytes(data)
	if err != nil {
		return fmt.Errorf("failed to open PDB: %w", err)
	}

	mods, err := f.DBI().Modules()
	if err != nil {
		return fmt.Errorf("failed to read modules: %w", err)
	}

	for i, m := range mods {
		fmt.Fprintf(output, "%4d  sym_stream=%-5d  %s\n", i, m.ModuleSymStream, m.ModuleName)
	}
	return nil
}
