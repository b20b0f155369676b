package main

import (
	"fmt"
	"os"

	"github.com/pdbtools/msfrewrite/pdb"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <pdb-file>",
	Short: "Display PDB container and DBI header information",
	Long:  `Display general information about a PDB file's MSF container and DBI stream: version, GUID, age, block size, and stream count.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	pdbPath := args[0]

	data, err := os.ReadFile(pdbPath)
	if err != nil {
		return fmt.Errorf("failed to read PDB: %w", err)
	}

	f, err := pdb.OpenBytes(data)
	if err != nil {
		return fmt.Errorf("failed to open PDB: %w", err)
	}

	info := f.Info()
	blockSize, err := f.BlockSize()
	if err != nil {
		return fmt.Errorf("failed to read block size: %w", err)
	}

	fmt.Fprintf(output, "PDB File: %s\n", pdbPath)
	fmt.Fprintf(output, "Version: %d\n", info.Version)
	fmt.Fprintf(output, "Signature: 0x%08X\n", info.Signature)
	fmt.Fprintf(output, "Age: %d\n", info.Age)
	fmt.Fprintf(output, "GUID: {%s}\n", info.GUIDString())
	fmt.Fprintf(output, "Block Size: %d\n", blockSize)
	fmt.Fprintf(output, "Number of Streams: %d\n", f.NumStreams())

	header, err := f.DBI().Header()
	if err == nil {
		fmt.Fprintf(output, "DBI Age: %d\n", header.Age())
		fmt.Fprintf(output, "DBI Machine: 0x%04X\n", header.Machine())
	}

	if extras, err := f.DBI().ExtraStreams(); err == nil {
		fmt.Fprintf(output, "OMAP To Src Stream: %d\n", extras.OmapToSrc())
		fmt.Fprintf(output, "OMAP From Src Stream: %d\n", extras.OmapFromSrc())
		fmt.Fprintf(output, "Section Headers Stream: %d\n", extras.SectionHeaders())
	}

	return nil
}
