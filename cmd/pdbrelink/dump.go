package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pdbtools/msfrewrite/msf"
	"github.com/spf13/cobra"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <pdb-file> <stream-index>",
	Short: "Hex dump a raw MSF stream",
	Args:  cobra.ExactArgs(2),
	RunE:  runDump,
}

func runDump(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read PDB: %w", err)
	}

	idx, err := strconv.ParseUint(args[1], 10, 16)
	if err != nil {
		return fmt.Errorf("invalid stream index %q: %w", args[1], err)
	}

	container, err := msf.Open(data)
	if err != nil {
		return fmt.Errorf("failed to open PDB: %w", err)
	}

	s, err := container.GetStream(msf.StreamIndex(idx))
	if err != nil {
		return fmt.Errorf("failed to read stream %d: %w", idx, err)
	}

	r := msf.NewStreamReader(s)
	buf := make([]byte, r.Size())
	if len(buf) > 0 {
		if _, err := r.Read(buf); err != nil {
			return fmt.Errorf("failed to read stream %d: %w", idx, err)
		}
	}

	hexDump(output, buf)
	return nil
}

func hexDump(w interface{ Write([]byte) (int, error) }, data []byte) {
	const width = 16
	for off := 0; off < len(data); off += width {
		end := off + width
		if end > len(data) {
			end = len(data)
		}
		line := data[off:end]

		fmt.Fprintf(w, "%08x  ", off)
		for i := 0; i < width; i++ {
			if i < len(line) {
				fmt.Fprintf(w, "%02x ", line[i])
			} else {
				fmt.Fprint(w, "   ")
			}
			if i == width/2-1 {
				fmt.Fprint(w, " ")
			}
		}

		fmt.Fprint(w, " |")
		for _, b := range line {
			if b >= 0x20 && b < 0x7f {
				fmt.Fprintf(w, "%c", b)
			} else {
				fmt.Fprint(w, ".")
			}
		}
		fmt.Fprintln(w, "|")
	}
}
