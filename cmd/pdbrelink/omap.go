package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pdbtools/msfrewrite/msf"
	"github.com/pdbtools/msfrewrite/omap"
	"github.com/pdbtools/msfrewrite/pdb"
	"github.com/spf13/cobra"
)

var omapCmd = &cobra.Command{
	Use:   "omap <pdb-file> <mapping-file>",
	Short: "Install an OMAP address translation table into a PDB",
	Long: `Read a source->target address mapping file (one "source target" pair
per line; each address is parsed as hex, with an optional 0x prefix, and as
decimal only when it does not parse as 32-bit hex) and install it as a pair of OMAP streams (to-source
and from-source), wiring both into the DBI optional debug header and nopping
the stale section map. The rewritten PDB is written to --output, or stdout
if not given.`,
	Args: cobra.ExactArgs(2),
	RunE: runOmap,
}

func runOmap(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read PDB: %w", err)
	}

	mapping, err := readMappingFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read mapping file: %w", err)
	}

	f, err := pdb.OpenBytes(data)
	if err != nil {
		return fmt.Errorf("failed to open PDB: %w", err)
	}

	toSrc := omap.New()
	fromSrc := omap.New()
	for _, e := range mapping {
		toSrc.Insert(omap.Entry{Source: e.target, Target: e.source})
		fromSrc.Insert(omap.Entry{Source: e.source, Target: e.target})
	}

	dir := f.StreamDirectory()
	blockSize, err := f.BlockSize()
	if err != nil {
		return fmt.Errorf("failed to read block size: %w", err)
	}

	toSrcIdx := pushOmapStream(dir, toSrc, blockSize)
	fromSrcIdx := pushOmapStream(dir, fromSrc, blockSize)

	if err := f.DBI().NopSectionMaps(); err != nil {
		return fmt.Errorf("failed to nop section map: %w", err)
	}

	extras, err := f.DBI().ExtraStreamsMut()
	if err != nil {
		return fmt.Errorf("failed to access optional debug header: %w", err)
	}
	extras.SetOmapToSrc(uint16(toSrcIdx))
	extras.SetOmapFromSrc(uint16(fromSrcIdx))

	out, err := f.Commit(dir)
	if err != nil {
		return fmt.Errorf("failed to commit rewritten PDB: %w", err)
	}

	if _, err := output.Write(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	fmt.Fprintf(os.Stderr, "installed %d address mappings (to-src stream %d, from-src stream %d)\n",
		len(mapping), toSrcIdx, fromSrcIdx)
	return nil
}

// pushOmapStream adds a brand-new stream with no pages allocated yet; the
// pages it needs are assigned by StreamDirectory.Flush's growth path when
// the directory is committed.
func pushOmapStream(dir *msf.StreamDirectory, s *omap.Stream, pageSize uint32) msf.StreamIndex {
	bytes := s.Serialize()
	view := msf.SourceView{Bytes: bytes, Pages: msf.NewPageList(pageSize)}
	return dir.Push(msf.Stream{Size: uint32(len(bytes)), View: view})
}

type addressMapping struct {
	source, target uint32
}

func readMappingFile(path string) ([]addressMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var mappings []addressMapping
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("malformed line %q: expected \"source target\"", line)
		}
		source, err := parseAddress(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid source address %q: %w", fields[0], err)
		}
		target, err := parseAddress(fields[1])
		if err != nil {
			return nil, fmt.Errorf("invalid target address %q: %w", fields[1], err)
		}
		mappings = append(mappings, addressMapping{source: source, target: target})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mappings, nil
}

func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 32)
	if err != nil {
		v, err = strconv.ParseUint(s, 10, 32)
		if err != nil {
			return 0, err
		}
	}
	return uint32(v), nil
}
