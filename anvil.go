// Package anvil decodes world-save region files and searches them for block
// occurrences.
//
// The pipeline runs region container → compressed chunk payload → NBT tag
// tree → typed chunk model → block search, with each stage in its own
// subpackage:
//
//   - region: sector-table framing and lazy per-chunk decoding of .mca files
//   - compress: chunk payload compression schemes (gzip, zlib, raw, lz4, custom)
//   - nbt: the recursive named-binary-tag tree format
//   - chunk: palettes, bit-packed block states, and section layout
//   - blocks: identifier matching and occurrence collection
//   - world: multi-file aggregation with per-chunk error isolation
//
// # Basic Usage
//
// Find every repeater and lever in a save:
//
//	result, err := anvil.SearchBlocks(ctx, "/saves/my-world",
//	    []string{"minecraft:repeater", "minecraft:lever"})
//	if err != nil {
//	    return err
//	}
//	for _, occ := range result.Blocks["minecraft:repeater"] {
//	    fmt.Printf("repeater at (%d, %d, %d) delay=%s\n",
//	        occ.Coord.X, occ.Coord.Y, occ.Coord.Z, occ.Properties["delay"])
//	}
//
// Walk the chunks of one region file:
//
//	r, err := anvil.OpenRegion("/saves/my-world/region/r.0.0.mca")
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//	for entry := range r.Chunks() {
//	    ...
//	}
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the world and
// region packages, including save-directory resolution. For fine-grained
// control, use the subpackages directly.
package anvil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arloliu/anvil/region"
	"github.com/arloliu/anvil/world"
)

// SearchBlocks searches a save for the requested block identifiers.
//
// path may be a save directory (its "region" subdirectory is scanned), a
// directory of region files, or a single region file. Region files are
// enumerated in sorted name order so results are deterministic.
//
// The result maps every requested identifier to its occurrences in scan
// order; identifiers absent from the world map to empty slices. Corrupt files
// and chunks are reported in result.Failures, never as a fatal error.
//
// Available options:
//   - world.WithWorkers(n)
//   - world.WithMaxDecompressedSize(n)
//   - world.WithPackingRule(format.PackingPadded|PackingSpanning)
func SearchBlocks(ctx context.Context, path string, names []string, opts ...world.Option) (*world.Result, error) {
	paths, err := resolveRegionFiles(path)
	if err != nil {
		return nil, err
	}

	return world.Search(ctx, paths, names, opts...)
}

// OpenRegion opens a single region file for chunk-level access. The caller
// must Close the returned reader.
func OpenRegion(path string, opts ...region.Option) (*region.Reader, error) {
	return region.Open(path, opts...)
}

// resolveRegionFiles expands a save directory, region directory, or single
// region file path into the sorted list of region files to scan.
func resolveRegionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if !info.IsDir() {
		if !isRegionFile(path) {
			return nil, fmt.Errorf("%s is not a region file", path)
		}

		return []string{path}, nil
	}

	// A save directory keeps its region files under "region".
	dir := path
	if sub := filepath.Join(path, "region"); dirExists(sub) {
		dir = sub
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !isRegionFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no region files under %s", dir)
	}
	sort.Strings(paths)

	return paths, nil
}

func isRegionFile(name string) bool {
	return strings.HasSuffix(name, ".mca") || strings.HasSuffix(name, ".mcr")
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
