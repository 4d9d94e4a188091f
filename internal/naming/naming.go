// Package naming implements the file and folder naming contract that the
// downstream merge/clip/stack tooling keys off. Mergers reassemble the
// mosaic from the R{row}C{col} suffix and group per-channel folders by
// band, so these formats must stay byte-stable across runs.
package naming

import (
	"fmt"
	"path"
	"strconv"
)

// FilePrefix builds the collision-free destination file name prefix for
// one (tile, band) export:
//
//	{region}_{year}_{tag}_{band}_tile_{tileId}_R{row}C{col}
//
// An empty tag is omitted along with its separator; AlphaEarth files are
// named Alberta_2020_A00_tile_0_R0C1 because the embedding band name
// already identifies the dataset.
func FilePrefix(region string, year int, tag, band string, tileID, row, col int) string {
	if tag == "" {
		return fmt.Sprintf("%s_%d_%s_tile_%d_R%dC%d", region, year, band, tileID, row, col)
	}
	return fmt.Sprintf("%s_%d_%s_%s_tile_%d_R%dC%d", region, year, tag, band, tileID, row, col)
}

// BandFolder builds the deterministic destination folder for one band:
//
//	{root}/{year}/{family}/Band_{band}
//
// Repeated runs with the same dataset/year/band land in the same folder
// without operator intervention. Forward slashes are used regardless of
// host OS: the folder names a destination on the export platform, not a
// local path.
func BandFolder(root string, year int, family, band string) string {
	return path.Join(root, strconv.Itoa(year), family, "Band_"+band)
}

// JobDescription builds the human-readable export job description.
func JobDescription(datasetLabel, band string, tileID, row, col int) string {
	return fmt.Sprintf("%s %s tile %d (R%dC%d)", datasetLabel, band, tileID, row, col)
}
