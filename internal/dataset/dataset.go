// Package dataset holds the declarative per-dataset configuration records
// consumed by the shared masking, compositing, and normalization logic.
// Each record describes one imagery product end to end (collection id,
// date window, bands, quality scheme, reducer, projection, naming), so the
// same pipeline engine serves Landsat-8, Sentinel-2, and AlphaEarth
// without per-dataset code paths.
package dataset

import (
	"fmt"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/raster"
)

// Band is one spectral or embedding channel selected for extraction.
type Band struct {
	// Name is the source band identifier, e.g. "SR_B4", "B8A", "A17".
	Name string `json:"name" yaml:"name"`

	// DomainMin/DomainMax bound the physical value range after the
	// source affine.
	DomainMin float64 `json:"domainMin" yaml:"domainMin"`
	DomainMax float64 `json:"domainMax" yaml:"domainMax"`

	// Scale and Offset convert the source's scaled integer encoding to
	// physical units. Scale 1 / Offset 0 means values are already physical.
	Scale  float64 `json:"scale" yaml:"scale"`
	Offset float64 `json:"offset" yaml:"offset"`
}

// Spec converts the band to the normalizer's spec type.
func (b Band) Spec() raster.BandSpec {
	return raster.BandSpec{
		Name:      b.Name,
		DomainMin: b.DomainMin,
		DomainMax: b.DomainMax,
		Scale:     b.Scale,
		Offset:    b.Offset,
	}
}

// Dataset is the full configuration record for one imagery product.
type Dataset struct {
	// ID identifies the record ("landsat8", "sentinel2", "alphaearth").
	ID string `json:"id" yaml:"id"`

	// Description is a human-readable label used in export job descriptions.
	Description string `json:"description" yaml:"description"`

	// Collection is the platform image-collection identifier.
	Collection string `json:"collection" yaml:"collection"`

	// Region labels the area of interest in file names, e.g. "Alberta".
	Region string `json:"region" yaml:"region"`

	// Year anchors the temporal filter and the destination folder layout.
	Year int `json:"year" yaml:"year"`

	// StartDate/EndDate bound the temporal filter (YYYY-MM-DD, inclusive).
	StartDate string `json:"startDate" yaml:"startDate"`
	EndDate   string `json:"endDate" yaml:"endDate"`

	// Tag is the dataset marker in file name prefixes ("L8_SR", "S2").
	// AlphaEarth uses an empty tag: its band names are self-identifying.
	Tag string `json:"tag" yaml:"tag"`

	// Family is the folder component grouping one product's band folders.
	Family string `json:"family" yaml:"family"`

	// Bands lists the channels to export.
	Bands []Band `json:"bands" yaml:"bands"`

	// QualityBand names the categorical or bitfield quality layer; empty
	// when the product ships no quality band.
	QualityBand string `json:"qualityBand,omitempty" yaml:"qualityBand,omitempty"`

	// Quality describes which quality values mark pixels unusable.
	Quality raster.QualityScheme `json:"quality" yaml:"quality"`

	// Reducer collapses the temporal stack ("median" or "mosaic").
	Reducer raster.Reducer `json:"reducer" yaml:"reducer"`

	// CRS is the target projection of exported tiles.
	CRS string `json:"crs" yaml:"crs"`

	// ScaleMeters is the target ground sample distance.
	ScaleMeters float64 `json:"scaleMeters" yaml:"scaleMeters"`

	// MaxPixels is the per-job pixel ceiling passed to the platform.
	MaxPixels int64 `json:"maxPixels" yaml:"maxPixels"`
}

// Validate checks the record before any job is built from it.
func (d *Dataset) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("dataset has empty id")
	}
	if d.Collection == "" {
		return fmt.Errorf("dataset %s: collection is required", d.ID)
	}
	if d.Region == "" {
		return fmt.Errorf("dataset %s: region label is required", d.ID)
	}
	if d.Year == 0 {
		return fmt.Errorf("dataset %s: year is required", d.ID)
	}
	if d.Family == "" {
		return fmt.Errorf("dataset %s: folder family is required", d.ID)
	}
	if len(d.Bands) == 0 {
		return fmt.Errorf("dataset %s: at least one band is required", d.ID)
	}
	seen := make(map[string]struct{}, len(d.Bands))
	for _, b := range d.Bands {
		if err := b.Spec().Validate(); err != nil {
			return fmt.Errorf("dataset %s: %w", d.ID, err)
		}
		if _, dup := seen[b.Name]; dup {
			return fmt.Errorf("dataset %s: duplicate band %s", d.ID, b.Name)
		}
		seen[b.Name] = struct{}{}
	}
	if err := d.Reducer.Validate(); err != nil {
		return fmt.Errorf("dataset %s: %w", d.ID, err)
	}
	if err := d.Quality.Validate(); err != nil {
		return fmt.Errorf("dataset %s: %w", d.ID, err)
	}
	if d.Quality.Kind != raster.QualityNone && d.QualityBand == "" {
		return fmt.Errorf("dataset %s: quality scheme %q needs a qualityBand", d.ID, d.Quality.Kind)
	}
	if d.CRS == "" {
		return fmt.Errorf("dataset %s: crs is required", d.ID)
	}
	if d.ScaleMeters <= 0 {
		return fmt.Errorf("dataset %s: scaleMeters must be positive", d.ID)
	}
	if d.MaxPixels <= 0 {
		return fmt.Errorf("dataset %s: maxPixels must be positive", d.ID)
	}
	return nil
}

// Band returns the named band record.
func (d *Dataset) Band(name string) (Band, bool) {
	for _, b := range d.Bands {
		if b.Name == name {
			return b, true
		}
	}
	return Band{}, false
}

// BandNames returns the band identifiers in record order.
func (d *Dataset) BandNames() []string {
	names := make([]string, len(d.Bands))
	for i, b := range d.Bands {
		names[i] = b.Name
	}
	return names
}
