package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/raster"
)

func TestBuiltinRecordsValidate(t *testing.T) {
	for id, ds := range Builtin() {
		assert.NoError(t, ds.Validate(), "dataset %s", id)
		assert.Equal(t, id, ds.ID)
	}
}

func TestBuiltinLandsat8(t *testing.T) {
	ds, err := ByID("landsat8")
	require.NoError(t, err)

	assert.Equal(t, "LANDSAT/LC08/C02/T1_L2", ds.Collection)
	assert.Equal(t, "L8_SR", ds.Tag)
	assert.Len(t, ds.Bands, 6)
	assert.Equal(t, raster.ReducerMedian, ds.Reducer)
	assert.Equal(t, raster.QualityBitfield, ds.Quality.Kind)
	assert.Equal(t, "QA_PIXEL", ds.QualityBand)
	assert.Equal(t, "EPSG:3979", ds.CRS)
	assert.Equal(t, 30.0, ds.ScaleMeters)

	b, ok := ds.Band("SR_B4")
	require.True(t, ok)
	assert.Equal(t, 2.75e-05, b.Scale)
	assert.Equal(t, -0.2, b.Offset)

	_, ok = ds.Band("SR_B9")
	assert.False(t, ok)
}

func TestBuiltinSentinel2(t *testing.T) {
	ds, err := ByID("sentinel2")
	require.NoError(t, err)

	assert.Len(t, ds.Bands, 10)
	assert.Equal(t, raster.QualityCategorical, ds.Quality.Kind)
	assert.Contains(t, ds.Quality.Codes, 9, "high-probability cloud must be excluded")
	assert.Equal(t, "S2", ds.Tag)
}

func TestBuiltinAlphaEarth(t *testing.T) {
	ds, err := ByID("alphaearth")
	require.NoError(t, err)

	require.Len(t, ds.Bands, 64)
	assert.Equal(t, "A00", ds.Bands[0].Name)
	assert.Equal(t, "A63", ds.Bands[63].Name)
	assert.Equal(t, "", ds.Tag, "AlphaEarth file names carry no dataset tag")
	assert.Equal(t, raster.ReducerMosaic, ds.Reducer)
	assert.Equal(t, raster.QualityNone, ds.Quality.Kind)
	assert.Equal(t, "EPSG:4326", ds.CRS)

	for _, b := range ds.Bands {
		assert.Equal(t, -1.0, b.DomainMin)
		assert.Equal(t, 1.0, b.DomainMax)
	}
}

func TestByIDUnknown(t *testing.T) {
	_, err := ByID("modis")
	assert.Error(t, err)
}

func TestValidateRejectsBadRecords(t *testing.T) {
	base := func() *Dataset {
		ds, _ := ByID("landsat8")
		return ds
	}

	tests := []struct {
		name   string
		mutate func(*Dataset)
	}{
		{"no bands", func(d *Dataset) { d.Bands = nil }},
		{"duplicate band", func(d *Dataset) { d.Bands = append(d.Bands, d.Bands[0]) }},
		{"bad reducer", func(d *Dataset) { d.Reducer = "mean" }},
		{"no crs", func(d *Dataset) { d.CRS = "" }},
		{"zero scale", func(d *Dataset) { d.ScaleMeters = 0 }},
		{"zero maxPixels", func(d *Dataset) { d.MaxPixels = 0 }},
		{"quality without band", func(d *Dataset) { d.QualityBand = "" }},
		{"empty domain", func(d *Dataset) { d.Bands[0].DomainMax = d.Bands[0].DomainMin }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := base()
			tt.mutate(ds)
			assert.Error(t, ds.Validate())
		})
	}
}

func TestLoadWithoutOverrides(t *testing.T) {
	records, err := Load("")
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestLoadOverridesReplacesRecord(t *testing.T) {
	overrides := `
datasets:
  - id: landsat8
    description: Landsat-8 winter window
    collection: LANDSAT/LC08/C02/T1_L2
    region: Alberta
    year: 2020
    startDate: "2020-01-01"
    endDate: "2020-03-31"
    tag: L8_SR
    family: Landsat8_30m
    bands:
      - name: SR_B4
        domainMin: 0
        domainMax: 1
        scale: 2.75e-05
        offset: -0.2
    qualityBand: QA_PIXEL
    quality:
      kind: bitfield
      bits: [3, 4, 5]
    reducer: median
    crs: EPSG:3979
    scaleMeters: 30
    maxPixels: 10000000000000
`
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(overrides), 0644))

	records, err := Load(path)
	require.NoError(t, err)

	ds := records["landsat8"]
	require.NotNil(t, ds)
	assert.Equal(t, "2020-01-01", ds.StartDate)
	assert.Len(t, ds.Bands, 1)

	// Untouched records keep their built-in definition.
	assert.Len(t, records["alphaearth"].Bands, 64)
}

func TestLoadOverridesRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "datasets.yaml")
	require.NoError(t, os.WriteFile(path, []byte("datasets:\n  - id: broken\n"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
