package dataset

import (
	"fmt"
	"sort"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/raster"
)

// Landsat collection-2 surface reflectance stores reflectance as scaled
// integers; physical = raw*2.75e-05 - 0.2.
const (
	landsatSRScale  = 2.75e-05
	landsatSROffset = -0.2
)

// QA_PIXEL bit positions flagging unusable Landsat pixels.
const (
	qaBitDilatedCloud = 1
	qaBitCirrus       = 2
	qaBitCloud        = 3
	qaBitCloudShadow  = 4
	qaBitSnow         = 5
)

// Sentinel-2 scene classification codes flagging unusable pixels.
const (
	sclNoData          = 0
	sclSaturated       = 1
	sclCloudShadow     = 3
	sclUnclassified    = 7
	sclCloudMediumProb = 8
	sclCloudHighProb   = 9
	sclCirrus          = 10
	sclSnow            = 11
)

const defaultMaxPixels = 1e13

// Builtin returns the dataset records for the Alberta 2020 products. The
// map is rebuilt on every call so callers may mutate their copy freely.
func Builtin() map[string]*Dataset {
	return map[string]*Dataset{
		"landsat8":   landsat8(),
		"sentinel2":  sentinel2(),
		"alphaearth": alphaEarth(),
	}
}

// ByID returns one built-in dataset record.
func ByID(id string) (*Dataset, error) {
	ds, ok := Builtin()[id]
	if !ok {
		return nil, fmt.Errorf("unknown dataset %q (known: %v)", id, IDs())
	}
	return ds, nil
}

// IDs lists the built-in dataset identifiers, sorted.
func IDs() []string {
	b := Builtin()
	ids := make([]string, 0, len(b))
	for id := range b {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func landsat8() *Dataset {
	names := []string{"SR_B2", "SR_B3", "SR_B4", "SR_B5", "SR_B6", "SR_B7"}
	bands := make([]Band, len(names))
	for i, n := range names {
		bands[i] = Band{
			Name:      n,
			DomainMin: 0,
			DomainMax: 1,
			Scale:     landsatSRScale,
			Offset:    landsatSROffset,
		}
	}
	return &Dataset{
		ID:          "landsat8",
		Description: "Landsat-8 Collection-2 surface reflectance",
		Collection:  "LANDSAT/LC08/C02/T1_L2",
		Region:      "Alberta",
		Year:        2020,
		StartDate:   "2020-05-01",
		EndDate:     "2020-09-30",
		Tag:         "L8_SR",
		Family:      "Landsat8_30m",
		Bands:       bands,
		QualityBand: "QA_PIXEL",
		Quality: raster.QualityScheme{
			Kind: raster.QualityBitfield,
			Bits: []uint{qaBitDilatedCloud, qaBitCirrus, qaBitCloud, qaBitCloudShadow, qaBitSnow},
		},
		Reducer:     raster.ReducerMedian,
		CRS:         "EPSG:3979",
		ScaleMeters: 30,
		MaxPixels:   defaultMaxPixels,
	}
}

func sentinel2() *Dataset {
	names := []string{"B2", "B3", "B4", "B5", "B6", "B7", "B8", "B8A", "B11", "B12"}
	bands := make([]Band, len(names))
	for i, n := range names {
		bands[i] = Band{
			Name:      n,
			DomainMin: 0,
			DomainMax: 1,
			Scale:     1e-4,
			Offset:    0,
		}
	}
	return &Dataset{
		ID:          "sentinel2",
		Description: "Sentinel-2 harmonized surface reflectance",
		Collection:  "COPERNICUS/S2_SR_HARMONIZED",
		Region:      "Alberta",
		Year:        2020,
		StartDate:   "2020-05-01",
		EndDate:     "2020-09-30",
		Tag:         "S2",
		Family:      "Sentinel2_30m",
		Bands:       bands,
		QualityBand: "SCL",
		Quality: raster.QualityScheme{
			Kind: raster.QualityCategorical,
			Codes: []int{
				sclNoData, sclSaturated, sclCloudShadow, sclUnclassified,
				sclCloudMediumProb, sclCloudHighProb, sclCirrus, sclSnow,
			},
		},
		Reducer:     raster.ReducerMedian,
		CRS:         "EPSG:3979",
		ScaleMeters: 30,
		MaxPixels:   defaultMaxPixels,
	}
}

func alphaEarth() *Dataset {
	// 64 embedding channels A00..A63, each in [-1,1], no quality band.
	bands := make([]Band, 64)
	for i := range bands {
		bands[i] = Band{
			Name:      fmt.Sprintf("A%02d", i),
			DomainMin: -1,
			DomainMax: 1,
			Scale:     1,
			Offset:    0,
		}
	}
	return &Dataset{
		ID:          "alphaearth",
		Description: "AlphaEarth annual satellite embeddings",
		Collection:  "GOOGLE/SATELLITE_EMBEDDING/V1/ANNUAL",
		Region:      "Alberta",
		Year:        2020,
		StartDate:   "2020-01-01",
		EndDate:     "2021-01-01",
		Tag:         "",
		Family:      "AlphaEarth_30m",
		Bands:       bands,
		Quality:     raster.QualityScheme{Kind: raster.QualityNone},
		Reducer:     raster.ReducerMosaic,
		CRS:         "EPSG:4326",
		ScaleMeters: 30,
		MaxPixels:   defaultMaxPixels,
	}
}
