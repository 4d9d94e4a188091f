// Package platform is the boundary to the external geospatial compute and
// export service. The service owns image storage, pixel resampling,
// reprojection, and job execution; this package only describes what to
// render and where to deliver it, and submits that description as an
// asynchronous job.
package platform

import (
	"context"

	"github.com/paulmach/orb/geojson"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/raster"
)

// Recipe is the declarative processing pipeline the platform evaluates for
// one export: filter the collection, mask, composite, and normalize one
// band. It mirrors the local raster engine's semantics exactly, so results
// can be verified against the in-memory implementation.
type Recipe struct {
	Collection  string               `json:"collection"`
	StartDate   string               `json:"startDate"`
	EndDate     string               `json:"endDate"`
	Band        string               `json:"band"`
	QualityBand string               `json:"qualityBand,omitempty"`
	Quality     raster.QualityScheme `json:"quality"`
	Reducer     raster.Reducer       `json:"reducer"`
	DomainMin   float64              `json:"domainMin"`
	DomainMax   float64              `json:"domainMax"`
	Scale       float64              `json:"scale"`
	Offset      float64              `json:"offset"`
}

// ExportRequest describes one asynchronous export job. Field names follow
// the platform's job API.
type ExportRequest struct {
	Recipe         Recipe            `json:"recipe"`
	Description    string            `json:"description"`
	FileNamePrefix string            `json:"fileNamePrefix"`
	Region         *geojson.Geometry `json:"region"`
	Scale          float64           `json:"scale"`
	CRS            string            `json:"crs"`
	MaxPixels      int64             `json:"maxPixels"`
	Folder         string            `json:"folder"`
	FileFormat     string            `json:"fileFormat"`
	FormatOptions  map[string]string `json:"formatOptions,omitempty"`
}

// Exporter submits export jobs to the platform's asynchronous queue.
// Submission is fire-and-forget: the platform executes and retries the
// job; callers only learn whether the submission itself was accepted.
// Implementations must honour context cancellation, since submission is a
// potentially high-latency remote call.
type Exporter interface {
	SubmitExport(ctx context.Context, req ExportRequest) (jobID string, err error)
}
