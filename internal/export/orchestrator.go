// Package export drives per-tile export jobs: it partitions the region
// into tiles, builds one job per (tile, band) with collision-free naming,
// and submits the jobs to the external platform's asynchronous queue.
package export

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb/geojson"
	"golang.org/x/sync/semaphore"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/dataset"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/geometry"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/grid"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/naming"
	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/platform"
)

const (
	// DefaultWorkers bounds concurrent submissions to the platform.
	DefaultWorkers = 4

	defaultFileFormat = "GeoTIFF"
)

// Options configures one export run. The target bands and dataset are
// explicit run parameters, never process-global state, so multiple
// datasets can be processed in one process without interference.
type Options struct {
	// NumTiles is the requested tile count; see grid.GridSizeFor for the
	// non-perfect-square policy.
	NumTiles int

	// Bands restricts the run to a subset of the dataset's bands. Empty
	// means all bands. A name absent from the dataset aborts the run
	// before any job is submitted.
	Bands []string

	// DestinationRoot is the platform-side folder root for this run.
	DestinationRoot string

	// Workers bounds concurrent job submissions; DefaultWorkers when 0.
	Workers int
}

// JobFailure records one job whose submission the platform rejected.
type JobFailure struct {
	FileNamePrefix string
	Band           string
	TileID         int
	Err            error
}

// Report summarizes one run. A run where some submissions failed is a
// partial success, reported as "N of M jobs submitted", not an error.
type Report struct {
	RunID         string
	Dataset       string
	GridSize      int
	TilesPlanned  int
	JobsPlanned   int
	JobsSubmitted int

	// JobIDs maps file name prefix to the platform's job id for every
	// accepted submission.
	JobIDs map[string]string

	Failures []JobFailure
}

// Orchestrator submits per-tile, per-band export jobs.
type Orchestrator struct {
	exporter platform.Exporter
	workers  int

	// trackEvent reports run analytics if set.
	trackEvent func(event string, properties map[string]interface{})
}

// New creates an orchestrator. workers <= 0 falls back to DefaultWorkers.
func New(exporter platform.Exporter, workers int) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Orchestrator{
		exporter: exporter,
		workers:  workers,
	}
}

// SetTrackEventCallback wires optional analytics reporting.
func (o *Orchestrator) SetTrackEventCallback(cb func(string, map[string]interface{})) {
	o.trackEvent = cb
}

// job pairs one tile with one band, ready for submission.
type job struct {
	tile grid.Tile
	band dataset.Band
	req  platform.ExportRequest
}

// Run partitions the region and submits one export job per surviving
// (tile, band) pair, in deterministic order with bounded concurrency.
//
// Band/config errors abort before any submission. Per-job platform errors
// are collected in the report and do not block the remaining jobs.
// Cancelling ctx stops submitting further jobs but does not touch jobs the
// platform already accepted; those are outside this orchestrator's
// authority. Returns the report together with ctx's error when the run was
// cut short.
func (o *Orchestrator) Run(ctx context.Context, region *geometry.Region, ds *dataset.Dataset, opts Options) (*Report, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	if opts.DestinationRoot == "" {
		return nil, fmt.Errorf("destination root is required")
	}

	bands, err := resolveBands(ds, opts.Bands)
	if err != nil {
		return nil, err
	}

	partition, err := grid.Compute(region, opts.NumTiles)
	if err != nil {
		return nil, err
	}

	report := &Report{
		RunID:        uuid.NewString(),
		Dataset:      ds.ID,
		GridSize:     partition.GridSize,
		TilesPlanned: len(partition.Tiles),
		JobsPlanned:  len(partition.Tiles) * len(bands),
		JobIDs:       make(map[string]string),
	}

	if len(partition.Tiles) == 0 {
		// Valid degenerate result: the region intersected no grid cell.
		log.Printf("[Export] run %s: region %s produced 0 tiles, nothing to submit", report.RunID, region.Name())
		return report, nil
	}

	jobs := buildJobs(ds, partition.Tiles, bands, opts.DestinationRoot)

	log.Printf("[Export] run %s: dataset=%s grid=%dx%d tiles=%d bands=%d jobs=%d workers=%d",
		report.RunID, ds.ID, partition.GridSize, partition.GridSize,
		len(partition.Tiles), len(bands), len(jobs), o.workers)

	o.submit(ctx, jobs, report)

	log.Printf("[Export] run %s: %d of %d jobs submitted (%d failed)",
		report.RunID, report.JobsSubmitted, report.JobsPlanned, len(report.Failures))

	if o.trackEvent != nil {
		o.trackEvent("export_run_finished", map[string]interface{}{
			"runId":         report.RunID,
			"dataset":       ds.ID,
			"tiles":         report.TilesPlanned,
			"jobsPlanned":   report.JobsPlanned,
			"jobsSubmitted": report.JobsSubmitted,
			"failures":      len(report.Failures),
		})
	}

	if err := ctx.Err(); err != nil {
		return report, err
	}
	return report, nil
}

// resolveBands expands an empty selection to the full band list and
// rejects any name absent from the dataset before submission starts, so a
// typo never produces a partially populated destination folder. Repeated
// names collapse to their first occurrence: a (tile, band) pair is
// submitted at most once per run.
func resolveBands(ds *dataset.Dataset, requested []string) ([]dataset.Band, error) {
	if len(requested) == 0 {
		return ds.Bands, nil
	}
	bands := make([]dataset.Band, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for _, name := range requested {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		b, ok := ds.Band(name)
		if !ok {
			return nil, fmt.Errorf("band %q not present in dataset %s (available: %v)", name, ds.ID, ds.BandNames())
		}
		bands = append(bands, b)
	}
	return bands, nil
}

// buildJobs assembles every (tile, band) export request up front. Name
// uniqueness is by construction from (band, tileId, row, col); no locking
// is involved.
func buildJobs(ds *dataset.Dataset, tiles []grid.Tile, bands []dataset.Band, root string) []job {
	jobs := make([]job, 0, len(tiles)*len(bands))
	for _, b := range bands {
		folder := naming.BandFolder(root, ds.Year, ds.Family, b.Name)
		for _, t := range tiles {
			prefix := naming.FilePrefix(ds.Region, ds.Year, ds.Tag, b.Name, t.ID, t.Row, t.Col)
			jobs = append(jobs, job{
				tile: t,
				band: b,
				req: platform.ExportRequest{
					Recipe: platform.Recipe{
						Collection:  ds.Collection,
						StartDate:   ds.StartDate,
						EndDate:     ds.EndDate,
						Band:        b.Name,
						QualityBand: ds.QualityBand,
						Quality:     ds.Quality,
						Reducer:     ds.Reducer,
						DomainMin:   b.DomainMin,
						DomainMax:   b.DomainMax,
						Scale:       b.Scale,
						Offset:      b.Offset,
					},
					Description:    naming.JobDescription(ds.Description, b.Name, t.ID, t.Row, t.Col),
					FileNamePrefix: prefix,
					Region:         geojson.NewGeometry(t.Clipped),
					Scale:          ds.ScaleMeters,
					CRS:            ds.CRS,
					MaxPixels:      ds.MaxPixels,
					Folder:         folder,
					FileFormat:     defaultFileFormat,
					FormatOptions: map[string]string{
						"cloudOptimized": "true",
						"noDataValue":    "0",
					},
				},
			})
		}
	}
	return jobs
}

// submit pushes jobs to the platform with bounded concurrency. Each job is
// submitted exactly once; failures are recorded and do not stop the rest.
func (o *Orchestrator) submit(ctx context.Context, jobs []job, report *Report) {
	sem := semaphore.NewWeighted(int64(o.workers))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, j := range jobs {
		if err := sem.Acquire(ctx, 1); err != nil {
			// Context cancelled: stop submitting further jobs. Jobs the
			// platform already accepted keep running there.
			log.Printf("[Export] submission stopped: %v", err)
			break
		}

		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			defer sem.Release(1)

			jobID, err := o.exporter.SubmitExport(ctx, j.req)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				report.Failures = append(report.Failures, JobFailure{
					FileNamePrefix: j.req.FileNamePrefix,
					Band:           j.band.Name,
					TileID:         j.tile.ID,
					Err:            err,
				})
				log.Printf("[Export] job %s failed: %v", j.req.FileNamePrefix, err)
				return
			}
			report.JobsSubmitted++
			report.JobIDs[j.req.FileNamePrefix] = jobID
		}(j)
	}

	wg.Wait()
}
