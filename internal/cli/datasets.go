package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/GSIL-UCalgary/Hackathon15-AlphaEarth-Alberta/internal/dataset"
)

// NewDatasetsCommand creates the "datasets" command: list the dataset
// records the orchestrator knows about.
func NewDatasetsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "datasets",
		Short: "List known dataset records",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			records, err := dataset.Load(settings.DatasetsFile)
			if err != nil {
				return err
			}

			ids := make([]string, 0, len(records))
			for id := range records {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			for _, id := range ids {
				ds := records[id]
				fmt.Printf("%s: %s\n", ds.ID, ds.Description)
				fmt.Printf("  collection: %s\n", ds.Collection)
				fmt.Printf("  window:     %s .. %s\n", ds.StartDate, ds.EndDate)
				fmt.Printf("  bands:      %d (%s ...)\n", len(ds.Bands), ds.Bands[0].Name)
				fmt.Printf("  reducer:    %s, quality: %s, crs: %s, scale: %gm\n",
					ds.Reducer, ds.Quality.Kind, ds.CRS, ds.ScaleMeters)
			}
			return nil
		},
	}
}
