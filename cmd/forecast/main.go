// Command forecast runs one-shot call-volume forecasts from the terminal.
package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"callforecast/internal/directory"
	"callforecast/internal/forecast"
	"callforecast/internal/model"
	"callforecast/internal/predictor"
)

var (
	modelPath     string
	columnsPath   string
	directoryPath string
)

func main() {
	root := &cobra.Command{
		Use:           "forecast",
		Short:         "Forecast hourly patient-call volume by category",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&modelPath, "model", "artifacts/call_forecasting_model.json", "trained model artifact")
	root.PersistentFlags().StringVar(&columnsPath, "columns", "artifacts/model_feature_columns.json", "feature column list artifact")
	root.PersistentFlags().StringVar(&directoryPath, "directory", "artifacts/hospital_directory.csv", "hospital directory CSV")

	root.AddCommand(newRunCmd(), newUnitsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRunCmd() *cobra.Command {
	var (
		startFlag string
		hours     int
		unitFlags []string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate a forecast for one or more units",
		Example: `  forecast run --start 2024-03-04T08:00 --hours 8 --unit Floor1=20 --unit Floor2=15`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := resolveStart(startFlag)
			if err != nil {
				return err
			}
			census, err := parseUnitFlags(unitFlags)
			if err != nil {
				return err
			}

			svc, err := loadService()
			if err != nil {
				return err
			}

			res, err := svc.Forecast(forecast.Request{Start: start, Hours: hours, Units: census})
			if err != nil {
				return err
			}

			printTable(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().StringVar(&startFlag, "start", "", "forecast start time (default: next full hour)")
	cmd.Flags().IntVar(&hours, "hours", 8, "forecast window length in hours")
	cmd.Flags().StringArrayVar(&unitFlags, "unit", nil, "unit census as name=occupied_rooms (repeatable)")
	cmd.MarkFlagRequired("unit")

	return cmd
}

func newUnitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units",
		Short: "List the units in the hospital directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := directory.LoadCSVFile(directoryPath)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "HOSPITAL\tUNIT\tORGANIZATION")
			for _, e := range dir.Entries() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", e.HospitalName, e.UnitName, e.OrganizationID)
			}
			return w.Flush()
		},
	}
}

func loadService() (*forecast.Service, error) {
	schema, m, err := predictor.LoadArtifacts(modelPath, columnsPath)
	if err != nil {
		return nil, err
	}
	dir, err := directory.LoadCSVFile(directoryPath)
	if err != nil {
		return nil, err
	}
	return forecast.NewService(schema, m, dir, zerolog.Nop()), nil
}

func resolveStart(flag string) (time.Time, error) {
	if flag == "" {
		return time.Now().Truncate(time.Hour).Add(time.Hour), nil
	}
	return model.ParseTimestamp(flag)
}

// parseUnitFlags turns repeated name=count flags into a census map using
// the occupied-rooms convention.
func parseUnitFlags(flags []string) (model.CensusInput, error) {
	census := make(model.CensusInput, len(flags))
	for _, f := range flags {
		name, countStr, ok := strings.Cut(f, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --unit %q, expected name=occupied_rooms", f)
		}
		count, err := strconv.Atoi(countStr)
		if err != nil {
			return nil, fmt.Errorf("invalid census in --unit %q: %v", f, err)
		}
		census[name] = model.UnitCensus{model.CensusRoomsWithPatients: count}
	}
	return census, nil
}

func printTable(out io.Writer, res *forecast.Result) {
	table := res.Table

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "HOUR\t%s\tTOTAL\n", strings.Join(table.Categories, "\t"))
	for i, hour := range table.Hours {
		cells := make([]string, len(table.Rows[i]))
		for j, v := range table.Rows[i] {
			cells[j] = strconv.FormatFloat(v, 'f', 1, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\n", hour.Format("2006-01-02 15:04"), strings.Join(cells, "\t"), table.HourTotals[i])
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal predicted calls: %.1f\n", table.GrandTotal)
	fmt.Fprintf(out, "Peak hour: %s (%.1f calls)\n", table.PeakHour.Format("2006-01-02 15:04"), table.PeakTotal)

	categoryTotals := make([]string, len(table.Categories))
	for i, c := range table.Categories {
		categoryTotals[i] = fmt.Sprintf("%s=%.1f", c, table.CategoryTotals[i])
	}
	sort.Strings(categoryTotals)
	fmt.Fprintf(out, "By category: %s\n", strings.Join(categoryTotals, " "))
}
