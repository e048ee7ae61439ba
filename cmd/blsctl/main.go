// Command blsctl queries Bureau of Labor Statistics time series from the
// command line.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/RakeemRanger/bls-mcp/internal/adapter/bls"
	"github.com/RakeemRanger/bls-mcp/internal/config"
	"github.com/RakeemRanger/bls-mcp/internal/observability"
	"github.com/RakeemRanger/bls-mcp/internal/tools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "blsctl",
		Usage: "query Bureau of Labor Statistics time series",
		Commands: []*cli.Command{
			{
				Name:   "catalog",
				Usage:  "list the tracked series catalog",
				Flags:  globalFlags(),
				Action: catalogAction,
			},
			{
				Name:      "series",
				Usage:     "fetch every observation for one series ID",
				UsageText: "blsctl series SERIES_ID [options]",
				Flags:     globalFlags(),
				Action:    seriesAction,
			},
			{
				Name:      "search",
				Usage:     "search tracked series by keyword",
				UsageText: "blsctl search KEYWORD [options]",
				Flags:     globalFlags(),
				Action:    searchAction,
			},
			{
				Name:   "summary",
				Usage:  "latest observation for every tracked series",
				Flags:  globalFlags(),
				Action: summaryAction,
			},
			{
				Name:      "state",
				Usage:     "LAUS labor force data for a state",
				UsageText: "blsctl state STATE [options]",
				Flags:     append(laborFlags(), globalFlags()...),
				Action:    stateAction,
			},
			{
				Name:      "county",
				Usage:     "LAUS labor force data for a county FIPS code",
				UsageText: "blsctl county FIPS [options]",
				Flags: append(append(laborFlags(), &cli.StringFlag{
					Name:  "name",
					Usage: "display name for the county",
				}), globalFlags()...),
				Action: countyAction,
			},
			{
				Name:   "states",
				Usage:  "list US states with FIPS codes",
				Flags:  globalFlags(),
				Action: statesAction,
			},
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "emit raw JSON instead of a table",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "log client activity to stderr",
		},
	}
}

func laborFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "measure",
			Usage: "LAUS measure code (03 unemployment rate, 04 unemployment, 05 employment, 06 labor force)",
			Value: "03",
		},
		&cli.IntFlag{
			Name:  "start-year",
			Usage: "first year of data (default: two years before the latest complete year)",
		},
		&cli.IntFlag{
			Name:  "end-year",
			Usage: "last year of data (default: latest complete year)",
		},
	}
}

// newToolkit builds the full client stack for one invocation.
func newToolkit(cmd *cli.Command) (*tools.Toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelError
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	metrics := observability.NewMetrics()

	client := bls.NewClient(cfg, logger, metrics)
	return tools.New(client, logger, metrics), nil
}

func catalogAction(_ context.Context, cmd *cli.Command) error {
	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	entries := kit.ListSeries()
	if cmd.Bool("json") {
		return emitJSON(entries)
	}

	w := newTable()
	fmt.Fprintln(w, "SERIES ID\tCATEGORY\tNAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\n", e.SeriesID, e.Category, e.Name)
	}
	return w.Flush()
}

func seriesAction(ctx context.Context, cmd *cli.Command) error {
	seriesID := cmd.Args().First()
	if seriesID == "" {
		return errors.New("series ID argument required")
	}

	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}
	return emitRecords(cmd, kit.SeriesData(ctx, seriesID))
}

func searchAction(ctx context.Context, cmd *cli.Command) error {
	keyword := cmd.Args().First()
	if keyword == "" {
		return errors.New("keyword argument required")
	}

	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	resp := kit.SearchSeries(ctx, keyword)
	if cmd.Bool("json") {
		return emitJSON(resp)
	}
	if resp.Message != "" {
		fmt.Println(resp.Message)
		return nil
	}

	w := newTable()
	fmt.Fprintln(w, "SERIES ID\tLATEST\tPERIOD\tNAME")
	for _, r := range resp.Results {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.SeriesID, r.LatestValue, r.LatestPeriod, r.SeriesName)
	}
	return w.Flush()
}

func summaryAction(ctx context.Context, cmd *cli.Command) error {
	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	summaries := kit.AllData(ctx)
	if cmd.Bool("json") {
		return emitJSON(summaries)
	}
	if len(summaries) == 0 {
		return errors.New("no data available; check connectivity with --verbose")
	}

	w := newTable()
	fmt.Fprintln(w, "SERIES ID\tLATEST\tPERIOD\tRECORDS\tNAME")
	for _, s := range summaries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n", s.SeriesID, s.LatestValue, s.LatestPeriod, s.TotalRecords, s.SeriesName)
	}
	return w.Flush()
}

func stateAction(ctx context.Context, cmd *cli.Command) error {
	state := cmd.Args().First()
	if state == "" {
		return errors.New("state argument required (name, abbreviation, or FIPS code)")
	}

	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	records := kit.StateData(ctx, state, cmd.String("measure"), cmd.Int("start-year"), cmd.Int("end-year"))
	return emitRecords(cmd, records)
}

func countyAction(ctx context.Context, cmd *cli.Command) error {
	fips := cmd.Args().First()
	if fips == "" {
		return errors.New("county FIPS argument required")
	}

	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	records := kit.CountyData(ctx, fips, cmd.String("name"), cmd.String("measure"), cmd.Int("start-year"), cmd.Int("end-year"))
	return emitRecords(cmd, records)
}

func statesAction(_ context.Context, cmd *cli.Command) error {
	kit, err := newToolkit(cmd)
	if err != nil {
		return err
	}

	listings := kit.ListStates()
	if cmd.Bool("json") {
		return emitJSON(listings)
	}

	w := newTable()
	fmt.Fprintln(w, "STATE\tABBR\tFIPS\tEXAMPLE SERIES")
	for _, s := range listings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.State, s.Abbreviation, s.FIPS, s.ExampleSeriesID)
	}
	return w.Flush()
}

// emitRecords prints toolkit records. A single error record becomes the
// command's error so the exit code reflects the failure.
func emitRecords(cmd *cli.Command, records []tools.Record) error {
	if cmd.Bool("json") {
		return emitJSON(records)
	}
	if len(records) == 1 && records[0].Error != "" {
		return errors.New(records[0].Error)
	}

	w := newTable()
	fmt.Fprintln(w, "SERIES ID\tYEAR\tPERIOD\tVALUE\tNAME")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", r.SeriesID, r.Year, r.Period, r.Value, r.SeriesName)
	}
	return w.Flush()
}

func emitJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
