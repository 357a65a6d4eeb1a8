package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"tirescout/adapters/tabular"
	"tirescout/app"
	"tirescout/domain/catalog"
	"tirescout/internal/config"
)

func main() {
	// .env is optional for one-shot commands.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "tirescout",
		Short: "Search the slot car tire catalog from the command line",
	}

	rootCmd.AddCommand(
		newSearchCmd(),
		newFacetsCmd(),
		newInfoCmd(),
		newProfileCmd(),
		newExportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// searchFlags are the filter flags shared by search and export.
type searchFlags struct {
	compounds []string
	brand     string
	model     string
	position  string
	text      string
}

func bindSearchFlags(cmd *cobra.Command, flags *searchFlags) {
	cmd.Flags().StringSliceVar(&flags.compounds, "compound", nil, "Compound filter, repeatable (exact match)")
	cmd.Flags().StringVar(&flags.brand, "brand", "", "Brand filter (exact match)")
	cmd.Flags().StringVar(&flags.model, "model", "", "Model substring filter (case-insensitive)")
	cmd.Flags().StringVar(&flags.position, "position", "", "Position substring filter (case-insensitive)")
	cmd.Flags().StringVar(&flags.text, "q", "", "Free-text search over notes and part numbers")
}

func (f *searchFlags) criteria() catalog.Criteria {
	return catalog.Criteria{
		Compounds: f.compounds,
		Brand:     f.brand,
		Model:     f.model,
		Position:  f.position,
		Text:      f.text,
	}
}

func newSearchCmd() *cobra.Command {
	var dataFile, format string
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter the tire catalog and print matching rows",
		Long: `Filter the tire catalog with the same semantics as the web UI:
compound and brand match exactly (case-sensitive), model and position
match as case-insensitive substrings, and the free-text query searches
notes and part numbers.

Example: tirescout search --compound Silicone --model audi --format table`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), dataFile, flags.criteria(), format)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Tire data file (default: TIRE_DATA_FILE or Tire_master.csv)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json|csv")
	bindSearchFlags(cmd, flags)

	return cmd
}

func newFacetsCmd() *cobra.Command {
	var dataFile, format string

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "List the distinct compounds, brands, and positions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacets(cmd.Context(), dataFile, format)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Tire data file (default: TIRE_DATA_FILE or Tire_master.csv)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func newInfoCmd() *cobra.Command {
	var dataFile, format string

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show dataset identity and shape",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(cmd.Context(), dataFile, format)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Tire data file (default: TIRE_DATA_FILE or Tire_master.csv)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func newProfileCmd() *cobra.Command {
	var dataFile, format string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show per-column statistics for the loaded catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd.Context(), dataFile, format)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Tire data file (default: TIRE_DATA_FILE or Tire_master.csv)")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")

	return cmd
}

func newExportCmd() *cobra.Command {
	var dataFile, outPath string
	flags := &searchFlags{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered view to a CSV or XLSX file",
		Long: `Apply the given filters and write the matching rows to a file.
The output format follows the file extension (.csv or .xlsx).

Example: tirescout export --compound Rubber --out filtered_slot_tires.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), dataFile, flags.criteria(), outPath)
		},
	}

	cmd.Flags().StringVar(&dataFile, "data", "", "Tire data file (default: TIRE_DATA_FILE or Tire_master.csv)")
	cmd.Flags().StringVar(&outPath, "out", "filtered_slot_tires.csv", "Output file (.csv or .xlsx)")
	bindSearchFlags(cmd, flags)

	return cmd
}

// newService loads the catalog once for a one-shot command.
func newService(ctx context.Context, dataFile string) (*app.CatalogService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dataFile != "" {
		cfg.Data.FilePath = dataFile
	}

	source := tabular.NewDataReader(cfg.Data.FilePath, cfg.Data.SheetName)
	service := app.NewCatalogService(source)
	if _, err := service.Load(ctx); err != nil {
		return nil, err
	}
	return service, nil
}

func runSearch(ctx context.Context, dataFile string, criteria catalog.Criteria, format string) error {
	service, err := newService(ctx, dataFile)
	if err != nil {
		return err
	}

	result, err := service.Search(ctx, criteria)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		printTable(os.Stdout, result.Rows)
		fmt.Printf("\nFound %d of %d tire options\n", result.Matched, result.Total)
		return nil
	case "json":
		return printJSON(os.Stdout, map[string]interface{}{
			"criteria": result.Criteria,
			"columns":  catalog.Columns(),
			"rows":     result.Rows.Rows(),
			"matched":  result.Matched,
			"total":    result.Total,
		})
	case "csv":
		return tabular.WriteCSV(os.Stdout, result.Rows)
	default:
		return fmt.Errorf("invalid format: %s (expected table|json|csv)", format)
	}
}

func runFacets(ctx context.Context, dataFile, format string) error {
	service, err := newService(ctx, dataFile)
	if err != nil {
		return err
	}

	facets, err := service.Facets(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		fmt.Printf("Compounds: %s\n", strings.Join(facets.Compounds, ", "))
		fmt.Printf("Brands:    %s\n", strings.Join(facets.Brands, ", "))
		fmt.Printf("Positions: %s\n", strings.Join(facets.Positions, ", "))
		return nil
	case "json":
		return printJSON(os.Stdout, facets)
	default:
		return fmt.Errorf("invalid format: %s (expected table|json)", format)
	}
}

func runInfo(ctx context.Context, dataFile, format string) error {
	service, err := newService(ctx, dataFile)
	if err != nil {
		return err
	}

	info, err := service.Info(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		fmt.Printf("Source:       %s\n", info.SourcePath)
		fmt.Printf("Rows:         %d\n", info.RowCount)
		fmt.Printf("Columns:      %d (%s)\n", info.ColumnCount, strings.Join(info.Columns, ", "))
		fmt.Printf("Fingerprint:  %s\n", info.Fingerprint)
		fmt.Printf("Missing rate: %.1f%%\n", info.MissingRate*100)
		fmt.Printf("Loaded at:    %s\n", info.LoadedAt)
		return nil
	case "json":
		return printJSON(os.Stdout, info)
	default:
		return fmt.Errorf("invalid format: %s (expected table|json)", format)
	}
}

func runProfile(ctx context.Context, dataFile, format string) error {
	service, err := newService(ctx, dataFile)
	if err != nil {
		return err
	}

	profile, err := service.Profile(ctx)
	if err != nil {
		return err
	}

	switch format {
	case "table":
		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "COLUMN\tNON-EMPTY\tMISSING\tDISTINCT\tNUMERIC")
		for _, column := range profile.Columns {
			numeric := "-"
			if column.Numeric != nil {
				numeric = fmt.Sprintf("min %.2f  max %.2f  mean %.2f", column.Numeric.Min, column.Numeric.Max, column.Numeric.Mean)
			}
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", column.Name, column.NonEmpty, column.Missing, column.Distinct, numeric)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d rows profiled\n", profile.RowCount)
		return nil
	case "json":
		return printJSON(os.Stdout, profile)
	default:
		return fmt.Errorf("invalid format: %s (expected table|json)", format)
	}
}

func runExport(ctx context.Context, dataFile string, criteria catalog.Criteria, outPath string) error {
	ext := strings.ToLower(filepath.Ext(outPath))
	if ext != ".csv" && ext != ".xlsx" {
		return fmt.Errorf("unsupported export extension %q (use .csv or .xlsx)", ext)
	}

	service, err := newService(ctx, dataFile)
	if err != nil {
		return err
	}

	result, err := service.Search(ctx, criteria)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer f.Close()

	if ext == ".xlsx" {
		err = tabular.WriteXLSX(f, result.Rows)
	} else {
		err = tabular.WriteCSV(f, result.Rows)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Wrote %d of %d rows to %s\n", result.Matched, result.Total, outPath)
	return nil
}

func printTable(w io.Writer, table catalog.Table) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(catalog.Columns(), "\t"))
	for _, row := range table.Rows() {
		fmt.Fprintln(tw, strings.Join(row.Values(), "\t"))
	}
	tw.Flush()
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
