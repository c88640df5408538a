package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jwarwick/hr-explore/adapters/csvfile"
	excelreport "github.com/jwarwick/hr-explore/adapters/excel"
	"github.com/jwarwick/hr-explore/adapters/postgres"
	"github.com/jwarwick/hr-explore/adapters/report"
	"github.com/jwarwick/hr-explore/app"
	"github.com/jwarwick/hr-explore/domain/batted"
	domainrun "github.com/jwarwick/hr-explore/domain/run"
	"github.com/jwarwick/hr-explore/internal"
	"github.com/jwarwick/hr-explore/internal/config"
	"github.com/jwarwick/hr-explore/internal/testkit"
	"github.com/jwarwick/hr-explore/ports"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "hr-explore",
		Short: "Batted-ball cohort analysis around an equipment-change breakpoint",
	}

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newSynthCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd() *cobra.Command {
	var targetYear, offsetDays, qqResolution int
	var alpha float64
	var save bool
	var xlsxOut, mdOut, htmlOut string

	cmd := &cobra.Command{
		Use:   "analyze [csv-files...]",
		Short: "Clean, segment and test batted-ball event files",
		Long: `Run the full pipeline over one or more Statcast-style CSV exports.

Files are concatenated before ingestion; the breakpoint is the first game
date of the target season plus the configured day offset.

Example: hr-explore analyze data/2015.csv data/2016.csv --target-year 2016 --offset-days 50`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("target-year") {
				cfg.Analysis.TargetYear = targetYear
			}
			if cmd.Flags().Changed("offset-days") {
				cfg.Analysis.DayOffset = offsetDays
			}
			if cmd.Flags().Changed("alpha") {
				cfg.Analysis.Alpha = alpha
			}
			if cmd.Flags().Changed("qq-resolution") {
				cfg.Analysis.QQResolution = qqResolution
			}
			if xlsxOut != "" {
				cfg.Output.ExcelPath = xlsxOut
			}
			if mdOut != "" {
				cfg.Output.MarkdownPath = mdOut
			}

			return runAnalyze(cmd.Context(), cfg, args, save, htmlOut)
		},
	}

	cmd.Flags().IntVar(&targetYear, "target-year", 2016, "Season whose first game anchors the breakpoint")
	cmd.Flags().IntVar(&offsetDays, "offset-days", 50, "Calendar days added to the season's first game date")
	cmd.Flags().Float64Var(&alpha, "alpha", 0.05, "Significance threshold for the report narrative")
	cmd.Flags().IntVar(&qqResolution, "qq-resolution", 0, "Quantile points (0 = max of the two sample sizes)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to DATABASE_URL")
	cmd.Flags().StringVar(&xlsxOut, "xlsx", "", "Write an xlsx workbook to this path")
	cmd.Flags().StringVar(&mdOut, "md", "", "Write a markdown report to this path")
	cmd.Flags().StringVar(&htmlOut, "html", "", "Write an HTML report to this path")

	return cmd
}

func runAnalyze(ctx context.Context, cfg *config.Config, paths []string, save bool, htmlOut string) error {
	logger := internal.NewDefaultLogger()

	var repository ports.RunRepository
	if save {
		if cfg.Database.URL == "" {
			return fmt.Errorf("--save requires DATABASE_URL")
		}
		db, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return err
		}
		defer db.Close()
		repository = postgres.NewRunRepository(db)
	}

	reader := csvfile.NewReader(paths...)
	service := app.NewAnalysisService(reader, repository, logger)

	result, err := service.Run(ctx, domainrun.Params{
		TargetYear:   cfg.Analysis.TargetYear,
		DayOffset:    cfg.Analysis.DayOffset,
		Alpha:        cfg.Analysis.Alpha,
		QQResolution: cfg.Analysis.QQResolution,
	})
	if err != nil {
		return err
	}

	fmt.Printf("run %s\nbreakpoint %s\n\n%s\n", result.ID, result.Breakpoint.Format("2006-01-02"), result.TableGrid)
	fmt.Printf("chi-squared: stat=%.4f df=%d p=%.4g\n", result.ChiSquare.Statistic, result.ChiSquare.DegreesOfFreedom, result.ChiSquare.PValue)
	fmt.Printf("kruskal-wallis: H=%.4f df=%d p=%.4g\n", result.Kruskal.Statistic, result.Kruskal.DegreesOfFreedom, result.Kruskal.PValue)

	if cfg.Output.MarkdownPath != "" {
		md, err := report.NewMarkdownRenderer().Render(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(cfg.Output.MarkdownPath, md, 0o644); err != nil {
			return fmt.Errorf("writing markdown report: %w", err)
		}
		logger.Info("wrote %s", cfg.Output.MarkdownPath)
	}
	if htmlOut != "" {
		page, err := report.NewHTMLRenderer().Render(result)
		if err != nil {
			return err
		}
		if err := os.WriteFile(htmlOut, page, 0o644); err != nil {
			return fmt.Errorf("writing HTML report: %w", err)
		}
		logger.Info("wrote %s", htmlOut)
	}
	if cfg.Output.ExcelPath != "" {
		if err := excelreport.NewReportWriter().WriteFile(result, cfg.Output.ExcelPath); err != nil {
			return err
		}
		logger.Info("wrote %s", cfg.Output.ExcelPath)
	}

	return nil
}

func newSynthCmd() *cobra.Command {
	var seed int64
	var preCount, postCount int
	var postShift float64
	var out string

	cmd := &cobra.Command{
		Use:   "synth",
		Short: "Generate a seeded synthetic home-run dataset as CSV",
		Long: `Generate synthetic home-run rows for pipeline exercise and power checks.

The seed is explicit so any generated dataset can be reproduced exactly.

Example: hr-explore synth --seed 42 --pre 100 --post 100 --shift 5 -o synth.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultConfig()
			cfg.Seed = seed
			cfg.PreCount = preCount
			cfg.PostCount = postCount
			cfg.PostShift = postShift

			rows, err := testkit.NewGenerator(cfg).RawRows()
			if err != nil {
				return err
			}
			return writeCSV(out, rows)
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic generation")
	cmd.Flags().IntVar(&preCount, "pre", 100, "Pre-breakpoint record count")
	cmd.Flags().IntVar(&postCount, "post", 100, "Post-breakpoint record count")
	cmd.Flags().Float64Var(&postShift, "shift", 0, "Mean distance shift applied to the post cohort")
	cmd.Flags().StringVarP(&out, "output", "o", "synth.csv", "Output CSV path")

	return cmd
}

// writeCSV emits rows with the standard header field order.
func writeCSV(path string, rows []batted.RawRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := []string{
		batted.FieldGameDate,
		batted.FieldGameYear,
		batted.FieldDescription,
		batted.FieldHitDistance,
		batted.FieldEvents,
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, name := range header {
			record[i] = row[name]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
