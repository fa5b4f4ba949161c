package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/importer"
	"github.com/alphalocks/reports-be/internal/parser"
	"github.com/alphalocks/reports-be/internal/report"
	"github.com/alphalocks/reports-be/shared/logger"
)

// reportgen renders a commission report straight from a messages file or a
// spreadsheet, without going through the API service.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		inPath     = flag.String("in", "", "Input file: closure messages (.txt) or spreadsheet (.xlsx, .csv)")
		outPath    = flag.String("out", "", "Output file: report destination (.xlsx or .html)")
		technician = flag.String("technician", "Technician", "Technician name printed on the report")
		company    = flag.String("company", "Alpha Locks and Safe", "Company name printed on the report")
		rateFlag   = flag.String("rate", "0.5", "Commission rate as a 0-1 fraction")
		logLevel   = flag.String("log-level", "info", "Log level: debug, info, warn, error")
	)
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		return fmt.Errorf("both -in and -out are required")
	}

	appLogger, err := logger.New(&logger.Config{
		Level:      *logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.TimeOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	rate, err := decimal.NewFromString(*rateFlag)
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("invalid rate %q: expected a 0-1 fraction", *rateFlag)
	}

	jobs, err := loadJobs(*inPath, rate, appLogger.Logger)
	if err != nil {
		return err
	}
	if len(jobs) == 0 {
		return fmt.Errorf("no jobs found in %s", *inPath)
	}

	results, err := commission.New().CalculateBatch(jobs)
	if err != nil {
		return fmt.Errorf("calculate commissions: %w", err)
	}

	if err := writeReport(*outPath, *company, *technician, results); err != nil {
		return err
	}

	appLogger.Info("report written",
		slog.String("output", *outPath),
		slog.Int("jobs", len(results)),
	)
	return nil
}

// loadJobs reads the input by extension: spreadsheets go through the tabular
// importer, anything else is treated as closure-message text.
func loadJobs(path string, rate decimal.Decimal, log *slog.Logger) ([]domain.Job, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		return importer.New(rate, log).FromXLSX(f)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		return importer.New(rate, log).FromCSV(f)
	default:
		return parseMessages(path, rate, log)
	}
}

func parseMessages(path string, rate decimal.Decimal, log *slog.Logger) ([]domain.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	blocks := parser.SplitBlocks(string(data))
	results := parser.NewPool(0, log).ParseBlocks(context.Background(), blocks)

	var jobs []domain.Job
	for _, block := range results {
		if block.Err != nil {
			log.Warn("skipping block",
				slog.String("error", block.Err.Error()),
			)
			continue
		}
		jobs = append(jobs, domain.JobFromParsed(block.Job, rate))
	}
	return jobs, nil
}

func writeReport(path, company, technician string, results []domain.JobResult) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		data, err := report.NewExcelRenderer(company).Render(technician, results)
		if err != nil {
			return fmt.Errorf("render workbook: %w", err)
		}
		return os.WriteFile(path, data, 0o644)
	case ".html":
		page, err := report.NewHTMLRenderer(company).Render(technician, results)
		if err != nil {
			return fmt.Errorf("render page: %w", err)
		}
		return os.WriteFile(path, []byte(page), 0o644)
	default:
		return fmt.Errorf("unsupported output type %q: expected .xlsx or .html", filepath.Ext(path))
	}
}
