package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/alphalocks/reports-be/internal/domain"
	"github.com/alphalocks/reports-be/internal/parser"
)

// Importer maps tabular rows (XLSX or CSV) onto calculation-ready jobs.
// Expected columns: Date, Address, Total, Parts, Cash, CC, Check, %, FEE
// (case-insensitive; "Credit Card" and "Transfer" are accepted aliases).
// A nonzero value in a company-bound column selects that payment method;
// several nonzero payment columns make the job a split payment.
type Importer struct {
	defaultRate decimal.Decimal
	logger      *slog.Logger
}

func New(defaultRate decimal.Decimal, logger *slog.Logger) *Importer {
	if defaultRate.IsZero() {
		defaultRate = domain.DefaultCommissionRate
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{defaultRate: defaultRate, logger: logger}
}

// FromXLSX reads the first sheet of a workbook.
func (im *Importer) FromXLSX(r io.Reader) ([]domain.Job, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return im.mapRows(rows)
}

// FromCSV reads comma-separated rows with the same header layout.
func (im *Importer) FromCSV(r io.Reader) ([]domain.Job, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return im.mapRows(rows)
}

// column indices resolved from the header row; -1 means absent.
type columns struct {
	date, address, total, parts, cash, cc, check, rate, fee int
}

func resolveColumns(header []string) columns {
	cols := columns{date: -1, address: -1, total: -1, parts: -1, cash: -1, cc: -1, check: -1, rate: -1, fee: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "address":
			cols.address = i
		case "total":
			cols.total = i
		case "parts":
			cols.parts = i
		case "cash":
			cols.cash = i
		case "cc", "credit card":
			cols.cc = i
		case "check", "transfer":
			cols.check = i
		case "%", "commission", "rate":
			cols.rate = i
		case "fee":
			cols.fee = i
		}
	}
	return cols
}

func (im *Importer) mapRows(rows [][]string) ([]domain.Job, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no rows to import")
	}
	cols := resolveColumns(rows[0])
	if cols.total == -1 {
		return nil, fmt.Errorf("missing required column: Total")
	}

	var jobs []domain.Job
	for i, row := range rows[1:] {
		job, ok, err := im.mapRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if ok {
			jobs = append(jobs, job)
		}
	}
	im.logger.Info("tabular import mapped",
		slog.Int("rows", len(rows)-1),
		slog.Int("jobs", len(jobs)),
	)
	return jobs, nil
}

// mapRow converts one data row. Blank rows are skipped, not errors.
func (im *Importer) mapRow(cols columns, row []string) (domain.Job, bool, error) {
	total := cellMoney(row, cols.total)
	address := cell(row, cols.address)
	if total.IsZero() && address == "" {
		return domain.Job{}, false, nil
	}

	job := domain.Job{
		Address: address,
		Total:   total,
		Parts:   cellMoney(row, cols.parts),
		Fee:     cellMoney(row, cols.fee),
	}

	if raw := cell(row, cols.date); raw != "" {
		if d, ok := parser.ExtractDate(raw); ok {
			job.Date = d
		}
	}

	job.CashAmount = cellMoney(row, cols.cash)
	job.CCAmount = cellMoney(row, cols.cc)
	job.CheckAmount = cellMoney(row, cols.check)
	job.Payment = inferMethod(job.CashAmount, job.CCAmount, job.CheckAmount)

	rate, err := parseRate(cell(row, cols.rate), im.defaultRate)
	if err != nil {
		return domain.Job{}, false, err
	}
	job.Rate = rate
	job.NormalizeAmounts()
	return job, true, nil
}

// inferMethod applies the same payment inference as the message parser: a
// nonzero company-bound column selects that channel, two or more nonzero
// channels make it split, and cash is the default.
func inferMethod(cash, cc, check decimal.Decimal) domain.PaymentMethod {
	nonzero := 0
	for _, amount := range []decimal.Decimal{cash, cc, check} {
		if amount.IsPositive() {
			nonzero++
		}
	}
	switch {
	case nonzero > 1:
		return domain.PaymentSplit
	case cc.IsPositive():
		return domain.PaymentCC
	case check.IsPositive():
		return domain.PaymentCheck
	default:
		return domain.PaymentCash
	}
}

// parseRate accepts "45%", "45" and "0.45" spellings of a commission rate.
func parseRate(raw string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	pct := strings.HasSuffix(raw, "%")
	raw = strings.TrimSuffix(raw, "%")
	rate, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid commission rate %q", raw)
	}
	hundred := decimal.NewFromInt(100)
	if pct || rate.GreaterThan(decimal.NewFromInt(1)) {
		rate = rate.Div(hundred)
	}
	return rate, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellMoney(row []string, idx int) decimal.Decimal {
	raw := cell(row, idx)
	if raw == "" {
		return decimal.Zero
	}
	raw = strings.TrimPrefix(raw, "$")
	raw = strings.ReplaceAll(raw, ",", "")
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return d
}
