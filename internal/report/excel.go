package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
)

var reportHeaders = []string{"Date", "Address", "%", "Total", "Parts", "Cash", "CC", "Check", "FEE", "Tech Profit", "Balance"}

// ExcelRenderer produces the commission workbook: a title block, a styled
// header row, one row per job and a highlighted summary row.
type ExcelRenderer struct {
	companyName string
}

func NewExcelRenderer(companyName string) *ExcelRenderer {
	return &ExcelRenderer{companyName: companyName}
}

// Render returns the workbook bytes for one technician's results.
func (r *ExcelRenderer) Render(technicianName string, results []domain.JobResult) ([]byte, error) {
	f := excelize.NewFile()
	const sheet = "Commission Report"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	styles, err := buildStyles(f)
	if err != nil {
		return nil, err
	}

	// Title block.
	_ = f.SetCellValue(sheet, "A1", r.companyName)
	_ = f.SetCellStyle(sheet, "A1", "A1", styles.title)
	_ = f.SetCellValue(sheet, "A2", "Technician: "+technicianName)
	if from, to := dateRange(results); !from.IsZero() {
		_ = f.SetCellValue(sheet, "A3", fmt.Sprintf("Period: %s - %s",
			from.Format("01/02/2006"), to.Format("01/02/2006")))
	}

	const startRow = 5
	for col, header := range reportHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, startRow)
		_ = f.SetCellValue(sheet, cell, header)
		_ = f.SetCellStyle(sheet, cell, cell, styles.header)
	}

	row := startRow + 1
	for _, result := range results {
		r.writeRow(f, sheet, row, result, styles)
		row++
	}

	summary := commission.Summarize(results)
	r.writeSummary(f, sheet, row, summary, styles)

	widths := []float64{12, 35, 8, 12, 12, 12, 12, 12, 10, 12, 12}
	for i, w := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(sheet, name, name, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *ExcelRenderer) writeRow(f *excelize.File, sheet string, row int, result domain.JobResult, styles sheetStyles) {
	job := result.Job
	set := func(col int, v any, style int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
	setMoney := func(col int, d interface{ IsZero() bool }, v float64, always bool) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		if always || !d.IsZero() {
			_ = f.SetCellValue(sheet, cell, v)
		}
		_ = f.SetCellStyle(sheet, cell, cell, styles.money)
	}

	dateStr := ""
	if !job.Date.IsZero() {
		dateStr = job.Date.Format("01/02/2006")
	}
	set(1, dateStr, styles.cell)
	set(2, job.Address, styles.cell)
	set(3, formatPercent(job), styles.center)

	total, _ := job.Total.Float64()
	parts, _ := job.Parts.Float64()
	cash, _ := job.CashAmount.Float64()
	cc, _ := job.CCAmount.Float64()
	check, _ := job.CheckAmount.Float64()
	fee, _ := job.Fee.Float64()
	profit, _ := result.TechProfit.Float64()
	balance, _ := result.Balance.Float64()

	setMoney(4, job.Total, total, true)
	setMoney(5, job.Parts, parts, false)
	setMoney(6, job.CashAmount, cash, false)
	setMoney(7, job.CCAmount, cc, false)
	setMoney(8, job.CheckAmount, check, false)
	setMoney(9, job.Fee, fee, false)
	setMoney(10, result.TechProfit, profit, true)
	setMoney(11, result.Balance, balance, true)
}

func (r *ExcelRenderer) writeSummary(f *excelize.File, sheet string, row int, s commission.Summary, styles sheetStyles) {
	set := func(col int, v any, style int) {
		cell, _ := excelize.CoordinatesToCellName(col, row)
		_ = f.SetCellValue(sheet, cell, v)
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
	set(1, fmt.Sprintf("%d Jobs", s.JobCount), styles.summary)
	set(2, "", styles.summary)
	set(3, "", styles.summary)
	for col, d := range map[int]float64{
		4:  toFloat(s.TotalSales),
		5:  toFloat(s.TotalParts),
		6:  toFloat(s.TotalCash),
		7:  toFloat(s.TotalCC),
		8:  toFloat(s.TotalCheck),
		9:  toFloat(s.TotalFee),
		10: toFloat(s.TotalTechProfit),
		11: toFloat(s.TotalBalance),
	} {
		set(col, d, styles.summaryMoney)
	}
}

func toFloat(d interface{ Float64() (float64, bool) }) float64 {
	f, _ := d.Float64()
	return f
}

type sheetStyles struct {
	title        int
	header       int
	cell         int
	center       int
	money        int
	summary      int
	summaryMoney int
}

func buildStyles(f *excelize.File) (sheetStyles, error) {
	var s sheetStyles
	var err error

	thin := []excelize.Border{
		{Type: "left", Style: 1, Color: "000000"},
		{Type: "right", Style: 1, Color: "000000"},
		{Type: "top", Style: 1, Color: "000000"},
		{Type: "bottom", Style: 1, Color: "000000"},
	}
	moneyFmt := "$#,##0.00"

	if s.title, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Family: "Arial", Size: 14, Bold: true},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10, Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"D3D3D3"}, Pattern: 1},
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{Border: thin}); err != nil {
		return s, err
	}
	if s.center, err = f.NewStyle(&excelize.Style{
		Border:    thin,
		Alignment: &excelize.Alignment{Horizontal: "center"},
	}); err != nil {
		return s, err
	}
	if s.money, err = f.NewStyle(&excelize.Style{
		Border:       thin,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, err
	}
	if s.summary, err = f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"00FFFF"}, Pattern: 1},
		Border: thin,
	}); err != nil {
		return s, err
	}
	if s.summaryMoney, err = f.NewStyle(&excelize.Style{
		Font:         &excelize.Font{Bold: true},
		Fill:         excelize.Fill{Type: "pattern", Color: []string{"00FFFF"}, Pattern: 1},
		Border:       thin,
		Alignment:    &excelize.Alignment{Horizontal: "right"},
		CustomNumFmt: &moneyFmt,
	}); err != nil {
		return s, err
	}
	return s, nil
}
