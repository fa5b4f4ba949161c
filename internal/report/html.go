package report

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alphalocks/reports-be/internal/commission"
	"github.com/alphalocks/reports-be/internal/domain"
)

// HTMLRenderer produces a single-page printable report table.
type HTMLRenderer struct {
	companyName string
	tmpl        *template.Template
}

func NewHTMLRenderer(companyName string) *HTMLRenderer {
	return &HTMLRenderer{
		companyName: companyName,
		tmpl:        template.Must(template.New("report").Parse(reportTemplate)),
	}
}

type htmlRow struct {
	Date         string
	Address      string
	Percent      string
	Total        string
	Parts        string
	Cash         string
	CC           string
	Check        string
	Fee          string
	TechProfit   string
	Balance      string
	BalanceClass string
}

type htmlReport struct {
	Title   string
	Rows    []htmlRow
	Summary htmlRow
}

// Render returns the report page for one technician's results.
func (r *HTMLRenderer) Render(technicianName string, results []domain.JobResult) (string, error) {
	title := fmt.Sprintf("%s - Technician Report (%s)", r.companyName, technicianName)
	if from, to := dateRange(results); !from.IsZero() {
		title += fmt.Sprintf(" %s - %s", from.Format("01.02.2006"), to.Format("01.02.2006"))
	}

	data := htmlReport{Title: title}
	for _, result := range results {
		job := result.Job
		dateStr := ""
		if !job.Date.IsZero() {
			dateStr = job.Date.Format("20060102")
		}
		data.Rows = append(data.Rows, htmlRow{
			Date:         dateStr,
			Address:      job.Address,
			Percent:      formatPercent(job),
			Total:        formatMoney(job.Total, true),
			Parts:        formatMoney(job.Parts, false),
			Cash:         formatMoney(job.CashAmount, false),
			CC:           formatMoney(job.CCAmount, false),
			Check:        formatMoney(job.CheckAmount, false),
			Fee:          formatMoney(job.Fee, false),
			TechProfit:   formatMoney(result.TechProfit, true),
			Balance:      formatMoney(result.Balance, true),
			BalanceClass: balanceClass(result.Balance.IsNegative()),
		})
	}

	summary := commission.Summarize(results)
	data.Summary = htmlRow{
		Date:         fmt.Sprintf("%d Jobs", summary.JobCount),
		Total:        formatMoney(summary.TotalSales, true),
		Parts:        formatMoney(summary.TotalParts, false),
		Cash:         formatMoney(summary.TotalCash, false),
		CC:           formatMoney(summary.TotalCC, false),
		Check:        formatMoney(summary.TotalCheck, false),
		Fee:          formatMoney(summary.TotalFee, false),
		TechProfit:   formatMoney(summary.TotalTechProfit, true),
		Balance:      formatMoney(summary.TotalBalance, true),
		BalanceClass: balanceClass(summary.TotalBalance.IsNegative()),
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}
	return b.String(), nil
}

func balanceClass(negative bool) string {
	if negative {
		return "negative"
	}
	return ""
}

const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body { font-family: Arial, sans-serif; font-size: 11px; background-color: #f5f5f5; padding: 20px; }
        .report-container { max-width: 1200px; margin: 0 auto; background-color: white; padding: 20px; box-shadow: 0 2px 5px rgba(0,0,0,0.1); }
        .report-title { text-align: center; font-size: 16px; font-weight: bold; margin-bottom: 20px; color: #333; }
        table { width: 100%; border-collapse: collapse; margin-top: 10px; }
        th { background-color: #d3d3d3; color: #333; font-weight: bold; padding: 10px 8px; text-align: center; border: 1px solid #999; font-size: 12px; }
        td { padding: 8px; border: 1px solid #ccc; vertical-align: middle; }
        tr:nth-child(even) { background-color: #fafafa; }
        .col-date { text-align: center; width: 80px; }
        .col-address { text-align: left; min-width: 200px; }
        .col-percent { text-align: center; width: 50px; }
        .col-money { text-align: right; width: 80px; }
        .summary-row { background-color: #00ffff !important; font-weight: bold; }
        .summary-row td { border: 1px solid #999; }
        .negative { color: #c00; }
        @media print {
            body { background-color: white; padding: 0; }
            .report-container { box-shadow: none; padding: 10px; }
        }
    </style>
</head>
<body>
    <div class="report-container">
        <div class="report-title">{{.Title}}</div>
        <table>
            <thead>
                <tr>
                    <th>Date</th><th>Address</th><th>%</th><th>Total</th><th>Parts</th>
                    <th>Cash</th><th>CC</th><th>Check</th><th>FEE</th>
                    <th>Tech Profit</th><th>Balance</th>
                </tr>
            </thead>
            <tbody>
{{- range .Rows}}
                <tr>
                    <td class="col-date">{{.Date}}</td>
                    <td class="col-address">{{.Address}}</td>
                    <td class="col-percent">{{.Percent}}</td>
                    <td class="col-money">{{.Total}}</td>
                    <td class="col-money">{{.Parts}}</td>
                    <td class="col-money">{{.Cash}}</td>
                    <td class="col-money">{{.CC}}</td>
                    <td class="col-money">{{.Check}}</td>
                    <td class="col-money">{{.Fee}}</td>
                    <td class="col-money">{{.TechProfit}}</td>
                    <td class="col-money {{.BalanceClass}}">{{.Balance}}</td>
                </tr>
{{- end}}
{{- with .Summary}}
                <tr class="summary-row">
                    <td class="col-date">{{.Date}}</td>
                    <td class="col-address"></td>
                    <td class="col-percent"></td>
                    <td class="col-money">{{.Total}}</td>
                    <td class="col-money">{{.Parts}}</td>
                    <td class="col-money">{{.Cash}}</td>
                    <td class="col-money">{{.CC}}</td>
                    <td class="col-money">{{.Check}}</td>
                    <td class="col-money">{{.Fee}}</td>
                    <td class="col-money">{{.TechProfit}}</td>
                    <td class="col-money {{.BalanceClass}}">{{.Balance}}</td>
                </tr>
{{- end}}
            </tbody>
        </table>
    </div>
</body>
</html>
`
