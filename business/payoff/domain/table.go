package domain

import "github.com/shopspring/decimal"

// TotalLabel is the transaction name of a table's last row.
const TotalLabel = "Total"

// Fixed table headers preceding the region columns.
const (
	HeaderTransaction = "Transaction"
	HeaderNow         = "Time now"
)

// PayoffRow is one line of a payoff table.
type PayoffRow struct {
	Transaction string
	Now         decimal.Decimal
	Cells       []Linear
}

// PayoffTable lists the legs of a portfolio and their payoff per region,
// followed by a Total row.
type PayoffTable struct {
	Title   string
	Regions []Region
	Rows    []PayoffRow
	Total   PayoffRow
}

// Headers returns the column headers.
func (t PayoffTable) Headers() []string {
	headers := []string{HeaderTransaction, HeaderNow}
	for _, r := range t.Regions {
		headers = append(headers, r.Label())
	}
	return headers
}

// Records renders every row, total last, as strings aligned with Headers.
func (t PayoffTable) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)
	for _, row := range t.Rows {
		rec := []string{row.Transaction, formatNumber(row.Now)}
		for _, c := range row.Cells {
			rec = append(rec, c.String())
		}
		records = append(records, rec)
	}

	total := []string{t.Total.Transaction, formatNumber(t.Total.Now)}
	for _, c := range t.Total.Cells {
		total = append(total, c.WithCredit(t.Total.Now))
	}
	return append(records, total)
}
