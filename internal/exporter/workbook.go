package exporter

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"finmodel/internal/finance"
)

// Statement field labels, in the attribute order of the statement
// records. Spreadsheet columns always follow this order.
var (
	incomeStatementHeaders = []string{
		"Revenue",
		"Cost of Goods Sold (COGS)",
		"Gross Profit",
		"Operating Expenses",
		"Operating Income",
		"Net Income",
		"Tax Rate (%)",
	}
	cashFlowHeaders = []string{
		"Operating Cash Flow",
		"Investing Cash Flow",
		"Total Cash Flow",
	}
)

// incomeStatementRow flattens an income statement into its column order.
func incomeStatementRow(is finance.IncomeStatement) []float64 {
	return []float64{
		is.Revenue,
		is.COGS,
		is.GrossProfit,
		is.OperatingExpenses,
		is.OperatingIncome,
		is.NetIncome,
		is.TaxRatePercent,
	}
}

// cashFlowRow flattens a cash-flow statement into its column order.
func cashFlowRow(cf finance.CashFlowStatement) []float64 {
	return []float64{
		cf.OperatingCashFlow,
		cf.InvestingCashFlow,
		cf.TotalCashFlow,
	}
}

// WorkbookWriter exports financial statements as an xlsx workbook.
type WorkbookWriter struct {
	sheetName string
}

// NewWorkbookWriter creates a workbook writer targeting the given sheet name.
func NewWorkbookWriter(sheetName string) *WorkbookWriter {
	if sheetName == "" {
		sheetName = "Financial Data"
	}
	return &WorkbookWriter{sheetName: sheetName}
}

// Write streams a workbook with one sheet holding both statements:
// a combined header row followed by one row per record, income statement
// first, with each record's values under its own columns.
func (w *WorkbookWriter) Write(out io.Writer, is finance.IncomeStatement, cf finance.CashFlowStatement) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(w.sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if w.sheetName != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	headers := append(append([]string{}, incomeStatementHeaders...), cashFlowHeaders...)
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(w.sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	isRow := make([]interface{}, len(incomeStatementHeaders))
	for i, v := range incomeStatementRow(is) {
		isRow[i] = v
	}
	if err := f.SetSheetRow(w.sheetName, "A2", &isRow); err != nil {
		return fmt.Errorf("write income statement row: %w", err)
	}

	cfStart, err := excelize.CoordinatesToCellName(len(incomeStatementHeaders)+1, 3)
	if err != nil {
		return fmt.Errorf("resolve cash flow cell: %w", err)
	}
	cfRow := make([]interface{}, len(cashFlowHeaders))
	for i, v := range cashFlowRow(cf) {
		cfRow[i] = v
	}
	if err := f.SetSheetRow(w.sheetName, cfStart, &cfRow); err != nil {
		return fmt.Errorf("write cash flow row: %w", err)
	}

	if err := f.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
