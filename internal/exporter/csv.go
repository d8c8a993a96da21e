package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"finmodel/internal/finance"
)

// WriteStatementsCSV writes both statements as CSV in the same layout as
// the workbook export: combined header row, then one row per record.
func WriteStatementsCSV(out io.Writer, is finance.IncomeStatement, cf finance.CashFlowStatement) error {
	w := csv.NewWriter(out)

	header := append(append([]string{}, incomeStatementHeaders...), cashFlowHeaders...)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	isRecord := make([]string, len(header))
	for i, v := range incomeStatementRow(is) {
		isRecord[i] = formatFloat(v)
	}
	if err := w.Write(isRecord); err != nil {
		return fmt.Errorf("write income statement record: %w", err)
	}

	cfRecord := make([]string, len(header))
	for i, v := range cashFlowRow(cf) {
		cfRecord[len(incomeStatementHeaders)+i] = formatFloat(v)
	}
	if err := w.Write(cfRecord); err != nil {
		return fmt.Errorf("write cash flow record: %w", err)
	}

	w.Flush()
	return w.Error()
}

// WriteSensitivityCSV writes a sensitivity series as two columns, the
// swept parameter and the valuation it produced. Parameter values keep
// full precision so a re-run can reproduce the sweep exactly.
func WriteSensitivityCSV(out io.Writer, axis finance.SweepAxis, points []finance.SensitivityPoint) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{string(axis), "valuation"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, p := range points {
		record := []string{
			strconv.FormatFloat(p.ParameterValue, 'g', -1, 64),
			formatFloat(p.Valuation),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write point: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
