package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"finmodel/internal/exporter"
	"finmodel/internal/finance"
	"finmodel/internal/services"
)

func main() {
	revenue := flag.Float64("revenue", 500000, "projected revenue")
	cogs := flag.Float64("cogs", 300000, "cost of goods sold")
	opex := flag.Float64("opex", 100000, "operating expenses")
	taxRate := flag.Float64("tax-rate", 0.20, "tax rate as a fraction (0.20 = 20%)")
	depreciation := flag.Float64("depreciation", 20000, "depreciation and amortization")
	capex := flag.Float64("capex", 30000, "capital expenditures")
	wcChange := flag.Float64("wc-change", 5000, "change in working capital")
	forecast := flag.String("forecast", "100000, 110000, 121000, 133100", "comma-separated cash flow forecast")
	discountRate := flag.Float64("discount-rate", 0.10, "discount rate as a fraction")
	growthRate := flag.Float64("growth-rate", 0.02, "terminal growth rate as a fraction")
	sweep := flag.String("sweep", "", "run a sensitivity sweep: discount_rate or growth_rate")
	out := flag.String("out", "", "write statements to this file (.xlsx or .csv)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	service := services.NewModelingService(logger)
	ctx := context.Background()

	statements, err := service.ComputeStatements(ctx,
		finance.Assumptions{
			Revenue:           *revenue,
			COGS:              *cogs,
			OperatingExpenses: *opex,
			TaxRate:           *taxRate,
		},
		finance.CashFlowInputs{
			Depreciation:         *depreciation,
			Capex:                *capex,
			WorkingCapitalChange: *wcChange,
		},
	)
	if err != nil {
		slog.Error("Failed to compute statements", "error", err)
		os.Exit(1)
	}

	printStatements(statements.IncomeStatement, statements.CashFlow)

	valuation, err := service.ValueForecast(ctx, *forecast, finance.ValuationParams{
		DiscountRate:       *discountRate,
		TerminalGrowthRate: *growthRate,
	})
	if err != nil {
		slog.Error("DCF valuation failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("\n--- DCF Valuation ---")
	fmt.Printf("Discount Rate:        %s\n", exporter.FormatPercent(*discountRate))
	fmt.Printf("Terminal Growth Rate: %s\n", exporter.FormatPercent(*growthRate))
	fmt.Printf("Forecast Periods:     %d\n", valuation.Periods)
	fmt.Printf("Enterprise Value:     %s\n", exporter.FormatCurrency(valuation.Valuation))

	if *sweep != "" {
		if err := runSweep(ctx, service, *forecast, *sweep, *discountRate, *growthRate); err != nil {
			slog.Error("Sensitivity sweep failed", "error", err)
			os.Exit(1)
		}
	}

	if *out != "" {
		if err := writeReport(*out, statements.IncomeStatement, statements.CashFlow); err != nil {
			slog.Error("Failed to write report", "error", err, "path", *out)
			os.Exit(1)
		}
		fmt.Printf("\nReport written to %s\n", *out)
	}
}

func printStatements(is finance.IncomeStatement, cf finance.CashFlowStatement) {
	fmt.Println("--- Income Statement ---")
	fmt.Printf("Revenue:            %s\n", exporter.FormatCurrency(is.Revenue))
	fmt.Printf("COGS:               %s\n", exporter.FormatCurrency(is.COGS))
	fmt.Printf("Gross Profit:       %s\n", exporter.FormatCurrency(is.GrossProfit))
	fmt.Printf("Operating Expenses: %s\n", exporter.FormatCurrency(is.OperatingExpenses))
	fmt.Printf("Operating Income:   %s\n", exporter.FormatCurrency(is.OperatingIncome))
	fmt.Printf("Tax Rate:           %.2f%%\n", is.TaxRatePercent)
	fmt.Printf("Net Income:         %s\n", exporter.FormatCurrency(is.NetIncome))

	fmt.Println("\n--- Cash Flow Statement ---")
	fmt.Printf("Operating Cash Flow: %s\n", exporter.FormatCurrency(cf.OperatingCashFlow))
	fmt.Printf("Investing Cash Flow: %s\n", exporter.FormatCurrency(cf.InvestingCashFlow))
	fmt.Printf("Total Cash Flow:     %s\n", exporter.FormatCurrency(cf.TotalCashFlow))
}

// runSweep varies one valuation parameter over its standard range while
// holding the other at its CLI value.
func runSweep(ctx context.Context, service *services.ModelingService, forecast, axisName string, discountRate, growthRate float64) error {
	axis := finance.SweepAxis(axisName)

	fixed := growthRate
	if axis == finance.SweepGrowthRate {
		fixed = discountRate
	}

	result, err := service.RunSensitivity(ctx, forecast, axis, fixed, finance.SweepRange{})
	if err != nil {
		return err
	}

	fmt.Printf("\n--- Sensitivity: %s ---\n", axis)
	for _, p := range result.Points {
		fmt.Printf("%s  %s\n",
			exporter.FormatPercent(p.ParameterValue),
			exporter.FormatCurrency(p.Valuation))
	}
	return nil
}

func writeReport(path string, is finance.IncomeStatement, cf finance.CashFlowStatement) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return exporter.WriteStatementsCSV(f, is, cf)
	case ".xlsx":
		return exporter.NewWorkbookWriter("Financial Data").Write(f, is, cf)
	default:
		return fmt.Errorf("unsupported report format: %s", filepath.Ext(path))
	}
}
