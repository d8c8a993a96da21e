package finance

// ComputeIncomeStatement derives an income statement from the assumptions.
// The formulas are total functions over the reals, so there are no error
// conditions:
//
//	GrossProfit     = Revenue - COGS
//	OperatingIncome = GrossProfit - OperatingExpenses
//	NetIncome       = OperatingIncome * (1 - TaxRate)
func ComputeIncomeStatement(a Assumptions) IncomeStatement {
	grossProfit := a.Revenue - a.COGS
	operatingIncome := grossProfit - a.OperatingExpenses
	netIncome := operatingIncome * (1 - a.TaxRate)

	return IncomeStatement{
		Revenue:           a.Revenue,
		COGS:              a.COGS,
		GrossProfit:       grossProfit,
		OperatingExpenses: a.OperatingExpenses,
		OperatingIncome:   operatingIncome,
		NetIncome:         netIncome,
		TaxRatePercent:    a.TaxRate * 100,
	}
}

// ComputeCashFlowStatement derives a cash-flow statement from an income
// statement's net income and the supplied non-cash and investing items.
// Total function, no failure modes.
func ComputeCashFlowStatement(is IncomeStatement, in CashFlowInputs) CashFlowStatement {
	operating := is.NetIncome + in.Depreciation - in.WorkingCapitalChange
	investing := -in.Capex

	return CashFlowStatement{
		OperatingCashFlow: operating,
		InvestingCashFlow: investing,
		TotalCashFlow:     operating + investing,
	}
}
