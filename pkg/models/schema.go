package models

// Canonical line-item vocabulary, one ordered list per statement type.
// Normalized records carry exactly these keys (missing items are nil, never
// absent) and export headers derive from this order, so both sides see a
// stable schema regardless of what the provider returned.

var incomeLineItems = []string{
	"totalRevenue",
	"costOfRevenue",
	"grossProfit",
	"sellingGeneralAndAdministrative",
	"researchAndDevelopment",
	"operatingExpenses",
	"operatingIncome",
	"interestIncome",
	"interestExpense",
	"incomeBeforeTax",
	"incomeTaxExpense",
	"netIncome",
	"ebit",
	"ebitda",
}

var balanceLineItems = []string{
	"totalAssets",
	"totalCurrentAssets",
	"cashAndCashEquivalents",
	"shortTermInvestments",
	"currentNetReceivables",
	"inventory",
	"propertyPlantEquipment",
	"goodwill",
	"intangibleAssets",
	"longTermInvestments",
	"totalLiabilities",
	"totalCurrentLiabilities",
	"currentAccountsPayable",
	"shortTermDebt",
	"longTermDebt",
	"totalShareholderEquity",
	"retainedEarnings",
	"commonStockSharesOutstanding",
}

var cashFlowLineItems = []string{
	"operatingCashflow",
	"capitalExpenditures",
	"cashflowFromInvestment",
	"cashflowFromFinancing",
	"depreciationDepletionAndAmortization",
	"dividendPayout",
	"paymentsForRepurchaseOfCommonStock",
	"proceedsFromIssuanceOfCommonStock",
	"changeInCashAndCashEquivalents",
	"netIncome",
}

// CanonicalLineItems returns the ordered canonical keys for a statement
// type. Callers must not modify the returned slice.
func CanonicalLineItems(st StatementType) []string {
	switch st {
	case StatementIncome:
		return incomeLineItems
	case StatementBalance:
		return balanceLineItems
	case StatementCashFlow:
		return cashFlowLineItems
	default:
		return nil
	}
}
