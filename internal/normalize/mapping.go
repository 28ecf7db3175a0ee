package normalize

import "github.com/finsheet/finsheet/pkg/models"

// --- Field Aliases ---

// periodAliases are the source fields probed, in order, for a report's
// fiscal period end date.
var periodAliases = []string{"fiscalDateEnding", "date", "periodEnd"}

// currencyAliases are the source fields probed for the reporting currency.
var currencyAliases = []string{"reportedCurrency", "currency"}

// aliasTable maps a canonical line item to the source field names that may
// carry it. The first alias present in a raw report wins, even when its
// value is a null sentinel.
type aliasTable map[string][]string

var incomeAliases = aliasTable{
	"totalRevenue":                    {"totalRevenue", "Revenue", "revenue"},
	"costOfRevenue":                   {"costOfRevenue", "costofGoodsAndServicesSold"},
	"grossProfit":                     {"grossProfit"},
	"sellingGeneralAndAdministrative": {"sellingGeneralAndAdministrative"},
	"researchAndDevelopment":          {"researchAndDevelopment"},
	"operatingExpenses":               {"operatingExpenses"},
	"operatingIncome":                 {"operatingIncome"},
	"interestIncome":                  {"interestIncome", "investmentIncomeNet"},
	"interestExpense":                 {"interestExpense", "interestAndDebtExpense"},
	"incomeBeforeTax":                 {"incomeBeforeTax"},
	"incomeTaxExpense":                {"incomeTaxExpense"},
	"netIncome":                       {"netIncome"},
	"ebit":                            {"ebit"},
	"ebitda":                          {"ebitda"},
}

var balanceAliases = aliasTable{
	"totalAssets":                  {"totalAssets"},
	"totalCurrentAssets":           {"totalCurrentAssets"},
	"cashAndCashEquivalents":       {"cashAndCashEquivalentsAtCarryingValue", "cashAndCashEquivalents"},
	"shortTermInvestments":         {"shortTermInvestments"},
	"currentNetReceivables":        {"currentNetReceivables"},
	"inventory":                    {"inventory"},
	"propertyPlantEquipment":       {"propertyPlantEquipment"},
	"goodwill":                     {"goodwill"},
	"intangibleAssets":             {"intangibleAssets"},
	"longTermInvestments":          {"longTermInvestments"},
	"totalLiabilities":             {"totalLiabilities"},
	"totalCurrentLiabilities":      {"totalCurrentLiabilities"},
	"currentAccountsPayable":       {"currentAccountsPayable"},
	"shortTermDebt":                {"shortTermDebt", "currentDebt"},
	"longTermDebt":                 {"longTermDebt", "longTermDebtNoncurrent"},
	"totalShareholderEquity":       {"totalShareholderEquity"},
	"retainedEarnings":             {"retainedEarnings"},
	"commonStockSharesOutstanding": {"commonStockSharesOutstanding"},
}

var cashFlowAliases = aliasTable{
	"operatingCashflow":                    {"operatingCashflow"},
	"capitalExpenditures":                  {"capitalExpenditures"},
	"cashflowFromInvestment":               {"cashflowFromInvestment"},
	"cashflowFromFinancing":                {"cashflowFromFinancing"},
	"depreciationDepletionAndAmortization": {"depreciationDepletionAndAmortization"},
	"dividendPayout":                       {"dividendPayout", "dividendPayoutCommonStock"},
	"paymentsForRepurchaseOfCommonStock":   {"paymentsForRepurchaseOfCommonStock", "paymentsForRepurchaseOfEquity"},
	"proceedsFromIssuanceOfCommonStock":    {"proceedsFromIssuanceOfCommonStock"},
	"changeInCashAndCashEquivalents":       {"changeInCashAndCashEquivalents"},
	"netIncome":                            {"netIncome", "profitLoss"},
}

func aliasesFor(st models.StatementType) aliasTable {
	switch st {
	case models.StatementIncome:
		return incomeAliases
	case models.StatementBalance:
		return balanceAliases
	case models.StatementCashFlow:
		return cashFlowAliases
	default:
		return nil
	}
}
