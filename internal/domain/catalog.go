package domain

// Calculator names
const (
	CalculatorLoanEMI          = "loan-emi"
	CalculatorSimpleInterest   = "simple-interest"
	CalculatorCompoundInterest = "compound-interest"
	CalculatorProfitLoss       = "profit-loss"
	CalculatorROI              = "roi"
	CalculatorIncomeTax        = "income-tax"
	CalculatorGratuity         = "gratuity"
	CalculatorKPIScore         = "kpi-score"
)

// Category groups calculators in the module list.
type Category string

const (
	CategoryFinance  Category = "finance"
	CategoryBusiness Category = "business"
	CategoryTax      Category = "tax"
	CategoryHR       Category = "hr"
)

// Calculator describes an entry of the calculator catalog.
type Calculator struct {
	Name     string
	Category Category
	Title    Label
	Formula  string
}

// Catalog lists the available calculators in display order.
var Catalog = []Calculator{
	{
		Name:     CalculatorLoanEMI,
		Category: CategoryFinance,
		Title:    Label{EN: "Loan EMI", UR: "قرض کی ماہانہ قسط"},
		Formula:  "EMI = P × r × (1+r)^n / ((1+r)^n − 1)",
	},
	{
		Name:     CalculatorSimpleInterest,
		Category: CategoryFinance,
		Title:    Label{EN: "Simple Interest", UR: "سادہ سود"},
		Formula:  "I = P × R × T / 100",
	},
	{
		Name:     CalculatorCompoundInterest,
		Category: CategoryFinance,
		Title:    Label{EN: "Compound Interest", UR: "مرکب سود"},
		Formula:  "A = P × (1 + r/k)^(k×t)",
	},
	{
		Name:     CalculatorProfitLoss,
		Category: CategoryBusiness,
		Title:    Label{EN: "Profit & Loss", UR: "نفع و نقصان"},
		Formula:  "Net Profit = Revenue − COGS − Expenses",
	},
	{
		Name:     CalculatorROI,
		Category: CategoryBusiness,
		Title:    Label{EN: "Return on Investment", UR: "سرمایہ کاری پر منافع"},
		Formula:  "ROI = (Final Value − Cost) / Cost × 100",
	},
	{
		Name:     CalculatorIncomeTax,
		Category: CategoryTax,
		Title:    Label{EN: "Income Tax", UR: "انکم ٹیکس"},
		Formula:  "Tax = Σ (slab income × slab rate)",
	},
	{
		Name:     CalculatorGratuity,
		Category: CategoryHR,
		Title:    Label{EN: "Gratuity", UR: "گریجویٹی"},
		Formula:  "Gratuity = Last Salary × Years of Service",
	},
	{
		Name:     CalculatorKPIScore,
		Category: CategoryHR,
		Title:    Label{EN: "KPI Score", UR: "کے پی آئی اسکور"},
		Formula:  "Score = Σ (weight × achievement) / Σ weight",
	},
}

// FindCalculator looks up a catalog entry by name.
func FindCalculator(name string) (Calculator, error) {
	for _, c := range Catalog {
		if c.Name == name {
			return c, nil
		}
	}
	return Calculator{}, ErrCalculatorNotFound
}
