package insights

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
)

const (
	DefaultLifeExpectancy = 85
	NominalReturn         = 0.07
	Inflation             = 0.03

	// withdrawalMultiple is the "25x annual spending" rule.
	withdrawalMultiple = 25
	replacementRatio   = 0.8
	maxYearsToGoal     = 100
	monthsPerYear      = 12
)

// Retirement advisory codes, grouped by risk level.
const (
	RetirementOnTrack           = "RETIREMENT_ON_TRACK"
	RetirementReviewAnnually    = "RETIREMENT_REVIEW_ANNUALLY"
	RetirementKeepContributions = "RETIREMENT_KEEP_CONTRIBUTIONS"
	RetirementIncreaseSavings   = "RETIREMENT_INCREASE_SAVINGS"
	RetirementReduceExpenses    = "RETIREMENT_REDUCE_EXPENSES"
	RetirementConsiderLaterAge  = "RETIREMENT_CONSIDER_LATER_AGE"
	RetirementSeekAdvice        = "RETIREMENT_SEEK_PROFESSIONAL_ADVICE"
	RetirementAdditionalIncome  = "RETIREMENT_ADDITIONAL_INCOME"
	RetirementImmediate         = "RETIREMENT_ALREADY_REACHED"
)

var retirementAdvice = map[model.RiskLevel][]string{
	model.RiskLow:      {RetirementOnTrack, RetirementReviewAnnually},
	model.RiskMedium:   {RetirementKeepContributions, RetirementReviewAnnually},
	model.RiskHigh:     {RetirementIncreaseSavings, RetirementReduceExpenses},
	model.RiskCritical: {RetirementIncreaseSavings, RetirementConsiderLaterAge, RetirementAdditionalIncome, RetirementSeekAdvice},
}

// RetirementInput configures a retirement projection. Zero LifeExpectancy means
// DefaultLifeExpectancy; nil CurrentSavings means the cumulative net balance of the history.
type RetirementInput struct {
	CurrentAge            int
	RetirementAge         int
	LifeExpectancy        int
	CurrentSavings        *money.Money
	DesiredMonthlyPension *money.Money
	Currency              string
}

// RealReturn converts a nominal return into a real (inflation-adjusted) one.
func RealReturn(nominal, inflation float64) float64 {
	return (1+nominal)/(1+inflation) - 1
}

// FutureValue projects a lump sum plus equal monthly contributions over years.
func FutureValue(present, monthly, annualRate float64, years int) float64 {
	if years <= 0 {
		return present
	}
	lump := present * math.Pow(1+annualRate, float64(years))
	months := float64(years * monthsPerYear)
	monthlyRate := annualRate / monthsPerYear
	if monthlyRate == 0 {
		return lump + monthly*months
	}
	annuity := monthly * ((math.Pow(1+monthlyRate, months) - 1) / monthlyRate)
	return lump + annuity
}

// RequiredMonthlySavings solves the annuity formula for the contribution that
// accumulates gap over years.
func RequiredMonthlySavings(gap, annualRate float64, years int) float64 {
	if gap <= 0 {
		return 0
	}
	if years <= 0 {
		return 0
	}
	months := float64(years * monthsPerYear)
	monthlyRate := annualRate / monthsPerYear
	if monthlyRate == 0 {
		return gap / months
	}
	return gap * monthlyRate / (math.Pow(1+monthlyRate, months) - 1)
}

// YearsToGoal simulates monthly compounding until current reaches target.
// It returns 0 if the target is already met, +Inf if it can never be met because
// monthly contributions are not positive, and caps the search at 100 years.
func YearsToGoal(current, monthly, target, annualRate float64) float64 {
	if current >= target {
		return 0
	}
	if monthly <= 0 {
		return math.Inf(1)
	}
	monthlyRate := annualRate / monthsPerYear
	balance := current
	for m := 1; m <= maxYearsToGoal*monthsPerYear; m++ {
		balance = balance*(1+monthlyRate) + monthly
		if balance >= target {
			return float64(m) / monthsPerYear
		}
	}
	return maxYearsToGoal
}

// CalculateRetirementForecast projects savings to the retirement age and compares
// them with the required corpus.
func CalculateRetirementForecast(txs []model.Transaction, in RetirementInput) model.RetirementForecast {
	currency := in.Currency
	if currency == "" {
		currency = currencyOf(txs, "USD")
	}
	lifeExpectancy := in.LifeExpectancy
	if lifeExpectancy <= 0 {
		lifeExpectancy = DefaultLifeExpectancy
	}

	keys, income, expense := monthlyTotals(txs)
	var totalIncome, totalExpense float64
	for _, k := range keys {
		totalIncome += income[k]
		totalExpense += expense[k]
	}
	var avgIncome, avgExpense float64
	if len(keys) > 0 {
		avgIncome = totalIncome / float64(len(keys))
		avgExpense = totalExpense / float64(len(keys))
	}
	monthlySavings := math.Max(0, avgIncome-avgExpense)

	currentSavings := math.Max(0, totalIncome-totalExpense)
	if in.CurrentSavings != nil {
		currentSavings = in.CurrentSavings.Float64()
	}

	var required float64
	if in.DesiredMonthlyPension != nil && in.DesiredMonthlyPension.IsPositive() {
		required = in.DesiredMonthlyPension.Float64() * monthsPerYear * withdrawalMultiple
	} else {
		required = replacementRatio * avgExpense * monthsPerYear * withdrawalMultiple
	}

	yearsToRetirement := in.RetirementAge - in.CurrentAge
	retirementYears := lifeExpectancy - in.RetirementAge
	if retirementYears < 1 {
		retirementYears = 1
	}

	rate := RealReturn(NominalReturn, Inflation)

	var projected, needed float64
	if yearsToRetirement <= 0 {
		// Retiring now: nothing left to compound or contribute.
		yearsToRetirement = 0
		projected = currentSavings
	} else {
		projected = FutureValue(currentSavings, monthlySavings, rate, yearsToRetirement)
	}
	gap := math.Max(0, required-projected)
	if gap > 0 && yearsToRetirement > 0 {
		needed = RequiredMonthlySavings(gap, rate, yearsToRetirement)
	}

	risk := classifyRetirementRisk(projected, required)
	advice := append([]string(nil), retirementAdvice[risk]...)
	if yearsToRetirement == 0 {
		advice = append([]string{RetirementImmediate}, advice...)
	}

	return model.RetirementForecast{
		RequiredSavings:      moneyOf(required, currency),
		ProjectedSavings:     moneyOf(projected, currency),
		SavingsGap:           moneyOf(gap, currency),
		MonthlySavingsNeeded: moneyOf(needed, currency),
		CurrentSavings:       moneyOf(currentSavings, currency),
		MonthlySavings:       moneyOf(monthlySavings, currency),
		RiskLevel:            risk,
		YearsToRetirement:    yearsToRetirement,
		RetirementYears:      retirementYears,
		YearsToGoal:          model.Years(YearsToGoal(currentSavings, monthlySavings, required, rate)),
		Recommendations:      advice,
	}
}

func classifyRetirementRisk(projected, required float64) model.RiskLevel {
	if required <= 0 {
		return model.RiskLow
	}
	switch {
	case projected >= 1.2*required:
		return model.RiskLow
	case projected >= required:
		return model.RiskMedium
	case projected >= 0.8*required:
		return model.RiskHigh
	default:
		return model.RiskCritical
	}
}

func moneyOf(v float64, currency string) money.Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return money.Zero(currency)
	}
	return money.New(decimal.NewFromFloat(v).Round(money.Places), currency)
}
