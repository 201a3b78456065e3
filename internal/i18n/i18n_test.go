package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/castlemilk/finhealth/internal/insights"
	"github.com/castlemilk/finhealth/internal/model"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"", language.English},
		{"en-US", language.English},
		{"ru", language.Russian},
		{"ru-RU", language.Russian},
		{"fr", language.English},
		{"not a locale", language.English},
	}
	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.locale))
		})
	}
}

func TestRecommendation(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	rec := model.Recommendation{
		Code: insights.RecBudgetExceeded,
		Params: map[string]string{
			"wallet":   "Food",
			"spent":    "600.00",
			"limit":    "500.00",
			"currency": "USD",
		},
		Priority: model.PriorityHigh,
	}

	en := tr.Recommendation(language.English, rec)
	assert.Equal(t, "Budget exceeded", en.Title)
	assert.Equal(t, `You spent 600.00 USD in "Food" against a limit of 500.00 USD.`, en.Description)
	assert.Equal(t, model.PriorityHigh, en.Priority)
	assert.Empty(t, rec.Title, "input is not mutated")

	ru := tr.Recommendation(language.Russian, rec)
	assert.Equal(t, "Бюджет превышен", ru.Title)
	assert.Contains(t, ru.Description, "600.00 USD")
}

func TestTip(t *testing.T) {
	tr := MustNew()

	tip := tr.Tip(language.English, model.Tip{
		Code:   insights.TipDominantCategory,
		Params: map[string]string{"category": "groceries", "share": "62.5"},
	})
	assert.Equal(t, "groceries accounts for 62.5% of your spending.", tip.Text)

	noIncome := tr.Tip(language.Russian, model.Tip{Code: insights.TipNoIncome})
	assert.NotEmpty(t, noIncome.Text)
}

func TestUnknownCodeRendersAsCode(t *testing.T) {
	tr := MustNew()
	rec := tr.Recommendation(language.English, model.Recommendation{Code: "SOMETHING_NEW"})
	assert.Equal(t, "SOMETHING_NEW", rec.Title)
	assert.Equal(t, "SOMETHING_NEW", rec.Description)
}

func TestEveryEngineCodeHasText(t *testing.T) {
	tr := MustNew()
	recCodes := []string{
		insights.RecImproveFinancialHealth, insights.RecMaintainFinancialHealth,
		insights.RecImproveExpenseControl, insights.RecOptimizeExpenses,
		insights.RecIncreaseRetirementSaving, insights.RecOptimizeRetirementPlan,
		insights.RecIncreaseSavingsRate, insights.RecDiversifyIncome,
		insights.RecBudgetExceeded, insights.RecBudgetApproaching,
		insights.RecReviewSubscriptions, insights.RecReduceDiningOut,
		insights.RecBuildEmergencyFund,
	}
	for _, tag := range Supported {
		for _, code := range recCodes {
			_, ok := tr.params[code+".title"]
			assert.True(t, ok, "%s title", code)
			_, ok = tr.params[code+".description"]
			assert.True(t, ok, "%s description", code)
			assert.NotEqual(t, code, tr.Recommendation(tag, model.Recommendation{Code: code}).Title)
		}
		for _, code := range []string{
			insights.TipSubscriptionDetected, insights.TipSmallExpenses, insights.TipNoSavings,
			insights.TipNoIncome, insights.TipDominantCategory,
			insights.RetirementImmediate, insights.RetirementSeekAdvice,
		} {
			assert.NotEqual(t, code, tr.Advice(tag, code), code)
		}
	}
}

func TestEnglishAndRussianAgree(t *testing.T) {
	ru := make(map[string][]string, len(russian))
	for _, e := range russian {
		ru[e.key] = e.params
	}
	for _, e := range english {
		params, ok := ru[e.key]
		if assert.True(t, ok, e.key) {
			assert.Equal(t, e.params, params, e.key)
		}
	}
}
