package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Groceries", CategoryGroceries},
		{"Продукты", CategoryGroceries},
		{"Coffee shop", CategoryDining},
		{"Кафе", CategoryDining},
		{"Fast food", CategoryDining},
		{"Music subscription", CategorySubscriptions},
		{"Netflix", CategorySubscriptions},
		{"Taxi", CategoryTransport},
		{"Electricity", CategoryUtilities},
		{"Clothes", CategoryClothing},
		{"Cinema", CategoryEntertainment},
		{"Rent", CategoryHousing},
		{"Apartment rental", CategoryHousing},
		{"Salary", CategorySalary},
		{"Weekly wages", CategorySalary},
		{"YouTube Premium", CategorySubscriptions},
		{"fast-food", CategoryDining},
		{"Parent teacher fee", CategoryOther},
		{"Current account fee", CategoryOther},
		{"Torrent client", CategoryOther},
		{"Sewage", CategoryOther},
		{"Fastfood", CategoryOther},
		{"", CategoryOther},
		{"misc", CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.label))
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	assert.True(t, IsDiningCategory("Restaurant"))
	assert.False(t, IsDiningCategory("Groceries"))
	assert.True(t, IsSubscriptionCategory("Spotify family"))
	assert.False(t, IsSubscriptionCategory("Cinema"))
}

func TestDisplayCategory(t *testing.T) {
	assert.Equal(t, "Eating Out", DisplayCategory("  eating out "))
}
