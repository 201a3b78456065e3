package insights

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Core categories that free-text labels are folded onto.
const (
	CategoryGroceries     = "groceries"
	CategoryTransport     = "transport"
	CategoryUtilities     = "utilities"
	CategoryClothing      = "clothing"
	CategoryEntertainment = "entertainment"
	CategoryDining        = "dining"
	CategorySubscriptions = "subscriptions"
	CategoryHealth        = "health"
	CategoryHousing       = "housing"
	CategorySalary        = "salary"
	CategoryOther         = "other"
)

// PeerCategories are the categories compared against benchmarks.
var PeerCategories = []string{
	CategoryGroceries,
	CategoryTransport,
	CategoryUtilities,
	CategoryClothing,
	CategoryEntertainment,
}

type categoryKeyword struct {
	keyword  string
	category string
}

// categoryKeywords is checked in order; more specific keywords come first.
var categoryKeywords = []categoryKeyword{
	// Subscriptions before entertainment so "music subscription" is not entertainment
	{"subscription", CategorySubscriptions},
	{"подписк", CategorySubscriptions},
	{"streaming", CategorySubscriptions},
	{"netflix", CategorySubscriptions},
	{"spotify", CategorySubscriptions},
	{"youtube premium", CategorySubscriptions},
	{"icloud", CategorySubscriptions},

	// Dining
	{"cafe", CategoryDining},
	{"café", CategoryDining},
	{"coffee", CategoryDining},
	{"restaurant", CategoryDining},
	{"dining", CategoryDining},
	{"takeaway", CategoryDining},
	{"fast food", CategoryDining},
	{"кафе", CategoryDining},
	{"ресторан", CategoryDining},

	// Groceries
	{"grocer", CategoryGroceries},
	{"supermarket", CategoryGroceries},
	{"food", CategoryGroceries},
	{"продукт", CategoryGroceries},

	// Transport
	{"transport", CategoryTransport},
	{"taxi", CategoryTransport},
	{"fuel", CategoryTransport},
	{"petrol", CategoryTransport},
	{"parking", CategoryTransport},
	{"транспорт", CategoryTransport},
	{"такси", CategoryTransport},

	// Utilities
	{"utilit", CategoryUtilities},
	{"electric", CategoryUtilities},
	{"water", CategoryUtilities},
	{"internet", CategoryUtilities},
	{"phone", CategoryUtilities},
	{"коммунал", CategoryUtilities},
	{"связь", CategoryUtilities},

	// Clothing
	{"cloth", CategoryClothing},
	{"apparel", CategoryClothing},
	{"shoes", CategoryClothing},
	{"одежд", CategoryClothing},

	// Entertainment
	{"entertain", CategoryEntertainment},
	{"cinema", CategoryEntertainment},
	{"movie", CategoryEntertainment},
	{"game", CategoryEntertainment},
	{"concert", CategoryEntertainment},
	{"развлеч", CategoryEntertainment},

	{"health", CategoryHealth},
	{"pharmacy", CategoryHealth},
	{"medic", CategoryHealth},
	{"аптек", CategoryHealth},
	{"здоров", CategoryHealth},

	{"rent", CategoryHousing},
	{"mortgage", CategoryHousing},
	{"housing", CategoryHousing},
	{"аренд", CategoryHousing},
	{"ипотек", CategoryHousing},

	{"salary", CategorySalary},
	{"payroll", CategorySalary},
	{"wage", CategorySalary},
	{"зарплат", CategorySalary},
}

// NormalizeCategory maps a free-text category label onto a core category.
// Keywords match whole words or word prefixes, so "rent" matches "Rental"
// but not "Parent".
func NormalizeCategory(label string) string {
	words := labelWords(label)
	if len(words) == 0 {
		return CategoryOther
	}
	for _, kw := range categoryKeywords {
		if matchesKeyword(words, kw.keyword) {
			return kw.category
		}
	}
	return CategoryOther
}

// labelWords lower-cases label and splits it on anything that is not a letter or digit.
func labelWords(label string) []string {
	return strings.FieldsFunc(strings.ToLower(label), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// matchesKeyword reports whether consecutive words start with each word of keyword.
func matchesKeyword(words []string, keyword string) bool {
	kw := strings.Fields(keyword)
	for i := 0; i+len(kw) <= len(words); i++ {
		matched := true
		for j, k := range kw {
			if !strings.HasPrefix(words[i+j], k) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

// IsDiningCategory reports whether label is eating out.
func IsDiningCategory(label string) bool {
	return NormalizeCategory(label) == CategoryDining
}

// IsSubscriptionCategory reports whether label is a recurring subscription.
func IsSubscriptionCategory(label string) bool {
	return NormalizeCategory(label) == CategorySubscriptions
}

// DisplayCategory returns a title-cased label for presentation.
func DisplayCategory(label string) string {
	return cases.Title(language.Und).String(strings.TrimSpace(label))
}
