// seed-insights-demo seeds 6 months of realistic transactions and budgets for a demo
// user, then prints the resulting health score.
//
// Usage (local server with ENV=local or SKIP_AUTH=true):
//
//	go run ./scripts/seed-insights-demo -user demo-user
//
// Against a deployed backend pass a Firebase ID token with -token.
package main

import (
	"context"
	"flag"
	"math"
	"math/rand"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/castlemilk/finhealth/internal/auth"
	"github.com/castlemilk/finhealth/internal/model"
	"github.com/castlemilk/finhealth/internal/money"
	"github.com/castlemilk/finhealth/internal/service"
)

const months = 6

type template struct {
	description string
	minAmount   float64
	maxAmount   float64
	category    string
}

var monthlyBills = []template{
	{"Rent payment", 2200, 2200, "Rent"},
	{"Electricity bill", 120, 220, "Utilities"},
	{"Internet bill", 89, 89, "Utilities"},
	{"Phone bill", 65, 85, "Utilities"},
	{"Car insurance", 145, 145, "Insurance"},
	{"Netflix", 22.99, 22.99, "Subscriptions"},
	{"Spotify", 12.99, 12.99, "Subscriptions"},
	{"Gym membership", 65, 65, "Health"},
}

var weeklyExpenses = []template{
	{"Grocery shopping", 80, 200, "Groceries"},
	{"Petrol", 55, 110, "Transport"},
}

var randomExpenses = []template{
	{"Coffee", 4.5, 8, "Dining"},
	{"Lunch out", 15, 35, "Dining"},
	{"Dinner at restaurant", 45, 120, "Restaurants"},
	{"Uber ride", 12, 45, "Transport"},
	{"Movie tickets", 18, 40, "Entertainment"},
	{"Clothing", 40, 200, "Shopping"},
	{"Pharmacy", 10, 60, "Health"},
	{"Online course", 30, 200, "Education"},
}

func main() {
	apiURL := flag.String("api", "http://localhost:8111", "backend base URL")
	userID := flag.String("user", "demo-user", "user to seed (impersonated when no token is given)")
	token := flag.String("token", "", "Firebase ID token for a deployed backend")
	currency := flag.String("currency", "USD", "ISO-4217 currency of the seeded amounts")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	log := logrus.New()
	ctx := context.Background()
	rng := rand.New(rand.NewSource(*seed)) // deterministic for reproducibility

	client := service.NewInsightsServiceClient(
		http.DefaultClient,
		*apiURL,
		connect.WithInterceptors(identityInterceptor(*token, *userID)),
	)

	s := &seeder{ctx: ctx, client: client, rng: rng, currency: *currency, log: log}
	log.WithFields(logrus.Fields{"api": *apiURL, "user": *userID}).Info("Seeding 6 months of data")

	now := time.Now().UTC()
	start := now.AddDate(0, -months, 0)
	s.seedIncome(start, now)
	s.seedExpenses(start, now)
	s.seedWallets()

	log.WithFields(logrus.Fields{"created": s.created, "failed": s.failed}).Info("Seeded transactions")

	resp, err := client.GetFinancialHealthScore.CallUnary(ctx, connect.NewRequest(&service.GetFinancialHealthScoreRequest{}))
	if err != nil {
		log.Fatalf("Failed to read health score: %v", err)
	}
	log.WithField("score", resp.Msg.Score).Info("Seeding complete")
}

// identityInterceptor sends a bearer token, or impersonates userID against a dev server.
func identityInterceptor(token, userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token != "" {
				req.Header().Set("Authorization", "Bearer "+token)
			} else {
				req.Header().Set(auth.ImpersonateHeader, userID)
			}
			return next(ctx, req)
		}
	}
}

type seeder struct {
	ctx      context.Context
	client   *service.InsightsServiceClient
	rng      *rand.Rand
	currency string
	log      logrus.FieldLogger

	created int
	failed  int
}

func (s *seeder) seedIncome(start, now time.Time) {
	for m := 0; m < months; m++ {
		payday := time.Date(start.Year(), start.Month()+time.Month(m), 15, 0, 0, 0, 0, time.UTC)
		if payday.After(now) {
			break
		}
		s.create("Salary", "Acme Corp", 8500+s.rng.Float64()*200-100, false, payday)

		// Freelance work every few months
		if m%3 == 1 {
			s.create("Freelance", "Consulting client", s.amount(900, 2400), false, payday.AddDate(0, 0, 7))
		}
	}
}

func (s *seeder) seedExpenses(start, now time.Time) {
	for _, tmpl := range monthlyBills {
		for m := 0; m < months; m++ {
			d := start.AddDate(0, m, s.rng.Intn(5)) // slight variation in day
			s.create(tmpl.category, tmpl.description, s.amount(tmpl.minAmount, tmpl.maxAmount), true, d)
		}
	}

	for _, tmpl := range weeklyExpenses {
		for d := start; d.Before(now); d = d.AddDate(0, 0, 6+s.rng.Intn(3)) {
			s.create(tmpl.category, tmpl.description, s.amount(tmpl.minAmount, tmpl.maxAmount), true, d)
		}
	}

	for d := start; d.Before(now); d = d.AddDate(0, 0, 1) {
		n := 1 + s.rng.Intn(3)
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			n += 1 + s.rng.Intn(2)
		}
		for i := 0; i < n; i++ {
			tmpl := randomExpenses[s.rng.Intn(len(randomExpenses))]
			amount := s.amount(tmpl.minAmount, tmpl.maxAmount)
			// Occasional impulse purchase (1 in 50)
			if s.rng.Intn(50) == 0 {
				amount *= 3 + s.rng.Float64()*2
			}
			s.create(tmpl.category, tmpl.description, amount, true, d)
		}
	}
}

func (s *seeder) seedWallets() {
	budgets := []struct {
		name  string
		limit float64
		spent float64
	}{
		{"Dining", 400, 430},
		{"Groceries", 700, 610},
		{"Entertainment", 150, 60},
	}
	for _, b := range budgets {
		_, err := s.client.UpsertWallet.CallUnary(s.ctx, connect.NewRequest(&service.UpsertWalletRequest{
			Wallet: model.Wallet{
				Name:     b.name,
				Category: b.name,
				Balance:  money.Zero(s.currency),
				Limit:    money.FromFloat(b.limit, s.currency),
				Spent:    money.FromFloat(b.spent, s.currency),
			},
		}))
		if err != nil {
			s.log.WithError(err).WithField("wallet", b.name).Warn("Failed to create wallet")
		}
	}
}

func (s *seeder) create(category, source string, amount float64, isExpense bool, date time.Time) {
	_, err := s.client.CreateTransaction.CallUnary(s.ctx, connect.NewRequest(&service.CreateTransactionRequest{
		Date:      date,
		Amount:    decimal.NewFromFloat(amount).Round(2),
		Currency:  s.currency,
		IsExpense: isExpense,
		Category:  category,
		Source:    source,
	}))
	if err != nil {
		s.failed++
		s.log.WithError(err).WithField("source", source).Warn("Failed to create transaction")
		return
	}
	s.created++
}

func (s *seeder) amount(min, max float64) float64 {
	v := min + s.rng.Float64()*(max-min)
	return math.Round(v*100) / 100
}
