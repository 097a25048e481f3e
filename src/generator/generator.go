package generator

import (
	"math"
	"math/rand"
	"time"

	"trading-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// Snapshot Generator
// -----------------------------------------------------------------------------

// Fixed identity of the synthetic demo account and instrument.
const (
	BaseBalance = 9772.16
	BasePrice   = 24578.37
	Symbol      = "US100"

	accountLogin = 103486755
	magicNumber  = 234001
)

var orderTypes = []string{"BUY_LIMIT", "SELL_LIMIT", "BUY_STOP", "SELL_STOP"}

// -----------------------------------------------------------------------------

// Generator produces one synthetic snapshot per call. It owns its own random
// source and is driven from the single broadcast goroutine; it is not safe
// for concurrent Generate calls.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// -----------------------------------------------------------------------------

func NewGenerator() *Generator {
	return NewGeneratorWithSeed(time.Now().UnixNano())
}

// NewGeneratorWithSeed pins the random source, used by tests to get a
// reproducible sequence of snapshots.
func NewGeneratorWithSeed(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

// -----------------------------------------------------------------------------

// Generate builds a complete snapshot from random draws. Pure aside from the
// random source and clock; it never fails.
func (g *Generator) Generate() models.MSnapshot {
	return models.MSnapshot{
		Account:     g.generateAccount(),
		Positions:   g.generatePositions(),
		Orders:      g.generateOrders(),
		Market:      g.generateMarket(),
		Agents:      g.generateAgents(),
		Performance: g.generatePerformance(),
	}
}

// -----------------------------------------------------------------------------

func (g *Generator) generateAccount() models.MAccount {
	profit := round2(g.rng.Float64()*200 - 100)
	// equity must equal balance + profit exactly, so no re-rounding here
	equity := BaseBalance + profit

	return models.MAccount{
		Login:        accountLogin,
		Leverage:     100,
		TradeAllowed: true,
		Balance:      BaseBalance,
		Equity:       equity,
		Profit:       profit,
		Credit:       0,
		Margin:       0,
		MarginFree:   equity,
		MarginLevel:  0,
		Currency:     "USD",
		Name:         "FBS Demo",
		Server:       "FBS-Demo",
		Company:      "FBS",
	}
}

// -----------------------------------------------------------------------------

func (g *Generator) generatePositions() []models.MPosition {
	positions := []models.MPosition{}

	// 30% chance of having open positions
	if g.rng.Float64() >= 0.3 {
		return positions
	}

	numPositions := 1 + g.rng.Intn(3)
	now := g.now().UTC()

	for i := 0; i < numPositions; i++ {
		isBuy := g.rng.Float64() > 0.5
		side := 1
		sideDesc := "SELL"
		if isBuy {
			side = 0
			sideDesc = "BUY"
		}

		profit := round2(g.rng.Float64()*100 - 50)
		openPrice := round2(24500 + g.rng.Float64()*200 - 100)
		current := openPrice - profit
		if isBuy {
			current = openPrice + profit
		}
		openedAgo := time.Duration(g.rng.Float64() * 24 * float64(time.Hour))

		positions = append(positions, models.MPosition{
			Ticket:       1000000 + int64(g.rng.Intn(9000000)),
			Symbol:       Symbol,
			Type:         side,
			TypeDesc:     sideDesc,
			Volume:       round2(0.01 + g.rng.Float64()*0.09),
			PriceOpen:    openPrice,
			PriceCurrent: round2(current),
			Profit:       profit,
			TimeOpen:     now.Add(-openedAgo).Format(time.RFC3339),
			Magic:        magicNumber,
			Comment:      "Auto Trade",
		})
	}

	return positions
}

// -----------------------------------------------------------------------------

func (g *Generator) generateOrders() []models.MOrder {
	orders := []models.MOrder{}

	// 20% chance of having pending orders
	if g.rng.Float64() >= 0.2 {
		return orders
	}

	numOrders := 1 + g.rng.Intn(2)
	now := g.now().UTC()

	for i := 0; i < numOrders; i++ {
		orders = append(orders, models.MOrder{
			Ticket:        2000000 + int64(g.rng.Intn(8000000)),
			Symbol:        Symbol,
			Type:          orderTypes[g.rng.Intn(len(orderTypes))],
			VolumeInitial: round2(0.01 + g.rng.Float64()*0.04),
			PriceOpen:     round2(24500 + g.rng.Float64()*100 - 50),
			TimeSetup:     now.Format(time.RFC3339),
			Magic:         magicNumber,
			Comment:       "Pending Order",
		})
	}

	return orders
}

// -----------------------------------------------------------------------------

func (g *Generator) generateMarket() models.MMarketQuote {
	last := round2(BasePrice + g.rng.Float64()*50 - 25)

	return models.MMarketQuote{
		Symbol:       Symbol,
		Bid:          round2(last - 1),
		Ask:          round2(last + 1),
		Last:         last,
		Volume:       1000 + int64(g.rng.Intn(9000)),
		Time:         g.now().UTC().Format(time.RFC3339),
		Digits:       2,
		Spread:       2,
		ContractSize: 1,
		Point:        0.01,
	}
}

// -----------------------------------------------------------------------------

func (g *Generator) generateAgents() models.MAgentSummary {
	status := "Operational"
	if g.rng.Float64() <= 0.2 {
		status = "Alert"
	}

	return models.MAgentSummary{
		Active:        6 + g.rng.Intn(4),
		Total:         10,
		Communicating: 4 + g.rng.Intn(6),
		Decisions: models.MDecisionCounts{
			Buy:  g.rng.Intn(5),
			Sell: g.rng.Intn(3),
			Hold: g.rng.Intn(4),
		},
		SystemHealth:      70 + g.rng.Intn(30),
		AverageConfidence: 60 + g.rng.Intn(40),
		Status:            status,
		LastUpdate:        g.now().UTC().Format(time.RFC3339),
	}
}

// -----------------------------------------------------------------------------

func (g *Generator) generatePerformance() models.MPerformance {
	return models.MPerformance{
		DailyPnL:       round2(g.rng.Float64()*100 - 50),
		WinRate:        round1(60 + g.rng.Float64()*30),
		ProfitFactor:   round2(1.2 + g.rng.Float64()*1.8),
		SharpeRatio:    round2(0.5 + g.rng.Float64()*1.5),
		MaxDrawdown:    round2(-5 - g.rng.Float64()*15),
		RecoveryFactor: round2(1.0 + g.rng.Float64()*2.0),
	}
}

// -----------------------------------------------------------------------------
// Rounding Helpers
// -----------------------------------------------------------------------------

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
