package utils

import (
	"time"

	"trading-dashboard/src/logger"
)

// MarketScheduler tracks the trading calendar of the dashboard's instrument.
// The generated quotes are synthetic either way; the calendar only feeds the
// marketOpen flag on the status endpoint.
type MarketScheduler struct {
	Symbol   string
	Calendar *TradingCalendar
	Logger   *logger.Logger
}

// -----------------------------------------------------------------------------

func NewMarketScheduler(symbol string, l *logger.Logger) *MarketScheduler {
	ms := &MarketScheduler{
		Symbol:   symbol,
		Calendar: GetCalendar(symbol),
		Logger:   l,
	}
	l.Info("MarketScheduler: tracking calendar for %s", symbol)
	return ms
}

// -----------------------------------------------------------------------------

// IsMarketOpen reports whether the tracked instrument's market is open now.
func (ms *MarketScheduler) IsMarketOpen() bool {
	if ms.Calendar == nil {
		return false
	}
	return ms.Calendar.IsOpenOnMinute(time.Now().UTC())
}
