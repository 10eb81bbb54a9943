package domain

import "time"

// CycleState is the lifecycle state of a trade cycle.
type CycleState int

const (
	CycleIdle CycleState = iota
	CycleBuyPending
	CycleHolding
	CycleSellPending
	CycleClosed
	CycleAborted
)

const (
	cycleStringIdle        = "idle"
	cycleStringBuyPending  = "buy_pending"
	cycleStringHolding     = "holding"
	cycleStringSellPending = "sell_pending"
	cycleStringClosed      = "closed"
	cycleStringAborted     = "aborted"
)

// String returns the string representation of the state.
func (s CycleState) String() string {
	switch s {
	case CycleIdle:
		return cycleStringIdle
	case CycleBuyPending:
		return cycleStringBuyPending
	case CycleHolding:
		return cycleStringHolding
	case CycleSellPending:
		return cycleStringSellPending
	case CycleClosed:
		return cycleStringClosed
	case CycleAborted:
		return cycleStringAborted
	default:
		return "unknown"
	}
}

// TradeCycle is one buy-then-sell sequence triggered by a single qualifying
// signal. It lives only for the duration of the cycle; once Closed or
// Aborted it is discarded.
type TradeCycle struct {
	Pair          Pair
	SignalID      string
	State         CycleState
	BuyAggregate  AggregatedFill
	SellAggregate *AggregatedFill
	OpenedAt      time.Time
}
