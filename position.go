package folio

import (
	"errors"
	"fmt"

	"github.com/nvannier/folio/date"
	"github.com/shopspring/decimal"
)

// Position is a single holding as entered by the user: a number of shares of
// one instrument, bought for a total amount on a given date. Positions are
// owned by the caller; the engine only reads snapshots of them.
type Position struct {
	ID           int64
	Instrument   string
	Shares       decimal.Decimal
	CostBasis    decimal.Decimal // total amount originally paid
	PurchaseDate date.Date
	TargetWeight *float64 // optional allocation target, as a fraction
}

var (
	ErrNoInstrument   = errors.New("position has no instrument key")
	ErrNoShares       = errors.New("position shares must be strictly positive")
	ErrNegativeCost   = errors.New("position cost basis cannot be negative")
	ErrNoPurchaseDate = errors.New("position has no purchase date")
)

// Validate checks a position for correctness.
func (p Position) Validate() error {
	if p.Instrument == "" {
		return ErrNoInstrument
	}
	if !p.Shares.IsPositive() {
		return ErrNoShares
	}
	if p.CostBasis.IsNegative() {
		return ErrNegativeCost
	}
	if p.PurchaseDate.IsZero() {
		return ErrNoPurchaseDate
	}
	return nil
}

// PurchasePrice returns the per-share price implied by the cost basis.
func (p Position) PurchasePrice() float64 {
	if p.Shares.IsZero() {
		return 0
	}
	return p.CostBasis.Div(p.Shares).InexactFloat64()
}

// Cost returns the cost basis as a float.
func (p Position) Cost() float64 { return p.CostBasis.InexactFloat64() }

// OwnedOn reports whether the position contributes to the valuation on a
// given date. Pre-ownership dates are excluded, not zero-filled.
func (p Position) OwnedOn(on date.Date) bool { return !on.Before(p.PurchaseDate) }

// EarliestPurchase returns the earliest purchase date across positions,
// and false if there are no positions.
func EarliestPurchase(positions []Position) (date.Date, bool) {
	var earliest date.Date
	found := false
	for _, p := range positions {
		if !found || p.PurchaseDate.Before(earliest) {
			earliest = p.PurchaseDate
			found = true
		}
	}
	return earliest, found
}

// Flows converts positions into the signed cash flows used by the XIRR
// solver: one negative flow per purchase, plus one final positive flow equal
// to the current total value, dated now.
func Flows(positions []Position, now date.Date, currentValue float64) []CashFlow {
	flows := make([]CashFlow, 0, len(positions)+1)
	for _, p := range positions {
		flows = append(flows, CashFlow{On: p.PurchaseDate, Amount: -p.Cost()})
	}
	flows = append(flows, CashFlow{On: now, Amount: currentValue})
	return flows
}

// Instruments returns the distinct instrument keys held, in first-seen order.
func Instruments(positions []Position) []string {
	seen := make(map[string]struct{})
	keys := make([]string, 0, len(positions))
	for _, p := range positions {
		if _, ok := seen[p.Instrument]; ok {
			continue
		}
		seen[p.Instrument] = struct{}{}
		keys = append(keys, p.Instrument)
	}
	return keys
}

func (p Position) String() string {
	return fmt.Sprintf("%s %s shares bought %s for %s", p.Instrument, p.Shares, p.PurchaseDate, p.CostBasis)
}
