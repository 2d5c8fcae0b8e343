package folio

import (
	"fmt"
	"math"
	"slices"

	"github.com/nvannier/folio/date"
)

// PricePoint is a single observed price for one instrument.
type PricePoint struct {
	On    date.Date
	Price float64
}

// PriceSeries is the ordered price history of one instrument. Dates are
// unique and strictly increasing; gaps (no trading day, vendor outage) are
// expected and preserved.
type PriceSeries struct {
	Instrument string
	hist       date.History[float64]
}

// NewPriceSeries returns an empty price series for the given instrument.
func NewPriceSeries(instrument string) *PriceSeries {
	return &PriceSeries{Instrument: instrument}
}

// Append records a price observation. An existing observation on the same
// date is overwritten. Negative prices are rejected.
func (s *PriceSeries) Append(on date.Date, price float64) error {
	if price < 0 {
		return fmt.Errorf("negative price %v for %q on %s", price, s.Instrument, on)
	}
	s.hist.Append(on, price)
	return nil
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int { return s.hist.Len() }

// Get returns the exact price stored on a given day.
func (s *PriceSeries) Get(on date.Date) (float64, bool) { return s.hist.Get(on) }

// AsOf returns the price on a given day, or the most recent price before it.
// It returns false when the series starts after the given day: the series
// never carries a price back from the future.
func (s *PriceSeries) AsOf(on date.Date) (float64, bool) { return s.hist.ValueAsOf(on) }

// First returns the earliest observation, and false when the series is empty.
func (s *PriceSeries) First() (PricePoint, bool) {
	if s.hist.Len() == 0 {
		return PricePoint{}, false
	}
	on, p := s.hist.First()
	return PricePoint{On: on, Price: p}, true
}

// Latest returns the most recent observation, and false when the series is empty.
func (s *PriceSeries) Latest() (PricePoint, bool) {
	if s.hist.Len() == 0 {
		return PricePoint{}, false
	}
	on, p := s.hist.Latest()
	return PricePoint{On: on, Price: p}, true
}

// Points returns a copy of all observations in chronological order.
func (s *PriceSeries) Points() []PricePoint {
	points := make([]PricePoint, 0, s.hist.Len())
	for on, p := range s.hist.Values() {
		points = append(points, PricePoint{On: on, Price: p})
	}
	return points
}

// Grid is the dense, forward-filled valuation grid produced by Align: for
// every date in the union of all instruments' observed dates, the last known
// price of each instrument. Absence (an instrument whose history starts
// later) is preserved, never zero-filled.
type Grid struct {
	days []date.Date
	cols map[string][]float64 // parallel to days; NaN marks "no price yet"
}

// Days returns the grid dates in ascending order.
func (g *Grid) Days() []date.Date { return g.days }

// Len returns the number of grid dates.
func (g *Grid) Len() int { return len(g.days) }

// At returns the forward-filled price of an instrument at grid index i.
// It returns false when the instrument had no price on or before that date.
func (g *Grid) At(instrument string, i int) (float64, bool) {
	col, ok := g.cols[instrument]
	if !ok {
		return 0, false
	}
	p := col[i]
	if math.IsNaN(p) {
		return 0, false
	}
	return p, true
}

// Price returns the forward-filled price of an instrument on a grid date.
// It returns false for dates not on the grid or instruments without a price
// on or before that date.
func (g *Grid) Price(instrument string, on date.Date) (float64, bool) {
	i, found := slices.BinarySearchFunc(g.days, on, func(d, t date.Date) int {
		if d.After(t) {
			return 1
		}
		if d.Before(t) {
			return -1
		}
		return 0
	})
	if !found {
		return 0, false
	}
	return g.At(instrument, i)
}

// Align builds the valuation grid for a set of instruments over a date range.
// The grid dates are the union of all observed dates within the range. Each
// instrument's column is filled in a single forward sweep with a per-series
// cursor, so the whole alignment is O(total observations), not
// O(dates × instruments).
//
// An instrument with no observation on or before a grid date is reported
// absent at that date; an instrument with an empty series is absent at every
// date. The caller decides the fallback.
func Align(series map[string]*PriceSeries, rng date.Range) *Grid {
	histories := make([]*date.History[float64], 0, len(series))
	for _, s := range series {
		histories = append(histories, &s.hist)
	}

	var days []date.Date
	for on := range date.Iterate(histories...) {
		if on.Before(rng.From) {
			continue
		}
		if on.After(rng.To) {
			break
		}
		days = append(days, on)
	}

	grid := &Grid{days: days, cols: make(map[string][]float64, len(series))}
	for key, s := range series {
		col := make([]float64, len(days))
		cursor := 0
		last := math.NaN()
		for i, on := range days {
			// advance to the last observation with date <= on,
			// reusing the previous cursor position.
			for cursor < s.hist.Len() {
				d, p := s.hist.At(cursor)
				if d.After(on) {
					break
				}
				last = p
				cursor++
			}
			col[i] = last
		}
		grid.cols[key] = col
	}
	return grid
}
