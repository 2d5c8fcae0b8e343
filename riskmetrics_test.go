package folio

import (
	"math"
	"testing"
)

// growingSeries appends n daily prices starting at base, multiplied by growth
// each day, from the given start date.
func growingSeries(t *testing.T, instrument, start string, base, growth float64, n int) *PriceSeries {
	t.Helper()
	s := NewPriceSeries(instrument)
	on := day(start)
	p := base
	for i := 0; i < n; i++ {
		if err := s.Append(on, p); err != nil {
			t.Fatalf("Append: %v", err)
		}
		on = on.Add(1)
		p *= growth
	}
	return s
}

func TestComputeRiskMetrics_TooShort(t *testing.T) {
	s := newSeries(t, "AAA", "2025-01-01", 100.0)
	if _, ok := ComputeRiskMetrics(s, nil, 0, day("2025-01-31")); ok {
		t.Error("single-point series produced metrics, want none")
	}
}

func TestComputeRiskMetrics_AnnualizedReturn(t *testing.T) {
	// Exactly one year, +10% overall: the CAGR is ~10%.
	s := newSeries(t, "AAA",
		"2024-01-01", 100.0,
		"2024-06-01", 104.0,
		"2024-12-31", 110.0,
	)
	m, ok := ComputeRiskMetrics(s, nil, 0, day("2024-12-31"))
	if !ok {
		t.Fatal("no metrics")
	}
	if !closeTo(float64(m.AnnualizedReturn), 10, 0.1) {
		t.Errorf("annualized return = %v%%, want ~10%%", m.AnnualizedReturn)
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		prices []float64
		want   float64
	}{
		{"monotonic rise", []float64{100, 105, 110}, 0},
		{"single dip", []float64{100, 80, 90}, 0.20},
		{"deepest of two", []float64{100, 90, 120, 60, 100}, 0.50},
		{"never recovers", []float64{100, 50}, 0.50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			points := make([]PricePoint, len(tt.prices))
			on := day("2025-01-01")
			for i, p := range tt.prices {
				points[i] = PricePoint{On: on, Price: p}
				on = on.Add(1)
			}
			got := maxDrawdown(points)
			if !closeTo(got, tt.want, 1e-9) {
				t.Errorf("maxDrawdown = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("maxDrawdown = %v, want within [0, 1]", got)
			}
		})
	}
}

func TestComputeRiskMetrics_SharpeUndefined(t *testing.T) {
	// A flat series has zero volatility: Sharpe must be withheld, not Inf.
	s := newSeries(t, "AAA", "2025-01-01", 100.0, "2025-01-02", 100.0, "2025-01-03", 100.0)
	m, ok := ComputeRiskMetrics(s, nil, 0.02, day("2025-01-03"))
	if !ok {
		t.Fatal("no metrics")
	}
	if m.SharpeDefined {
		t.Errorf("Sharpe = %v defined on zero volatility, want undefined", m.Sharpe)
	}
	if m.Volatility != 0 {
		t.Errorf("volatility = %v, want 0", m.Volatility)
	}
}

func TestComputeRiskMetrics_BetaNeedsOverlap(t *testing.T) {
	fund := growingSeries(t, "AAA", "2025-01-01", 100, 1.001, 60)

	short := growingSeries(t, "BENCH", "2025-01-01", 50, 1.002, 10)
	m, ok := ComputeRiskMetrics(fund, short, 0, day("2025-03-01"))
	if !ok {
		t.Fatal("no metrics")
	}
	if m.Alpha != nil || m.Beta != nil {
		t.Error("alpha/beta reported on 10 overlapping dates, want withheld below 30")
	}

	long := growingSeries(t, "BENCH", "2025-01-01", 50, 1.002, 60)
	m, ok = ComputeRiskMetrics(fund, long, 0, day("2025-03-01"))
	if !ok {
		t.Fatal("no metrics")
	}
	if m.Alpha == nil || m.Beta == nil {
		t.Fatal("alpha/beta withheld on 60 overlapping dates, want reported")
	}
}

func TestComputeRiskMetrics_BetaOfScaledBenchmark(t *testing.T) {
	// A fund whose daily moves are exactly the benchmark's has beta 1.
	bench := NewPriceSeries("BENCH")
	fund := NewPriceSeries("AAA")
	on := day("2025-01-01")
	p := 100.0
	for i := 0; i < 60; i++ {
		// deterministic wiggle around a drift
		move := 1.001 + 0.004*math.Sin(float64(i))
		bench.Append(on, p)
		fund.Append(on, p*3) // scaled level, identical returns
		p *= move
		on = on.Add(1)
	}

	m, ok := ComputeRiskMetrics(fund, bench, 0, day("2025-03-01"))
	if !ok {
		t.Fatal("no metrics")
	}
	if m.Beta == nil {
		t.Fatal("beta withheld, want reported")
	}
	if !closeTo(*m.Beta, 1, 1e-9) {
		t.Errorf("beta = %v, want 1", *m.Beta)
	}
	if !closeTo(float64(*m.Alpha), 0, 1e-6) {
		t.Errorf("alpha = %v%%, want ~0%%", *m.Alpha)
	}
}

func TestComputeRiskMetrics_Horizons(t *testing.T) {
	// Two months of history ending 2025-03-01: 1M is reachable, 3M/6M/1Y are not.
	s := growingSeries(t, "AAA", "2025-01-01", 100, 1.001, 60)
	m, ok := ComputeRiskMetrics(s, nil, 0, day("2025-03-01"))
	if !ok {
		t.Fatal("no metrics")
	}

	for _, key := range []string{"1M", "YTD", "Total"} {
		if _, present := m.Horizons[key]; !present {
			t.Errorf("horizon %s missing, want present", key)
		}
	}
	for _, key := range []string{"3M", "6M", "1Y"} {
		if _, present := m.Horizons[key]; present {
			t.Errorf("horizon %s present, want omitted (series starts 2025-01-01)", key)
		}
	}
	if !closeTo(float64(m.Horizons["Total"]), (math.Pow(1.001, 59)-1)*100, 1e-6) {
		t.Errorf("Total horizon = %v%%, want the full-series return", m.Horizons["Total"])
	}
}

func TestSampleStdev(t *testing.T) {
	if got := sampleStdev([]float64{5}); got != 0 {
		t.Errorf("stdev of one value = %v, want 0", got)
	}
	got := sampleStdev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if !closeTo(got, 2.138089935, 1e-6) {
		t.Errorf("stdev = %v, want ~2.1381", got)
	}
}
