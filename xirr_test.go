package folio

import (
	"math"
	"testing"
)

// -1000 invested, +1100 back 365 days later: the IRR is 10% by construction.
func TestXIRR_TenPercent(t *testing.T) {
	flows := []CashFlow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2024-12-31"), Amount: 1100},
	}
	got := XIRR(flows)
	if got.Status != XIRRConverged {
		t.Fatalf("status = %v, want converged", got.Status)
	}
	if !closeTo(float64(got.Rate), 10, 0.01) {
		t.Errorf("rate = %v%%, want 10%% ±0.01", got.Rate)
	}
}

func TestXIRR_MultipleFlows(t *testing.T) {
	flows := []CashFlow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2024-07-01"), Amount: -500},
		{On: day("2025-01-01"), Amount: 1700},
	}
	got := XIRR(flows)
	if got.Status != XIRRConverged {
		t.Fatalf("status = %v, want converged", got.Status)
	}

	// The solved rate must actually zero the NPV.
	r := float64(got.Rate) / 100
	npv := -1000 +
		-500/math.Pow(1+r, 182.0/365) +
		1700/math.Pow(1+r, 366.0/365)
	if !closeTo(npv, 0, 1e-3) {
		t.Errorf("NPV at solved rate = %v, want ~0", npv)
	}
}

func TestXIRR_NegativeRate(t *testing.T) {
	flows := []CashFlow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2024-12-31"), Amount: 800},
	}
	got := XIRR(flows)
	if got.Status != XIRRConverged {
		t.Fatalf("status = %v, want converged", got.Status)
	}
	if !closeTo(float64(got.Rate), -20, 0.01) {
		t.Errorf("rate = %v%%, want -20%% ±0.01", got.Rate)
	}
}

func TestXIRR_Degenerate(t *testing.T) {
	tests := []struct {
		name  string
		flows []CashFlow
	}{
		{"no flows", nil},
		{"single flow", []CashFlow{{On: day("2024-01-01"), Amount: -1000}}},
		{"all negative", []CashFlow{
			{On: day("2024-01-01"), Amount: -1000},
			{On: day("2024-06-01"), Amount: -500},
		}},
		{"all positive", []CashFlow{
			{On: day("2024-01-01"), Amount: 1000},
			{On: day("2024-06-01"), Amount: 500},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := XIRR(tt.flows); got.Status != XIRRDegenerate {
				t.Errorf("status = %v, want degenerate", got.Status)
			}
		})
	}
}

// Same-day round trip: every exponent is zero, the derivative vanishes and
// Newton cannot move, and no rate changes the NPV. The solver must say so
// instead of inventing a rate.
func TestXIRR_SameDayFlows(t *testing.T) {
	flows := []CashFlow{
		{On: day("2024-01-01"), Amount: -1000},
		{On: day("2024-01-01"), Amount: 1100},
	}
	if got := XIRR(flows); got.Status != XIRRNotConverged {
		t.Errorf("status = %v, want not converged", got.Status)
	}
}

func TestXIRRStatus_String(t *testing.T) {
	tests := []struct {
		status XIRRStatus
		want   string
	}{
		{XIRRConverged, "converged"},
		{XIRRNotConverged, "not converged"},
		{XIRRDegenerate, "degenerate"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}
