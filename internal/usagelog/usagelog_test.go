package usagelog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestDistance(t *testing.T) {
	rec := Record{StartKM: 12000, EndKM: 12450}
	if got := rec.Distance(); got != 450 {
		t.Fatalf("expected 450, got %d", got)
	}
}

func TestEfficiency(t *testing.T) {
	rec := Record{StartKM: 12000, EndKM: 12450, FuelUsed: decimal.RequireFromString("36.00")}
	if got := rec.Efficiency(); !got.Equal(decimal.RequireFromString("12.5")) {
		t.Fatalf("expected 12.5, got %s", got)
	}
}

func TestEfficiency_ZeroFuel(t *testing.T) {
	rec := Record{StartKM: 100, EndKM: 200}
	if got := rec.Efficiency(); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}
