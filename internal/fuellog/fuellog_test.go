package fuellog

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestTotalAmount(t *testing.T) {
	logs := []Record{
		{Amount: decimal.RequireFromString("40.50")},
		{Amount: decimal.RequireFromString("35.25")},
		{Amount: decimal.RequireFromString("12.00")},
	}
	if got := TotalAmount(logs); !got.Equal(decimal.RequireFromString("87.75")) {
		t.Fatalf("expected 87.75, got %s", got)
	}
}

func TestTotalAmount_Empty(t *testing.T) {
	if got := TotalAmount(nil); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}
