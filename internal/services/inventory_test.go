package services

import (
	"testing"

	"github.com/ternovka/medbell/internal/models"
)

func TestRecordTakenDecrementsOncePerDate(t *testing.T) {
	medicine := models.Medicine{Stock: 10, TakenDates: []string{}}

	first := RecordTaken(&medicine, "2026-02-01")
	if first.AlreadyTaken {
		t.Fatal("first recording flagged as already taken")
	}
	if first.NewStock != 9 || medicine.Stock != 9 {
		t.Fatalf("expected stock 9 after first take, got %d", medicine.Stock)
	}

	second := RecordTaken(&medicine, "2026-02-01")
	if !second.AlreadyTaken {
		t.Fatal("second recording on same date not flagged as already taken")
	}
	if medicine.Stock != 9 {
		t.Fatalf("double submission changed stock to %d", medicine.Stock)
	}
	if len(medicine.TakenDates) != 1 {
		t.Fatalf("expected one taken entry, got %v", medicine.TakenDates)
	}

	third := RecordTaken(&medicine, "2026-02-02")
	if third.AlreadyTaken || medicine.Stock != 8 || len(medicine.TakenDates) != 2 {
		t.Fatalf("next-day take: stock %d, dates %v", medicine.Stock, medicine.TakenDates)
	}
}

func TestRecordTakenNeverGoesNegative(t *testing.T) {
	medicine := models.Medicine{Stock: 0}

	result := RecordTaken(&medicine, "2026-02-01")
	if result.NewStock != 0 || medicine.Stock != 0 {
		t.Fatalf("expected stock floored at 0, got %d", medicine.Stock)
	}
	if !result.LowStock {
		t.Fatal("expected low stock at zero")
	}
	if len(medicine.TakenDates) != 1 {
		t.Fatalf("expected dose still recorded, got %v", medicine.TakenDates)
	}
}

func TestRecordTakenLowStockThreshold(t *testing.T) {
	tests := []struct {
		name         string
		startStock   int
		wantLowStock bool
	}{
		{name: "well stocked", startStock: 10, wantLowStock: false},
		{name: "drops to threshold", startStock: 6, wantLowStock: true},
		{name: "just above threshold after take", startStock: 7, wantLowStock: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			medicine := models.Medicine{Stock: tt.startStock}
			result := RecordTaken(&medicine, "2026-02-01")
			if result.LowStock != tt.wantLowStock {
				t.Fatalf("LowStock = %v at stock %d, want %v", result.LowStock, result.NewStock, tt.wantLowStock)
			}
		})
	}
}
