package services

import "github.com/ternovka/medbell/internal/models"

// LowStockThreshold is the remaining-dose count at or below which the
// caregiver should restock.
const LowStockThreshold = 5

type TakeResult struct {
	NewStock     int
	LowStock     bool
	AlreadyTaken bool
}

// RecordTaken marks a dose consumed on the given calendar date. Recording the
// same date twice is a no-op: stock moves by at most one per date and the
// taken set never holds duplicates, which keeps repeated confirmations from
// the polling loop harmless. Stock is floored at zero; taking a dose with an
// empty bottle is accepted and left for the caregiver to restock.
func RecordTaken(medicine *models.Medicine, day string) TakeResult {
	if ContainsDateKey(medicine.TakenDates, day) {
		return TakeResult{
			NewStock:     medicine.Stock,
			LowStock:     medicine.Stock <= LowStockThreshold,
			AlreadyTaken: true,
		}
	}

	medicine.TakenDates = append(medicine.TakenDates, day)
	if medicine.Stock > 0 {
		medicine.Stock--
	}
	return TakeResult{
		NewStock: medicine.Stock,
		LowStock: medicine.Stock <= LowStockThreshold,
	}
}

// TakenOn reports whether the medicine was confirmed taken on the given date.
func TakenOn(medicine models.Medicine, day string) bool {
	return ContainsDateKey(medicine.TakenDates, day)
}
