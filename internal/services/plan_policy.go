package services

import "github.com/ternovka/medbell/internal/models"

// FreePlanMedicineLimit caps how many medicines a free-plan caregiver may
// have at once, across all their patients.
const FreePlanMedicineLimit = 3

// CanAddMedicine decides admission for one more medicine. Checked only at
// creation time; a later plan downgrade never invalidates existing medicines.
func CanAddMedicine(plan string, currentCount int) bool {
	if plan == models.PlanPaid {
		return true
	}
	return currentCount < FreePlanMedicineLimit
}
