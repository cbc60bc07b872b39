package services

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/ternovka/medbell/internal/models"
)

var ErrMedicineNotFound = errors.New("medicine not found")

// FallbackInstructions is shown when a medicine has no usable instructions,
// including when its voice note cannot be loaded.
const FallbackInstructions = "Please take your medicine"

type DispatcherMedicineStore interface {
	ListByPatient(patientID uint) ([]models.Medicine, error)
	FindByID(medicineID uint) (models.Medicine, bool, error)
	Save(medicine *models.Medicine) error
}

type AlertVoiceNoteChecker interface {
	Exists(ref string) (bool, error)
}

// Alert is one actionable, not-yet-confirmed due dose for a patient.
type Alert struct {
	MedicineID   uint      `json:"medicineId"`
	MedicineName string    `json:"medicineName"`
	DoseTime     string    `json:"doseTime"`
	Stock        int       `json:"stock"`
	Instructions string    `json:"instructions"`
	VoiceNoteRef string    `json:"voiceNoteRef,omitempty"`
	RaisedAt     time.Time `json:"raisedAt"`
}

// Dispatcher advances a per-patient Idle/Alerting state machine. It owns no
// timers: the host calls Tick on whatever cadence it wants, and every time
// read inside Tick comes from the timestamp the host passed in, so tests can
// feed synthetic clocks. At most one alert is open per patient at any instant.
type Dispatcher struct {
	medicines DispatcherMedicineStore
	voices    AlertVoiceNoteChecker
	clock     Clock
	location  *time.Location

	mu       sync.Mutex
	monitors map[uint]*Alert
}

func NewDispatcher(medicines DispatcherMedicineStore, voices AlertVoiceNoteChecker, clock Clock, location *time.Location) *Dispatcher {
	if clock == nil {
		clock = SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}
	return &Dispatcher{
		medicines: medicines,
		voices:    voices,
		clock:     clock,
		location:  location,
		monitors:  make(map[uint]*Alert),
	}
}

// StartMonitoring begins watching a patient's schedule and evaluates it once
// right away. Starting an already-monitored patient is a no-op.
func (dispatcher *Dispatcher) StartMonitoring(patientID uint) error {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	if _, monitoring := dispatcher.monitors[patientID]; monitoring {
		return nil
	}
	dispatcher.monitors[patientID] = nil
	return dispatcher.evaluatePatient(patientID, dispatcher.clock.Now())
}

// StopMonitoring drops the patient's monitor and any open alert without
// recording anything. Stopping a patient who is not monitored is a no-op, and
// no further transitions happen for a stopped patient until started again.
func (dispatcher *Dispatcher) StopMonitoring(patientID uint) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	delete(dispatcher.monitors, patientID)
}

func (dispatcher *Dispatcher) Monitoring(patientID uint) bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()
	_, monitoring := dispatcher.monitors[patientID]
	return monitoring
}

// Tick evaluates every idle monitor against the given timestamp. Evaluation
// failures for one patient are logged and do not block the others.
func (dispatcher *Dispatcher) Tick(now time.Time) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	for patientID, alert := range dispatcher.monitors {
		if alert != nil {
			continue
		}
		if err := dispatcher.evaluatePatient(patientID, now); err != nil {
			log.Printf("dispatcher: evaluate patient %d failed: %v", patientID, err)
		}
	}
}

// CurrentAlert returns the open alert for a patient, if any. An empty result
// is the normal outcome, not an error.
func (dispatcher *Dispatcher) CurrentAlert(patientID uint) (Alert, bool) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	alert := dispatcher.monitors[patientID]
	if alert == nil {
		return Alert{}, false
	}
	return *alert, true
}

// ConfirmTaken records the open alert's dose as taken and returns to Idle.
// With no open alert it is a no-op that touches no record. If the medicine
// was deleted underneath the alert, the alert is cleared and
// ErrMedicineNotFound is returned so the caller can treat it as already gone.
func (dispatcher *Dispatcher) ConfirmTaken(patientID uint) (TakeResult, bool, error) {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	alert := dispatcher.monitors[patientID]
	if alert == nil {
		return TakeResult{}, false, nil
	}

	medicine, found, err := dispatcher.medicines.FindByID(alert.MedicineID)
	if err != nil {
		return TakeResult{}, false, err
	}
	if !found {
		dispatcher.monitors[patientID] = nil
		return TakeResult{}, false, ErrMedicineNotFound
	}

	result := RecordTaken(&medicine, DateKey(dispatcher.clock.Now(), dispatcher.location))
	if !result.AlreadyTaken {
		if err := dispatcher.medicines.Save(&medicine); err != nil {
			return TakeResult{}, false, err
		}
	}

	dispatcher.monitors[patientID] = nil
	return result, true, nil
}

// DismissAlert drops the open alert without recording a dose. The medicine
// stays due and simply falls through to missed accounting at report time.
func (dispatcher *Dispatcher) DismissAlert(patientID uint) bool {
	dispatcher.mu.Lock()
	defer dispatcher.mu.Unlock()

	if dispatcher.monitors[patientID] == nil {
		return false
	}
	dispatcher.monitors[patientID] = nil
	return true
}

// evaluatePatient surfaces at most one alert: the first medicine in stable
// insertion order that is due today, matches the current minute exactly, and
// has not been taken today. Caller holds the mutex.
func (dispatcher *Dispatcher) evaluatePatient(patientID uint, now time.Time) error {
	medicines, err := dispatcher.medicines.ListByPatient(patientID)
	if err != nil {
		return err
	}

	minute := MinuteOfDay(now, dispatcher.location)
	today := DateKey(now, dispatcher.location)

	for _, medicine := range medicines {
		if medicine.DoseTime != minute {
			continue
		}
		if !IsDueOn(MedicineSchedule(medicine), now, dispatcher.location) {
			continue
		}
		if TakenOn(medicine, today) {
			continue
		}

		alert := dispatcher.buildAlert(medicine, now)
		dispatcher.monitors[patientID] = &alert
		return nil
	}

	return nil
}

func (dispatcher *Dispatcher) buildAlert(medicine models.Medicine, now time.Time) Alert {
	alert := Alert{
		MedicineID:   medicine.ID,
		MedicineName: medicine.Name,
		DoseTime:     medicine.DoseTime,
		Stock:        medicine.Stock,
		Instructions: medicine.Instructions,
		VoiceNoteRef: medicine.VoiceNoteRef,
		RaisedAt:     now,
	}

	if alert.VoiceNoteRef != "" {
		exists, err := dispatcher.voices.Exists(alert.VoiceNoteRef)
		if err != nil || !exists {
			// Losing the recording must not suppress the alert itself.
			if err != nil {
				log.Printf("dispatcher: load voice note %s failed: %v", alert.VoiceNoteRef, err)
			}
			alert.VoiceNoteRef = ""
		}
	}
	if alert.Instructions == "" && alert.VoiceNoteRef == "" {
		alert.Instructions = FallbackInstructions
	}
	return alert
}
