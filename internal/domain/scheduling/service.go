// Package scheduling owns appointments, the consultations recorded after
// them, and the laboratory results attached to patients.
package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

var validAppointmentStatuses = map[string]bool{
	model.AppointmentPending: true, model.AppointmentConfirmed: true,
	model.AppointmentCompleted: true, model.AppointmentCancelled: true,
}

type Service struct {
	store *store.Store
	now   func() time.Time
	newID func() string
}

func NewService(st *store.Store) *Service {
	return &Service{store: st, now: time.Now, newID: uuid.NewString}
}

func (s *Service) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if a.DoctorID == "" {
		return fmt.Errorf("doctor_id is required")
	}
	if a.Date.IsZero() {
		return fmt.Errorf("date is required")
	}
	if a.Duration <= 0 {
		a.Duration = 30
	}
	if a.Status == "" {
		a.Status = model.AppointmentPending
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	if a.ID == "" {
		a.ID = s.newID()
	}
	now := s.now()
	a.CreatedAt = now
	a.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Appointments, *a)); !res.Applied() {
		return fmt.Errorf("store appointment: %w", res.Err)
	}
	return nil
}

func (s *Service) UpdateAppointment(ctx context.Context, a *model.Appointment) error {
	if a.ID == "" {
		return fmt.Errorf("id is required")
	}
	if !validAppointmentStatuses[a.Status] {
		return fmt.Errorf("invalid appointment status: %s", a.Status)
	}
	a.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.Appointments, *a)); !res.Applied() {
		return res.Err
	}
	a.VersionID++
	return nil
}

func (s *Service) DeleteAppointment(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Appointments, id)); !res.Applied() {
		return fmt.Errorf("delete appointment: %w", res.Err)
	}
	return nil
}

func (s *Service) GetAppointment(id string) (model.Appointment, error) {
	for _, a := range s.store.Snapshot().Appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return model.Appointment{}, store.ErrNotFound
}

// ListAppointments filters by patient, doctor and calendar day, sorted by
// date ascending.
func (s *Service) ListAppointments(patientID, doctorID string, day *time.Time) []model.Appointment {
	var out []model.Appointment
	for _, a := range s.store.Snapshot().Appointments {
		if patientID != "" && a.PatientID != patientID {
			continue
		}
		if doctorID != "" && a.DoctorID != doctorID {
			continue
		}
		if day != nil {
			y1, m1, d1 := a.Date.Date()
			y2, m2, d2 := day.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// RecordConsultation stores the clinical note and, when linked to an
// appointment, marks that appointment completed.
func (s *Service) RecordConsultation(ctx context.Context, con *model.Consultation) error {
	if con.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if con.DoctorID == "" {
		return fmt.Errorf("doctor_id is required")
	}
	if con.ID == "" {
		con.ID = s.newID()
	}
	now := s.now()
	if con.Date.IsZero() {
		con.Date = now
	}
	con.CreatedAt = now
	con.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.Consultations, *con)); !res.Applied() {
		return fmt.Errorf("store consultation: %w", res.Err)
	}
	if con.AppointmentID != "" {
		if appt, err := s.GetAppointment(con.AppointmentID); err == nil {
			appt.Status = model.AppointmentCompleted
			appt.UpdatedAt = now
			s.store.Dispatch(store.Update(store.Appointments, appt))
		}
	}
	return nil
}

func (s *Service) UpdateConsultation(ctx context.Context, con *model.Consultation) error {
	if con.ID == "" {
		return fmt.Errorf("id is required")
	}
	con.UpdatedAt = s.now()
	if res := s.store.Dispatch(store.Update(store.Consultations, *con)); !res.Applied() {
		return res.Err
	}
	con.VersionID++
	return nil
}

func (s *Service) DeleteConsultation(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.Consultations, id)); !res.Applied() {
		return fmt.Errorf("delete consultation: %w", res.Err)
	}
	return nil
}

func (s *Service) ListConsultations(patientID string) []model.Consultation {
	var out []model.Consultation
	for _, c := range s.store.Snapshot().Consultations {
		if patientID == "" || c.PatientID == patientID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

func (s *Service) RecordLabResult(ctx context.Context, lr *model.LabResult) error {
	if lr.PatientID == "" {
		return fmt.Errorf("patient_id is required")
	}
	if lr.TestName == "" {
		return fmt.Errorf("test_name is required")
	}
	if lr.ID == "" {
		lr.ID = s.newID()
	}
	now := s.now()
	if lr.Date.IsZero() {
		lr.Date = now
	}
	lr.CreatedAt = now
	lr.UpdatedAt = now
	if res := s.store.Dispatch(store.Add(store.LabResults, *lr)); !res.Applied() {
		return fmt.Errorf("store lab result: %w", res.Err)
	}
	return nil
}

func (s *Service) DeleteLabResult(ctx context.Context, id string) error {
	if res := s.store.Dispatch(store.Delete(store.LabResults, id)); !res.Applied() {
		return fmt.Errorf("delete lab result: %w", res.Err)
	}
	return nil
}

// ListLabResults filters by patient, newest first. abnormalOnly keeps only
// out-of-range results.
func (s *Service) ListLabResults(patientID string, abnormalOnly bool) []model.LabResult {
	var out []model.LabResult
	for _, lr := range s.store.Snapshot().LabResults {
		if patientID != "" && lr.PatientID != patientID {
			continue
		}
		if abnormalOnly && !lr.Abnormal {
			continue
		}
		out = append(out, lr)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}
