package ward

import (
	"context"
	"testing"
	"time"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	rooms := []model.Room{
		{
			ID: "room-1", Number: "101", Ward: "Médecine", DailyRate: 15000, VersionID: 1,
			Beds: []model.Bed{
				{ID: "bed-a", Number: "A", Status: model.BedAvailable},
				{ID: "bed-b", Number: "B", Status: model.BedOccupied, CurrentPatientID: "pat-2"},
			},
		},
	}
	if res := st.Dispatch(store.LoadAll(store.Rooms, rooms)); res.Err != nil {
		t.Fatalf("seed rooms: %v", res.Err)
	}
	svc := NewService(st)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestAssignBed(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.AssignBed(context.Background(), "room-1", "bed-a", "pat-1", "hosp-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	room, _ := svc.GetRoom("room-1")
	bed := room.Beds[room.FindBed("bed-a")]
	if bed.Status != model.BedOccupied || bed.CurrentPatientID != "pat-1" {
		t.Fatalf("unexpected bed state: %+v", bed)
	}
	// sibling bed untouched
	sibling := room.Beds[room.FindBed("bed-b")]
	if sibling.CurrentPatientID != "pat-2" {
		t.Fatalf("sibling bed must be preserved: %+v", sibling)
	}
	if room.VersionID != 2 {
		t.Fatalf("expected room version bump, got %d", room.VersionID)
	}
}

func TestAssignBedRequiresPatient(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.AssignBed(context.Background(), "room-1", "bed-a", "", ""); err == nil {
		t.Fatal("expected error for missing patient")
	}
}

func TestAssignRejectsAlreadyHospitalizedPatient(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.AssignBed(context.Background(), "room-1", "bed-a", "pat-2", ""); err == nil {
		t.Fatal("expected error: patient already occupies a bed")
	}
}

func TestAssignOccupiedBedRejected(t *testing.T) {
	svc, _ := newTestService(t)
	if err := svc.AssignBed(context.Background(), "room-1", "bed-b", "pat-3", ""); err == nil {
		t.Fatal("expected error for occupied bed")
	}
}

func TestReleaseBedEntersCleaning(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.ReleaseBed(context.Background(), "room-1", "bed-b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, _ := svc.GetRoom("room-1")
	bed := room.Beds[room.FindBed("bed-b")]
	if bed.Status != model.BedCleaning {
		t.Fatalf("expected cleaning, got %q", bed.Status)
	}
	if bed.CurrentPatientID != "" || bed.HospitalizationID != "" {
		t.Fatalf("occupancy references must be cleared: %+v", bed)
	}
}

func TestFinishCleaningStampsTime(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.ReleaseBed(context.Background(), "room-1", "bed-b"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := svc.FinishCleaning(context.Background(), "room-1", "bed-b"); err != nil {
		t.Fatalf("finish cleaning: %v", err)
	}
	room, _ := svc.GetRoom("room-1")
	bed := room.Beds[room.FindBed("bed-b")]
	if bed.Status != model.BedAvailable {
		t.Fatalf("expected available, got %q", bed.Status)
	}
	if bed.LastCleaned == nil {
		t.Fatal("expected cleaning timestamp")
	}
}

func TestMaintenanceExitsIntoCleaning(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.StartMaintenance(context.Background(), "room-1", "bed-a"); err != nil {
		t.Fatalf("start maintenance: %v", err)
	}
	if err := svc.EndMaintenance(context.Background(), "room-1", "bed-a"); err != nil {
		t.Fatalf("end maintenance: %v", err)
	}
	room, _ := svc.GetRoom("room-1")
	bed := room.Beds[room.FindBed("bed-a")]
	if bed.Status != model.BedCleaning {
		t.Fatalf("maintenance must exit into cleaning, got %q", bed.Status)
	}
}

func TestStartMaintenanceForcesOccupiedBed(t *testing.T) {
	svc, _ := newTestService(t)

	if err := svc.StartMaintenance(context.Background(), "room-1", "bed-b"); err != nil {
		t.Fatalf("start maintenance: %v", err)
	}
	room, _ := svc.GetRoom("room-1")
	bed := room.Beds[room.FindBed("bed-b")]
	if bed.Status != model.BedMaintenance {
		t.Fatalf("expected maintenance, got %q", bed.Status)
	}
	if bed.CurrentPatientID != "" || bed.HospitalizationID != "" {
		t.Fatalf("occupancy references must be cleared: %+v", bed)
	}
}

func TestOccupancy(t *testing.T) {
	svc, _ := newTestService(t)

	occ := svc.Occupancy()
	if occ.TotalBeds != 2 || occ.OccupiedBeds != 1 || occ.AvailableBeds != 1 {
		t.Fatalf("unexpected occupancy: %+v", occ)
	}
	if occ.Rate != 0.5 {
		t.Fatalf("expected rate 0.5, got %v", occ.Rate)
	}
}
