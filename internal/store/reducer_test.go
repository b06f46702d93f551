package store

import (
	"errors"
	"testing"
	"time"

	"github.com/clinexa/backoffice/internal/model"
)

func testPatient(id, last string) model.Patient {
	return model.Patient{ID: id, FirstName: "Awa", LastName: last, CreatedAt: time.Now()}
}

func TestApply_AddThenUpdate_LastUpdateWins(t *testing.T) {
	s := Snapshot{}
	s, err := Apply(s, Add(Patients, testPatient("p1", "Traore")))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	upd := testPatient("p1", "Ouedraogo")
	upd.VersionID = 1
	s, err = Apply(s, Update(Patients, upd))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(s.Patients) != 1 {
		t.Fatalf("expected 1 patient, got %d", len(s.Patients))
	}
	if s.Patients[0].LastName != "Ouedraogo" {
		t.Errorf("expected last update's payload, got %s", s.Patients[0].LastName)
	}
	if s.Patients[0].VersionID != 2 {
		t.Errorf("expected version 2 after update, got %d", s.Patients[0].VersionID)
	}
}

func TestApply_AddDuplicateID_Rejected(t *testing.T) {
	s := Snapshot{}
	s, err := Apply(s, Add(Patients, testPatient("p1", "Traore")))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err = Apply(s, Add(Patients, testPatient("p1", "Kone")))
	if !errors.Is(err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

func TestApply_AddMissingID_Rejected(t *testing.T) {
	_, err := Apply(Snapshot{}, Add(Patients, testPatient("", "Traore")))
	if !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
}

func TestApply_UpdateAbsent_Rejected(t *testing.T) {
	s := Snapshot{}
	before := s
	_, err := Apply(s, Update(Patients, testPatient("ghost", "Traore")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if len(before.Patients) != 0 {
		t.Error("snapshot changed on rejected update")
	}
}

func TestApply_UpdateStaleVersion_Conflict(t *testing.T) {
	s := Snapshot{}
	s, _ = Apply(s, Add(Patients, testPatient("p1", "Traore")))
	first := testPatient("p1", "Kone")
	first.VersionID = 1
	s, err := Apply(s, Update(Patients, first))
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	// A second writer still holding version 1.
	stale := testPatient("p1", "Sawadogo")
	stale.VersionID = 1
	next, err := Apply(s, Update(Patients, stale))
	if !errors.Is(err, ErrVersionConflict) {
		t.Fatalf("expected ErrVersionConflict, got %v", err)
	}
	if next.Patients[0].LastName != "Kone" {
		t.Errorf("stale write must not overwrite, got %s", next.Patients[0].LastName)
	}
}

func TestApply_DeleteAbsent_IdempotentNoOp(t *testing.T) {
	s := Snapshot{}
	s, _ = Apply(s, Add(Patients, testPatient("p1", "Traore")))
	next, err := Apply(s, Delete(Patients, "ghost"))
	if err != nil {
		t.Fatalf("delete absent must not error: %v", err)
	}
	if len(next.Patients) != 1 {
		t.Errorf("expected store unchanged, got %d patients", len(next.Patients))
	}
}

func TestApply_Delete_RemovesOnlyTarget(t *testing.T) {
	s := Snapshot{}
	s, _ = Apply(s, Add(Patients, testPatient("p1", "Traore")))
	s, _ = Apply(s, Add(Patients, testPatient("p2", "Kone")))
	s, err := Apply(s, Delete(Patients, "p1"))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Patients) != 1 || s.Patients[0].ID != "p2" {
		t.Errorf("expected only p2 to remain, got %+v", s.Patients)
	}
}

func TestApply_DeletePatient_LeavesInvoiceDangling(t *testing.T) {
	s := Snapshot{}
	s, _ = Apply(s, Add(Patients, testPatient("p1", "Traore")))
	inv := model.Invoice{ID: "inv1", PatientID: "p1", Status: model.InvoicePending, Date: time.Now()}
	s, _ = Apply(s, Add(Invoices, inv))
	s, err := Apply(s, Delete(Patients, "p1"))
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(s.Invoices) != 1 {
		t.Fatalf("invoice must survive patient deletion, got %d invoices", len(s.Invoices))
	}
	if s.Invoices[0].PatientID != "p1" {
		t.Errorf("invoice keeps its unresolved patient id, got %s", s.Invoices[0].PatientID)
	}
}

func TestApply_LoadAll_BulkReplace(t *testing.T) {
	s := Snapshot{}
	s, _ = Apply(s, Add(Patients, testPatient("old", "Traore")))
	batch := []model.Patient{testPatient("p1", "Kone"), testPatient("p2", "Sawadogo")}
	s, err := Apply(s, LoadAll(Patients, batch))
	if err != nil {
		t.Fatalf("load-all: %v", err)
	}
	if len(s.Patients) != 2 || s.Patients[0].ID != "p1" {
		t.Errorf("expected bulk replacement preserving order, got %+v", s.Patients)
	}
}

func TestApply_BadPayloadType_Rejected(t *testing.T) {
	_, err := Apply(Snapshot{}, Add(Patients, model.Doctor{ID: "d1"}))
	if !errors.Is(err, ErrBadPayload) {
		t.Errorf("expected ErrBadPayload, got %v", err)
	}
}

func TestApply_UnknownCollection_Rejected(t *testing.T) {
	_, err := Apply(Snapshot{}, Add("martians", testPatient("p1", "Traore")))
	if !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestApply_UpdateBed_RewritesOnlyTargetBed(t *testing.T) {
	s := Snapshot{Rooms: FixtureRooms()}
	bed := model.Bed{ID: "bed-102-a", Number: "102-A", Status: model.BedOccupied, CurrentPatientID: "p1"}
	s, err := Apply(s, UpdateBed(BedUpdate{RoomID: "room-102", RoomVersion: 1, Bed: bed}))
	if err != nil {
		t.Fatalf("update-bed: %v", err)
	}
	room := s.Rooms[1]
	if room.ID != "room-102" {
		t.Fatalf("unexpected room order: %s", room.ID)
	}
	if room.Beds[0].Status != model.BedOccupied || room.Beds[0].CurrentPatientID != "p1" {
		t.Errorf("target bed not rewritten: %+v", room.Beds[0])
	}
	if room.Beds[1].Status != model.BedCleaning {
		t.Errorf("sibling bed clobbered: %+v", room.Beds[1])
	}
	if room.VersionID != 2 {
		t.Errorf("room version not bumped, got %d", room.VersionID)
	}
}

func TestApply_UpdateBed_StaleRoomVersion_Conflict(t *testing.T) {
	s := Snapshot{Rooms: FixtureRooms()}
	bed := model.Bed{ID: "bed-102-a", Status: model.BedOccupied}
	_, err := Apply(s, UpdateBed(BedUpdate{RoomID: "room-102", RoomVersion: 99, Bed: bed}))
	if !errors.Is(err, ErrVersionConflict) {
		t.Errorf("expected ErrVersionConflict, got %v", err)
	}
}

func TestApply_UpdateBed_UnknownBed_Rejected(t *testing.T) {
	s := Snapshot{Rooms: FixtureRooms()}
	_, err := Apply(s, UpdateBed(BedUpdate{RoomID: "room-102", RoomVersion: 1, Bed: model.Bed{ID: "ghost"}}))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestApply_SetTheme(t *testing.T) {
	s, err := Apply(Snapshot{}, SetTheme(model.ThemeDark))
	if err != nil {
		t.Fatalf("set-theme: %v", err)
	}
	if s.Theme != model.ThemeDark {
		t.Errorf("expected dark theme, got %s", s.Theme)
	}
	if _, err := Apply(s, SetTheme("sepia")); !errors.Is(err, ErrBadPayload) {
		t.Errorf("expected ErrBadPayload for unknown theme, got %v", err)
	}
}
