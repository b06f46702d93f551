package store

import (
	"errors"
	"testing"

	"github.com/clinexa/backoffice/internal/model"
)

func TestStore_DispatchAppliesAndNotifies(t *testing.T) {
	st := New()
	var seen []Result
	st.Subscribe(func(_ Command, res Result, _ Snapshot) {
		seen = append(seen, res)
	})

	res := st.Dispatch(Add(Doctors, model.Doctor{ID: "d1", LastName: "Zongo", Speciality: "Cardiology"}))
	if !res.Applied() {
		t.Fatalf("dispatch rejected: %v", res.Err)
	}
	if res.CorrelationID == "" {
		t.Error("expected a generated correlation id")
	}
	if len(st.Snapshot().Doctors) != 1 {
		t.Fatalf("expected 1 doctor in snapshot")
	}
	if len(seen) != 1 || seen[0].Err != nil {
		t.Errorf("observer not notified of applied command: %+v", seen)
	}
}

func TestStore_RejectedDispatchLeavesSnapshot(t *testing.T) {
	st := New()
	st.Dispatch(Add(Doctors, model.Doctor{ID: "d1", LastName: "Zongo"}))
	res := st.Dispatch(Add(Doctors, model.Doctor{ID: "d1", LastName: "Kabore"}))
	if res.Applied() {
		t.Fatal("duplicate add must be rejected")
	}
	if !errors.Is(res.Err, ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", res.Err)
	}
	snap := st.Snapshot()
	if len(snap.Doctors) != 1 || snap.Doctors[0].LastName != "Zongo" {
		t.Errorf("snapshot changed by rejected command: %+v", snap.Doctors)
	}
}

func TestStore_SnapshotIsolatedFromLaterDispatches(t *testing.T) {
	st := New()
	st.Dispatch(Add(Doctors, model.Doctor{ID: "d1", LastName: "Zongo"}))
	before := st.Snapshot()
	st.Dispatch(Add(Doctors, model.Doctor{ID: "d2", LastName: "Kabore"}))
	if len(before.Doctors) != 1 {
		t.Errorf("earlier snapshot mutated by later dispatch, got %d doctors", len(before.Doctors))
	}
	if len(st.Snapshot().Doctors) != 2 {
		t.Errorf("expected 2 doctors after second dispatch")
	}
}
