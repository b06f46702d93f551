package store

import (
	"time"

	"github.com/clinexa/backoffice/internal/model"
)

// Fixture collections seed the entity kinds that have no remote backing:
// rooms and beds, care services, the insurance hierarchy and any stays in
// progress. They are loaded at hydration time alongside the fetched
// collections and live only in memory.

func fixtureTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

// FixtureRooms returns the ward layout.
func FixtureRooms() []model.Room {
	created := fixtureTime("2024-01-01T00:00:00Z")
	return []model.Room{
		{
			ID: "room-101", Number: "101", Ward: "Medicine", Type: "standard", DailyRate: 15000,
			Beds: []model.Bed{
				{ID: "bed-101-a", Number: "101-A", Status: model.BedOccupied, CurrentPatientID: "pat-seed-1", HospitalizationID: "hosp-seed-1"},
				{ID: "bed-101-b", Number: "101-B", Status: model.BedAvailable},
			},
			VersionID: 1, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "room-102", Number: "102", Ward: "Medicine", Type: "standard", DailyRate: 15000,
			Beds: []model.Bed{
				{ID: "bed-102-a", Number: "102-A", Status: model.BedAvailable},
				{ID: "bed-102-b", Number: "102-B", Status: model.BedCleaning},
			},
			VersionID: 1, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "room-201", Number: "201", Ward: "Surgery", Type: "private", DailyRate: 25000,
			Beds: []model.Bed{
				{ID: "bed-201-a", Number: "201-A", Status: model.BedAvailable},
			},
			VersionID: 1, CreatedAt: created, UpdatedAt: created,
		},
		{
			ID: "room-301", Number: "301", Ward: "Intensive Care", Type: "intensive-care", DailyRate: 50000,
			Beds: []model.Bed{
				{ID: "bed-301-a", Number: "301-A", Status: model.BedMaintenance},
				{ID: "bed-301-b", Number: "301-B", Status: model.BedAvailable},
			},
			VersionID: 1, CreatedAt: created, UpdatedAt: created,
		},
	}
}

// FixtureCareServices returns the billable care catalogue.
func FixtureCareServices() []model.CareService {
	created := fixtureTime("2024-01-01T00:00:00Z")
	mk := func(id, name, category string, price float64) model.CareService {
		return model.CareService{ID: id, Name: name, Category: category, UnitPrice: price,
			VersionID: 1, CreatedAt: created, UpdatedAt: created}
	}
	return []model.CareService{
		mk("care-dressing", "Wound dressing", "nursing", 5000),
		mk("care-injection", "Injection", "nursing", 3000),
		mk("care-infusion", "Infusion", "nursing", 8000),
		mk("care-physio", "Physiotherapy session", "rehabilitation", 12000),
		mk("care-oxygen", "Oxygen therapy (day)", "respiratory", 20000),
	}
}

// FixtureInsuranceProviders returns the payor organizations.
func FixtureInsuranceProviders() []model.InsuranceProvider {
	created := fixtureTime("2024-01-01T00:00:00Z")
	return []model.InsuranceProvider{
		{ID: "prov-sanlam", Name: "Sanlam Assurances", Phone: "+226 25 30 60 60", Active: true,
			VersionID: 1, CreatedAt: created, UpdatedAt: created},
		{ID: "prov-cnss", Name: "CNSS", Phone: "+226 25 30 28 18", Active: true,
			VersionID: 1, CreatedAt: created, UpdatedAt: created},
	}
}

// FixtureInsurancePolicies returns the plans offered by the providers.
func FixtureInsurancePolicies() []model.InsurancePolicy {
	created := fixtureTime("2024-01-01T00:00:00Z")
	return []model.InsurancePolicy{
		{ID: "pol-sanlam-std", ProviderID: "prov-sanlam", Name: "Standard", CoveragePercent: 70, AnnualLimit: 2000000,
			VersionID: 1, CreatedAt: created, UpdatedAt: created},
		{ID: "pol-sanlam-plus", ProviderID: "prov-sanlam", Name: "Plus", CoveragePercent: 80, AnnualLimit: 5000000,
			VersionID: 1, CreatedAt: created, UpdatedAt: created},
		{ID: "pol-cnss-base", ProviderID: "prov-cnss", Name: "Base", CoveragePercent: 60, AnnualLimit: 1500000,
			VersionID: 1, CreatedAt: created, UpdatedAt: created},
	}
}

// FixturePatientInsurances returns patient-to-policy bindings. The patient
// ids reference the remotely loaded registry; a binding whose patient was
// deleted simply dangles, per the no-cascade rule.
func FixturePatientInsurances() []model.PatientInsurance {
	created := fixtureTime("2024-01-01T00:00:00Z")
	return []model.PatientInsurance{
		{ID: "pi-0001", PatientID: "pat-seed-1", PolicyID: "pol-sanlam-plus", PolicyNumber: "SNL-2024-0812",
			CoveragePercent: 80, AnnualLimit: 5000000, UsedAmount: 0,
			ValidFrom: fixtureTime("2024-01-01T00:00:00Z"), ValidUntil: fixtureTime("2024-12-31T23:59:59Z"),
			Active: true, VersionID: 1, CreatedAt: created, UpdatedAt: created},
		{ID: "pi-0002", PatientID: "pat-seed-2", PolicyID: "pol-cnss-base", PolicyNumber: "CNS-2024-1145",
			CoveragePercent: 60, AnnualLimit: 1500000, UsedAmount: 120000,
			ValidFrom: fixtureTime("2024-01-01T00:00:00Z"), ValidUntil: fixtureTime("2024-12-31T23:59:59Z"),
			Active: true, VersionID: 1, CreatedAt: created, UpdatedAt: created},
	}
}

// FixtureHospitalizations returns the stays in progress at seed time.
func FixtureHospitalizations() []model.Hospitalization {
	created := fixtureTime("2024-02-10T08:30:00Z")
	return []model.Hospitalization{
		{
			ID: "hosp-seed-1", PatientID: "pat-seed-1", DoctorID: "doc-seed-1",
			RoomID: "room-101", BedID: "bed-101-a",
			AdmissionDate:   created,
			AdmissionReason: "Post-operative monitoring",
			Status:          model.HospitalizationActive,
			DailyCost:       15000,
			TotalCost:       15000,
			VersionID:       1, CreatedAt: created, UpdatedAt: created,
		},
	}
}
