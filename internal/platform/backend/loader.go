package backend

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/clinexa/backoffice/internal/model"
	"github.com/clinexa/backoffice/internal/store"
)

// StatsFunc derives dashboard figures from a freshly hydrated snapshot.
type StatsFunc func(store.Snapshot, time.Time) model.DashboardStats

// Loader hydrates the store from the record service. Collections that
// fail to fetch start empty; the application remains usable and the
// failure is visible in the logs.
type Loader struct {
	client Client
	store  *store.Store
	stats  StatsFunc
	logger zerolog.Logger
	now    func() time.Time
}

func NewLoader(client Client, st *store.Store, stats StatsFunc, logger zerolog.Logger) *Loader {
	return &Loader{
		client: client,
		store:  st,
		stats:  stats,
		logger: logger,
		now:    time.Now,
	}
}

// Hydrate fetches the seven server-held collections concurrently, merges
// in the static facility fixtures and dispatches one bulk load per
// collection, followed by the initial dashboard figures.
func (l *Loader) Hydrate(ctx context.Context) {
	var (
		wg            sync.WaitGroup
		patients      []model.Patient
		doctors       []model.Doctor
		appointments  []model.Appointment
		consultations []model.Consultation
		medications   []model.Medication
		invoices      []model.Invoice
		labResults    []model.LabResult
	)

	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				l.logger.Warn().Err(err).Str("collection", name).
					Msg("initial fetch failed, collection starts empty")
			}
		}()
	}

	fetch("patients", func() (err error) { patients, err = l.client.Patients(ctx); return })
	fetch("doctors", func() (err error) { doctors, err = l.client.Doctors(ctx); return })
	fetch("appointments", func() (err error) { appointments, err = l.client.Appointments(ctx); return })
	fetch("consultations", func() (err error) { consultations, err = l.client.Consultations(ctx); return })
	fetch("medications", func() (err error) { medications, err = l.client.Medications(ctx); return })
	fetch("invoices", func() (err error) { invoices, err = l.client.Invoices(ctx); return })
	fetch("lab_results", func() (err error) { labResults, err = l.client.LabResults(ctx); return })
	wg.Wait()

	loads := []store.Command{
		store.LoadAll(store.Patients, patients),
		store.LoadAll(store.Doctors, doctors),
		store.LoadAll(store.Appointments, appointments),
		store.LoadAll(store.Consultations, consultations),
		store.LoadAll(store.Medications, medications),
		store.LoadAll(store.Invoices, invoices),
		store.LoadAll(store.LabResults, labResults),
		store.LoadAll(store.Rooms, store.FixtureRooms()),
		store.LoadAll(store.Hospitalizations, store.FixtureHospitalizations()),
		store.LoadAll(store.CareServices, store.FixtureCareServices()),
		store.LoadAll(store.InsuranceProviders, store.FixtureInsuranceProviders()),
		store.LoadAll(store.InsurancePolicies, store.FixtureInsurancePolicies()),
		store.LoadAll(store.PatientInsurances, store.FixturePatientInsurances()),
	}
	for _, cmd := range loads {
		if res := l.store.Dispatch(cmd); res.Err != nil {
			l.logger.Error().Err(res.Err).
				Str("collection", string(cmd.Collection)).
				Msg("bulk load rejected")
		}
	}

	if l.stats != nil {
		stats := l.stats(l.store.Snapshot(), l.now())
		l.store.Dispatch(store.SetStats(stats))
	}

	l.logger.Info().
		Int("patients", len(patients)).
		Int("doctors", len(doctors)).
		Int("appointments", len(appointments)).
		Int("invoices", len(invoices)).
		Msg("snapshot hydrated")
}
