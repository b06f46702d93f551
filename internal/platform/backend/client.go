// Package backend talks to the hosted record service that stores the
// durable collections. The application hydrates its in-memory snapshot
// from here on startup; everything after that is local dispatches.
package backend

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/clinexa/backoffice/internal/model"
)

// Client fetches the server-held collections. Implementations must be
// safe for concurrent use; the loader fans out one fetch per collection.
type Client interface {
	Patients(ctx context.Context) ([]model.Patient, error)
	Doctors(ctx context.Context) ([]model.Doctor, error)
	Appointments(ctx context.Context) ([]model.Appointment, error)
	Consultations(ctx context.Context) ([]model.Consultation, error)
	Medications(ctx context.Context) ([]model.Medication, error)
	Invoices(ctx context.Context) ([]model.Invoice, error)
	LabResults(ctx context.Context) ([]model.LabResult, error)
}

type restClient struct {
	http *resty.Client
}

// NewClient builds a REST client against the record service. apiKey may
// be empty for unauthenticated local backends.
func NewClient(baseURL, apiKey string, timeout time.Duration) Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if apiKey != "" {
		c.SetHeader("Authorization", "Bearer "+apiKey)
	}
	return &restClient{http: c}
}

func getAll[T any](ctx context.Context, c *resty.Client, path string) ([]T, error) {
	var out []T
	resp, err := c.R().
		SetContext(ctx).
		SetResult(&out).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("get %s: backend returned %s", path, resp.Status())
	}
	return out, nil
}

func (r *restClient) Patients(ctx context.Context) ([]model.Patient, error) {
	return getAll[model.Patient](ctx, r.http, "/patients")
}

func (r *restClient) Doctors(ctx context.Context) ([]model.Doctor, error) {
	return getAll[model.Doctor](ctx, r.http, "/doctors")
}

func (r *restClient) Appointments(ctx context.Context) ([]model.Appointment, error) {
	return getAll[model.Appointment](ctx, r.http, "/appointments")
}

func (r *restClient) Consultations(ctx context.Context) ([]model.Consultation, error) {
	return getAll[model.Consultation](ctx, r.http, "/consultations")
}

func (r *restClient) Medications(ctx context.Context) ([]model.Medication, error) {
	return getAll[model.Medication](ctx, r.http, "/medications")
}

func (r *restClient) Invoices(ctx context.Context) ([]model.Invoice, error) {
	return getAll[model.Invoice](ctx, r.http, "/invoices")
}

func (r *restClient) LabResults(ctx context.Context) ([]model.LabResult, error) {
	return getAll[model.LabResult](ctx, r.http, "/lab-results")
}
