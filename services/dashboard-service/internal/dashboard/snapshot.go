package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mnogodumalon/terminboard/services/dashboard-service/internal/livingapps"
)

// Store is the read side of the record store consumed by the aggregation
// engine.
type Store interface {
	ListCustomers(ctx context.Context) ([]livingapps.Customer, error)
	ListServices(ctx context.Context) ([]livingapps.Service, error)
	ListAppointments(ctx context.Context) ([]livingapps.AppointmentRequest, error)
}

// Snapshot is one immutable fetch of all three collections. Aggregation
// only ever runs over a complete snapshot, never partial data.
type Snapshot struct {
	Appointments []livingapps.AppointmentRequest
	Services     []livingapps.Service
	Customers    []livingapps.Customer
	FetchedAt    time.Time
}

// LoadSnapshot fetches the three collections concurrently and waits for all
// of them. Any single failure fails the whole load; recovery is a full
// re-fetch, there is no partial retry.
func LoadSnapshot(ctx context.Context, store Store) (*Snapshot, error) {
	snap := &Snapshot{FetchedAt: time.Now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		appts, err := store.ListAppointments(ctx)
		if err != nil {
			return err
		}
		snap.Appointments = appts
		return nil
	})
	g.Go(func() error {
		services, err := store.ListServices(ctx)
		if err != nil {
			return err
		}
		snap.Services = services
		return nil
	})
	g.Go(func() error {
		customers, err := store.ListCustomers(ctx)
		if err != nil {
			return err
		}
		snap.Customers = customers
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
