package schedule

import (
	"context"
	"encoding/json"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
)

// Provider is the slice of the scheduling provider the use cases depend on.
// Satisfied by *altegio.Client; tests substitute fakes.
type Provider interface {
	StaffList(ctx context.Context) ([]altegio.Staff, error)
	FindStaff(ctx context.Context, staffID int64) (altegio.Staff, bool, error)

	Schedule(ctx context.Context, staffID int64, startDate, endDate string) ([]altegio.ScheduleDay, error)
	Records(ctx context.Context, staffID int64, startDate, endDate string) ([]altegio.Record, error)

	Services(ctx context.Context) ([]altegio.Service, error)
	NearestSeances(ctx context.Context, staffID int64, serviceIDs []int64, datetime string) (json.RawMessage, error)
	BookableStaff(ctx context.Context, serviceIDs []int64, datetime string) ([]altegio.BookableStaff, error)

	CreateRecord(ctx context.Context, req altegio.BookRequest) (json.RawMessage, error)
}
