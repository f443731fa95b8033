package availability

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/domain/schedule"
)

// ReallyFreeAtTime answers "which of the bookable staff actually have this
// exact slot free", which the provider's own bookable-staff listing does not
// guarantee.
type ReallyFreeAtTime struct {
	provider schedule.Provider
	resolver *schedule.Resolver
}

func NewReallyFreeAtTime(
	provider schedule.Provider,
	slots *GetFreeSlots,
	perStaffTimeout time.Duration,
	logger *zap.Logger,
) *ReallyFreeAtTime {
	return &ReallyFreeAtTime{
		provider: provider,
		resolver: schedule.NewResolver(slots, perStaffTimeout, logger),
	}
}

func (uc *ReallyFreeAtTime) Execute(
	ctx context.Context,
	date string,
	timeLabel string,
	serviceIDs []int64,
) ([]schedule.StaffRef, error) {

	datetime := date + "T" + timeLabel + ":00"
	bookable, err := uc.provider.BookableStaff(ctx, serviceIDs, datetime)
	if err != nil {
		return nil, err
	}

	candidates := make([]schedule.StaffRef, 0, len(bookable))
	for _, s := range bookable {
		candidates = append(candidates, schedule.StaffRef{ID: s.ID, Name: s.Name})
	}

	return uc.resolver.ReallyFree(ctx, date, timeLabel, candidates), nil
}
