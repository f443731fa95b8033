package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/domain/schedule"
)

// FreeSlotsResult distinguishes "no working hours that day" from "working but
// fully booked". Both are successes, not errors.
type FreeSlotsResult struct {
	HasWorkingHours bool
	Slots           []string
}

type GetFreeSlots struct {
	provider schedule.Provider
	loc      *time.Location
}

func NewGetFreeSlots(provider schedule.Provider, loc *time.Location) *GetFreeSlots {
	return &GetFreeSlots{provider: provider, loc: loc}
}

func (uc *GetFreeSlots) Execute(
	ctx context.Context,
	staffID int64,
	date string,
	seanceLength time.Duration,
) (FreeSlotsResult, error) {

	days, err := uc.provider.Schedule(ctx, staffID, date, date)
	if err != nil {
		return FreeSlotsResult{}, err
	}

	window, ok, err := uc.workingWindow(days, staffID, date)
	if err != nil {
		return FreeSlotsResult{}, err
	}
	if !ok {
		return FreeSlotsResult{HasWorkingHours: false}, nil
	}

	records, err := uc.provider.Records(ctx, staffID, date, date)
	if err != nil {
		return FreeSlotsResult{}, err
	}

	bookings := make([]schedule.Booking, 0, len(records))
	for _, rec := range records {
		start, err := parseProviderDateTime(rec.Datetime, uc.loc)
		if err != nil {
			// A record we cannot place in time cannot block anything.
			continue
		}
		bookings = append(bookings, schedule.Booking{
			Start: start,
			End:   start.Add(time.Duration(rec.SeanceLength) * time.Second),
		})
	}

	slots := schedule.ComputeFreeSlots(&window, bookings, seanceLength)
	return FreeSlotsResult{HasWorkingHours: true, Slots: slots}, nil
}

// FreeSlots implements schedule.SlotSource using the default seance length,
// which is what the cross-staff resolver checks candidates against.
func (uc *GetFreeSlots) FreeSlots(ctx context.Context, staffID int64, date string) ([]string, error) {
	res, err := uc.Execute(ctx, staffID, date, schedule.DefaultSeanceLength)
	if err != nil {
		return nil, err
	}
	return res.Slots, nil
}

func (uc *GetFreeSlots) workingWindow(
	days []altegio.ScheduleDay,
	staffID int64,
	date string,
) (schedule.WorkingWindow, bool, error) {

	for _, day := range days {
		if day.Date != "" && day.Date != date {
			continue
		}
		slot, ok := day.FirstSlot()
		if !ok {
			continue
		}

		start, err := parseDayTime(date, slot.From, uc.loc)
		if err != nil {
			return schedule.WorkingWindow{}, false, err
		}
		end, err := parseDayTime(date, slot.To, uc.loc)
		if err != nil {
			return schedule.WorkingWindow{}, false, err
		}

		return schedule.WorkingWindow{
			StaffID: staffID,
			Date:    date,
			Start:   start,
			End:     end,
		}, true, nil
	}

	return schedule.WorkingWindow{}, false, nil
}
