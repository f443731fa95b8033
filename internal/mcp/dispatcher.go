package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/audit"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/bizerr"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/config"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/domain/schedule"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/usecase/availability"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/usecase/booking"
)

// Dispatcher routes tools/call invocations to their handlers and shapes every
// outcome into the MCP content envelope.
type Dispatcher struct {
	cfg          *config.Config
	provider     schedule.Provider
	freeSlots    *availability.GetFreeSlots
	reallyFree   *availability.ReallyFreeAtTime
	createRecord *booking.CreateRecord
	audit        *audit.Dispatcher
}

func NewDispatcher(
	cfg *config.Config,
	provider schedule.Provider,
	freeSlots *availability.GetFreeSlots,
	reallyFree *availability.ReallyFreeAtTime,
	createRecord *booking.CreateRecord,
	auditor *audit.Dispatcher,
) *Dispatcher {
	if auditor == nil {
		auditor = audit.NewDispatcher(zap.NewNop())
	}
	return &Dispatcher{
		cfg:          cfg,
		provider:     provider,
		freeSlots:    freeSlots,
		reallyFree:   reallyFree,
		createRecord: createRecord,
		audit:        auditor,
	}
}

func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) (*ToolResult, *Error) {
	if !d.cfg.HasCompany() {
		return nil, NewError(CodeToolFailure, "COMPANY_ID not configured")
	}

	started := time.Now()
	result, rpcErr := d.dispatch(ctx, name, args)

	ev := audit.Event{Tool: name, Duration: time.Since(started)}
	if rpcErr != nil {
		ev.Code = rpcErr.Code
		ev.Message = rpcErr.Message
	}
	d.audit.Dispatch(ev)

	return result, rpcErr
}

func (d *Dispatcher) dispatch(ctx context.Context, name string, args json.RawMessage) (*ToolResult, *Error) {
	switch name {
	case "get_staff_list":
		return d.staffList(ctx)
	case "get_available_slots":
		return d.availableSlots(ctx, args)
	case "book_record":
		return d.bookRecord(ctx, args)
	case "get_service_list":
		return d.serviceList(ctx)
	case "get_nearest_sessions":
		return d.nearestSessions(ctx, args)
	case "get_bookable_staff":
		return d.bookableStaff(ctx, args)
	case "get_staff_really_free_at_time":
		return d.staffReallyFreeAtTime(ctx, args)
	default:
		return nil, NewError(CodeMethodNotFound, "Unknown tool: "+name)
	}
}

// ---------------------------------------------------------------------------
// get_staff_list

type staffEntry struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	ServiceID      *int64 `json:"service_id"`
}

func (d *Dispatcher) staffList(ctx context.Context) (*ToolResult, *Error) {
	staff, err := d.provider.StaffList(ctx)
	if err != nil {
		return nil, toolError(err, "Failed to fetch staff list")
	}

	entries := make([]staffEntry, 0, len(staff))
	for _, s := range staff {
		entry := staffEntry{ID: s.ID, Name: s.Name, Specialization: s.Specialization}
		if link, ok := s.FirstServiceLink(); ok {
			id := link.ServiceID
			entry.ServiceID = &id
		}
		entries = append(entries, entry)
	}

	return JSONResult(map[string]any{"staff": entries})
}

// ---------------------------------------------------------------------------
// get_available_slots

type availableSlotsArgs struct {
	StaffID      *int64  `json:"staff_id"`
	Date         *string `json:"date"`
	SeanceLength *int    `json:"seance_length"`
}

func (d *Dispatcher) availableSlots(ctx context.Context, args json.RawMessage) (*ToolResult, *Error) {
	var in availableSlotsArgs
	if rpcErr := decodeArgs(args, &in); rpcErr != nil {
		return nil, rpcErr
	}
	if in.StaffID == nil {
		return nil, NewError(CodeToolBadRequest, "staff_id is required")
	}
	if in.Date == nil || *in.Date == "" {
		return nil, NewError(CodeToolBadRequest, "date is required")
	}

	seanceLength := schedule.DefaultSeanceLength
	if in.SeanceLength != nil && *in.SeanceLength > 0 {
		seanceLength = time.Duration(*in.SeanceLength) * time.Second
	}

	res, err := d.freeSlots.Execute(ctx, *in.StaffID, *in.Date, seanceLength)
	if err != nil {
		return nil, toolError(err, "Failed to calculate available slots")
	}
	if !res.HasWorkingHours {
		return TextResult(fmt.Sprintf("На %s немає робочих слотів у майстра", *in.Date)), nil
	}

	slots := res.Slots
	if slots == nil {
		slots = []string{}
	}
	return JSONResult(map[string]any{
		"staff_id":   *in.StaffID,
		"date":       *in.Date,
		"free_slots": slots,
	})
}

// ---------------------------------------------------------------------------
// book_record

type bookRecordArgs struct {
	Fullname     *string        `json:"fullname"`
	Phone        *string        `json:"phone"`
	Email        *string        `json:"email"`
	StaffID      *int64         `json:"staff_id"`
	Datetime     *string        `json:"datetime"`
	ServiceID    *int64         `json:"service_id"`
	SeanceLength *int           `json:"seance_length"`
	SaveIfBusy   bool           `json:"save_if_busy"`
	Comment      string         `json:"comment"`
	Attendance   int            `json:"attendance"`
	CustomFields map[string]any `json:"custom_fields"`
	RecordLabels []string       `json:"record_labels"`
}

func (d *Dispatcher) bookRecord(ctx context.Context, args json.RawMessage) (*ToolResult, *Error) {
	var in bookRecordArgs
	if rpcErr := decodeArgs(args, &in); rpcErr != nil {
		return nil, rpcErr
	}
	switch {
	case in.Fullname == nil || *in.Fullname == "":
		return nil, NewError(CodeToolBadRequest, "fullname is required")
	case in.Phone == nil || *in.Phone == "":
		return nil, NewError(CodeToolBadRequest, "phone is required")
	case in.Email == nil || *in.Email == "":
		return nil, NewError(CodeToolBadRequest, "email is required")
	case in.StaffID == nil:
		return nil, NewError(CodeToolBadRequest, "staff_id is required")
	case in.Datetime == nil || *in.Datetime == "":
		return nil, NewError(CodeToolBadRequest, "datetime is required")
	}

	_, err := d.createRecord.Execute(ctx, booking.CreateRecordInput{
		Fullname:     *in.Fullname,
		Phone:        *in.Phone,
		Email:        *in.Email,
		StaffID:      *in.StaffID,
		Datetime:     *in.Datetime,
		ServiceID:    in.ServiceID,
		SeanceLength: in.SeanceLength,
		SaveIfBusy:   in.SaveIfBusy,
		Comment:      in.Comment,
		Attendance:   in.Attendance,
		CustomFields: in.CustomFields,
		RecordLabels: in.RecordLabels,
	})
	if err != nil {
		return nil, toolError(err, "Failed to create booking")
	}

	return TextResult("✅ Запис створено на " + *in.Datetime), nil
}

// ---------------------------------------------------------------------------
// get_service_list

type serviceEntry struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Duration *int     `json:"duration"`
	Cost     *float64 `json:"cost"`
}

func (d *Dispatcher) serviceList(ctx context.Context) (*ToolResult, *Error) {
	services, err := d.provider.Services(ctx)
	if err != nil {
		return nil, toolError(err, "Failed to fetch service list")
	}

	entries := make([]serviceEntry, 0, len(services))
	for _, svc := range services {
		entry := serviceEntry{ID: svc.ID, Title: svc.Title}
		if svc.SeanceLength > 0 {
			v := svc.SeanceLength
			entry.Duration = &v
		}
		if svc.Cost > 0 {
			v := svc.Cost
			entry.Cost = &v
		}
		entries = append(entries, entry)
	}

	return JSONResult(map[string]any{"services": entries})
}

// ---------------------------------------------------------------------------
// get_nearest_sessions

type nearestSessionsArgs struct {
	StaffID    *int64  `json:"staff_id"`
	ServiceIDs []int64 `json:"service_ids"`
	Datetime   string  `json:"datetime"`
}

func (d *Dispatcher) nearestSessions(ctx context.Context, args json.RawMessage) (*ToolResult, *Error) {
	var in nearestSessionsArgs
	if rpcErr := decodeArgs(args, &in); rpcErr != nil {
		return nil, rpcErr
	}
	if in.StaffID == nil {
		return nil, NewError(CodeToolBadRequest, "staff_id is required")
	}

	data, err := d.provider.NearestSeances(ctx, *in.StaffID, in.ServiceIDs, in.Datetime)
	if err != nil {
		return nil, toolError(err, "Failed to fetch nearest sessions")
	}
	return JSONResult(data)
}

// ---------------------------------------------------------------------------
// get_bookable_staff

type bookableStaffArgs struct {
	ServiceIDs []int64 `json:"service_ids"`
	Datetime   string  `json:"datetime"`
}

func (d *Dispatcher) bookableStaff(ctx context.Context, args json.RawMessage) (*ToolResult, *Error) {
	var in bookableStaffArgs
	if rpcErr := decodeArgs(args, &in); rpcErr != nil {
		return nil, rpcErr
	}

	staff, err := d.provider.BookableStaff(ctx, in.ServiceIDs, in.Datetime)
	if err != nil {
		return nil, toolError(err, "Failed to fetch bookable staff")
	}
	return JSONResult(staff)
}

// ---------------------------------------------------------------------------
// get_staff_really_free_at_time

type reallyFreeArgs struct {
	Date       *string `json:"date"`
	Time       *string `json:"time"`
	ServiceIDs []int64 `json:"service_ids"`
}

func (d *Dispatcher) staffReallyFreeAtTime(ctx context.Context, args json.RawMessage) (*ToolResult, *Error) {
	var in reallyFreeArgs
	if rpcErr := decodeArgs(args, &in); rpcErr != nil {
		return nil, rpcErr
	}
	if in.Date == nil || *in.Date == "" {
		return nil, NewError(CodeToolBadRequest, "date is required")
	}
	if in.Time == nil || *in.Time == "" {
		return nil, NewError(CodeToolBadRequest, "time is required")
	}

	free, err := d.reallyFree.Execute(ctx, *in.Date, *in.Time, in.ServiceIDs)
	if err != nil {
		return nil, toolError(err, "Failed to resolve free staff")
	}

	// The display token for this tool is the staff name; ids are available
	// through get_bookable_staff.
	names := make([]string, 0, len(free))
	for _, ref := range free {
		names = append(names, ref.Name)
	}
	return JSONResult(map[string]any{
		"date":       *in.Date,
		"time":       *in.Time,
		"free_staff": names,
	})
}

// ---------------------------------------------------------------------------

func decodeArgs(args json.RawMessage, out any) *Error {
	if len(args) == 0 {
		return nil
	}
	if err := json.Unmarshal(args, out); err != nil {
		return NewError(CodeToolBadRequest, "invalid tool arguments")
	}
	return nil
}

// toolError maps upstream and business failures to a tool-scoped JSON-RPC
// error, preferring the provider's own message when it exists.
func toolError(err error, fallback string) *Error {
	if be, ok := bizerr.AsBusiness(err); ok {
		return NewError(CodeToolBadRequest, be.Error())
	}

	var apiErr *altegio.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return NewError(CodeToolFailure, apiErr.Message)
	}
	return NewError(CodeToolFailure, fallback)
}
