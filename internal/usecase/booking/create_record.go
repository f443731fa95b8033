package booking

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/bizerr"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/domain/schedule"
)

const recordColor = "#7B68EE"

type CreateRecordInput struct {
	Fullname string
	Phone    string
	Email    string
	StaffID  int64
	Datetime string

	// Optional. Nil means "not supplied", which matters for the duration
	// precedence below.
	ServiceID    *int64
	SeanceLength *int

	SaveIfBusy   bool
	Comment      string
	Attendance   int
	CustomFields map[string]any
	RecordLabels []string
}

type CreateRecord struct {
	provider schedule.Provider
	log      *zap.Logger
}

func NewCreateRecord(provider schedule.Provider, logger *zap.Logger) *CreateRecord {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateRecord{provider: provider, log: logger}
}

// Execute resolves the service and seance length for the staff member, then
// submits the record.
//
// Service resolution: an explicitly requested service_id wins when it matches
// one of the staff member's linked services; otherwise the first linked
// service is used; no linked service at all is a business error.
//
// Seance length precedence: explicit seance_length argument, then the chosen
// service link's length, then the one-hour default.
func (uc *CreateRecord) Execute(ctx context.Context, in CreateRecordInput) (json.RawMessage, error) {
	staff, found, err := uc.provider.FindStaff(ctx, in.StaffID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, bizerr.ErrBusiness("staff_not_found", "Staff member not found")
	}

	link, ok := altegio.ServicesLink{}, false
	if in.ServiceID != nil {
		link, ok = staff.ServiceLink(*in.ServiceID)
	}
	if !ok {
		link, ok = staff.FirstServiceLink()
	}
	if !ok {
		return nil, bizerr.ErrBusiness("no_service_for_staff", "No service_id found for staff member")
	}

	seanceLength := int(schedule.DefaultSeanceLength / time.Second)
	if in.SeanceLength != nil {
		seanceLength = *in.SeanceLength
	} else if link.Length > 0 {
		seanceLength = link.Length
	}

	req := altegio.BookRequest{
		StaffID:      in.StaffID,
		Datetime:     in.Datetime,
		SeanceLength: seanceLength,
		SaveIfBusy:   in.SaveIfBusy,
		Attendance:   in.Attendance,
		APIID:        "mcp-" + uuid.NewString(),
		CustomColor:  recordColor,
		Client: altegio.BookClient{
			Name:  in.Fullname,
			Phone: in.Phone,
			Email: in.Email,
		},
		Services: []altegio.BookService{{
			ID:        link.ServiceID,
			Cost:      0,
			FirstCost: 0,
			Discount:  0,
		}},
		CustomFields: in.CustomFields,
		RecordLabels: in.RecordLabels,
		Comment:      in.Comment,
	}

	uc.log.Debug("submitting booking",
		zap.Int64("staff_id", req.StaffID),
		zap.String("datetime", req.Datetime),
		zap.Int64("service_id", link.ServiceID),
		zap.Int("seance_length", req.SeanceLength),
	)

	return uc.provider.CreateRecord(ctx, req)
}
