package booking

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/altegio"
	"github.com/BruksfildServices01/altegio-mcp-gateway/internal/bizerr"
)

type fakeProvider struct {
	staff []altegio.Staff

	created *altegio.BookRequest
}

func (f *fakeProvider) StaffList(context.Context) ([]altegio.Staff, error) { return f.staff, nil }

func (f *fakeProvider) FindStaff(_ context.Context, staffID int64) (altegio.Staff, bool, error) {
	for _, s := range f.staff {
		if s.ID == staffID {
			return s, true, nil
		}
	}
	return altegio.Staff{}, false, nil
}

func (f *fakeProvider) Schedule(context.Context, int64, string, string) ([]altegio.ScheduleDay, error) {
	return nil, nil
}

func (f *fakeProvider) Records(context.Context, int64, string, string) ([]altegio.Record, error) {
	return nil, nil
}

func (f *fakeProvider) Services(context.Context) ([]altegio.Service, error) { return nil, nil }

func (f *fakeProvider) NearestSeances(context.Context, int64, []int64, string) (json.RawMessage, error) {
	return nil, nil
}

func (f *fakeProvider) BookableStaff(context.Context, []int64, string) ([]altegio.BookableStaff, error) {
	return nil, nil
}

func (f *fakeProvider) CreateRecord(_ context.Context, req altegio.BookRequest) (json.RawMessage, error) {
	f.created = &req
	return json.RawMessage(`{"id": 42}`), nil
}

func staffWithLinks() []altegio.Staff {
	return []altegio.Staff{{
		ID:   7,
		Name: "Anna",
		ServicesLinks: []altegio.ServicesLink{
			{ServiceID: 100, Length: 1800},
			{ServiceID: 200, Length: 5400},
		},
	}}
}

func baseInput() CreateRecordInput {
	return CreateRecordInput{
		Fullname: "Olena Shevchenko",
		Phone:    "+380501112233",
		Email:    "olena@example.com",
		StaffID:  7,
		Datetime: "2025-07-18T14:00:00",
	}
}

func TestCreateRecord_ExplicitServiceUsesLinkedLength(t *testing.T) {
	provider := &fakeProvider{staff: staffWithLinks()}
	uc := NewCreateRecord(provider, nil)

	in := baseInput()
	serviceID := int64(200)
	in.ServiceID = &serviceID

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	require.NotNil(t, provider.created)
	assert.Equal(t, 5400, provider.created.SeanceLength)
	require.Len(t, provider.created.Services, 1)
	assert.Equal(t, int64(200), provider.created.Services[0].ID)
}

func TestCreateRecord_UnknownServiceFallsBackToFirstLink(t *testing.T) {
	provider := &fakeProvider{staff: staffWithLinks()}
	uc := NewCreateRecord(provider, nil)

	in := baseInput()
	serviceID := int64(999)
	in.ServiceID = &serviceID

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, int64(100), provider.created.Services[0].ID)
	assert.Equal(t, 1800, provider.created.SeanceLength)
}

func TestCreateRecord_ExplicitSeanceLengthWins(t *testing.T) {
	provider := &fakeProvider{staff: staffWithLinks()}
	uc := NewCreateRecord(provider, nil)

	in := baseInput()
	serviceID := int64(200)
	length := 900
	in.ServiceID = &serviceID
	in.SeanceLength = &length

	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 900, provider.created.SeanceLength)
}

func TestCreateRecord_DefaultsToHourWithoutLinkLength(t *testing.T) {
	provider := &fakeProvider{staff: []altegio.Staff{{
		ID:            7,
		ServicesLinks: []altegio.ServicesLink{{ServiceID: 100, Length: 0}},
	}}}
	uc := NewCreateRecord(provider, nil)

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.Equal(t, 3600, provider.created.SeanceLength)
}

func TestCreateRecord_NoLinkedServices(t *testing.T) {
	provider := &fakeProvider{staff: []altegio.Staff{{ID: 7}}}
	uc := NewCreateRecord(provider, nil)

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, bizerr.IsBusiness(err, "no_service_for_staff"))
}

func TestCreateRecord_StaffNotFound(t *testing.T) {
	provider := &fakeProvider{}
	uc := NewCreateRecord(provider, nil)

	_, err := uc.Execute(context.Background(), baseInput())
	assert.True(t, bizerr.IsBusiness(err, "staff_not_found"))
}

func TestCreateRecord_PayloadShape(t *testing.T) {
	provider := &fakeProvider{staff: staffWithLinks()}
	uc := NewCreateRecord(provider, nil)

	_, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	req := provider.created
	assert.Equal(t, "Olena Shevchenko", req.Client.Name)
	assert.Equal(t, "+380501112233", req.Client.Phone)
	assert.Equal(t, recordColor, req.CustomColor)
	assert.True(t, len(req.APIID) > len("mcp-"))
	assert.Equal(t, "mcp-", req.APIID[:4])
}
