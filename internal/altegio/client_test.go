package altegio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(ClientOptions{
		BaseURL:      srv.URL,
		CompanyID:    "123",
		PartnerToken: "ptoken",
		UserToken:    "utoken",
		Timeout:      2 * time.Second,
	})
	return client, srv
}

func TestStaffList_ParsesEnvelope(t *testing.T) {
	var gotAuth, gotAccept string

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotAccept = r.Header.Get("Accept")
		assert.Equal(t, "/company/123/staff", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": 7, "name": "Anna", "specialization": "Barber",
				 "services_links": [{"service_id": 100, "length": 1800}]}
			]
		}`))
	})

	staff, err := client.StaffList(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer ptoken, User utoken", gotAuth)
	assert.Equal(t, "application/vnd.api.v2+json", gotAccept)

	require.Len(t, staff, 1)
	assert.Equal(t, int64(7), staff[0].ID)
	link, ok := staff[0].FirstServiceLink()
	require.True(t, ok)
	assert.Equal(t, int64(100), link.ServiceID)
	assert.Equal(t, 1800, link.Length)
}

func TestStaffList_ProviderFailureCarriesMetaMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success": false, "meta": {"message": "Invalid user token"}}`))
	})

	_, err := client.StaffList(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Invalid user token", apiErr.Message)
	assert.Equal(t, http.StatusForbidden, apiErr.Status)
}

func TestStaffList_ProviderFailureWithoutMeta(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"success": false}`))
	})

	_, err := client.StaffList(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Altegio API error", apiErr.Message)
}

func TestStaffList_NonJSONBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>502</html>"))
	})

	_, err := client.StaffList(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid provider response", apiErr.Message)
}

func TestSchedule_PathAndShape(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/schedule/123/7/2025-07-18/2025-07-18", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"date": "2025-07-18", "slots": [{"from": "09:00", "to": "18:00"}]}]
		}`))
	})

	days, err := client.Schedule(context.Background(), 7, "2025-07-18", "2025-07-18")
	require.NoError(t, err)

	require.Len(t, days, 1)
	slot, ok := days[0].FirstSlot()
	require.True(t, ok)
	assert.Equal(t, "09:00", slot.From)
	assert.Equal(t, "18:00", slot.To)
}

func TestRecords_Query(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "7", q.Get("staff_id"))
		assert.Equal(t, "2025-07-18", q.Get("start_date"))
		assert.Equal(t, "2025-07-18", q.Get("end_date"))
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [{"id": 1, "staff_id": 7, "datetime": "2025-07-18 10:00:00", "seance_length": 1800}]
		}`))
	})

	records, err := client.Records(context.Background(), 7, "2025-07-18", "2025-07-18")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1800, records[0].SeanceLength)
}

func TestBookableStaff_ServiceIDsQuery(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"100", "200"}, q["service_ids[]"])
		assert.Equal(t, "2025-07-18T14:00:00", q.Get("datetime"))
		_, _ = w.Write([]byte(`{"success": true, "data": [{"id": 7, "name": "Anna", "bookable": true}]}`))
	})

	staff, err := client.BookableStaff(context.Background(), []int64{100, 200}, "2025-07-18T14:00:00")
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.True(t, staff[0].Bookable)
}

func TestCreateRecord_PostsPayload(t *testing.T) {
	var got BookRequest

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/records/123", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"success": true, "data": {"id": 42}}`))
	})

	req := BookRequest{
		StaffID:      7,
		Datetime:     "2025-07-18T14:00:00",
		SeanceLength: 3600,
		APIID:        "mcp-test",
		Client:       BookClient{Name: "Olena", Phone: "+380501112233", Email: "o@e.com"},
		Services:     []BookService{{ID: 100}},
	}

	data, err := client.CreateRecord(context.Background(), req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 42}`, string(data))

	assert.Equal(t, int64(7), got.StaffID)
	assert.Equal(t, "mcp-test", got.APIID)
	assert.Equal(t, "Olena", got.Client.Name)
}

func TestContextCancellation(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"success": true, "data": []}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.StaffList(ctx)
	assert.Error(t, err)
}
