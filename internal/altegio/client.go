package altegio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// APIError is a provider-level failure: the provider answered, but with
// success=false or a non-JSON body. The message comes from meta.message when
// the provider supplies one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("altegio: %s (status %d)", e.Message, e.Status)
	}
	return "altegio: " + e.Message
}

// Client talks to the Altegio API for one company. All credentials are given
// at construction; there is no ambient configuration.
type Client struct {
	baseURL      string
	companyID    string
	partnerToken string
	userToken    string
	hc           *http.Client
	log          *zap.Logger
}

type ClientOptions struct {
	BaseURL      string
	CompanyID    string
	PartnerToken string
	UserToken    string
	Timeout      time.Duration
	Logger       *zap.Logger
}

func NewClient(opts ClientOptions) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:      opts.BaseURL,
		companyID:    opts.CompanyID,
		partnerToken: opts.PartnerToken,
		userToken:    opts.UserToken,
		hc:           &http.Client{Timeout: timeout},
		log:          logger,
	}
}

// StaffList returns the company staff directory.
func (c *Client) StaffList(ctx context.Context) ([]Staff, error) {
	var staff []Staff
	path := fmt.Sprintf("/company/%s/staff", c.companyID)
	if err := c.get(ctx, path, nil, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// FindStaff returns the staff member with the given id from the directory.
func (c *Client) FindStaff(ctx context.Context, staffID int64) (Staff, bool, error) {
	staff, err := c.StaffList(ctx)
	if err != nil {
		return Staff{}, false, err
	}
	for _, s := range staff {
		if s.ID == staffID {
			return s, true, nil
		}
	}
	return Staff{}, false, nil
}

// Schedule returns the staff member's working-hours days for [startDate, endDate].
func (c *Client) Schedule(ctx context.Context, staffID int64, startDate, endDate string) ([]ScheduleDay, error) {
	var days []ScheduleDay
	path := fmt.Sprintf("/schedule/%s/%d/%s/%s", c.companyID, staffID, startDate, endDate)
	if err := c.get(ctx, path, nil, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// Records returns existing appointments for one staff member in [startDate, endDate].
func (c *Client) Records(ctx context.Context, staffID int64, startDate, endDate string) ([]Record, error) {
	var records []Record
	q := url.Values{}
	q.Set("staff_id", strconv.FormatInt(staffID, 10))
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	path := fmt.Sprintf("/records/%s", c.companyID)
	if err := c.get(ctx, path, q, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Services returns the company's bookable service catalog.
func (c *Client) Services(ctx context.Context) ([]Service, error) {
	var data bookServicesData
	path := fmt.Sprintf("/book_services/%s", c.companyID)
	if err := c.get(ctx, path, nil, &data); err != nil {
		return nil, err
	}
	return data.Services, nil
}

// NearestSeances returns the provider's own nearest-availability answer for a
// staff member. The payload shape varies per company configuration, so it is
// passed through as-is.
func (c *Client) NearestSeances(ctx context.Context, staffID int64, serviceIDs []int64, datetime string) (json.RawMessage, error) {
	var data json.RawMessage
	q := seanceQuery(serviceIDs, datetime)
	path := fmt.Sprintf("/book_staff_seances/%s/%d/", c.companyID, staffID)
	if err := c.get(ctx, path, q, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// BookableStaff returns staff members the provider considers bookable for the
// given services and/or time.
func (c *Client) BookableStaff(ctx context.Context, serviceIDs []int64, datetime string) ([]BookableStaff, error) {
	var staff []BookableStaff
	q := seanceQuery(serviceIDs, datetime)
	path := fmt.Sprintf("/book_staff/%s", c.companyID)
	if err := c.get(ctx, path, q, &staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// CreateRecord submits a booking.
func (c *Client) CreateRecord(ctx context.Context, req BookRequest) (json.RawMessage, error) {
	var data json.RawMessage
	path := fmt.Sprintf("/records/%s", c.companyID)
	if err := c.do(ctx, http.MethodPost, path, nil, req, &data); err != nil {
		return nil, err
	}
	return data, nil
}

func seanceQuery(serviceIDs []int64, datetime string) url.Values {
	q := url.Values{}
	for _, id := range serviceIDs {
		q.Add("service_ids[]", strconv.FormatInt(id, 10))
	}
	if datetime != "" {
		q.Set("datetime", datetime)
	}
	return q
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("altegio: encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("altegio: build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.api.v2+json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s, User %s", c.partnerToken, c.userToken))

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("altegio: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "invalid provider response"}
	}

	if !env.Success {
		msg := "Altegio API error"
		if env.Meta != nil && env.Meta.Message != "" {
			msg = env.Meta.Message
		}
		c.log.Warn("altegio call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return &APIError{Status: resp.StatusCode, Message: msg}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &APIError{Status: resp.StatusCode, Message: "unexpected provider payload"}
	}
	return nil
}
