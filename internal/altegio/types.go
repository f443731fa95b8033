package altegio

import "encoding/json"

// Wire types for the Altegio REST API (api.alteg.io/api/v1). Every endpoint
// responds with the same envelope: {success, data, meta}.

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *meta           `json:"meta"`
}

type meta struct {
	Message string `json:"message"`
}

// ServicesLink ties a staff member to one bookable service. Length is the
// seance duration in seconds and may be zero when the provider has no
// per-service duration configured.
type ServicesLink struct {
	ServiceID int64 `json:"service_id"`
	Length    int   `json:"length"`
}

type Staff struct {
	ID             int64          `json:"id"`
	Name           string         `json:"name"`
	Specialization string         `json:"specialization"`
	ServicesLinks  []ServicesLink `json:"services_links"`
}

// FirstServiceLink returns the staff member's first linked service, if any.
func (s Staff) FirstServiceLink() (ServicesLink, bool) {
	if len(s.ServicesLinks) == 0 {
		return ServicesLink{}, false
	}
	return s.ServicesLinks[0], true
}

// ServiceLink returns the link matching serviceID, if the staff member
// offers that service.
func (s Staff) ServiceLink(serviceID int64) (ServicesLink, bool) {
	for _, link := range s.ServicesLinks {
		if link.ServiceID == serviceID {
			return link, true
		}
	}
	return ServicesLink{}, false
}

type Service struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	SeanceLength int     `json:"seance_length"`
	Cost         float64 `json:"cost"`
}

type bookServicesData struct {
	Services []Service `json:"services"`
}

// ScheduleSlot is one contiguous stretch of working hours, "HH:MM" strings in
// the company's business time zone.
type ScheduleSlot struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ScheduleDay struct {
	Date  string         `json:"date"`
	Slots []ScheduleSlot `json:"slots"`
}

// FirstSlot returns the day's opening working stretch. Absent slots mean the
// staff member does not work that day.
func (d ScheduleDay) FirstSlot() (ScheduleSlot, bool) {
	if len(d.Slots) == 0 {
		return ScheduleSlot{}, false
	}
	return d.Slots[0], true
}

// Record is an existing appointment occupying staff time.
type Record struct {
	ID           int64  `json:"id"`
	StaffID      int64  `json:"staff_id"`
	Datetime     string `json:"datetime"`
	SeanceLength int    `json:"seance_length"`
}

// BookableStaff is an entry from the book_staff endpoint: staff members the
// provider considers bookable for the requested services/time.
type BookableStaff struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Bookable       bool   `json:"bookable"`
}

type BookClient struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type BookService struct {
	ID        int64   `json:"id"`
	Cost      float64 `json:"cost"`
	FirstCost float64 `json:"first_cost"`
	Discount  float64 `json:"discount"`
}

// BookRequest is the record-creation payload. APIID lets the provider
// deduplicate retried submissions.
type BookRequest struct {
	StaffID      int64          `json:"staff_id"`
	Datetime     string         `json:"datetime"`
	SeanceLength int            `json:"seance_length"`
	SaveIfBusy   bool           `json:"save_if_busy"`
	Attendance   int            `json:"attendance"`
	APIID        string         `json:"api_id"`
	CustomColor  string         `json:"custom_color"`
	Client       BookClient     `json:"client"`
	Services     []BookService  `json:"services"`
	CustomFields map[string]any `json:"custom_fields"`
	RecordLabels []string       `json:"record_labels"`
	Comment      string         `json:"comment"`
}
