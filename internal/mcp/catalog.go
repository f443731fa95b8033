package mcp

// Static tool catalog served by tools/list and mirrored by the legacy
// /capabilities endpoint.

const (
	ProtocolVersion = "2024-11-05"
	ServerName      = "altegio-booking-agent"
	ServerVersion   = "1.0.0"
)

type Property struct {
	Type    string    `json:"type"`
	Format  string    `json:"format,omitempty"`
	Pattern string    `json:"pattern,omitempty"`
	Items   *Property `json:"items,omitempty"`
}

type InputSchema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

type Tool struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

func Tools() []Tool {
	return []Tool{
		{
			Name:        "get_staff_list",
			Description: "Get a list of staff members available in the company",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
				Required:   []string{},
			},
		},
		{
			Name:        "get_available_slots",
			Description: "Get available time slots for a specific staff member on a given date",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"staff_id":      {Type: "number"},
					"date":          {Type: "string", Format: "date"},
					"seance_length": {Type: "number"},
				},
				Required: []string{"staff_id", "date"},
			},
		},
		{
			Name:        "book_record",
			Description: "Book a new appointment for a client",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"fullname":      {Type: "string"},
					"phone":         {Type: "string"},
					"email":         {Type: "string"},
					"staff_id":      {Type: "number"},
					"datetime":      {Type: "string"},
					"service_id":    {Type: "number"},
					"seance_length": {Type: "number"},
					"comment":       {Type: "string"},
				},
				Required: []string{"fullname", "phone", "email", "staff_id", "datetime"},
			},
		},
		{
			Name:        "get_service_list",
			Description: "Get a list of available services in the company",
			InputSchema: InputSchema{
				Type:       "object",
				Properties: map[string]Property{},
				Required:   []string{},
			},
		},
		{
			Name:        "get_nearest_sessions",
			Description: "Get a list of the nearest available sessions for an employee",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"staff_id":    {Type: "number"},
					"service_ids": {Type: "array", Items: &Property{Type: "number"}},
					"datetime":    {Type: "string", Format: "date-time"},
				},
				Required: []string{"staff_id"},
			},
		},
		{
			Name:        "get_bookable_staff",
			Description: "Отримати перелік співробітників, доступних для запису на вказаний час та/або послугу.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"service_ids": {Type: "array", Items: &Property{Type: "number"}},
					"datetime":    {Type: "string", Format: "date-time"},
				},
				Required: []string{},
			},
		},
		{
			Name:        "get_staff_really_free_at_time",
			Description: "Знаходить співробітників, які реально вільні на вказану дату і час.",
			InputSchema: InputSchema{
				Type: "object",
				Properties: map[string]Property{
					"date":        {Type: "string", Format: "date"},
					"time":        {Type: "string", Pattern: `^\d{2}:\d{2}$`},
					"service_ids": {Type: "array", Items: &Property{Type: "number"}},
				},
				Required: []string{"date", "time"},
			},
		},
	}
}

type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type InitializeResult struct {
	ProtocolVersion string         `json:"protocolVersion"`
	Capabilities    map[string]any `json:"capabilities"`
	ServerInfo      ServerInfo     `json:"serverInfo"`
}

func Initialize() InitializeResult {
	tools := map[string]any{}
	for _, t := range Tools() {
		tools[t.Name] = map[string]any{}
	}
	return InitializeResult{
		ProtocolVersion: ProtocolVersion,
		Capabilities:    map[string]any{"tools": tools},
		ServerInfo:      ServerInfo{Name: ServerName, Version: ServerVersion},
	}
}
