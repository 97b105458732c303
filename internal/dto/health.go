package dto

// HealthResponse represents the response structure for health checks
type HealthResponse struct {
	Status    string         `json:"status"`
	Timestamp string         `json:"timestamp"`
	Uptime    float64        `json:"uptime"`
	Details   map[string]any `json:"details,omitempty"`
}

// MessageResponse is a bare informational message body
type MessageResponse struct {
	Message string `json:"message"`
}
