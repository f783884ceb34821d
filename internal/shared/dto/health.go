package dto

// HealthResponse describes the payload returned by the /health and /healthz endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// StatusResponse is the acknowledgement body returned to webhook deliveries.
type StatusResponse struct {
	Status string `json:"status"`
}
