package entity

type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment,omitempty"`
	Project     string `json:"project,omitempty"`
}

// ErrorResponse is the body of every non-2xx answer
type ErrorResponse struct {
	Detail string `json:"detail"`
}
