package model

// ErrorResponse is the JSON body of every non-success response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Details       string `json:"details,omitempty"`
	CorrelationID string `json:"correlationId,omitempty"`
}
