package api

// ErrorResponse is the uniform error body for every failing request.
// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Message string `json:"message"`
}
