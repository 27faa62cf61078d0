package api

import (
	"github.com/IliyaMhz/PersonalBlog/errs"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	blogHandler   blogHandler
	healthHandler healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string                `json:"error" example:"validation failed: Title is required"`
	Status  string                `json:"status" example:"error"`
	Field   string                `json:"field,omitempty" example:"title"`
	Details string                `json:"details,omitempty" example:"Title is required"`
	Errors  []errs.FieldViolation `json:"errors,omitempty"`
}

// InternalErrorResponse is returned for every unexpected failure. It never
// carries internal detail.
type InternalErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Message string `json:"message" example:"An unexpected error occurred"`
	Status  string `json:"status" example:"error"`
}

var internalErrorBody = InternalErrorResponse{
	Error:   "Internal Server Error",
	Message: "An unexpected error occurred",
	Status:  "error",
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status        string `json:"status" example:"healthy"`
	Timestamp     string `json:"timestamp" example:"2024-05-01T12:00:00Z"`
	UptimeSeconds int64  `json:"uptimeSeconds" example:"3600"`
}
