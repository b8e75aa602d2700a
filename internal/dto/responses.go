package dto

import (
	"github.com/akinfotech/rma-backend/internal/models"
)

// RMAResponse represents a single RMA with an optional delivery warning
// when the write succeeded but the notification email failed
type RMAResponse struct {
	*models.RMA
	Warning string `json:"warning,omitempty"`
}

// NewRMAResponse creates an RMAResponse from components
func NewRMAResponse(rma *models.RMA, warning string) *RMAResponse {
	return &RMAResponse{
		RMA:     rma,
		Warning: warning,
	}
}

// RMAListResponse represents a paginated RMA list
type RMAListResponse struct {
	Data       []models.RMA `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
