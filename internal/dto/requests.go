package dto

import (
	"github.com/google/uuid"
)

// CreateRMARequest represents the intake form payload
type CreateRMARequest struct {
	ContactID        string                 `json:"contact_id" binding:"required"`
	Brand            string                 `json:"brand" binding:"required"`
	ModelNumber      string                 `json:"model_number" binding:"required"`
	SerialNumber     string                 `json:"serial_number" binding:"required"`
	ProblemsReported string                 `json:"problems_reported" binding:"required"`
	Comments         string                 `json:"comments"`
	CustomFields     map[string]interface{} `json:"custom_fields"`
}

// ParseContactID converts string contact ID to uuid.UUID
func (r *CreateRMARequest) ParseContactID() (uuid.UUID, error) {
	return uuid.Parse(r.ContactID)
}

// SaveRemarkRequest represents the service centre remark payload
type SaveRemarkRequest struct {
	Remark string `json:"remark" binding:"required"`
}

// MarkReadyRequest represents the mark-ready payload
type MarkReadyRequest struct {
	Remark string `json:"remark"`
}

// ConfirmDeliveryRequest represents the delivery confirmation payload
type ConfirmDeliveryRequest struct {
	OTP string `json:"otp"`
}

// ContactRequest represents create/update contact payload
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Phone   string `json:"phone"`
	Company string `json:"company"`
}

// BrandRequest represents create brand payload
type BrandRequest struct {
	Name string `json:"name" binding:"required"`
}

// CustomFieldRequest represents create/update field definition payload
type CustomFieldRequest struct {
	Name         string   `json:"name" binding:"required"`
	Label        string   `json:"label" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Required     bool     `json:"required"`
	DefaultValue string   `json:"default_value"`
	Options      []string `json:"options"`
	Description  string   `json:"description"`
	SortOrder    int      `json:"sort_order"`
}

// UpdateSettingsRequest represents settings update payload
type UpdateSettingsRequest struct {
	RequireOTP         bool `json:"require_otp"`
	EmailNotifications bool `json:"email_notifications"`
	SMSNotifications   bool `json:"sms_notifications"`
	AutoAssign         bool `json:"auto_assign"`
	DarkMode           bool `json:"dark_mode"`
}
