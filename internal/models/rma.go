package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

// RMA описывает заявку на возврат оборудования.
// Контактные данные копируются из справочника контактов в момент создания,
// чтобы последующие правки контакта не меняли историю заявки.
type RMA struct {
	ID               uuid.UUID      `db:"id" json:"id"`
	ContactID        uuid.UUID      `db:"contact_id" json:"contact_id"`
	ContactName      string         `db:"contact_name" json:"contact_name"`
	ContactEmail     string         `db:"contact_email" json:"contact_email"`
	ContactPhone     string         `db:"contact_phone" json:"contact_phone"`
	ContactCompany   string         `db:"contact_company" json:"contact_company,omitempty"`
	Brand            string         `db:"brand" json:"brand"`
	ModelNumber      string         `db:"model_number" json:"model_number"`
	SerialNumber     string         `db:"serial_number" json:"serial_number"`
	ProblemsReported string         `db:"problems_reported" json:"problems_reported"`
	Comments         string         `db:"comments" json:"comments,omitempty"`
	CustomFields     types.JSONText `db:"custom_fields" json:"custom_fields,omitempty"`
	Status           RMAStatus      `db:"status" json:"status"`
	Remark           string         `db:"remark" json:"remark"`
	OTP              string         `db:"otp" json:"-"`
	IsReady          bool           `db:"is_ready" json:"is_ready"`
	IsDelivered      bool           `db:"is_delivered" json:"is_delivered"`
	DeliveredAt      *time.Time     `db:"delivered_at" json:"delivered_at,omitempty"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// ProductDetails возвращает человекочитаемое описание устройства для писем.
func (r *RMA) ProductDetails() string {
	return r.Brand + " " + r.ModelNumber
}

// DashboardStats содержит счётчики заявок для дашборда.
type DashboardStats struct {
	Total           int `json:"total"`
	Processing      int `json:"processing"`
	InServiceCentre int `json:"in_service_centre"`
	Ready           int `json:"ready"`
	Delivered       int `json:"delivered"`
}
