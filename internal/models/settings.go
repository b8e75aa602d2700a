package models

import "time"

// Settings хранит общие настройки сервиса. В базе всегда одна строка.
type Settings struct {
	ID                 int       `db:"id" json:"-"`
	RequireOTP         bool      `db:"require_otp" json:"require_otp"`
	EmailNotifications bool      `db:"email_notifications" json:"email_notifications"`
	SMSNotifications   bool      `db:"sms_notifications" json:"sms_notifications"`
	AutoAssign         bool      `db:"auto_assign" json:"auto_assign"`
	DarkMode           bool      `db:"dark_mode" json:"dark_mode"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// DefaultSettings возвращает настройки по умолчанию.
// Подтверждение по OTP включено, пока его явно не отключили.
func DefaultSettings() *Settings {
	return &Settings{
		RequireOTP:         true,
		EmailNotifications: true,
	}
}
