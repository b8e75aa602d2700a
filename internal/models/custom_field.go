package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Типы дополнительных полей анкеты приёма.
const (
	FieldTypeText     = "text"
	FieldTypeEmail    = "email"
	FieldTypeTel      = "tel"
	FieldTypeNumber   = "number"
	FieldTypeTextarea = "textarea"
	FieldTypeCheckbox = "checkbox"
	FieldTypeSwitch   = "switch"
	FieldTypeSelect   = "select"
	FieldTypeDate     = "date"
)

// ValidFieldTypes список допустимых типов полей.
var ValidFieldTypes = map[string]struct{}{
	FieldTypeText:     {},
	FieldTypeEmail:    {},
	FieldTypeTel:      {},
	FieldTypeNumber:   {},
	FieldTypeTextarea: {},
	FieldTypeCheckbox: {},
	FieldTypeSwitch:   {},
	FieldTypeSelect:   {},
	FieldTypeDate:     {},
}

// CustomFieldDefinition описывает настраиваемое поле анкеты приёма возврата.
// Name - машинный ключ значения, Label - подпись поля на форме.
// Options заполняется только для типа select.
type CustomFieldDefinition struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	Name         string         `db:"name" json:"name"`
	Label        string         `db:"label" json:"label"`
	Type         string         `db:"type" json:"type"`
	Required     bool           `db:"required" json:"required"`
	DefaultValue string         `db:"default_value" json:"default_value,omitempty"`
	Options      pq.StringArray `db:"options" json:"options,omitempty"`
	Description  string         `db:"description" json:"description,omitempty"`
	SortOrder    int            `db:"sort_order" json:"sort_order"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}
