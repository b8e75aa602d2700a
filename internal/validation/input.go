package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/akinfotech/rma-backend/internal/models"
)

// Константы валидации
const (
	MinContactNameLength = 2
	MaxContactNameLength = 100
	MaxCompanyLength     = 150
	MaxBrandLength       = 80
	MaxModelLength       = 80
	MinSerialLength      = 1
	MaxSerialLength      = 80
	MinProblemsLength    = 5
	MaxProblemsLength    = 5000
	MaxCommentsLength    = 5000
	MaxRemarkLength      = 2000
	MaxTextFieldLength   = 500
	MaxTextareaLength    = 5000
	MaxFieldNameLength   = 60
	MaxFieldLabelLength  = 120
	MaxFieldDescLength   = 500
	MaxSelectOptions     = 50
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9\s\-()]{5,20}$`)
	dateRegex  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateNonEmpty проверяет, что строка не пустая.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s не может быть пустым", fieldName)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("доменная часть email должна быть от 1 до 255 символов")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("локальная часть email содержит недопустимые символы")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("доменная часть email имеет некорректный формат")
	}

	return nil
}

// ValidatePhone проверяет телефонный номер.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("некорректный формат телефона")
	}
	return nil
}

// ValidateContactName проверяет имя контакта.
func ValidateContactName(name string) error {
	if err := ValidateNonEmpty("имя контакта", name); err != nil {
		return err
	}
	return ValidateLength("имя контакта", strings.TrimSpace(name), MinContactNameLength, MaxContactNameLength)
}

// ValidateBrandName проверяет название бренда.
func ValidateBrandName(name string) error {
	if err := ValidateNonEmpty("название бренда", name); err != nil {
		return err
	}
	return ValidateLength("название бренда", strings.TrimSpace(name), 1, MaxBrandLength)
}

// ValidateProductFields проверяет описание устройства в заявке.
func ValidateProductFields(brand, modelNumber, serialNumber string) error {
	if err := ValidateBrandName(brand); err != nil {
		return err
	}
	if err := ValidateNonEmpty("модель", modelNumber); err != nil {
		return err
	}
	if err := ValidateLength("модель", strings.TrimSpace(modelNumber), 1, MaxModelLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("серийный номер", serialNumber); err != nil {
		return err
	}
	return ValidateLength("серийный номер", strings.TrimSpace(serialNumber), MinSerialLength, MaxSerialLength)
}

// ValidateProblemsReported проверяет описание неисправности.
func ValidateProblemsReported(problems string) error {
	if err := ValidateNonEmpty("описание неисправности", problems); err != nil {
		return err
	}
	return ValidateLength("описание неисправности", strings.TrimSpace(problems), MinProblemsLength, MaxProblemsLength)
}

// ValidateComments проверяет комментарий к заявке.
func ValidateComments(comments string) error {
	return ValidateLength("комментарий", comments, 0, MaxCommentsLength)
}

// ValidateRemark проверяет заметку сервисного центра.
func ValidateRemark(remark string) error {
	return ValidateLength("заметка", remark, 0, MaxRemarkLength)
}

// ValidateFieldDefinition проверяет описание настраиваемого поля.
func ValidateFieldDefinition(name, label, fieldType string, options []string) error {
	if err := ValidateNonEmpty("название поля", name); err != nil {
		return err
	}
	if err := ValidateLength("название поля", strings.TrimSpace(name), 1, MaxFieldNameLength); err != nil {
		return err
	}
	if err := ValidateNonEmpty("подпись поля", label); err != nil {
		return err
	}
	if err := ValidateLength("подпись поля", strings.TrimSpace(label), 1, MaxFieldLabelLength); err != nil {
		return err
	}
	if _, ok := models.ValidFieldTypes[fieldType]; !ok {
		return fmt.Errorf("неизвестный тип поля: %s", fieldType)
	}
	if fieldType == models.FieldTypeSelect {
		if len(options) == 0 {
			return fmt.Errorf("поле типа select должно иметь хотя бы один вариант")
		}
		if len(options) > MaxSelectOptions {
			return fmt.Errorf("количество вариантов не может превышать %d", MaxSelectOptions)
		}
		for _, opt := range options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("вариант выбора не может быть пустым")
			}
		}
	} else if len(options) > 0 {
		return fmt.Errorf("варианты выбора допустимы только для типа select")
	}
	return nil
}

// ValidateCustomFieldValue проверяет значение против описания поля.
// Значения приходят из JSON, поэтому числа могут быть float64 или json.Number.
func ValidateCustomFieldValue(def *models.CustomFieldDefinition, value interface{}) error {
	if value == nil {
		if def.Required {
			return fmt.Errorf("поле %q обязательно", def.Name)
		}
		return nil
	}

	switch def.Type {
	case models.FieldTypeText:
		return validateStringValue(def, value, MaxTextFieldLength)
	case models.FieldTypeTextarea:
		return validateStringValue(def, value, MaxTextareaLength)
	case models.FieldTypeEmail:
		s, err := stringValue(def, value)
		if err != nil {
			return err
		}
		if s == "" && !def.Required {
			return nil
		}
		if err := ValidateEmail(s); err != nil {
			return fmt.Errorf("поле %q: %w", def.Name, err)
		}
	case models.FieldTypeTel:
		s, err := stringValue(def, value)
		if err != nil {
			return err
		}
		if s == "" {
			if def.Required {
				return fmt.Errorf("поле %q обязательно", def.Name)
			}
			return nil
		}
		if !phoneRegex.MatchString(s) {
			return fmt.Errorf("поле %q: некорректный формат телефона", def.Name)
		}
	case models.FieldTypeNumber:
		switch v := value.(type) {
		case float64, int, int64:
			return nil
		case json.Number:
			if _, err := v.Float64(); err != nil {
				return fmt.Errorf("поле %q должно быть числом", def.Name)
			}
		default:
			return fmt.Errorf("поле %q должно быть числом", def.Name)
		}
	case models.FieldTypeCheckbox, models.FieldTypeSwitch:
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("поле %q должно быть логическим значением", def.Name)
		}
	case models.FieldTypeSelect:
		s, err := stringValue(def, value)
		if err != nil {
			return err
		}
		for _, opt := range def.Options {
			if s == opt {
				return nil
			}
		}
		return fmt.Errorf("поле %q: значение %q не входит в список вариантов", def.Name, s)
	case models.FieldTypeDate:
		s, err := stringValue(def, value)
		if err != nil {
			return err
		}
		if s == "" && !def.Required {
			return nil
		}
		if !dateRegex.MatchString(s) {
			return fmt.Errorf("поле %q должно быть датой в формате ГГГГ-ММ-ДД", def.Name)
		}
		if _, err := time.Parse("2006-01-02", s); err != nil {
			return fmt.Errorf("поле %q содержит несуществующую дату", def.Name)
		}
	default:
		return fmt.Errorf("неизвестный тип поля: %s", def.Type)
	}

	return nil
}

func validateStringValue(def *models.CustomFieldDefinition, value interface{}, max int) error {
	s, err := stringValue(def, value)
	if err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" && def.Required {
		return fmt.Errorf("поле %q обязательно", def.Name)
	}
	if err := ValidateLength(fmt.Sprintf("поле %q", def.Name), s, 0, max); err != nil {
		return err
	}
	return nil
}

func stringValue(def *models.CustomFieldDefinition, value interface{}) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("поле %q должно быть строкой", def.Name)
	}
	return s, nil
}
