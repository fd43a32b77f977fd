package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/transitdesk/lostfound-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxDescriptionLength = 2000
	MaxShortFieldLength  = 200
	MaxContactLength     = 320
)

var (
	dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegex = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// ValidateRequired проверяет, что обязательное поле заполнено.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperror.Validation(fieldName, fmt.Sprintf("%s is required", fieldName))
	}
	return nil
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, max int) error {
	if max > 0 && utf8.RuneCountInString(value) > max {
		return apperror.Validation(fieldName, fmt.Sprintf("%s must be at most %d characters", fieldName, max))
	}
	return nil
}

// ValidateDate проверяет формат YYYY-MM-DD, если дата указана.
func ValidateDate(fieldName string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !dateRegex.MatchString(*value) {
		return apperror.Validation(fieldName, fmt.Sprintf("%s must use YYYY-MM-DD format", fieldName))
	}
	return nil
}

// ValidateTime проверяет формат HH:MM, если время указано.
func ValidateTime(fieldName string, value *string) error {
	if value == nil || *value == "" {
		return nil
	}
	if !timeRegex.MatchString(*value) {
		return apperror.Validation(fieldName, fmt.Sprintf("%s must use HH:MM format", fieldName))
	}
	return nil
}

// field пара имя/значение для последовательной проверки.
type field struct {
	name  string
	value string
	max   int
}

// validateFields проверяет обязательные поля по порядку и возвращает первую ошибку.
func validateFields(fields []field) error {
	for _, f := range fields {
		if err := ValidateRequired(f.name, f.value); err != nil {
			return err
		}
		if err := ValidateLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}
	return nil
}
