// Package validation checks names that travel between devices and the cloud.
package validation

import (
	"fmt"
	"regexp"
)

// IdentifierPattern определяет допустимый формат имени таблицы или колонки
// Латинская буква или подчеркивание в начале, далее буквы, цифры, подчеркивание
var IdentifierPattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// UserPattern определяет допустимый формат идентификатора пользователя
var UserPattern = regexp.MustCompile(`^[a-zA-Z0-9_.@-]+$`)

const (
	// MaxIdentifierLen максимальная длина имени таблицы или колонки
	MaxIdentifierLen = 64
	// MaxUserLen максимальная длина идентификатора пользователя
	MaxUserLen = 128
)

// ValidateTableName checks a synced table name.
func ValidateTableName(name string) error {
	return validateIdentifier("table", name)
}

// ValidateFieldName checks a column name.
func ValidateFieldName(name string) error {
	return validateIdentifier("column", name)
}

func validateIdentifier(kind, name string) error {
	if name == "" {
		return fmt.Errorf("%s name cannot be empty", kind)
	}

	if len(name) > MaxIdentifierLen {
		return fmt.Errorf("%s name must not exceed %d characters", kind, MaxIdentifierLen)
	}

	if !IdentifierPattern.MatchString(name) {
		return fmt.Errorf("%s name %q can only contain letters (a-z, A-Z), numbers (0-9), and underscores (_)", kind, name)
	}

	return nil
}

// ValidateUser checks a user id. Empty means the single user of the store.
func ValidateUser(user string) error {
	if user == "" {
		return nil
	}

	if len(user) > MaxUserLen {
		return fmt.Errorf("user must not exceed %d characters", MaxUserLen)
	}

	if !UserPattern.MatchString(user) {
		return fmt.Errorf("user %q can only contain letters, numbers and the characters _ . @ -", user)
	}

	return nil
}
