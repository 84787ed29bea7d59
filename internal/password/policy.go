package password

import (
	"unicode"

	"github.com/dtroode/authkeeper/internal/model"
)

// CheckPolicy validates a new password against its confirmation and the
// special character rule.
func CheckPolicy(password, confirmation string) error {
	if password != confirmation {
		return model.ErrPasswordMismatch
	}
	if !HasSpecialChar(password) {
		return model.ErrWeakPassword
	}
	return nil
}

// HasSpecialChar reports whether s contains a punctuation or symbol rune.
func HasSpecialChar(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}
	return false
}
