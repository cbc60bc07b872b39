package services

import (
	"regexp"
	"strings"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(NormalizeEmail(email))
}

func ValidPassword(password string) bool {
	return len(password) >= minPasswordLength
}
