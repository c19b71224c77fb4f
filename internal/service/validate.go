package service

import (
	"net/mail"
	"strings"

	"GymMembershipServer/internal/domain"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 256

	minAge = 1
	maxAge = 150
)

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validEmail(s string) bool {
	if s == "" || len(s) > 254 {
		return false
	}
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func validatePassword(fields map[string]string, key, password string) {
	switch {
	case len(password) < MinPasswordLength:
		fields[key] = "must be at least 6 characters"
	case len(password) > MaxPasswordLength:
		fields[key] = "must be 256 characters or less"
	}
}

func validateProfile(fields map[string]string, in *domain.ProfileUpdate) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)

	if in.FirstName == "" {
		fields["first_name"] = "is required"
	} else if len(in.FirstName) > 100 {
		fields["first_name"] = "must be 100 characters or less"
	}
	if in.LastName == "" {
		fields["last_name"] = "is required"
	} else if len(in.LastName) > 100 {
		fields["last_name"] = "must be 100 characters or less"
	}
	if in.Age != nil && (*in.Age < minAge || *in.Age > maxAge) {
		fields["age"] = "must be between 1 and 150"
	}
	if len(in.PhoneNumber) > 32 {
		fields["phone_number"] = "must be 32 characters or less"
	}
}
