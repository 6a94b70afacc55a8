package service

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/portfolio/backend/internal/model"
)

// Field limits, counted in characters.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 100
	MaxMessageLength = 5000
)

// Client-facing validation reasons.
const (
	ReasonMissingFields   = "Missing required fields: name, email, and message are required"
	ReasonNameEmailLength = "Name and email must be less than 100 characters"
	ReasonMessageLength   = "Message must be less than 5000 characters"
	ReasonInvalidEmail    = "Invalid email format"
	ReasonMissingID       = "Missing submission id"
	ReasonInvalidBody     = "Invalid request body"
)

// emailPattern rejects any Unicode whitespace. RE2's \s is ASCII only, so the
// other space characters are listed explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\v\p{Z}\x{FEFF}@]+@[^\s\v\p{Z}\x{FEFF}@]+\.[^\s\v\p{Z}\x{FEFF}@]+$`)

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// normalizeSubmission checks in and returns the trimmed, storable form.
// Rules run in order and the first failure wins.
func normalizeSubmission(in model.SubmissionInput) (*model.Submission, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	message := strings.TrimSpace(in.Message)

	if name == "" || email == "" || message == "" {
		return nil, &ValidationError{Reason: ReasonMissingFields}
	}
	if utf8.RuneCountInString(name) > MaxNameLength || utf8.RuneCountInString(email) > MaxEmailLength {
		return nil, &ValidationError{Reason: ReasonNameEmailLength}
	}
	if utf8.RuneCountInString(message) > MaxMessageLength {
		return nil, &ValidationError{Reason: ReasonMessageLength}
	}
	if !ValidEmail(email) {
		return nil, &ValidationError{Reason: ReasonInvalidEmail}
	}

	sub := &model.Submission{
		Name:    name,
		Email:   strings.ToLower(email),
		Message: message,
	}
	if subject := strings.TrimSpace(in.Subject); subject != "" {
		sub.Subject = &subject
	}
	return sub, nil
}
