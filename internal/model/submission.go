package model

import "time"

// Submission is a contact form message persisted by the intake service.
// Only Read may change after creation.
type Submission struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Subject   *string   `json:"subject" db:"subject"` // nil when the form left it blank
	Message   string    `json:"message" db:"message"`
	UserAgent string    `json:"-" db:"user_agent"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	Read      bool      `json:"read" db:"read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SubmissionInput is the raw contact form payload as sent by the browser.
type SubmissionInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// RequestMeta carries the request context captured alongside a submission.
// Empty strings mean the value was not available.
type RequestMeta struct {
	UserAgent string
	IPAddress string
}

// ReadUpdate is the admin payload for toggling the read flag.
type ReadUpdate struct {
	ID   int64 `json:"id"`
	Read bool  `json:"read"`
}
