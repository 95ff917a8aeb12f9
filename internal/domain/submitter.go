package domain

import "time"

// Submitter is a person identified by email who has submitted the contact
// form. The email is the table's partition key, which gives us native
// uniqueness; SubmitterID is the generated identifier messages reference.
//
// Invariant: Verified == true implies VerificationToken and TokenExpiresAt
// are absent. A present token always has a present expiry.
type Submitter struct {
	Email             string    `json:"email" dynamodbav:"email"`
	SubmitterID       string    `json:"id" dynamodbav:"submitter_id"`
	FirstName         string    `json:"first_name" dynamodbav:"first_name"`
	LastName          string    `json:"last_name" dynamodbav:"last_name"`
	Phone             *string   `json:"phone,omitempty" dynamodbav:"phone"`
	Verified          bool      `json:"verified" dynamodbav:"verified"`
	VerificationToken *string   `json:"-" dynamodbav:"verification_token,omitempty"`
	TokenExpiresAt    *int64    `json:"-" dynamodbav:"token_expires_at,omitempty"` // Unix seconds
	CreatedAt         time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt         time.Time `json:"updated" dynamodbav:"updated_at"`
}

// SubmitRequest is the POST /api/send-email body.
type SubmitRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Phone     *string `json:"phone"`
	Message   string  `json:"message" validate:"required"`
}
