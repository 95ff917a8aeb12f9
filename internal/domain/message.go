package domain

import "time"

// Message is one free-text submission tied to a Submitter. Messages are
// append-only: never updated, never deleted. Messages recorded while the
// submitter is unverified stay pending until verification succeeds.
type Message struct {
	MessageID   string    `json:"id" dynamodbav:"message_id"`
	SubmitterID string    `json:"submitter_id" dynamodbav:"submitter_id"`
	Body        string    `json:"body" dynamodbav:"body"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}
