package dynamo

// DynamoDB attribute names used in update expressions across the repos.
// Using constants prevents silent runtime bugs caused by key typos.
const (
	fieldVerified          = "verified"
	fieldVerificationToken = "verification_token"
	fieldTokenExpiresAt    = "token_expires_at"
	fieldUpdatedAt         = "updated_at"
)
