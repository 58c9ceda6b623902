package domain

// OneTimeCode is a pending second-factor code for a destination phone number.
// PK: destination. At most one live code per destination — a new issue
// overwrites the previous entry. ExpiresAt doubles as the DynamoDB TTL attribute.
type OneTimeCode struct {
	Destination string `json:"destination" dynamodbav:"destination"`
	Code        string `json:"code" dynamodbav:"code"`
	ExpiresAt   int64  `json:"expires_at" dynamodbav:"expires_at"` // Unix seconds
}
