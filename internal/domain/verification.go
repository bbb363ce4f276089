package domain

import "time"

// PendingVerification is the one in-flight code per email.
// PK: email (normalized). ExpiresAt is Unix seconds, used as DynamoDB TTL;
// expiry is additionally checked at read time since native TTL deletion lags.
type PendingVerification struct {
	Email     string `json:"email" dynamodbav:"email"`
	Code      string `json:"-" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"`
	Attempts  int    `json:"attempts" dynamodbav:"attempts"`
}

// Expired reports whether the entry's TTL has passed.
func (v *PendingVerification) Expired(now time.Time) bool {
	return now.Unix() > v.ExpiresAt
}
