package domain

import "time"

// Session records a successful verification. The client holds a signed token
// naming the session; the record here is authoritative for revocation and
// expiry. ExpiresAt is Unix seconds and doubles as the DynamoDB TTL.
type Session struct {
	SessionID  string    `json:"id" dynamodbav:"session_id"`
	IdentityID string    `json:"identity_id" dynamodbav:"identity_id"`
	IssuedAt   time.Time `json:"issued" dynamodbav:"issued_at"`
	ExpiresAt  int64     `json:"expires_at" dynamodbav:"expires_at"`
	Revoked    bool      `json:"-" dynamodbav:"revoked"`

	Identity *Identity `json:"identity,omitempty" dynamodbav:"-"`
}
