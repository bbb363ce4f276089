package domain

import "time"

// Identity is a verified campus user. Created lazily on the first successful
// code verification for an email; id and email are immutable afterwards.
type Identity struct {
	IdentityID  string       `json:"id" dynamodbav:"identity_id"`
	Email       string       `json:"email" dynamodbav:"email"`
	DisplayName string       `json:"name" dynamodbav:"display_name"`
	Verified    bool         `json:"verified" dynamodbav:"verified"`
	Contact     *ContactInfo `json:"contact,omitempty" dynamodbav:"contact"`
	CreatedAt   time.Time    `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time    `json:"updated" dynamodbav:"updated_at"`
}

// ContactInfo is shared with the other party of an exchange once the exchange
// is approved. It is never included in public listing payloads.
type ContactInfo struct {
	FullName  string `json:"full_name,omitempty" dynamodbav:"full_name"`
	Email     string `json:"email,omitempty" dynamodbav:"email"`
	Phone     string `json:"phone,omitempty" dynamodbav:"phone"`
	Instagram string `json:"instagram,omitempty" dynamodbav:"instagram"`
}

type UpdateContactRequest struct {
	FullName  *string `json:"full_name"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
}
