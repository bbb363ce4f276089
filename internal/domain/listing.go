package domain

import "time"

// Listing categories and types. A "request" listing is always categorized as
// "need"; offers are either a skill or an item.
const (
	CategorySkill = "skill"
	CategoryItem  = "item"
	CategoryNeed  = "need"

	TypeOffer   = "offer"
	TypeRequest = "request"
)

// Listing is a public marketplace entry. OwnerEmail is stored for moderation
// but never serialized in public payloads; the admin view exposes it
// explicitly.
type Listing struct {
	ListingID   string    `json:"id" dynamodbav:"listing_id"`
	Title       string    `json:"title" dynamodbav:"title"`
	Description string    `json:"description" dynamodbav:"description"`
	Category    string    `json:"category" dynamodbav:"category"`
	Type        string    `json:"type" dynamodbav:"type"`
	Tags        []string  `json:"tags" dynamodbav:"tags"`
	OwnerID     string    `json:"user_id" dynamodbav:"owner_id"`
	OwnerName   string    `json:"user_name" dynamodbav:"owner_name"`
	OwnerEmail  string    `json:"-" dynamodbav:"owner_email"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}

type CreateListingRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Category    string   `json:"category" validate:"required,oneof=skill item need"`
	Type        string   `json:"type" validate:"required,oneof=offer request"`
	Tags        []string `json:"tags"`
}

// ListingFilter narrows a browse query. Zero fields match everything.
type ListingFilter struct {
	Type     string
	Category string
	OwnerID  string
	Tag      string
}
