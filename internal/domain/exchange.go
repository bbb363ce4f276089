package domain

import "time"

const (
	ExchangePending  = "pending"
	ExchangeApproved = "approved"
	ExchangeRejected = "rejected"
)

// Exchange is an offer made against a listing. Contact details of both
// parties are attached at read time, and only once the listing owner has
// approved.
type Exchange struct {
	ExchangeID      string    `json:"id" dynamodbav:"exchange_id"`
	ListingID       string    `json:"listing_id" dynamodbav:"listing_id"`
	ListingTitle    string    `json:"listing_title" dynamodbav:"listing_title"`
	ListingCategory string    `json:"listing_category" dynamodbav:"listing_category"`
	FromID          string    `json:"from_id" dynamodbav:"from_id"`
	FromName        string    `json:"from_name" dynamodbav:"from_name"`
	ToID            string    `json:"to_id" dynamodbav:"to_id"`
	ToName          string    `json:"to_name" dynamodbav:"to_name"`
	Message         string    `json:"message" dynamodbav:"message"`
	Status          string    `json:"status" dynamodbav:"status"`
	CreatedAt       time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time `json:"updated" dynamodbav:"updated_at"`

	FromContact *ContactInfo `json:"from_contact,omitempty" dynamodbav:"-"`
	ToContact   *ContactInfo `json:"to_contact,omitempty" dynamodbav:"-"`
}

type CreateExchangeRequest struct {
	ListingID string `json:"listing_id" validate:"required"`
	Message   string `json:"message" validate:"required"`
}
