package domain

import "time"

type Photo struct {
	PhotoID     string    `json:"id" dynamodbav:"photo_id"`
	ListingID   string    `json:"listing_id" dynamodbav:"listing_id"`
	Object      string    `json:"object" dynamodbav:"object"`
	ContentType string    `json:"content_type" dynamodbav:"content_type"`
	Size        int64     `json:"size" dynamodbav:"size"`
	UploadedBy  string    `json:"uploaded_by" dynamodbav:"uploaded_by"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
}
