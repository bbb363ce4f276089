package dynamo

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SavedRepo stores the saved-listing set per identity.
// PK: identity_id, SK: listing_id, so membership checks are a single GetItem.
type SavedRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSavedRepo(client *dynamodb.Client, tableName string) *SavedRepo {
	return &SavedRepo{client: client, tableName: tableName}
}

func (r *SavedRepo) Add(ctx context.Context, identityID, listingID string) error {
	_, err := r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      compositeKey("identity_id", identityID, "listing_id", listingID),
	})
	return err
}

func (r *SavedRepo) Remove(ctx context.Context, identityID, listingID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("identity_id", identityID, "listing_id", listingID),
	})
	return err
}

func (r *SavedRepo) Has(ctx context.Context, identityID, listingID string) (bool, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       compositeKey("identity_id", identityID, "listing_id", listingID),
	})
	if err != nil {
		return false, err
	}
	return out.Item != nil, nil
}

func (r *SavedRepo) ListIDs(ctx context.Context, identityID string) ([]string, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		KeyConditionExpression: aws.String("identity_id = :id"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":id": &types.AttributeValueMemberS{Value: identityID},
		},
	})
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(out.Items))
	for _, item := range out.Items {
		if lid, ok := item["listing_id"].(*types.AttributeValueMemberS); ok {
			ids = append(ids, lid.Value)
		}
	}
	return ids, nil
}
