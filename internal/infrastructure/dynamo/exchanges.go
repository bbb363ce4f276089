package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/clutch-swap/clutch-api/internal/domain"
)

// ExchangeRepo provides typed DynamoDB operations for the exchanges table.
type ExchangeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewExchangeRepo(client *dynamodb.Client, tableName string) *ExchangeRepo {
	return &ExchangeRepo{client: client, tableName: tableName}
}

func (r *ExchangeRepo) Put(ctx context.Context, e *domain.Exchange) error {
	item, err := attributevalue.MarshalMap(e)
	if err != nil {
		return fmt.Errorf("marshal exchange: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ExchangeRepo) Get(ctx context.Context, exchangeID string) (*domain.Exchange, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("exchange_id", exchangeID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("exchange not found: %w", domain.ErrNotFound)
	}
	var e domain.Exchange
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *ExchangeRepo) SetStatus(ctx context.Context, exchangeID, status string) error {
	ue, err := buildUpdateExpr(map[string]interface{}{
		fieldStatus:    status,
		fieldUpdatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("exchange_id", exchangeID),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// ListByFrom returns exchanges initiated by the identity (the "sent" box).
func (r *ExchangeRepo) ListByFrom(ctx context.Context, identityID string) ([]domain.Exchange, error) {
	return r.queryGSI(ctx, "from_id-index", "from_id", identityID)
}

// ListByTo returns exchanges addressed to the identity (the "received" box).
func (r *ExchangeRepo) ListByTo(ctx context.Context, identityID string) ([]domain.Exchange, error) {
	return r.queryGSI(ctx, "to_id-index", "to_id", identityID)
}

func (r *ExchangeRepo) queryGSI(ctx context.Context, index, attr, value string) ([]domain.Exchange, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#a = :v"),
		ExpressionAttributeNames:  map[string]string{"#a": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: value}},
	})
	if err != nil {
		return nil, err
	}
	var exchanges []domain.Exchange
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &exchanges); err != nil {
		return nil, err
	}
	return exchanges, nil
}
