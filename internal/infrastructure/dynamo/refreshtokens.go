package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/otp-auth-api/internal/domain"
)

// RefreshTokenRepo persists issued refresh tokens so they can be revoked at
// logout independent of their cryptographic validity. Presence in the table
// is what makes a refresh token valid; DynamoDB TTL on expires_at removes
// entries whose tokens have expired anyway.
type RefreshTokenRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewRefreshTokenRepo(client *dynamodb.Client, tableName string) *RefreshTokenRepo {
	return &RefreshTokenRepo{client: client, tableName: tableName}
}

func (r *RefreshTokenRepo) Save(ctx context.Context, rec *domain.RefreshTokenRecord) error {
	item, err := attributevalue.MarshalMap(rec)
	if err != nil {
		return fmt.Errorf("marshal refresh token: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *RefreshTokenRepo) Find(ctx context.Context, token string) (*domain.RefreshTokenRecord, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("refresh token not found: %w", domain.ErrNotFound)
	}
	var rec domain.RefreshTokenRecord
	if err := attributevalue.UnmarshalMap(out.Item, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a refresh token. Deleting an absent token is not an error.
func (r *RefreshTokenRepo) Delete(ctx context.Context, token string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("token", token),
	})
	return err
}
