package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/debugden/api/internal/domain"
)

// ImageRepo records uploaded question images.
type ImageRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewImageRepo(client *dynamodb.Client, tableName string) *ImageRepo {
	return &ImageRepo{client: client, tableName: tableName}
}

func (r *ImageRepo) Put(ctx context.Context, img *domain.Image) error {
	item, err := attributevalue.MarshalMap(img)
	if err != nil {
		return fmt.Errorf("marshal image: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ImageRepo) Get(ctx context.Context, imageID string) (*domain.Image, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("image_id", imageID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("image not found: %w", domain.ErrNotFound)
	}
	var img domain.Image
	if err := attributevalue.UnmarshalMap(out.Item, &img); err != nil {
		return nil, err
	}
	return &img, nil
}
