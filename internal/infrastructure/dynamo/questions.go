package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/debugden/api/internal/domain"
)

// QuestionRepo provides typed DynamoDB operations for the questions table.
// Vote toggles rewrite the whole item: the voter list and both tallies land
// in a single PutItem, so no partially updated question is ever readable.
type QuestionRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewQuestionRepo(client *dynamodb.Client, tableName string) *QuestionRepo {
	return &QuestionRepo{client: client, tableName: tableName}
}

func (r *QuestionRepo) Put(ctx context.Context, q *domain.Question) error {
	item, err := attributevalue.MarshalMap(q)
	if err != nil {
		return fmt.Errorf("marshal question: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *QuestionRepo) Get(ctx context.Context, questionID string) (*domain.Question, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("question_id", questionID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("question not found: %w", domain.ErrNotFound)
	}
	var q domain.Question
	if err := attributevalue.UnmarshalMap(out.Item, &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// Scan returns every question. Listing is full-table by design; pagination
// is handled client-side at current scale.
func (r *QuestionRepo) Scan(ctx context.Context) ([]domain.Question, error) {
	var questions []domain.Question
	paginator := dynamodb.NewScanPaginator(r.client, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []domain.Question
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		questions = append(questions, page...)
	}
	return questions, nil
}

func (r *QuestionRepo) Delete(ctx context.Context, questionID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("question_id", questionID),
	})
	return err
}
