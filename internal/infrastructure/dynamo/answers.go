package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/debugden/api/internal/domain"
)

// AnswerRepo provides typed DynamoDB operations for the answers table.
type AnswerRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewAnswerRepo(client *dynamodb.Client, tableName string) *AnswerRepo {
	return &AnswerRepo{client: client, tableName: tableName}
}

func (r *AnswerRepo) Put(ctx context.Context, a *domain.Answer) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("marshal answer: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *AnswerRepo) Get(ctx context.Context, answerID string) (*domain.Answer, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("answer_id", answerID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("answer not found: %w", domain.ErrNotFound)
	}
	var a domain.Answer
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByQuestion returns all answers for a question via the question_id-index GSI.
func (r *AnswerRepo) ListByQuestion(ctx context.Context, questionID string) ([]domain.Answer, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String("question_id-index"),
		KeyConditionExpression:    aws.String("#q = :v"),
		ExpressionAttributeNames:  map[string]string{"#q": "question_id"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": &types.AttributeValueMemberS{Value: questionID}},
	})
	if err != nil {
		return nil, err
	}
	var answers []domain.Answer
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (r *AnswerRepo) Delete(ctx context.Context, answerID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("answer_id", answerID),
	})
	return err
}
