package domain

import "time"

// Image records a question image uploaded to object storage.
type Image struct {
	ImageID    string    `json:"id" dynamodbav:"image_id"`
	Object     string    `json:"object" dynamodbav:"object"`
	URL        string    `json:"url" dynamodbav:"url"`
	Name       string    `json:"name" dynamodbav:"name"`
	Size       int64     `json:"size" dynamodbav:"size"`
	Type       string    `json:"type" dynamodbav:"type"`
	UploaderID string    `json:"uploaded_by" dynamodbav:"uploaded_by"`
	CreatedAt  time.Time `json:"created" dynamodbav:"created_at"`
}
