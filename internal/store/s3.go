package store

import (
	"bytes"
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// PutObjectAPI is the part of the S3 client S3Backend uses.
type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend writes objects with a single unconditional PutObject.
type S3Backend struct {
	client PutObjectAPI
}

func NewS3Backend(client PutObjectAPI) *S3Backend {
	return &S3Backend{client: client}
}

// Put uploads body. No content type or metadata is set.
func (b *S3Backend) Put(ctx context.Context, bucket, key string, body []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	return err
}
