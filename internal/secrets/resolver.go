// Package secrets resolves the weather API credential from AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/go-playground/validator/v10"
)

var (
	errBinarySecret = errors.New("secret has no string value")
	errMissingKey   = errors.New("api_key field is missing")
)

var validate = validator.New()

// GetSecretValueAPI is the part of the Secrets Manager client the Resolver uses.
type GetSecretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// secretDocument is the expected shape of the secret string. APIKey is a
// pointer so that an empty key is still distinguishable from a missing one.
type secretDocument struct {
	APIKey *string `json:"api_key" validate:"required"`
}

// Resolver reads one named secret from one region.
type Resolver struct {
	client     GetSecretValueAPI
	secretName string
	region     string
}

// NewResolver creates a Resolver. A non-empty region overrides the client's
// own region for every lookup.
func NewResolver(client GetSecretValueAPI, secretName, region string) *Resolver {
	return &Resolver{
		client:     client,
		secretName: secretName,
		region:     region,
	}
}

// Resolve fetches the secret and returns its api_key field.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	out, err := r.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(r.secretName),
	}, r.withRegion)
	if err != nil {
		return "", &AccessError{SecretName: r.secretName, Err: err}
	}

	if out.SecretString == nil {
		return "", &FormatError{SecretName: r.secretName, Err: errBinarySecret}
	}

	var doc secretDocument
	if err := json.Unmarshal([]byte(*out.SecretString), &doc); err != nil {
		return "", &FormatError{SecretName: r.secretName, Err: err}
	}
	if err := validate.Struct(doc); err != nil {
		return "", &FormatError{SecretName: r.secretName, Err: errMissingKey}
	}

	return *doc.APIKey, nil
}

func (r *Resolver) withRegion(o *secretsmanager.Options) {
	if r.region != "" {
		o.Region = r.region
	}
}
