package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/contact-form-api/internal/domain"
)

// SubmitterRepo provides typed DynamoDB operations for the submitters table.
// The email attribute is the partition key, so uniqueness is enforced by the
// store itself via the conditional put in Create.
type SubmitterRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewSubmitterRepo(client *dynamodb.Client, tableName string) *SubmitterRepo {
	return &SubmitterRepo{client: client, tableName: tableName}
}

// Create persists a new submitter. If a record with the same email already
// exists (e.g. the loser of a concurrent first-submission race), the store's
// condition check fails and domain.ErrConflict is returned.
func (r *SubmitterRepo) Create(ctx context.Context, s *domain.Submitter) error {
	item, err := attributevalue.MarshalMap(s)
	if err != nil {
		return fmt.Errorf("marshal submitter: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(email)"),
	})
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("submitter %s already exists: %w", s.Email, domain.ErrConflict)
	}
	return err
}

func (r *SubmitterRepo) GetByEmail(ctx context.Context, email string) (*domain.Submitter, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", email),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("submitter not found: %w", domain.ErrNotFound)
	}
	var s domain.Submitter
	if err := attributevalue.UnmarshalMap(out.Item, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByToken queries the verification_token GSI. Verified submitters never
// match: their token attribute was removed, so they are absent from the index.
// Token expiry is the caller's check — the index only proves the string matches.
func (r *SubmitterRepo) GetByToken(ctx context.Context, token string) (*domain.Submitter, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                aws.String(r.tableName),
		IndexName:                aws.String("verification_token-index"),
		KeyConditionExpression:   aws.String("#t = :v"),
		ExpressionAttributeNames: map[string]string{"#t": fieldVerificationToken},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: token},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return nil, err
	}
	if len(out.Items) == 0 {
		return nil, fmt.Errorf("submitter not found: %w", domain.ErrNotFound)
	}
	var s domain.Submitter
	if err := attributevalue.UnmarshalMap(out.Items[0], &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SubmitterRepo) Update(ctx context.Context, email string, updates map[string]interface{}) error {
	updates[fieldUpdatedAt] = time.Now().UTC().Format(time.RFC3339)
	ue, err := buildUpdateExpr(updates)
	if err != nil {
		return err
	}
	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey("email", email),
		UpdateExpression:          aws.String(ue.Expr),
		ExpressionAttributeNames:  ue.Names,
		ExpressionAttributeValues: ue.Values,
	})
	return err
}

// MarkVerified flips the verified flag and removes the token attributes in a
// single update, which also drops the record from the token GSI. A consumed
// token can therefore never verify twice.
func (r *SubmitterRepo) MarkVerified(ctx context.Context, email string) error {
	_, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              strKey("email", email),
		UpdateExpression: aws.String("SET #v = :t, #u = :u REMOVE #tok, #exp"),
		ExpressionAttributeNames: map[string]string{
			"#v":   fieldVerified,
			"#u":   fieldUpdatedAt,
			"#tok": fieldVerificationToken,
			"#exp": fieldTokenExpiresAt,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":t": &types.AttributeValueMemberBOOL{Value: true},
			":u": &types.AttributeValueMemberS{Value: time.Now().UTC().Format(time.RFC3339)},
		},
	})
	return err
}
