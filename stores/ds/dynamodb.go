package ds

import (
	"context"
	"errors"

	"github.com/avast/retry-go"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/weegigs/wee-state-go/ws"
)

type DynamoSnapshotStore struct {
	db    *dynamodb.Client
	table string
}

type SnapshotTableName string

func (name SnapshotTableName) String() string {
	return string(name)
}

func NewSnapshotStore(db *dynamodb.Client, table SnapshotTableName) *DynamoSnapshotStore {
	return &DynamoSnapshotStore{db: db, table: string(table)}
}

// internal

type snapshotRecord struct {
	PartitionKey string       `dynamodbav:"pk"`
	SortKey      string       `dynamodbav:"sk"`
	Revision     ws.Revision  `dynamodbav:"revision"`
	Timestamp    ws.Timestamp `dynamodbav:"timestamp"`
	Encoding     string       `dynamodbav:"encoding"`
	State        []byte       `dynamodbav:"state"`
}

const snapshotSortKey = "snapshot"

func partitionKey(id *ws.StoreId) string {
	return id.Encode().String()
}

func recordFor(snapshot *ws.Snapshot) *snapshotRecord {
	return &snapshotRecord{
		PartitionKey: partitionKey(&snapshot.Id),
		SortKey:      snapshotSortKey,
		Revision:     snapshot.Revision,
		Timestamp:    snapshot.Timestamp,
		Encoding:     snapshot.State.Encoding,
		State:        snapshot.State.Data,
	}
}

func (ds *DynamoSnapshotStore) Load(ctx context.Context, id ws.StoreId) (*ws.Snapshot, error) {
	key, err := attributevalue.MarshalMap(
		map[string]string{
			"pk": partitionKey(&id),
			"sk": snapshotSortKey,
		},
	)
	if err != nil {
		return nil, err
	}

	out, err := ds.db.GetItem(
		ctx, &dynamodb.GetItemInput{
			TableName:      aws.String(ds.table),
			Key:            key,
			ConsistentRead: aws.Bool(true),
		},
	)
	if err != nil {
		return nil, err
	}

	if len(out.Item) == 0 {
		return nil, ws.ErrSnapshotNotFound
	}

	var record snapshotRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, err
	}

	stored, err := ws.EncodedStoreId(record.PartitionKey).Decode()
	if err != nil {
		return nil, err
	}

	return &ws.Snapshot{
		Id:        *stored,
		Revision:  record.Revision,
		Timestamp: record.Timestamp,
		State: ws.Data{
			Encoding: record.Encoding,
			Data:     record.State,
		},
	}, nil
}

func revisionCondition(revision ws.Revision, expectedRevision ws.Revision) expression.ConditionBuilder {
	if len(expectedRevision) == 0 {
		return expression.Name("revision").LessThan(expression.Value(revision)).Or(
			expression.AttributeNotExists(expression.Name("revision")),
		)
	}

	if expectedRevision == ws.InitialRevision {
		return expression.AttributeNotExists(expression.Name("revision"))
	}

	return expression.Name("revision").Equal(expression.Value(expectedRevision))
}

func maybeRevisionConflict(err error) error {
	if err == nil {
		return nil
	}

	var conditional *types.ConditionalCheckFailedException
	if errors.As(err, &conditional) {
		return ws.RevisionConflict
	}

	return err
}

func isThrottled(err error) bool {
	var ae smithy.APIError
	if errors.As(err, &ae) {
		switch ae.ErrorCode() {
		case "ProvisionedThroughputExceededException", "ThrottlingException", "RequestLimitExceeded":
			return true
		}
	}

	return false
}

func (ds *DynamoSnapshotStore) Save(ctx context.Context, snapshot ws.Snapshot, options ws.SaveOptions) error {
	item, err := attributevalue.MarshalMap(recordFor(&snapshot))
	if err != nil {
		return err
	}

	condition, err := expression.NewBuilder().WithCondition(
		revisionCondition(snapshot.Revision, options.ExpectedRevision),
	).Build()
	if err != nil {
		return err
	}

	return retry.Do(
		func() error {
			_, err := ds.db.PutItem(
				ctx, &dynamodb.PutItemInput{
					TableName:                 aws.String(ds.table),
					Item:                      item,
					ConditionExpression:       condition.Condition(),
					ExpressionAttributeNames:  condition.Names(),
					ExpressionAttributeValues: condition.Values(),
				},
			)

			return maybeRevisionConflict(err)
		},
		retry.RetryIf(isThrottled),
		retry.Attempts(3),
		retry.LastErrorOnly(true),
	)
}

func (ds *DynamoSnapshotStore) Remove(ctx context.Context, id ws.StoreId) error {
	key, err := attributevalue.MarshalMap(
		map[string]string{
			"pk": partitionKey(&id),
			"sk": snapshotSortKey,
		},
	)
	if err != nil {
		return err
	}

	_, err = ds.db.DeleteItem(
		ctx, &dynamodb.DeleteItemInput{
			TableName: aws.String(ds.table),
			Key:       key,
		},
	)

	return err
}
