package ds

import (
	"context"
	"errors"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/google/wire"
	"github.com/weegigs/wee-state-go/support"
	"github.com/weegigs/wee-state-go/ws"
)

var Live = wire.NewSet(
	support.AWSConfig,
	Client,
	LiveSnapshotTableName,
	NewSnapshotStore,
	wire.Bind(new(ws.SnapshotStore), new(*DynamoSnapshotStore)),
)

var Local = wire.NewSet(
	LocalSnapshotStore,
	wire.Bind(new(ws.SnapshotStore), new(*DynamoSnapshotStore)),
)

var Test = wire.NewSet(
	TestStore,
	wire.Bind(new(ws.SnapshotStore), new(*DynamoSnapshotStore)),
)

func LiveSnapshotTableName() (SnapshotTableName, error) {
	table := os.Getenv("DYNAMODB_SNAPSHOTS_TABLE_NAME")
	if len(table) == 0 {
		return "", errors.New("DYNAMODB_SNAPSHOTS_TABLE_NAME is not set")
	}

	return SnapshotTableName(table), nil
}

func LocalSnapshotTableName() SnapshotTableName {
	return SnapshotTableName("wee-state")
}

func TestStore(ctx context.Context) (*DynamoSnapshotStore, func(), error) {
	return DynamoTestStore(ctx)
}

func Client(cfg aws.Config) *dynamodb.Client {
	otelaws.AppendMiddlewares(&cfg.APIOptions)
	return dynamodb.NewFromConfig(cfg)
}
