package esbs

import (
	"context"
	"fmt"

	"github.com/EventStore/EventStore-Client-Go/esdb"
)

// NewLocalActionLog connects to a local, insecure, esdb instance.
func NewLocalActionLog(ctx context.Context, options ...ActionLogOption) (*ESDBActionLog, error) {
	connection := fmt.Sprintf("esdb://admin:changeit@%s:%s?tls=false", "localhost", "2113")

	settings, err := esdb.ParseConnectionString(connection)
	if err != nil {
		return nil, err
	}

	client, err := esdb.NewClient(settings)
	if err != nil {
		return nil, err
	}

	return NewActionLog(client, options...), nil
}
