package esbs

import (
	"context"
	"io"

	"github.com/EventStore/EventStore-Client-Go/esdb"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"github.com/weegigs/wee-state-go/ws"
)

type ActionLogOption func(*ESDBActionLog)

const defaultPageSize = 97

func PageSize(size int) ActionLogOption {
	return func(log *ESDBActionLog) {
		if size <= 0 {
			size = defaultPageSize
		}

		log.pageSize = size
	}
}

func NewActionLog(client *esdb.Client, options ...ActionLogOption) *ESDBActionLog {
	log := &ESDBActionLog{
		db:       client,
		pageSize: defaultPageSize,
	}

	for _, option := range options {
		option(log)
	}

	return log
}

// ESDBActionLog appends recorded actions to one EventStoreDB stream per
// store id.
type ESDBActionLog struct {
	db       *esdb.Client
	pageSize int
}

func (log *ESDBActionLog) Append(ctx context.Context, id ws.StoreId, actions ...ws.RecordedAction) error {
	if len(actions) == 0 {
		return nil
	}

	streamId := id.Encode().String()

	events := make([]esdb.EventData, len(actions))
	for i, action := range actions {
		data, err := json.Marshal(action)
		if err != nil {
			return errors.Wrap(err, "failed to marshal action")
		}

		events[i] = esdb.EventData{
			ContentType: esdb.JsonContentType,
			EventType:   action.Kind.String(),
			Data:        data,
		}
	}

	_, err := log.db.AppendToStream(ctx, streamId, esdb.AppendToStreamOptions{}, events...)
	if err != nil {
		return errors.Wrap(err, "failed to append to stream")
	}

	return nil
}

func (log *ESDBActionLog) Read(ctx context.Context, id ws.StoreId) (ws.History, error) {
	var actions []ws.RecordedAction

	var position esdb.StreamPosition = esdb.Start{}
	for {
		page, last, err := log.read(ctx, id, position)
		if err != nil {
			return ws.History{}, err
		}
		actions = append(actions, page...)
		if (len(page) < log.pageSize) || (len(page) == 0) {
			break
		}

		position = last
	}

	revision := ws.InitialRevision
	if len(actions) > 0 {
		revision = actions[len(actions)-1].Revision
	}

	return ws.History{
		Id:       id,
		Actions:  actions,
		Revision: revision,
	}, nil
}

func (log *ESDBActionLog) read(ctx context.Context, id ws.StoreId, from esdb.StreamPosition) ([]ws.RecordedAction, esdb.StreamPosition, error) {
	if revision, ok := from.(esdb.StreamRevision); ok {
		from = esdb.StreamRevision{
			Value: revision.Value + 1,
		}
	}

	streamId := id.Encode().String()
	stream, err := log.db.ReadStream(
		ctx, streamId, esdb.ReadStreamOptions{
			From: from,
		}, uint64(log.pageSize),
	)
	if err != nil {
		if err == esdb.ErrStreamNotFound {
			return nil, esdb.End{}, nil
		}

		if errors.Is(err, io.EOF) {
			return nil, esdb.End{}, nil
		}

		return nil, esdb.End{}, errors.Wrap(err, "failed to read stream")
	}
	defer stream.Close()

	var actions []ws.RecordedAction
	var last esdb.StreamPosition = esdb.End{}

	for {
		event, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, esdb.End{}, errors.Wrap(err, "failed to read action")
		}

		original := event.OriginalEvent()

		var recorded ws.RecordedAction
		if err := json.Unmarshal(original.Data, &recorded); err != nil {
			return nil, esdb.End{}, errors.Wrap(err, "failed to unmarshal action")
		}

		actions = append(actions, recorded)

		last = esdb.Revision(original.EventNumber)
	}

	return actions, last, nil
}
