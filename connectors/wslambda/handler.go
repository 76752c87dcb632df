package wslambda

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"github.com/weegigs/wee-state-go/ws"
)

type GatewayHandler = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type stateResource[S any] struct {
	Id       ws.EncodedStoreId `json:"id"`
	Revision ws.Revision       `json:"revision"`
	State    S                 `json:"state"`
}

// NewStateHandler serves the store's current state to API Gateway.
func NewStateHandler[S any](store *ws.Store[S]) GatewayHandler {
	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		return respond(store)
	}
}

// NewDispatchHandler decodes a remote action from the request body,
// dispatches it, and returns the resulting state.
func NewDispatchHandler[S any](store *ws.Store[S]) GatewayHandler {
	return func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		body := []byte(event.Body)
		if event.IsBase64Encoded {
			decoded, err := base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest}, nil
			}

			body = decoded
		}

		var action ws.RemoteAction
		if err := json.UnmarshalContext(ctx, body, &action); err != nil {
			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusBadRequest}, nil
		}

		if err := store.Dispatch(ctx, action); err != nil {
			var unsupported ws.UnsupportedActionError
			if errors.As(err, &unsupported) {
				return events.APIGatewayV2HTTPResponse{
					StatusCode: http.StatusBadRequest,
					Body:       unsupported.Error(),
				}, nil
			}

			return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
		}

		return respond(store)
	}
}

func respond[S any](store *ws.Store[S]) (events.APIGatewayV2HTTPResponse, error) {
	resource := stateResource[S]{
		Id:       store.Id().Encode(),
		Revision: store.Revision(),
		State:    store.State(),
	}

	body, err := json.Marshal(resource)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{StatusCode: http.StatusInternalServerError}, nil
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(body),
	}, nil
}
