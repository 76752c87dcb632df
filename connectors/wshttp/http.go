package wshttp

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"

	"github.com/weegigs/wee-state-go/ws"
)

type HandlerOption[S any] func(service *httpService[S])

func Logger[S any](log *zerolog.Logger) HandlerOption[S] {
	return func(service *httpService[S]) {
		service.log = log
	}
}

// NewHandler exposes a store over HTTP: GET / returns the current state,
// POST / dispatches a remote action and returns the resulting state.
func NewHandler[S any](store *ws.Store[S], options ...HandlerOption[S]) http.Handler {
	service := &httpService[S]{store: store}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}

	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Method("GET", "/", service.getState())
	r.Method("POST", "/", service.dispatchAction())

	return otelhttp.NewHandler(r, "ws-http")
}

type httpService[S any] struct {
	log   *zerolog.Logger
	store *ws.Store[S]
}

type stateResource[S any] struct {
	Id       ws.EncodedStoreId `json:"id"`
	Revision ws.Revision       `json:"revision"`
	State    S                 `json:"state"`
}

func (service *httpService[S]) resource() stateResource[S] {
	return stateResource[S]{
		Id:       service.store.Id().Encode(),
		Revision: service.store.Revision(),
		State:    service.store.State(),
	}
}

func (service *httpService[S]) getState() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, service.resource())
	}
}

func (service *httpService[S]) dispatchAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-type")
		mediaType, _, err := mime.ParseMediaType(contentType)
		if mediaType != "application/json" || err != nil {
			http.Error(w, "unsupported content type", http.StatusUnsupportedMediaType)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		var action ws.RemoteAction
		if err := json.UnmarshalContext(r.Context(), body, &action); err != nil {
			service.log.Info().Err(err).Msg("failed to unmarshal action")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}

		if err := service.store.Dispatch(r.Context(), action); err != nil {
			var unsupported ws.UnsupportedActionError
			if errors.As(err, &unsupported) {
				service.log.Info().Err(err).Msg("unsupported action")
				http.Error(w, unsupported.Error(), http.StatusBadRequest)
				return
			}

			service.log.Info().Err(err).Msg("failed to dispatch action")
			http.Error(w, "failed to dispatch action", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, service.resource())
	}
}
