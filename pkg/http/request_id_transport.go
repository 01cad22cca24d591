package http

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestIDTransport struct {
	transport http.RoundTripper
}

// RoundTrip forwards the inbound request id, or a fresh uuid when the call
// does not originate from an HTTP handler.
func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get(RequestIDHeader) != "" {
		return t.transport.RoundTrip(req)
	}

	id := middleware.GetReqID(req.Context())
	if id == "" {
		id = uuid.NewString()
	}

	reqCopy := req.Clone(req.Context())
	reqCopy.Header.Set(RequestIDHeader, id)

	return t.transport.RoundTrip(reqCopy)
}

func WithRequestID() HttpOpts {
	return WithTransport(func(rt http.RoundTripper) http.RoundTripper {
		return &requestIDTransport{
			transport: rt,
		}
	})
}
