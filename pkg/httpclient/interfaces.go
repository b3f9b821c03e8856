package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Request describes a GET call. Query values are appended to URL. A positive
// BodyLimit makes the call fail once the response body exceeds that many bytes.
type Request struct {
	URL       string
	Query     map[string]string
	Headers   map[string]string
	BodyLimit int
}

// Client abstracts HTTP calls so callers can inject fakes or different transports.
type Client interface {
	Get(ctx context.Context, req Request) (Response, error)
}
