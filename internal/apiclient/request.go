package apiclient

import "net/url"

// Request describes one logical API call. It is passed by value; a retry is
// a new Request with a higher attempt number, never an edit of the old one.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   any

	// NoRefresh keeps a 401 from entering the refresh flow. Credential
	// endpoints set it: their 401 means bad input, not an expired token.
	NoRefresh bool

	attempt   int
	requestID string
}

func NewRequest(method string, path string) Request {
	return Request{Method: method, Path: path}
}

func (r Request) WithQuery(query url.Values) Request {
	r.Query = cloneValues(query)
	return r
}

func (r Request) WithBody(body any) Request {
	r.Body = body
	return r
}

func (r Request) WithoutRefresh() Request {
	r.NoRefresh = true
	return r
}

// Attempt is 0 for the original dispatch and 1 for the single retry.
func (r Request) Attempt() int {
	return r.attempt
}

func (r Request) retry() Request {
	next := r
	next.Query = cloneValues(r.Query)
	next.attempt = r.attempt + 1
	return next
}

func (r Request) canRefresh() bool {
	return !r.NoRefresh && r.attempt == 0
}

func cloneValues(values url.Values) url.Values {
	if values == nil {
		return nil
	}
	out := make(url.Values, len(values))
	for key, list := range values {
		out[key] = append([]string(nil), list...)
	}
	return out
}
