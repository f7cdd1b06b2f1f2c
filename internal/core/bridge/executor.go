package bridge

import "net/http"

// Request describes the destination of an asynchronous operation.
type Request struct {
	// Method is the HTTP method; empty means GET.
	Method string

	// URL is the destination.
	URL string

	// Header holds extra request headers.
	Header http.Header

	// Body is the optional request payload.
	Body []byte
}

// Result is the captured outcome of an asynchronous operation: the
// success payload, the protocol-level response metadata, and/or the
// operation's own error, passed through untouched.
type Result struct {
	// Payload is the response body.
	Payload []byte

	// Status is the protocol status code (0 if the operation never
	// produced a response).
	Status int

	// Header holds the response metadata.
	Header http.Header

	// Err is the operation's failure, if any. The bridge never
	// interprets it.
	Err error
}

// Handle is a cancellable reference to a started operation.
type Handle interface {
	// Cancel requests cancellation of the underlying operation.
	// Cancellation is cooperative: the completion callback may still
	// run after Cancel returns.
	Cancel()
}

// Executor starts asynchronous network operations. It is the external
// collaborator the bridge composes around; the bridge only relies on
// start, cancel, and the completion callback firing exactly once.
type Executor interface {
	// Start begins the operation and returns a cancellable handle.
	// complete is invoked exactly once, asynchronously, with the
	// operation's outcome.
	Start(req *Request, complete func(*Result)) Handle
}
