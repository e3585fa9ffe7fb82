// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/gogama/httpreq/transient"
)

// An Execution represents the state of a single dispatch of a
// Descriptor.
//
// When a Descriptor is dispatched, an Execution is created for it. The
// Execution is updated as the dispatch progresses (for example when the
// HTTP response becomes available) and is ultimately returned as the
// result of the dispatch and handed to the Descriptor's success or
// failure action.
//
// Event handlers may set values on an Execution using its SetValue
// method and read them back using the Value method. However, they
// should treat the structure's exported field values as immutable and
// leave them unmodified. Limited exceptions to this rule include making
// reasonable changes to the http.Request before it is sent, for example
// to sign it or to inject tracing headers.
type Execution struct {
	// ID uniquely identifies the execution. It is assigned by the
	// dispatcher before any event fires.
	ID uuid.UUID

	// Descriptor specifies the request being dispatched. It is never
	// nil.
	Descriptor *Descriptor

	// Start is the start time of the dispatch. It is assigned a
	// non-zero value when the dispatch starts, and this value remains
	// constant thereafter.
	Start time.Time

	// End is the end time of the dispatch. It contains the zero value
	// until the dispatch ends, when it is set to the current time.
	End time.Time

	// Request specifies the HTTP request built from the Descriptor and
	// sent, or about to be sent.
	Request *http.Request

	// Response specifies the HTTP response received. It is nil if the
	// request ended in an error before a response was received, or
	// before the response arrives.
	Response *http.Response

	// Err indicates the error received while sending the request or
	// reading the response body. Whenever Err is non-nil, it has the
	// type *url.Error.
	Err error

	// Body is the complete response body. It is nil if no response was
	// received. Both Body and Err may be non-nil if reading the body
	// failed part way; Body should then be treated as invalid.
	Body []byte

	data context.Context
}

// StatusCode returns the status code of the HTTP response. If there is
// no HTTP response, 0 is returned.
func (e *Execution) StatusCode() int {
	if e.Response == nil {
		return 0
	}

	return e.Response.StatusCode
}

// Header returns the HTTP response headers. If there is no HTTP
// response, the nil header is returned.
//
// Note that a nil return value is always safe for read-only operations,
// since http.Header is a map type.
func (e *Execution) Header() http.Header {
	if e.Response == nil {
		var nilHeader http.Header
		return nilHeader
	}

	return e.Response.Header
}

// Duration returns the duration of the execution.
//
// If the execution has not yet started, the duration is zero. If the
// execution has Ended, the duration returned is equal to End minus
// Start. Otherwise, it is equal to the current time minus Start.
func (e *Execution) Duration() time.Duration {
	if !e.Started() {
		return time.Duration(0)
	} else if !e.Ended() {
		return time.Since(e.Start)
	}

	return e.End.Sub(e.Start)
}

// Started indicates whether the execution has started.
func (e *Execution) Started() bool {
	return !e.Start.IsZero()
}

// Ended indicates whether the execution has ended. Once it has, there
// will be no further changes to the execution.
func (e *Execution) Ended() bool {
	return !e.End.IsZero()
}

// Succeeded indicates whether a response was received and its body was
// read in full. A response with a 4XX or 5XX status code still counts
// as success: the request itself did not fail.
func (e *Execution) Succeeded() bool {
	return e.Response != nil && e.Err == nil
}

// Timeout indicates whether Err currently contains a non-nil value
// which indicates a timeout.
func (e *Execution) Timeout() bool {
	return transient.Categorize(e.Err) == transient.Timeout
}

// Cancelled indicates whether Err currently contains a non-nil value
// which indicates the dispatch was cancelled, whether through the
// descriptor's progress tracker, the dispatcher, or the caller's
// context.
func (e *Execution) Cancelled() bool {
	return transient.Categorize(e.Err) == transient.Cancelled
}

// SetValue allows event handlers to store arbitrary data in the
// execution.
//
// The key must follow the same rules as the key parameter in
// context.WithValue, namely it:
//
// • it may not be nil;
//
// • it must be comparable;
//
// • it should not be of type string or any other built-in type to avoid
// collisions between different event handlers putting data into the
// same execution.
func (e *Execution) SetValue(key, value interface{}) {
	ctx := e.data
	if ctx == nil {
		ctx = context.Background()
	}

	e.data = context.WithValue(ctx, key, value)
}

// Value returns the data value associated with this execution for key,
// or nil if there is no value associated with key.
func (e *Execution) Value(key interface{}) interface{} {
	ctx := e.data
	if ctx == nil {
		return nil
	}

	return ctx.Value(key)
}
