// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpreq

// An Event identifies the event type when installing or running a
// Handler. Install event handlers in a Dispatcher to extend it with
// custom functionality.
type Event int

const (
	// BeforeExecutionStart identifies the event that occurs before the
	// dispatch of a descriptor starts.
	//
	// When Dispatcher fires BeforeExecutionStart, the execution is
	// non-nil but the only fields that have been set are the ID and
	// the descriptor.
	BeforeExecutionStart Event = iota
	// BeforeSend identifies the event that occurs before the HTTP
	// request is handed to the HTTPDoer.
	//
	// When Dispatcher fires BeforeSend, the execution's request field
	// is set to the HTTP request that WILL BE sent after all BeforeSend
	// handlers have finished. The request was built fresh from the
	// descriptor for this dispatch, so BeforeSend handlers may modify
	// it, including its URL and Header, without side effects.
	BeforeSend
	// BeforeReadBody identifies the event that occurs after the HTTP
	// request has resulted in an HTTP response (as opposed to an error)
	// but before the response body is read and buffered.
	//
	// When Dispatcher fires BeforeReadBody, the execution's response
	// field is set to the HTTP response whose body WILL BE read after
	// all BeforeReadBody handlers have finished. If the descriptor has
	// a progress tracker, its total has been set from the response
	// Content-Length.
	//
	// Note that BeforeReadBody never fires if the HTTP request ended in
	// error, but always fires if an HTTP response is received,
	// regardless of HTTP response status code, and regardless of
	// whether there is a non-empty body in the response.
	BeforeReadBody
	// AfterProgress identifies the event that occurs each time bytes of
	// the response body are read, if the descriptor has a progress
	// tracker.
	//
	// When Dispatcher fires AfterProgress, the progress tracker's
	// completed count already includes the bytes just read. The
	// execution's body field is not yet set.
	AfterProgress
	// AfterTimeout identifies the event that occurs after the dispatch
	// failed because of a timeout error.
	//
	// When Dispatcher fires AfterTimeout, the execution's error field
	// is set to the timeout error.
	AfterTimeout
	// AfterExecutionEnd identifies the event that occurs after the
	// dispatch ends, before the descriptor's success or failure action
	// is performed.
	//
	// When Dispatcher fires AfterExecutionEnd, either the execution's
	// response field or its error field OR BOTH may be set to non-nil
	// values, but it will never be the case that both are nil. The
	// response will only be non-nil when the error is also non-nil if
	// there was an error reading the response body. The end time is
	// set to the time the dispatch ended.
	AfterExecutionEnd
	// eventSentinel provides the total number of events typed as an
	// Event.
	eventSentinel

	// numEvents provides the total number of events types as an int.
	numEvents = int(eventSentinel)
)

var eventNames = []string{
	"BeforeExecutionStart",
	"BeforeSend",
	"BeforeReadBody",
	"AfterProgress",
	"AfterTimeout",
	"AfterExecutionEnd",
}

// Events returns a slice containing all events which can occur in a
// dispatch by Dispatcher, in the order in which they would occur.
func Events() []Event {
	return []Event{
		BeforeExecutionStart,
		BeforeSend,
		BeforeReadBody,
		AfterProgress,
		AfterTimeout,
		AfterExecutionEnd,
	}
}

// Name returns the name of the event.
func (evt Event) Name() string {
	return eventNames[int(evt)]
}

// String returns the name of the event.
func (evt Event) String() string {
	return evt.Name()
}
