// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package transient

import (
	"context"
	"errors"
	"io"
	"strconv"
	"syscall"
)

// A Category classifies the error that ended a dispatch, as reported by
// Categorize.
//
// Use Transient to tell whether the condition behind the error may
// clear up by itself, so that dispatching the same descriptor again
// could succeed.
type Category int

const (
	// Not is the category of a nil error, and of any error which fits
	// no other category.
	Not Category = iota
	// Timeout means the dispatch ran out of time, either because the
	// timeout policy's deadline passed or because a lower layer timed
	// out. Any error in the chain with a Timeout method reporting true
	// counts, including context.DeadlineExceeded.
	Timeout
	// ConnRefused means nothing accepted the connection (ECONNREFUSED),
	// as happens while the remote service is starting or restarting.
	ConnRefused
	// ConnReset means the remote end reset an established connection
	// (ECONNRESET), typically a service or load balancer going away in
	// the middle of a response.
	ConnReset
	// Truncated means the connection ended before the response body
	// announced by Content-Length was read in full.
	Truncated
	// Cancelled means the dispatch was aborted on purpose, by
	// cancelling the descriptor's progress tracker, by
	// httpreq.Dispatcher.Cancel, or by cancelling the caller's context.
	Cancelled
	categorySentinel
)

var categoryNames = [categorySentinel]string{
	Not:         "Not",
	Timeout:     "Timeout",
	ConnRefused: "ConnRefused",
	ConnReset:   "ConnReset",
	Truncated:   "Truncated",
	Cancelled:   "Cancelled",
}

// Categorize returns the category of err, looking through wrapped
// errors such as *url.Error. Timeout wins over every other category,
// and Cancelled over the connection categories, since a cancelled or
// timed out dispatch often surfaces a connection error too.
func Categorize(err error) Category {
	switch {
	case err == nil:
		return Not
	case timedOut(err):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Cancelled
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnRefused
	case errors.Is(err, syscall.ECONNRESET):
		return ConnReset
	case errors.Is(err, io.ErrUnexpectedEOF):
		return Truncated
	default:
		return Not
	}
}

// Transient reports whether an error in this category may go away by
// itself. Cancelled is not transient: somebody chose to stop.
func (cat Category) Transient() bool {
	switch cat {
	case Timeout, ConnRefused, ConnReset, Truncated:
		return true
	default:
		return false
	}
}

// String returns the name of the category.
func (cat Category) String() string {
	if cat < 0 || cat >= categorySentinel {
		return "Category(" + strconv.Itoa(int(cat)) + ")"
	}
	return categoryNames[cat]
}

// timedOut walks the chain of err, since an outer error's Timeout
// method may report false while a cause further down reports true.
func timedOut(err error) bool {
	for ; err != nil; err = errors.Unwrap(err) {
		if t, ok := err.(interface{ Timeout() bool }); ok && t.Timeout() {
			return true
		}
	}
	return false
}
