// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

// An Action is performed when the dispatch of a Descriptor concludes.
// A Descriptor stores its success and failure actions but never
// performs them; that is up to the dispatcher.
//
// A dispatcher performs at most one of a Descriptor's two actions per
// dispatch, and performs it exactly once.
type Action interface {
	Perform(e *Execution)
}

// The ActionFunc type is an adapter to allow the use of ordinary
// functions as actions. If f is a function with the appropriate
// signature, ActionFunc(f) is an Action that calls f.
type ActionFunc func(e *Execution)

// Perform calls f(e).
func (f ActionFunc) Perform(e *Execution) {
	f(e)
}

// A Chan is an Action which delivers the concluded execution on a
// channel instead of running code. The channel should be buffered, or
// have a ready receiver, because the dispatcher blocks on the send.
type Chan chan<- *Execution

// Perform sends e on the channel.
func (c Chan) Perform(e *Execution) {
	c <- e
}
