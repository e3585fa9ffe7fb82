// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpreq

import (
	"context"

	"github.com/gogama/httpreq/request"
)

// Doer is the interface that wraps the basic Do method.
//
// Do dispatches the request described by a descriptor and returns the
// final execution state (and error, if any). Dispatcher implements the
// Doer interface, and any other Doer implementation must behave
// substantially the same as Dispatcher.Do, in particular by performing
// exactly one of the descriptor's actions.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Doer interface {
	Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error)
}

// Getter is the interface that wraps the basic Get method.
//
// Get creates a descriptor for a GET to the specified URL, dispatches
// it, and returns the final execution state (and error, if any).
// Dispatcher implements the Getter interface, and any other Getter
// implementation must behave substantially the same as Dispatcher.Get.
//
// Any Doer can be used to emulate a Getter via the Get function.
type Getter interface {
	Get(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error)
}

// Header is the interface that wraps the basic Head method.
//
// Head creates a descriptor for a HEAD to the specified URL, dispatches
// it, and returns the final execution state (and error, if any).
// Dispatcher implements the Header interface, and any other Header
// implementation must behave substantially the same as Dispatcher.Head.
//
// Any Doer can be used to emulate a Header via the Head function.
type Header interface {
	Head(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error)
}

// Deleter is the interface that wraps the basic Delete method.
//
// Delete creates a descriptor for a DELETE to the specified URL,
// dispatches it, and returns the final execution state (and error, if
// any). Dispatcher implements the Deleter interface, and any other
// Deleter implementation must behave substantially the same as
// Dispatcher.Delete.
//
// Any Doer can be used to emulate a Deleter via the Delete function.
type Deleter interface {
	Delete(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error)
}

// IdleCloser is the interface that wraps the basic CloseIdleConnections
// method.
//
// If the underlying implementation supports it, CloseIdleConnections
// closes any idle which were previously connected from previous
// requests but are now sitting idle in a "keep-alive" state. It does
// not interrupt any connections currently in use.
//
// If the underlying implementation does not support this ability,
// CloseIdleConnections does nothing.
type IdleCloser interface {
	CloseIdleConnections()
}

// Executor is the interface that groups the basic Do, Get, Head,
// Delete, and CloseIdleConnections methods.
//
// Any Doer can be converted into an Executor via the Inflate function.
type Executor interface {
	Doer
	Getter
	Header
	Deleter
	IdleCloser
}

// Get uses the specified Doer to issue a GET to the specified URL,
// using the same policies as d.Do.
//
// The URL must be absolute. Options may add headers, actions, or a
// progress tracker to the descriptor.
func Get(ctx context.Context, d Doer, url string, opts ...request.Option) (*request.Execution, error) {
	return do(ctx, d, request.GET, url, opts)
}

// Head uses the specified Doer to issue a HEAD to the specified URL,
// using the same policies as d.Do.
func Head(ctx context.Context, d Doer, url string, opts ...request.Option) (*request.Execution, error) {
	return do(ctx, d, request.HEAD, url, opts)
}

// Delete uses the specified Doer to issue a DELETE to the specified
// URL, using the same policies as d.Do.
func Delete(ctx context.Context, d Doer, url string, opts ...request.Option) (*request.Execution, error) {
	return do(ctx, d, request.DELETE, url, opts)
}

func do(ctx context.Context, d Doer, m request.Method, url string, opts []request.Option) (*request.Execution, error) {
	desc, err := request.Parse(m.String(), url, opts...)
	if err != nil {
		return nil, err
	}
	return d.Do(ctx, desc)
}

// Inflate converts any non-nil Doer into an Executor. This may be
// helpful for interop across library boundaries, i.e. if code that only
// has access to a Doer needs to call a function that requires an
// Executor.
func Inflate(d Doer) Executor {
	if d == nil {
		panic("httpreq: nil doer")
	}

	if e, ok := d.(Executor); ok {
		return e
	}

	return inflated{d}
}

type inflated struct {
	doer Doer
}

func (i inflated) Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	return i.doer.Do(ctx, d)
}

func (i inflated) Get(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Get(ctx, i.doer, url, opts...)
}

func (i inflated) Head(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Head(ctx, i.doer, url, opts...)
}

func (i inflated) Delete(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Delete(ctx, i.doer, url, opts...)
}

func (i inflated) CloseIdleConnections() {
	if ic, ok := i.doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}
