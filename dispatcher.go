// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpreq

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gogama/httpreq/request"
	"github.com/gogama/httpreq/timeout"
)

const (
	nilCtxMsg        = "httpreq: nil context"
	nilDescriptorMsg = "httpreq: nil descriptor"
)

// An HTTPDoer implements a Do method in the same manner as the GoLang
// standard library http.Client from the net/http package.
type HTTPDoer interface {
	// Do sends an HTTP request and returns an HTTP response following
	// policy (such as redirects, cookies, auth) configured on the
	// HTTPDoer.
	//
	// The Do method must follow the contract documented on the GoLang
	// standard library http.Client from the net/http package.
	Do(r *http.Request) (*http.Response, error)
}

var emptyHandlers = HandlerGroup{}

// A Dispatcher sends the HTTP requests described by request descriptors
// and reports the outcome back through each descriptor's progress
// tracker and actions. Its zero value is a valid configuration.
//
// The zero value dispatcher uses http.DefaultClient (from net/http) as
// the HTTPDoer, timeout.DefaultPolicy as the timeout policy, no default
// headers, and an empty handler group (no event handlers/plug-ins).
//
// A Dispatcher is safe for concurrent use by multiple goroutines. It
// must not be copied after first use.
//
// A Dispatcher is not an HTTP client: the HTTPDoer is responsible for
// every detail of sending the HTTP request and receiving the response,
// including connection management, TLS and redirects. The Dispatcher
// adds the following on top:
//
// • it converts the descriptor into a fresh http.Request for each
// dispatch, adding any DefaultHeaders the descriptor does not set;
//
// • it reads and buffers the entire response body into a []byte
// (returned as the Execution.Body field), counting the bytes into the
// descriptor's progress tracker if it has one;
//
// • it aborts the dispatch when the timeout set by the timeout policy
// expires, when the caller's context is done, or when the descriptor's
// progress tracker is cancelled, or when Cancel is called;
//
// • it performs exactly one of the descriptor's success and failure
// actions when the dispatch concludes; and
//
// • it invokes user-provided handler functions at designated plug-in
// points, allowing new features such as logging and telemetry to be
// mixed in from outside.
//
// A Dispatcher makes a single attempt per dispatch and never retries.
type Dispatcher struct {
	// HTTPDoer specifies the mechanics of sending HTTP requests and
	// receiving responses.
	//
	// If HTTPDoer is nil, http.DefaultClient from the standard net/http
	// package is used.
	HTTPDoer HTTPDoer
	// TimeoutPolicy specifies how long a dispatch may take.
	//
	// If TimeoutPolicy is nil, timeout.DefaultPolicy is used.
	TimeoutPolicy timeout.Policy
	// Handlers allows custom handler chains to be invoked when
	// designated events occur during a dispatch.
	//
	// If Handlers is nil, no custom handlers will be run.
	Handlers *HandlerGroup
	// DefaultHeaders are added to every request whose descriptor has
	// no header of the same name. Header names are compared without
	// regard to case.
	DefaultHeaders []request.Header

	inFlight request.Registry[[]*inFlight]
}

type inFlight struct {
	cancel context.CancelFunc
}

// Do dispatches the HTTP request described by d and returns the
// results, following the timeout policy set on the Dispatcher and
// low-level policy set on the underlying HTTPDoer. Neither ctx nor d
// may be nil.
//
// When the dispatch concludes, Do performs the descriptor's success
// action if a response was received and its body was read in full, and
// the descriptor's failure action otherwise. A non-2XX status code is
// not a failure. Actions run on the calling goroutine after the
// AfterExecutionEnd handlers, and before Do returns.
//
// An error is returned if the request could not be sent, if no
// response was received, or if the response body could not be read.
// Any returned error is of type *url.Error. The url.Error's Timeout
// method, and the Execution's Timeout method, return true if the
// dispatch timed out.
//
// The returned Execution is never nil. If an error was returned, the
// Err field of the Execution always references the same error.
//
// If the descriptor has a progress tracker, Do resets its completed
// count to zero, sets its total from the response Content-Length (which
// may be Indeterminate, and is zero for HEAD), and adds every body byte
// read to its completed count. Once the body has been read in full, the
// total is set to the completed count, so the tracker is Finished. If
// the tracker has been cancelled, Do fails immediately.
//
// A progress tracker belongs to its descriptor, not to a dispatch.
// Dispatching a progress-tracked descriptor again while a previous
// dispatch of it is still in flight resets the shared tracker, and the
// byte counts of the two dispatches interleave. Keep at most one
// dispatch of such a descriptor in flight.
func (c *Dispatcher) Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	if d == nil {
		panic(nilDescriptorMsg)
	}

	e := &request.Execution{
		ID:         uuid.New(),
		Descriptor: d,
	}

	doer := c.doer()

	timeoutPolicy := c.TimeoutPolicy
	if timeoutPolicy == nil {
		timeoutPolicy = timeout.DefaultPolicy
	}

	handlers := c.Handlers
	if handlers == nil {
		handlers = &emptyHandlers
	}
	handlers.run(BeforeExecutionStart, e)
	e.Start = time.Now()

	ctx, cancel := context.WithTimeout(ctx, timeoutPolicy.Timeout(d))
	defer cancel()
	f := &inFlight{cancel: cancel}
	c.track(d, f)
	defer c.untrack(d, f)
	if p := d.Progress(); p != nil {
		go func() {
			select {
			case <-p.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	c.sendAndReceive(ctx, e, doer, handlers)
	if e.Timeout() {
		handlers.run(AfterTimeout, e)
	}

	e.End = time.Now()
	c.untrack(d, f)
	handlers.run(AfterExecutionEnd, e)
	perform(e)
	return e, e.Err
}

func (c *Dispatcher) sendAndReceive(ctx context.Context, e *request.Execution, doer HTTPDoer, handlers *HandlerGroup) {
	d := e.Descriptor
	e.Request = d.ToRequest(ctx)
	addDefaultHeaders(e.Request.Header, c.DefaultHeaders)
	p := d.Progress()
	if p != nil {
		p.SetCompleted(0)
	}
	handlers.run(BeforeSend, e)
	if p != nil && p.Cancelled() {
		e.Err = urlErrorWrap(d, context.Canceled)
		return
	}
	resp, err := doer.Do(e.Request)
	if err != nil {
		e.Err = urlErrorWrap(d, err)
		return
	}
	e.Response = resp
	readBody(e, handlers)
}

func readBody(e *request.Execution, handlers *HandlerGroup) {
	defer func() {
		if e.Response != nil && e.Response.Body != nil {
			_ = e.Response.Body.Close()
		}
	}()
	p := e.Descriptor.Progress()
	if p != nil {
		p.SetTotal(expectedBodyLength(e))
	}
	handlers.run(BeforeReadBody, e)
	if e.Response == nil {
		panic("httpreq: response was nilled")
	} else if e.Response.Body == nil {
		panic("httpreq: response body was nilled")
	}
	var r io.Reader = e.Response.Body
	if p != nil {
		r = &progressReader{r: r, p: p, e: e, handlers: handlers}
	}
	var err error
	e.Body, err = io.ReadAll(r)
	if err != nil {
		e.Err = urlErrorWrap(e.Descriptor, err)
	} else if p != nil {
		p.SetTotal(p.Completed())
	}
}

// expectedBodyLength returns the number of body bytes the response
// should carry, or request.Indeterminate if unknown. A HEAD response
// keeps the Content-Length of the equivalent GET but has no body.
func expectedBodyLength(e *request.Execution) int64 {
	if e.Request.Method == http.MethodHead {
		return 0
	}
	if e.Response.ContentLength < 0 {
		return request.Indeterminate
	}
	return e.Response.ContentLength
}

type progressReader struct {
	r        io.Reader
	p        *request.Progress
	e        *request.Execution
	handlers *HandlerGroup
}

func (pr *progressReader) Read(b []byte) (int, error) {
	n, err := pr.r.Read(b)
	if n > 0 {
		pr.p.Add(int64(n))
		pr.handlers.run(AfterProgress, pr.e)
	}
	return n, err
}

func perform(e *request.Execution) {
	var a request.Action
	if e.Succeeded() {
		a = e.Descriptor.SuccessAction()
	} else {
		a = e.Descriptor.FailureAction()
	}
	if a != nil {
		a.Perform(e)
	}
}

func addDefaultHeaders(h http.Header, defaults []request.Header) {
	if len(defaults) == 0 {
		return
	}
	set := make(map[string]bool, len(h))
	for name := range h {
		set[name] = true
	}
	for _, dh := range defaults {
		if !set[http.CanonicalHeaderKey(dh.Name)] {
			h.Add(dh.Name, dh.Value)
		}
	}
}

// Get issues a GET to the specified URL, using the same policies
// followed by Do.
//
// To set headers, actions, or a progress tracker, pass request options.
func (c *Dispatcher) Get(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Get(ctx, c, url, opts...)
}

// Head issues a HEAD to the specified URL, using the same policies
// followed by Do.
func (c *Dispatcher) Head(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Head(ctx, c, url, opts...)
}

// Delete issues a DELETE to the specified URL, using the same policies
// followed by Do.
func (c *Dispatcher) Delete(ctx context.Context, url string, opts ...request.Option) (*request.Execution, error) {
	return Delete(ctx, c, url, opts...)
}

// Cancel aborts every in-flight dispatch of a descriptor Equal to d and
// returns the number of dispatches aborted. Aborted dispatches end with
// a context.Canceled error and perform their failure action.
//
// Because descriptor equality is weak, Cancel aborts dispatches of any
// descriptor with the same URL and method, and the same presence of
// progress tracker and actions, as d.
func (c *Dispatcher) Cancel(d *request.Descriptor) int {
	var fs []*inFlight
	c.inFlight.Update(d, func(cur []*inFlight, ok bool) ([]*inFlight, bool) {
		fs = append(fs, cur...)
		return cur, ok
	})
	for _, f := range fs {
		f.cancel()
	}
	return len(fs)
}

// InFlight returns the number of dispatches currently in flight. A
// dispatch is in flight from just after its BeforeExecutionStart event
// until just before its AfterExecutionEnd event.
func (c *Dispatcher) InFlight() int {
	n := 0
	c.inFlight.Range(func(_ *request.Descriptor, fs []*inFlight) bool {
		n += len(fs)
		return true
	})
	return n
}

// CloseIdleConnections invokes the same method on the dispatcher's
// underlying HTTPDoer.
//
// If the HTTPDoer has no CloseIdleConnections method, this method does
// nothing.
func (c *Dispatcher) CloseIdleConnections() {
	doer := c.doer()
	if ic, ok := doer.(IdleCloser); ok {
		ic.CloseIdleConnections()
	}
}

func (c *Dispatcher) doer() HTTPDoer {
	if c.HTTPDoer == nil {
		return http.DefaultClient
	}

	return c.HTTPDoer
}

func (c *Dispatcher) track(d *request.Descriptor, f *inFlight) {
	c.inFlight.Update(d, func(cur []*inFlight, _ bool) ([]*inFlight, bool) {
		next := make([]*inFlight, len(cur), len(cur)+1)
		copy(next, cur)
		return append(next, f), true
	})
}

// untrack is idempotent.
func (c *Dispatcher) untrack(d *request.Descriptor, f *inFlight) {
	c.inFlight.Update(d, func(cur []*inFlight, _ bool) ([]*inFlight, bool) {
		next := make([]*inFlight, 0, len(cur))
		for _, g := range cur {
			if g != f {
				next = append(next, g)
			}
		}
		return next, len(next) > 0
	})
}

func urlErrorWrap(d *request.Descriptor, err error) error {
	if _, ok := err.(*url.Error); ok {
		return err
	}

	return &url.Error{
		Op:  urlErrorOp(d.Method().String()),
		URL: d.URL().String(),
		Err: err,
	}
}

// urlErrorOp is lifted verbatim from net/http/client.go
func urlErrorOp(method string) string {
	if method == "" {
		return "Get"
	}
	return method[:1] + strings.ToLower(method[1:])
}
