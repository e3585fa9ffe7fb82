// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"fmt"
	"net/http"
	urlpkg "net/url"
	"reflect"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var (
	template, _ = http.NewRequest("GET", "", nil)
)

const (
	nilCtxMsg = "httpreq/request: nil context"
	nilURLMsg = "httpreq/request: nil URL"
)

// A Descriptor is an immutable description of an HTTP request: its
// URL, method and headers, the actions to perform when the request
// concludes, and an optional tracker of its progress.
//
// Create a Descriptor with New or Parse. Once constructed, none of its
// fields can change. The only mutable state reachable from a Descriptor
// is its Progress, which is written by whoever dispatches the request.
//
// A Descriptor never performs I/O and never invokes its own actions.
// Convert it into an http.Request with ToRequest, or hand it to a
// dispatcher such as httpreq.Dispatcher.
//
// Descriptors have deliberately weak equality, see Equal and Hash.
type Descriptor struct {
	url       *urlpkg.URL
	method    Method
	headers   []Header
	onSuccess Action
	onFailure Action
	progress  *Progress
}

// An Option configures an optional part of a Descriptor under
// construction.
type Option func(*Descriptor)

// WithHeaders sets the header fields of the Descriptor. The headers are
// copied and kept in the given order; duplicates are kept. Calling
// WithHeaders with no arguments produces an empty, but present, header
// list, which is distinct from the absent list of a Descriptor built
// without WithHeaders.
func WithHeaders(headers ...Header) Option {
	h := make([]Header, len(headers))
	copy(h, headers)
	return func(d *Descriptor) {
		d.headers = h
	}
}

// OnSuccess sets the action to perform when a response is received.
func OnSuccess(a Action) Option {
	return func(d *Descriptor) {
		d.onSuccess = a
	}
}

// OnFailure sets the action to perform when the request fails.
func OnFailure(a Action) Option {
	return func(d *Descriptor) {
		d.onFailure = a
	}
}

// WithProgress requests a Progress tracker for the Descriptor. The
// tracker starts with an Indeterminate total.
func WithProgress() Option {
	return func(d *Descriptor) {
		d.progress = NewProgress(Indeterminate)
	}
}

// New returns a new Descriptor for the given absolute URL and method.
//
// By default the Descriptor has no headers, no actions and no progress
// tracker; use the Option functions to add them. New does not validate
// u beyond requiring it to be non-nil, and panics if it is nil.
func New(u *urlpkg.URL, m Method, opts ...Option) *Descriptor {
	if u == nil {
		panic(nilURLMsg)
	}
	d := &Descriptor{
		url:    cloneURL(u),
		method: m,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Parse parses method and rawURL and returns a new Descriptor for them.
// It returns an error if the method is not recognized, or if rawURL
// cannot be parsed or is not absolute.
func Parse(method, rawURL string, opts ...Option) (*Descriptor, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}
	u, err := urlpkg.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		return nil, fmt.Errorf("httpreq/request: URL %q is not absolute", rawURL)
	}
	u.Host = removeEmptyPort(u.Host)
	return New(u, m, opts...), nil
}

// URL returns a copy of the Descriptor's URL.
func (d *Descriptor) URL() *urlpkg.URL {
	return cloneURL(d.url)
}

// Method returns the Descriptor's HTTP method.
func (d *Descriptor) Method() Method {
	return d.method
}

// HeaderFields returns a copy of the Descriptor's header fields in
// their original order. The return value is nil if the Descriptor was
// built without headers.
func (d *Descriptor) HeaderFields() []Header {
	if d.headers == nil {
		return nil
	}
	h := make([]Header, len(d.headers))
	copy(h, d.headers)
	return h
}

// SuccessAction returns the action to perform when a response is
// received, or nil.
func (d *Descriptor) SuccessAction() Action {
	return d.onSuccess
}

// FailureAction returns the action to perform when the request fails,
// or nil.
func (d *Descriptor) FailureAction() Action {
	return d.onFailure
}

// Progress returns the Descriptor's progress tracker, or nil if the
// Descriptor was built without WithProgress.
func (d *Descriptor) Progress() *Progress {
	return d.progress
}

// Descriptor returns d. It lets types which embed *Descriptor satisfy
// Identifier.
func (d *Descriptor) Descriptor() *Descriptor {
	return d
}

// ToRequest creates an HTTP request corresponding to the Descriptor.
// The context of the new request is set to ctx, which may not be nil.
//
// Each call returns a new request with its own URL and Header, so the
// caller may modify the result freely. Headers are added in order using
// http.Header.Add, so repeated names accumulate values rather than
// replacing them.
func (d *Descriptor) ToRequest(ctx context.Context) *http.Request {
	if ctx == nil {
		panic(nilCtxMsg)
	}
	r := template.WithContext(ctx)
	r.Method = d.method.String()
	r.URL = cloneURL(d.url)
	r.Host = d.url.Host
	r.Header = make(http.Header, len(d.headers))
	for _, h := range d.headers {
		r.Header.Add(h.Name, h.Value)
	}
	return r
}

// Equal reports whether d and other describe the same request.
//
// Two descriptors are equal if they have equal URLs (compared in string
// form), the same method, and agree on the presence or absence of a
// progress tracker, a success action and a failure action. The content
// of the actions and of the progress tracker is never compared, nor are
// the headers.
//
// Note that Hash ignores the presence checks, so descriptors which
// differ only in whether they carry actions or progress hash the same
// but are not equal. This is legal for a hash, but means such
// descriptors always collide.
func (d *Descriptor) Equal(other *Descriptor) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.url.String() == other.url.String() &&
		d.method == other.method &&
		(d.progress == nil) == (other.progress == nil) &&
		(d.onSuccess == nil) == (other.onSuccess == nil) &&
		(d.onFailure == nil) == (other.onFailure == nil)
}

// Hash returns a hash of the Descriptor's URL and method. It is
// consistent with Equal: equal descriptors always have equal hashes.
func (d *Descriptor) Hash() uint64 {
	var h xxhash.Digest
	h.Reset()
	_, _ = h.WriteString(d.url.String())
	_, _ = h.WriteString(",")
	_, _ = h.WriteString(d.method.String())
	return h.Sum64()
}

// String returns the method and URL, for example "GET https://x.io/".
func (d *Descriptor) String() string {
	return d.method.String() + " " + d.url.String()
}

// An Identifier is any value which is identified by a Descriptor. Every
// *Descriptor is an Identifier, as is any struct type embedding one.
type Identifier interface {
	Descriptor() *Descriptor
}

// Equal reports whether a and b are of the identical concrete type and
// their descriptors are Equal. Use it to compare values of types which
// embed *Descriptor, so that a plain descriptor never equals a
// specialized one with the same URL and method.
func Equal(a, b Identifier) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return a.Descriptor().Equal(b.Descriptor())
}

func cloneURL(u *urlpkg.URL) *urlpkg.URL {
	u2 := *u
	if u.User != nil {
		u2.User = new(urlpkg.Userinfo)
		*u2.User = *u.User
	}
	return &u2
}

// hasPort is lifted verbatim from net/http/http.go
//
// Given a string of the form "host", "host:port", or "[ipv6::address]:port",
// return true if the string includes a port.
func hasPort(s string) bool { return strings.LastIndex(s, ":") > strings.LastIndex(s, "]") }

// removeEmptyPort is lifted verbatim from net/http/http.go
//
// removeEmptyPort strips the empty port in ":port" to ""
// as mandated by RFC 3986 Section 6.2.3.
func removeEmptyPort(host string) string {
	if hasPort(host) {
		return strings.TrimSuffix(host, ":")
	}
	return host
}
