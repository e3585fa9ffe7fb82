// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecution(t *testing.T, method, rawURL string, opts ...Option) *Execution {
	t.Helper()
	d, err := Parse(method, rawURL, opts...)
	require.NoError(t, err)
	return &Execution{Descriptor: d}
}

// dispatchErr mimics the *url.Error wrapping applied to every
// dispatch error.
func dispatchErr(e *Execution, cause error) error {
	op := e.Descriptor.Method().String()
	return &url.Error{Op: op[:1] + strings.ToLower(op[1:]), URL: e.Descriptor.URL().String(), Err: cause}
}

func TestExecution_Response(t *testing.T) {
	e := newTestExecution(t, "GET", "https://api.example.com/items")

	t.Run("before response", func(t *testing.T) {
		assert.Equal(t, 0, e.StatusCode())
		assert.Nil(t, e.Header())
		assert.Empty(t, e.Header().Get("Content-Type"))
	})
	t.Run("after response", func(t *testing.T) {
		h := http.Header{}
		h.Set("Content-Type", "application/json")
		h.Add("Vary", "Accept")
		h.Add("Vary", "Accept-Encoding")
		e.Request = e.Descriptor.ToRequest(context.Background())
		e.Response = &http.Response{StatusCode: http.StatusCreated, Header: h, Request: e.Request}

		assert.Equal(t, http.StatusCreated, e.StatusCode())
		assert.Equal(t, "application/json", e.Header().Get("Content-Type"))
		assert.Equal(t, []string{"Accept", "Accept-Encoding"}, e.Header().Values("Vary"))
		e.Header().Set("X-Seen", "1")
		assert.Equal(t, "1", e.Response.Header.Get("X-Seen"), "Header returns the response's own map")
	})
}

func TestExecution_Lifecycle(t *testing.T) {
	e := newTestExecution(t, "DELETE", "https://api.example.com/items/7")
	assert.False(t, e.Started())
	assert.False(t, e.Ended())
	assert.Zero(t, e.Duration())

	e.Start = time.Now().Add(-50 * time.Millisecond)
	assert.True(t, e.Started())
	assert.False(t, e.Ended())
	running := e.Duration()
	assert.GreaterOrEqual(t, running, 50*time.Millisecond)
	assert.Greater(t, e.Duration(), running-time.Nanosecond)

	e.End = e.Start.Add(75 * time.Millisecond)
	assert.True(t, e.Ended())
	assert.Equal(t, 75*time.Millisecond, e.Duration())
	time.Sleep(time.Millisecond)
	assert.Equal(t, 75*time.Millisecond, e.Duration(), "duration is frozen once ended")
}

func TestExecution_Outcome(t *testing.T) {
	testCases := []struct {
		name      string
		response  *http.Response
		cause     error
		succeeded bool
		timeout   bool
		cancelled bool
	}{
		{name: "response read in full", response: &http.Response{StatusCode: 200}, succeeded: true},
		{name: "server error status", response: &http.Response{StatusCode: 503}, succeeded: true},
		{name: "connection refused", cause: syscall.ECONNREFUSED},
		{name: "deadline before response", cause: context.DeadlineExceeded, timeout: true},
		{name: "deadline while reading body", response: &http.Response{StatusCode: 200}, cause: context.DeadlineExceeded, timeout: true},
		{name: "progress cancelled", cause: context.Canceled, cancelled: true},
		{name: "cancelled while reading body", response: &http.Response{StatusCode: 200}, cause: context.Canceled, cancelled: true},
		{name: "body cut short", response: &http.Response{StatusCode: 200}, cause: errors.New("unexpected EOF")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			e := newTestExecution(t, "GET", "https://api.example.com/items", WithProgress())
			e.Response = testCase.response
			if testCase.cause != nil {
				e.Err = dispatchErr(e, testCase.cause)
			}

			assert.Equal(t, testCase.succeeded, e.Succeeded())
			assert.Equal(t, testCase.timeout, e.Timeout())
			assert.Equal(t, testCase.cancelled, e.Cancelled())
		})
	}
}

type spanKey struct{}

type attemptKey struct{}

func TestExecution_Value(t *testing.T) {
	t.Run("handlers share an execution", func(t *testing.T) {
		e := newTestExecution(t, "GET", "https://api.example.com/items")
		assert.Nil(t, e.Value(spanKey{}))

		// One handler stores state at BeforeSend, another reads it at
		// AfterExecutionEnd.
		started := e.Descriptor.String()
		e.SetValue(spanKey{}, &started)
		e.SetValue(attemptKey{}, 1)

		got, ok := e.Value(spanKey{}).(*string)
		require.True(t, ok)
		assert.Same(t, &started, got)
		assert.Equal(t, "GET https://api.example.com/items", *got)
		assert.Equal(t, 1, e.Value(attemptKey{}))
		assert.Nil(t, e.Value(struct{}{}))
	})
	t.Run("overwrite", func(t *testing.T) {
		e := newTestExecution(t, "HEAD", "https://api.example.com/items")
		e.SetValue(attemptKey{}, 1)
		e.SetValue(spanKey{}, "span")
		e.SetValue(attemptKey{}, 2)

		assert.Equal(t, 2, e.Value(attemptKey{}))
		assert.Equal(t, "span", e.Value(spanKey{}))
	})
	t.Run("separate executions of one descriptor", func(t *testing.T) {
		first := newTestExecution(t, "GET", "https://api.example.com/items")
		second := &Execution{Descriptor: first.Descriptor}
		first.SetValue(spanKey{}, "first")

		assert.Equal(t, "first", first.Value(spanKey{}))
		assert.Nil(t, second.Value(spanKey{}))
	})
}
