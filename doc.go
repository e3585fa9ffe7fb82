// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package httpreq dispatches immutable HTTP request descriptors, reports
their progress, and performs the success or failure action each
descriptor carries, within a simple and familiar interface.

Describe a request with package request, then hand it to a Dispatcher.

	d, err := request.Parse("GET", "https://www.example.com/items",
		request.WithHeaders(request.Header{Name: "Accept", Value: "application/json"}),
		request.OnSuccess(request.ActionFunc(func(e *request.Execution) {
			...
		})),
		request.OnFailure(request.ActionFunc(func(e *request.Execution) {
			...
		})),
		request.WithProgress())
	...
	dispatcher := &httpreq.Dispatcher{}
	ex, err := dispatcher.Do(ctx, d)

For the common methods, a descriptor can be built and dispatched in one
step:

	ex, err := dispatcher.Get(ctx, "https://www.example.com")
	...
	ex, err := dispatcher.Delete(ctx, "https://www.example.com/items/1")

For control over how the dispatcher sends HTTP requests and receives
HTTP responses, use a custom HTTPDoer. For example, use a GoLang
standard HTTP client:

	doer := &http.Client{
		..., // See package "net/http" for detailed documentation
	}
	dispatcher := &httpreq.Dispatcher{
		HTTPDoer: doer,
	}

For control over the dispatcher's timeouts, set a custom timeout policy
using package timeout:

	dispatcher := &httpreq.Dispatcher{
		TimeoutPolicy: timeout.Fixed(10*time.Second)
	}

To abort a dispatch, cancel its context, cancel its descriptor's
progress tracker, or call Cancel with an equal descriptor:

	d.Progress().Cancel()
	...
	n := dispatcher.Cancel(d)

To hook into the fine-grained details of the dispatch logic, install a
handler into the appropriate handler chain:

	handlers := &httpreq.HandlerGroup{}
	handlers.PushBack(httpreq.AfterProgress, httpreq.HandlerFunc(
		func(_ httpreq.Event, e *request.Execution) {
			fmt.Printf("%.0f%%\n", 100*e.Descriptor.Progress().Fraction())
		})
	)
	dispatcher := &httpreq.Dispatcher{
		HTTPDoer: doer,
		Handlers: handlers,
	}

Packages logging and telemetry install ready-made handler chains for
structured logging and OpenTelemetry tracing and metrics. Package config
builds a Dispatcher from a configuration file and the environment.

Package httpreq provides basic interfaces for each method of the
dispatcher (Doer, Getter, Header, Deleter, and IdleCloser); a combined
interface that composes all the basic methods (Executor); and utility
functions for working with a Doer (Inflate, Get, Head, and Delete).
*/
package httpreq
