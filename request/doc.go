// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package request contains the core type Descriptor, an immutable
description of an HTTP request, together with the types a Descriptor is
built from (Method, Header, Action, Progress) and the type describing a
dispatch of a Descriptor (Execution).

Create a descriptor for a GET request with an Accept header whose
progress can be followed:

	u, _ := url.Parse("https://api.example.com/items")
	d := request.New(u, request.GET,
		request.WithHeaders(request.Header{Name: "Accept", Value: "application/json"}),
		request.OnSuccess(request.ActionFunc(func(e *request.Execution) {
			...
		})),
		request.WithProgress())

Or parse the method and URL from strings:

	d, err := request.Parse("GET", "https://api.example.com/items")

A Descriptor does no I/O. To get something the Go standard HTTP library
can send, use ToRequest, which returns a fresh http.Request on every
call:

	r := d.ToRequest(ctx)
	resp, err := http.DefaultClient.Do(r)

Usually, however, a Descriptor is handed to httpreq.Dispatcher, which
sends the request, updates the Progress as the response body arrives,
and performs exactly one of the success and failure actions.

Descriptor equality is deliberately weak. Two descriptors are Equal if
they share URL and method and agree on whether each of the progress
tracker, success action and failure action is present. Hash covers URL
and method only. Registry is an associative container that follows
these rules.
*/
package request
