// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"strings"
)

// A Method is an HTTP request method. The set of methods is closed:
// only the constants declared below are valid.
type Method int

const (
	GET Method = iota
	HEAD
	POST
	PUT
	PATCH
	DELETE
	OPTIONS
	TRACE
	CONNECT
	// methodSentinel provides the total number of methods.
	methodSentinel
)

var methodNames = []string{
	"GET",
	"HEAD",
	"POST",
	"PUT",
	"PATCH",
	"DELETE",
	"OPTIONS",
	"TRACE",
	"CONNECT",
}

// Methods returns every valid Method, in declaration order.
func Methods() []Method {
	ms := make([]Method, methodSentinel)
	for i := range ms {
		ms[i] = Method(i)
	}
	return ms
}

// ParseMethod returns the Method whose canonical name matches s,
// ignoring case.
func ParseMethod(s string) (Method, error) {
	u := strings.ToUpper(s)
	for i, name := range methodNames {
		if name == u {
			return Method(i), nil
		}
	}
	return 0, fmt.Errorf("httpreq/request: invalid method %q", s)
}

// Valid indicates whether m is one of the declared methods.
func (m Method) Valid() bool {
	return m >= 0 && m < methodSentinel
}

// String returns the canonical, upper-case name of the method as it
// appears on the wire.
func (m Method) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodNames[m]
}
