// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package timeout

import (
	"time"

	"github.com/gogama/httpreq/request"
)

// A Policy defines a timeout policy which may be plugged into the
// dispatcher (httpreq.Dispatcher) to direct how long a dispatch of a
// given request descriptor may take, from sending the request to
// reading the last byte of the response body.
//
// Implementations of Policy must be safe for concurrent use by multiple
// goroutines.
type Policy interface {
	// Timeout returns the timeout to set on the dispatch of d.
	Timeout(d *request.Descriptor) time.Duration
}

// DefaultPolicy is the default timeout policy. It sets a fixed timeout
// of 30 seconds on each dispatch.
var DefaultPolicy Policy = Fixed(30 * time.Second)

// Infinite is a built-in timeout policy which never times out.
var Infinite Policy = Fixed(1<<63 - 1)

// Fixed constructs a timeout policy that uses the same value for every
// dispatch. The return value is a timeout policy that always returns
// the value d.
func Fixed(d time.Duration) Policy {
	return fixed(d)
}

type fixed time.Duration

func (p fixed) Timeout(_ *request.Descriptor) time.Duration {
	return time.Duration(p)
}

// PerMethod constructs a timeout policy that looks up the timeout for
// a dispatch by the descriptor's method, falling back to usual for
// methods that are not in byMethod.
//
// Use PerMethod when some methods are expected to be much slower than
// others, for example to give uploads (PUT, POST) more time than
// lookups:
//
//	p := timeout.PerMethod(2*time.Second, map[request.Method]time.Duration{
//		request.PUT:  time.Minute,
//		request.POST: time.Minute,
//	})
//
// The map is copied, so later changes to byMethod do not affect the
// policy.
func PerMethod(usual time.Duration, byMethod map[request.Method]time.Duration) Policy {
	m := make(map[request.Method]time.Duration, len(byMethod))
	for k, v := range byMethod {
		m[k] = v
	}
	return perMethod{usual: usual, byMethod: m}
}

type perMethod struct {
	usual    time.Duration
	byMethod map[request.Method]time.Duration
}

func (p perMethod) Timeout(d *request.Descriptor) time.Duration {
	if t, ok := p.byMethod[d.Method()]; ok {
		return t
	}
	return p.usual
}
