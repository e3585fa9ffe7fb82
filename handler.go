// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpreq

import (
	"sync"

	"github.com/gogama/httpreq/request"
)

// A HandlerGroup is a group of event handler chains which can be
// installed in a Dispatcher.
//
// A HandlerGroup may be shared by dispatches running concurrently on
// several goroutines. Handlers may be added while dispatches are
// running; a chain already being run is not affected.
type HandlerGroup struct {
	lock     sync.RWMutex
	handlers [][]Handler
}

// PushBack adds an event handler to the back of the event handler chain
// for a specific event type.
func (g *HandlerGroup) PushBack(evt Event, h Handler) {
	if h == nil {
		panic("httpreq: nil handler")
	}

	g.lock.Lock()
	defer g.lock.Unlock()

	if g.handlers == nil {
		g.handlers = make([][]Handler, numEvents)
	}

	chain := g.handlers[evt]
	g.handlers[evt] = append(chain[:len(chain):len(chain)], h)
}

func (g *HandlerGroup) run(evt Event, e *request.Execution) {
	i := int(evt)
	g.lock.RLock()
	var chain []Handler
	if i < len(g.handlers) {
		chain = g.handlers[i]
	}
	g.lock.RUnlock()
	run(chain, evt, e)
}

func run(chain []Handler, evt Event, e *request.Execution) {
	for _, h := range chain {
		h.Handle(evt, e)
	}
}

// A Handler handles the occurrence of an event during a dispatch.
type Handler interface {
	Handle(Event, *request.Execution)
}

// The HandlerFunc type is an adapter to allow the use of ordinary
// functions as event handlers. If f is a function with appropriate
// signature, then HandlerFunc(f) is a Handler that calls f.
type HandlerFunc func(Event, *request.Execution)

// Handle calls f(evt, e).
func (f HandlerFunc) Handle(evt Event, e *request.Execution) {
	f(evt, e)
}
