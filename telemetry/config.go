// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package telemetry

import (
	"strings"

	"go.opentelemetry.io/otel/propagation"
)

type config struct {
	propagators     propagation.TextMapPropagator
	redactedHeaders map[string]struct{}
}

// An Option configures the telemetry Handler.
type Option func(*config)

// WithPropagators sets the propagators used to inject the trace context
// into each outgoing request's headers. Without this option no headers
// are injected.
func WithPropagators(v propagation.TextMapPropagator) Option {
	return func(c *config) {
		c.propagators = v
	}
}

// WithRedactedHeaders masks the values of the named descriptor headers
// in span attributes. Header names are case-insensitive.
func WithRedactedHeaders(headers ...string) Option {
	return func(c *config) {
		for _, h := range headers {
			c.redactedHeaders[strings.ToLower(h)] = struct{}{}
		}
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		redactedHeaders: map[string]struct{}{
			"authorization":       {},
			"proxy-authorization": {},
			"cookie":              {},
		},
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}
