// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/gogama/httpreq"
	"github.com/gogama/httpreq/logging"
	"github.com/gogama/httpreq/telemetry"
)

// NewDispatcher builds a Dispatcher which sends requests with doer and
// follows the configured timeouts and default headers. Dispatches are
// logged to the logger described by the logging configuration, which is
// also returned. If telemetry is enabled, dispatches are traced and
// measured using the global OpenTelemetry providers.
//
// A nil doer means http.DefaultClient.
func (c *Config) NewDispatcher(doer httpreq.HTTPDoer) (*httpreq.Dispatcher, zerolog.Logger, error) {
	headers, err := c.DefaultHeaders()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := logging.New(c.Logging)
	handlers := &httpreq.HandlerGroup{}
	logging.Install(handlers, logger)

	if c.Telemetry.Enabled {
		opts := []telemetry.Option{telemetry.WithRedactedHeaders(c.Telemetry.RedactedHeaders...)}
		if c.Telemetry.Propagate {
			opts = append(opts, telemetry.WithPropagators(propagation.TraceContext{}))
		}
		telemetry.Install(handlers, otel.GetTracerProvider(), otel.GetMeterProvider(), opts...)
	}

	return &httpreq.Dispatcher{
		HTTPDoer:       doer,
		TimeoutPolicy:  c.TimeoutPolicy(),
		Handlers:       handlers,
		DefaultHeaders: headers,
	}, logger, nil
}
