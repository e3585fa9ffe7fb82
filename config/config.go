// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/gogama/httpreq/logging"
	"github.com/gogama/httpreq/request"
	"github.com/gogama/httpreq/timeout"
)

// Config is the complete dispatcher configuration.
type Config struct {
	// Timeout is the timeout of every dispatch whose method has no entry
	// in MethodTimeouts.
	Timeout time.Duration `mapstructure:"timeout"`
	// MethodTimeouts maps method names to their dispatch timeout.
	MethodTimeouts map[string]time.Duration `mapstructure:"method_timeouts"`
	// Headers are the dispatcher's default headers, each in the form
	// "Name: value".
	Headers   []string        `mapstructure:"headers"`
	Logging   logging.Config  `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// TelemetryConfig contains OpenTelemetry configuration.
type TelemetryConfig struct {
	Enabled         bool     `mapstructure:"enabled"`
	Propagate       bool     `mapstructure:"propagate"`
	RedactedHeaders []string `mapstructure:"redacted_headers"`
}

// Validate checks the whole configuration and reports every problem
// found, not just the first.
func (c *Config) Validate() error {
	var err error
	if c.Timeout <= 0 {
		err = multierror.Append(err, fmt.Errorf("timeout must be positive (got: %s)", c.Timeout))
	}
	for name, d := range c.MethodTimeouts {
		if _, e := request.ParseMethod(name); e != nil {
			err = multierror.Append(err, fmt.Errorf("method_timeouts: %w", e))
		}
		if d <= 0 {
			err = multierror.Append(err, fmt.Errorf("method_timeouts.%s must be positive (got: %s)", name, d))
		}
	}
	for _, s := range c.Headers {
		if _, e := request.ParseHeader(s); e != nil {
			err = multierror.Append(err, fmt.Errorf("headers: %w", e))
		}
	}
	if e := c.Logging.Validate(); e != nil {
		err = multierror.Append(err, e)
	}
	return err
}

// DefaultHeaders parses Headers.
func (c *Config) DefaultHeaders() ([]request.Header, error) {
	if len(c.Headers) == 0 {
		return nil, nil
	}
	headers := make([]request.Header, 0, len(c.Headers))
	for _, s := range c.Headers {
		h, err := request.ParseHeader(s)
		if err != nil {
			return nil, err
		}
		headers = append(headers, h)
	}
	return headers, nil
}

// TimeoutPolicy returns the timeout policy described by Timeout and
// MethodTimeouts. Entries of MethodTimeouts which do not name a method
// are ignored.
func (c *Config) TimeoutPolicy() timeout.Policy {
	if len(c.MethodTimeouts) == 0 {
		return timeout.Fixed(c.Timeout)
	}
	byMethod := make(map[request.Method]time.Duration, len(c.MethodTimeouts))
	for name, d := range c.MethodTimeouts {
		if m, err := request.ParseMethod(name); err == nil {
			byMethod[m] = d
		}
	}
	return timeout.PerMethod(c.Timeout, byMethod)
}
