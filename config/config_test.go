// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogama/httpreq/logging"
	"github.com/gogama/httpreq/request"
)

func validConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Logging: logging.Config{Level: "info", Format: "json", Output: "stderr"},
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		c := validConfig()
		c.MethodTimeouts = map[string]time.Duration{"delete": time.Minute}
		c.Headers = []string{"User-Agent: httpreq"}
		assert.NoError(t, c.Validate())
	})
	t.Run("all problems reported", func(t *testing.T) {
		c := validConfig()
		c.Timeout = 0
		c.MethodTimeouts = map[string]time.Duration{"fetch": time.Second}
		c.Headers = []string{"no colon here"}
		c.Logging.Level = "loud"

		err := c.Validate()

		require.Error(t, err)
		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 4)
		assert.Contains(t, err.Error(), "timeout must be positive (got: 0s)")
		assert.Contains(t, err.Error(), `method_timeouts: httpreq/request: invalid method "fetch"`)
		assert.Contains(t, err.Error(), `headers: httpreq/request: header "no colon here" missing colon`)
		assert.Contains(t, err.Error(), "logging.level must be one of")
	})
	t.Run("non-positive method timeout", func(t *testing.T) {
		c := validConfig()
		c.MethodTimeouts = map[string]time.Duration{"GET": -time.Second}
		assert.EqualError(t, c.Validate(), "1 error occurred:\n\t* method_timeouts.GET must be positive (got: -1s)\n\n")
	})
}

func TestConfig_DefaultHeaders(t *testing.T) {
	c := validConfig()
	headers, err := c.DefaultHeaders()
	assert.NoError(t, err)
	assert.Nil(t, headers)

	c.Headers = []string{"Accept: application/json", "X-Tag:  a  "}
	headers, err = c.DefaultHeaders()
	assert.NoError(t, err)
	assert.Equal(t, []request.Header{
		{Name: "Accept", Value: "application/json"},
		{Name: "X-Tag", Value: "a"},
	}, headers)

	c.Headers = []string{"Bad Name: x"}
	_, err = c.DefaultHeaders()
	assert.EqualError(t, err, `httpreq/request: invalid header "Bad Name: x"`)
}

func TestConfig_TimeoutPolicy(t *testing.T) {
	get, err := request.Parse("GET", "https://example.com/")
	require.NoError(t, err)
	del, err := request.Parse("DELETE", "https://example.com/")
	require.NoError(t, err)

	c := validConfig()
	c.Timeout = 5 * time.Second
	p := c.TimeoutPolicy()
	assert.Equal(t, 5*time.Second, p.Timeout(get))
	assert.Equal(t, 5*time.Second, p.Timeout(del))

	c.MethodTimeouts = map[string]time.Duration{"delete": time.Minute, "bogus": time.Hour}
	p = c.TimeoutPolicy()
	assert.Equal(t, 5*time.Second, p.Timeout(get))
	assert.Equal(t, time.Minute, p.Timeout(del))
}
