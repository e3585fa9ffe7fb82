// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()
	assert.Equal(t, Config{Level: "info", Format: "console", Output: "stderr"}, c)

	c = Config{Level: "debug", Format: "json", Output: "stdout", Timestamp: true}
	c.ApplyDefaults()
	assert.Equal(t, Config{Level: "debug", Format: "json", Output: "stdout", Timestamp: true}, c)
}

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		config Config
		err    string
	}{
		{
			name:   "valid",
			config: Config{Level: "warn", Format: "json", Output: "stdout"},
		},
		{
			name:   "bad level",
			config: Config{Level: "loud", Format: "json", Output: "stdout"},
			err:    "logging.level must be one of [trace debug info warn error disabled] (got: loud)",
		},
		{
			name:   "bad format",
			config: Config{Level: "info", Format: "xml", Output: "stdout"},
			err:    "logging.format must be one of [json console] (got: xml)",
		},
		{
			name:   "bad output",
			config: Config{Level: "info", Format: "json", Output: "file"},
			err:    "logging.output must be one of [stdout stderr] (got: file)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.config.Validate()
			if testCase.err == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, testCase.err)
			}
		})
	}
}
