// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package config loads dispatcher configuration from defaults, a
configuration file, a .env file, the environment and command line
flags, in increasing order of precedence, and builds a Dispatcher from
it.

Environment variables are named after the configuration keys, upper
cased, with dots replaced by underscores and the prefix HTTPREQ_, for
example HTTPREQ_TIMEOUT or HTTPREQ_LOGGING_LEVEL.

An example YAML configuration file:

	timeout: 10s
	method_timeouts:
	  DELETE: 1m
	headers:
	  - "User-Agent: httpreq"
	logging:
	  level: debug
	  format: json
	telemetry:
	  enabled: true
	  propagate: true
	  redacted_headers: ["X-Api-Key"]
*/
package config
