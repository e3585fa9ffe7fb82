// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package logging builds zerolog loggers and installs them as event
handlers on a dispatcher, so that every dispatch is logged as structured
events.

	logger := logging.New(logging.Config{Level: "debug", Format: "json"})
	handlers := &httpreq.HandlerGroup{}
	logging.Install(handlers, logger)
	dispatcher := &httpreq.Dispatcher{Handlers: handlers}

The dispatcher itself never logs.
*/
package logging
