// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Command httpreq dispatches a single HTTP request and writes the
// response body to standard output.
//
// Usage:
//
//	httpreq [flags] URL
//
// Flags not given on the command line fall back to the config file, to
// HTTPREQ_* environment variables, and finally to built-in defaults.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/gogama/httpreq"
	"github.com/gogama/httpreq/config"
	"github.com/gogama/httpreq/request"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("httpreq", pflag.ContinueOnError)
	method := fs.StringP("method", "X", "GET", "HTTP method")
	headers := fs.StringArrayP("header", "H", nil, `request header "Name: value" (repeatable)`)
	progress := fs.Bool("progress", false, "report download progress on stderr")
	configFile := fs.String("config", "", "config file path")
	envFile := fs.String("env-file", ".env", ".env file path")
	fs.Duration("timeout", 0, "dispatch timeout")
	fs.String("log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	fs.String("log-format", "", "log format (json, console)")
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: httpreq [flags] URL")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	// Headers given with -H belong to this request, not to the
	// dispatcher's defaults.
	descHeaders := make([]request.Header, 0, len(*headers))
	for _, s := range *headers {
		h, err := request.ParseHeader(s)
		if err != nil {
			fmt.Fprintln(stderr, "httpreq:", err)
			return 2
		}
		descHeaders = append(descHeaders, h)
	}
	flagSet := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name != "header" {
			flagSet.AddFlag(f)
		}
	})

	opts := []config.LoaderOption{config.WithEnvFile(*envFile), config.WithFlags(flagSet)}
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	dp, logger, err := cfg.NewDispatcher(nil)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	descOpts := []request.Option{request.WithHeaders(descHeaders...)}
	if *progress {
		descOpts = append(descOpts, request.WithProgress())
		dp.Handlers.PushBack(httpreq.AfterProgress, progressReporter(stderr))
	}
	d, err := request.Parse(*method, fs.Arg(0), descOpts...)
	if err != nil {
		fmt.Fprintln(stderr, "httpreq:", err)
		return 2
	}

	e, err := dp.Do(ctx, d)
	if *progress {
		fmt.Fprintln(stderr)
	}
	if err != nil {
		logger.Debug().Err(err).Msg("dispatch failed")
		fmt.Fprintln(stderr, "httpreq:", err)
		return 1
	}
	if _, err = stdout.Write(e.Body); err != nil {
		fmt.Fprintln(stderr, "httpreq:", err)
		return 1
	}
	if e.StatusCode() >= 400 {
		return 1
	}
	return 0
}

func progressReporter(w io.Writer) httpreq.HandlerFunc {
	return func(_ httpreq.Event, e *request.Execution) {
		p := e.Descriptor.Progress()
		if p.Indeterminate() {
			fmt.Fprintf(w, "\r%d bytes", p.Completed())
		} else {
			fmt.Fprintf(w, "\r%d/%d bytes (%.0f%%)", p.Completed(), p.Total(), 100*p.Fraction())
		}
	}
}
