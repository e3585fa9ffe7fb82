// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package logging

import (
	"github.com/rs/zerolog"

	"github.com/gogama/httpreq"
	"github.com/gogama/httpreq/request"
	"github.com/gogama/httpreq/transient"
)

// Standard field keys used in dispatch log events.
const (
	FieldExecutionID = "execution_id"
	FieldMethod      = "method"
	FieldURL         = "url"
	FieldStatus      = "status"
	FieldDuration    = "duration_ms"
	FieldBytes       = "bytes"
	FieldCompleted   = "completed"
	FieldTotal       = "total"
	FieldCategory    = "error_category"
	FieldTransient   = "transient"
)

// A Handler logs dispatch events to a zerolog logger.
//
// Events are logged at these levels: BeforeSend at debug; AfterProgress
// at trace; AfterTimeout at warn; AfterExecutionEnd at info if the
// dispatch succeeded, at warn if it was cancelled and at error
// otherwise. Failures carry the error's transient.Category and whether
// that category is transient.
type Handler struct {
	Logger zerolog.Logger
}

// Install adds a Handler logging to l to the end of each of g's handler
// chains that it logs.
func Install(g *httpreq.HandlerGroup, l zerolog.Logger) *Handler {
	h := &Handler{Logger: l}
	g.PushBack(httpreq.BeforeSend, h)
	g.PushBack(httpreq.AfterProgress, h)
	g.PushBack(httpreq.AfterTimeout, h)
	g.PushBack(httpreq.AfterExecutionEnd, h)
	return h
}

// Handle logs evt.
func (h *Handler) Handle(evt httpreq.Event, e *request.Execution) {
	switch evt {
	case httpreq.BeforeSend:
		h.event(h.Logger.Debug(), e).Msg("sending request")
	case httpreq.AfterProgress:
		p := e.Descriptor.Progress()
		h.event(h.Logger.Trace(), e).
			Int64(FieldCompleted, p.Completed()).
			Int64(FieldTotal, p.Total()).
			Msg("progress")
	case httpreq.AfterTimeout:
		h.event(h.Logger.Warn(), e).
			Dur(FieldDuration, e.Duration()).
			Msg("request timed out")
	case httpreq.AfterExecutionEnd:
		if e.Succeeded() {
			h.event(h.Logger.Info(), e).
				Int(FieldStatus, e.StatusCode()).
				Dur(FieldDuration, e.Duration()).
				Int(FieldBytes, len(e.Body)).
				Msg("request completed")
			return
		}
		cat := transient.Categorize(e.Err)
		ev, msg := h.Logger.Error(), "request failed"
		if cat == transient.Cancelled {
			ev, msg = h.Logger.Warn(), "request cancelled"
		}
		h.event(ev, e).
			Err(e.Err).
			Int(FieldStatus, e.StatusCode()).
			Dur(FieldDuration, e.Duration()).
			Stringer(FieldCategory, cat).
			Bool(FieldTransient, cat.Transient()).
			Msg(msg)
	}
}

func (h *Handler) event(ev *zerolog.Event, e *request.Execution) *zerolog.Event {
	return ev.
		Str(FieldExecutionID, e.ID.String()).
		Stringer(FieldMethod, e.Descriptor.Method()).
		Str(FieldURL, e.Descriptor.URL().Redacted())
}
