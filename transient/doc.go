// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package transient classifies the errors that end a dispatch: timed
// out, refused, reset, truncated or cancelled. The logging and
// telemetry handlers record the category of every failed dispatch, and
// callers can use Category.Transient to decide for themselves whether
// to dispatch a descriptor again.
//
// Package transient depends only on the standard library.
package transient
