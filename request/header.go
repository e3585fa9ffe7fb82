// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"fmt"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// A Header is a single HTTP header field. A Descriptor holds its
// headers as an ordered slice of Header values, so the same name may
// appear more than once.
type Header struct {
	Name  string
	Value string
}

// ParseHeader parses a header in the "Name: value" form used on the
// wire and by command line tools such as curl. Leading and trailing
// whitespace around the value is removed.
func ParseHeader(s string) (Header, error) {
	i := strings.IndexByte(s, ':')
	if i < 0 {
		return Header{}, fmt.Errorf("httpreq/request: header %q missing colon", s)
	}
	h := Header{
		Name:  s[:i],
		Value: strings.TrimSpace(s[i+1:]),
	}
	if !h.Valid() {
		return Header{}, fmt.Errorf("httpreq/request: invalid header %q", s)
	}
	return h, nil
}

// Valid reports whether the name is a valid header field name and the
// value a valid header field value, per RFC 7230.
func (h Header) Valid() bool {
	return httpguts.ValidHeaderFieldName(h.Name) && httpguts.ValidHeaderFieldValue(h.Value)
}

// String returns the header in "Name: value" form.
func (h Header) String() string {
	return h.Name + ": " + h.Value
}
