// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	testCases := []struct {
		in     string
		header Header
		err    string
	}{
		{in: "Accept: application/json", header: Header{"Accept", "application/json"}},
		{in: "X-Empty:", header: Header{"X-Empty", ""}},
		{in: "X-Spaces:   a b  ", header: Header{"X-Spaces", "a b"}},
		{in: "X-Colon: a:b", header: Header{"X-Colon", "a:b"}},
		{in: "no colon", err: `httpreq/request: header "no colon" missing colon`},
		{in: ": value", err: `httpreq/request: invalid header ": value"`},
		{in: "Bad Name: value", err: `httpreq/request: invalid header "Bad Name: value"`},
		{in: "X-Ctl: a\x00b", err: `httpreq/request: invalid header "X-Ctl: a\x00b"`},
	}
	for _, testCase := range testCases {
		t.Run(testCase.in, func(t *testing.T) {
			h, err := ParseHeader(testCase.in)
			if testCase.err != "" {
				assert.EqualError(t, err, testCase.err)
				assert.Equal(t, Header{}, h)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, testCase.header, h)
			}
		})
	}
}

func TestHeader_Valid(t *testing.T) {
	assert.True(t, Header{"X-Foo", "bar"}.Valid())
	assert.True(t, Header{"X-Foo", ""}.Valid())
	assert.False(t, Header{"", "bar"}.Valid())
	assert.False(t, Header{"X Foo", "bar"}.Valid())
	assert.False(t, Header{"X-Foo", "bar\r\nX-Evil: 1"}.Valid())
}

func TestHeader_String(t *testing.T) {
	assert.Equal(t, "Accept: text/html", Header{"Accept", "text/html"}.String())
}
