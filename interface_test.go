// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package httpreq

import (
	"context"
	"testing"

	"github.com/gogama/httpreq/request"

	"github.com/stretchr/testify/assert"

	"github.com/stretchr/testify/require"

	"github.com/stretchr/testify/mock"
)

func TestGet(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Execution{}
		m := newMockDoer(t)
		m.On("Do", mock.Anything, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.GET && d.URL().String() == "http://foo/" &&
				d.Progress() != nil
		})).Return(expected, nil).Once()
		e, err := Get(context.Background(), m, "http://foo/", request.WithProgress())
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Get(context.Background(), m, ":::")
		assert.Nil(t, e)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
	t.Run("error relative URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Get(context.Background(), m, "foo")
		assert.Nil(t, e)
		assert.EqualError(t, err, `httpreq/request: URL "foo" is not absolute`)
		m.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}

func TestHead(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Execution{}
		m := newMockDoer(t)
		m.On("Do", mock.Anything, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.HEAD && d.URL().String() == "https://bar/"
		})).Return(expected, nil).Once()
		e, err := Head(context.Background(), m, "https://bar/")
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Head(context.Background(), m, ":::")
		assert.Nil(t, e)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}

func TestDelete(t *testing.T) {
	t.Run("OK", func(t *testing.T) {
		expected := &request.Execution{}
		m := newMockDoer(t)
		m.On("Do", mock.Anything, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.DELETE && d.URL().String() == "http://baz/widgets/1" &&
				len(d.HeaderFields()) == 1
		})).Return(expected, nil).Once()
		e, err := Delete(context.Background(), m, "http://baz/widgets/1",
			request.WithHeaders(request.Header{Name: "If-Match", Value: `"abc"`}))
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("error invalid URL", func(t *testing.T) {
		m := newMockDoer(t)
		e, err := Delete(context.Background(), m, ":::")
		assert.Nil(t, e)
		assert.Error(t, err)
		m.AssertNotCalled(t, "Do", mock.Anything, mock.Anything)
	})
}

func TestInflate(t *testing.T) {
	t.Run("Inflate", func(t *testing.T) {
		t.Run("nil doer", func(t *testing.T) {
			assert.PanicsWithValue(t, "httpreq: nil doer", func() {
				Inflate(nil)
			})
		})
		t.Run("already an Executor", func(t *testing.T) {
			dp := &Dispatcher{}
			x := Inflate(dp)
			assert.Same(t, dp, x)
		})
		t.Run("not yet an Executor", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			assert.NotSame(t, m, x)
		})
	})
	expected := &request.Execution{}
	ctx := context.Background()
	t.Run("Do", func(t *testing.T) {
		d, err := request.Parse("PUT", "http://www.randomcollections.com/widgets/1")
		require.NotNil(t, d)
		require.NoError(t, err)
		m := newMockDoer(t)
		m.On("Do", ctx, d).Return(expected, nil).Once()
		x := Inflate(m)
		e, err := x.Do(ctx, d)
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Get", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.GET && d.URL().String() == "http://bar/"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		e, err := x.Get(ctx, "http://bar/")
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Head", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.HEAD && d.URL().String() == "http://baz/"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		e, err := x.Head(ctx, "http://baz/")
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("Delete", func(t *testing.T) {
		m := newMockDoer(t)
		m.On("Do", ctx, mock.MatchedBy(func(d *request.Descriptor) bool {
			return d.Method() == request.DELETE && d.URL().String() == "http://ham/eggs"
		})).Return(expected, nil).Once()
		x := Inflate(m)
		e, err := x.Delete(ctx, "http://ham/eggs")
		assert.Same(t, expected, e)
		assert.NoError(t, err)
		m.AssertExpectations(t)
	})
	t.Run("CloseIdleConnections", func(t *testing.T) {
		t.Run("Doer does not implement IdleCloser", func(t *testing.T) {
			m := newMockDoer(t)
			x := Inflate(m)
			x.CloseIdleConnections()
			m.AssertNotCalled(t, "CloseIdleConnections")
		})
		t.Run("Doer implements IdleCloser", func(t *testing.T) {
			m := newMockDoerWithCloseIdleConnections(t)
			m.On("CloseIdleConnections").Once()
			x := Inflate(m)
			x.CloseIdleConnections()
			m.AssertExpectations(t)
		})
	})
}

type mockDoer struct {
	mock.Mock
}

func newMockDoer(t *testing.T) *mockDoer {
	m := &mockDoer{}
	m.Test(t)
	return m
}

func (m *mockDoer) Do(ctx context.Context, d *request.Descriptor) (*request.Execution, error) {
	args := m.Called(ctx, d)
	e := args.Get(0)
	err := args.Error(1)
	if e == nil {
		return nil, err
	}
	return e.(*request.Execution), err
}

type mockDoerWithCloseIdleConnections struct {
	mockDoer
}

func newMockDoerWithCloseIdleConnections(t *testing.T) *mockDoerWithCloseIdleConnections {
	m := &mockDoerWithCloseIdleConnections{}
	m.Test(t)
	return m
}

func (m *mockDoerWithCloseIdleConnections) CloseIdleConnections() {
	m.Called()
}
