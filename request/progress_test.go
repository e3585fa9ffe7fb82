// Copyright 2021 The httpreq Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package request

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewProgress(t *testing.T) {
	t.Run("indeterminate", func(t *testing.T) {
		p := NewProgress(Indeterminate)
		assert.True(t, p.Indeterminate())
		assert.Equal(t, Indeterminate, p.Total())
		assert.Equal(t, float64(-1), p.Fraction())
		assert.False(t, p.Finished())
	})
	t.Run("negative normalized", func(t *testing.T) {
		p := NewProgress(-42)
		assert.Equal(t, Indeterminate, p.Total())
	})
	t.Run("known total", func(t *testing.T) {
		p := NewProgress(10)
		assert.False(t, p.Indeterminate())
		assert.Equal(t, int64(10), p.Total())
		assert.Equal(t, float64(0), p.Fraction())
	})
	t.Run("zero total", func(t *testing.T) {
		p := NewProgress(0)
		assert.Equal(t, float64(1), p.Fraction())
		assert.True(t, p.Finished())
	})
}

func TestProgress_Counters(t *testing.T) {
	p := NewProgress(Indeterminate)
	assert.Equal(t, int64(3), p.Add(3))
	assert.Equal(t, int64(3), p.Completed())
	p.SetTotal(4)
	assert.Equal(t, 0.75, p.Fraction())
	assert.False(t, p.Finished())
	assert.Equal(t, int64(4), p.Add(1))
	assert.True(t, p.Finished())
	p.Add(10)
	assert.Equal(t, float64(1), p.Fraction())
	p.SetCompleted(0)
	assert.Equal(t, int64(0), p.Completed())
	p.SetTotal(Indeterminate)
	assert.True(t, p.Indeterminate())
}

func TestProgress_Concurrent(t *testing.T) {
	p := NewProgress(Indeterminate)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				p.Add(1)
				_ = p.Fraction()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), p.Completed())
}

func TestProgress_Cancel(t *testing.T) {
	t.Run("zero value", func(t *testing.T) {
		var p Progress
		assert.False(t, p.Cancelled())
		p.Cancel()
		assert.True(t, p.Cancelled())
	})
	t.Run("done closes", func(t *testing.T) {
		p := NewProgress(Indeterminate)
		done := p.Done()
		select {
		case <-done:
			t.Fatal("done closed before Cancel")
		default:
		}
		go func() {
			time.Sleep(5 * time.Millisecond)
			p.Cancel()
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("done not closed after Cancel")
		}
		assert.True(t, p.Cancelled())
	})
	t.Run("idempotent", func(t *testing.T) {
		p := NewProgress(Indeterminate)
		assert.NotPanics(t, func() {
			p.Cancel()
			p.Cancel()
		})
		assert.True(t, p.Cancelled())
	})
}
