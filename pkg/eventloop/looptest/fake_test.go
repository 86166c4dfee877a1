package looptest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFake_Advance(t *testing.T) {
	loop := New()
	var got []string
	var at []time.Duration
	record := func(name string) func() {
		return func() {
			got = append(got, name)
			at = append(at, loop.Now())
		}
	}

	loop.AfterFunc(2*time.Second, record("b"))
	loop.AfterFunc(time.Second, record("a"))
	loop.Post(record("now"))
	loop.AfterFunc(time.Second, func() {
		record("a2")()
		loop.AfterFunc(500*time.Millisecond, record("nested"))
	})
	assert.Equal(t, 4, loop.Pending())

	loop.RunPending()
	assert.Equal(t, []string{"now"}, got)

	loop.Advance(2 * time.Second)
	assert.Equal(t, []string{"now", "a", "a2", "nested", "b"}, got)
	assert.Equal(t, []time.Duration{0, time.Second, time.Second, 1500 * time.Millisecond, 2 * time.Second}, at)
	assert.Equal(t, 2*time.Second, loop.Now())
	assert.Equal(t, 0, loop.Pending())
}

func TestFake_Stop(t *testing.T) {
	loop := New()
	called := false
	timer := loop.AfterFunc(time.Second, func() { called = true })
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	loop.Advance(time.Minute)
	assert.False(t, called)

	fired := loop.AfterFunc(time.Second, func() {})
	loop.Advance(time.Second)
	assert.False(t, fired.Stop())
}

func TestFake_Go(t *testing.T) {
	loop := New()
	var result string
	loop.Go(func() {
		loop.Post(func() { result = "done" })
	})
	assert.Equal(t, "", result)
	loop.RunPending()
	assert.Equal(t, "done", result)
}

func TestFake_HoldWork(t *testing.T) {
	loop := New()
	loop.HoldWork = true
	var order []int
	loop.Go(func() { order = append(order, 1) })
	loop.Go(func() { order = append(order, 2) })
	assert.Equal(t, 2, loop.HeldWork())
	assert.Empty(t, order)

	loop.RunWork()
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, loop.HeldWork())
}
