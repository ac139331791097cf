package service

import "sync/atomic"

// Counter tracks how many requests reached the create and update routes over
// the lifetime of the process. Increments happen on request arrival, before
// the outcome is known, and are atomic under concurrent requests. Nothing is
// persisted: a restart starts over from zero.
type Counter struct {
	create atomic.Int64
	update atomic.Int64
}

func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) IncCreate() {
	c.create.Add(1)
}

func (c *Counter) IncUpdate() {
	c.update.Add(1)
}

type CounterSnapshot struct {
	CreateCount int64 `json:"createCount"`
	UpdateCount int64 `json:"updateCount"`
}

func (c *Counter) Snapshot() CounterSnapshot {
	return CounterSnapshot{
		CreateCount: c.create.Load(),
		UpdateCount: c.update.Load(),
	}
}
