// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
)

// Waiter is handed out by Signal. C returns a channel closed by the next
// Broadcast; once it fired, the following call returns a fresh channel.
type Waiter[T any] interface {
	C() <-chan struct{}
	Value() T
}

// Signal broadcasts the occurrence of an event along with its latest value.
// Unlike sync.Cond, waiting can be combined with other channels in a select.
type Signal[T any] struct {
	l  sync.Mutex
	ch chan struct{}
	v  T
}

func (s *Signal[T]) init() {
	if s.ch == nil {
		s.ch = make(chan struct{})
	}
}

// Broadcast stores v and wakes all goroutines waiting on s.
func (s *Signal[T]) Broadcast(v T) {
	s.l.Lock()
	defer s.l.Unlock()

	s.init()
	s.v = v
	close(s.ch)
	s.ch = make(chan struct{})
}

// Value returns the last broadcast value.
func (s *Signal[T]) Value() T {
	s.l.Lock()
	defer s.l.Unlock()
	return s.v
}

// NewWaiter creates a waiter that fires on broadcasts after this call.
func (s *Signal[T]) NewWaiter() Waiter[T] {
	s.l.Lock()
	defer s.l.Unlock()

	s.init()
	return &waiter[T]{s: s, ref: s.ch}
}

type waiter[T any] struct {
	s   *Signal[T]
	ref chan struct{}
}

func (w *waiter[T]) C() <-chan struct{} {
	ch := w.ref

	w.s.l.Lock()
	w.ref = w.s.ch
	w.s.l.Unlock()

	return ch
}

func (w *waiter[T]) Value() T {
	return w.s.Value()
}
