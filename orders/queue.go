package orders

import (
	"errors"
	"fmt"
)

var ErrOrderNotFound = errors.New("order not found")

// Queue holds pending orders in insertion order. Orders leave the queue by
// cancellation or by being taken for settlement; either way they never come
// back.
type Queue struct {
	pending []*Order
}

func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a pending order.
func (q *Queue) Enqueue(o *Order) {
	q.pending = append(q.pending, o)
}

// Cancel removes the pending order with the given id and marks it cancelled.
// Cancelling an unknown or already-terminal order reports ErrOrderNotFound;
// it never changes state.
func (q *Queue) Cancel(id string) (*Order, error) {
	o, err := q.take(id)
	if err != nil {
		return nil, fmt.Errorf("cancel: %w", err)
	}
	o.Status = Cancelled
	return o, nil
}

// TakeForSettlement removes and returns the pending order with the given id.
// The order's status is left Pending; the caller decides its fate.
func (q *Queue) TakeForSettlement(id string) (*Order, error) {
	o, err := q.take(id)
	if err != nil {
		return nil, fmt.Errorf("take for settlement: %w", err)
	}
	return o, nil
}

// List returns the pending orders in original insertion order.
func (q *Queue) List() []Order {
	out := make([]Order, 0, len(q.pending))
	for _, o := range q.pending {
		out = append(out, *o)
	}
	return out
}

// Len returns the number of pending orders.
func (q *Queue) Len() int {
	return len(q.pending)
}

func (q *Queue) take(id string) (*Order, error) {
	for i, o := range q.pending {
		if o.ID == id {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return o, nil
		}
	}
	return nil, fmt.Errorf("order %q: %w", id, ErrOrderNotFound)
}
