// Package explore holds the navigation state behind the concept map views.
package explore

import "fmt"

// Cursor walks a slice with wraparound at both ends.
type Cursor[T any] struct {
	items []T
	pos   int
}

// NewCursor returns a cursor on the first item.
func NewCursor[T any](items []T) *Cursor[T] {
	return &Cursor[T]{items: items}
}

// Reset replaces the items and moves to the first.
func (c *Cursor[T]) Reset(items []T) {
	c.items = items
	c.pos = 0
}

// Len returns the number of items.
func (c *Cursor[T]) Len() int { return len(c.items) }

// Index returns the 0-based position.
func (c *Cursor[T]) Index() int { return c.pos }

// Current returns the item under the cursor.
func (c *Cursor[T]) Current() (T, bool) {
	if len(c.items) == 0 {
		var zero T
		return zero, false
	}
	return c.items[c.pos], true
}

// Next advances, wrapping to the first item after the last.
func (c *Cursor[T]) Next() (T, bool) {
	if len(c.items) > 0 {
		c.pos = (c.pos + 1) % len(c.items)
	}
	return c.Current()
}

// Prev steps back, wrapping to the last item before the first.
func (c *Cursor[T]) Prev() (T, bool) {
	if len(c.items) > 0 {
		c.pos = (c.pos - 1 + len(c.items)) % len(c.items)
	}
	return c.Current()
}

// Position formats the cursor as "i / n", or "0 / 0" when empty.
func (c *Cursor[T]) Position() string {
	if len(c.items) == 0 {
		return "0 / 0"
	}
	return fmt.Sprintf("%d / %d", c.pos+1, len(c.items))
}

// Items returns a copy of the items.
func (c *Cursor[T]) Items() []T {
	return append([]T(nil), c.items...)
}
