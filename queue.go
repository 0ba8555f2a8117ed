package phototable

import "slices"

// Queue is the display queue: photos on the table in arrival order, oldest
// first. It is owned by the control goroutine and is not safe for
// concurrent use.
type Queue struct {
	items []*Photo
}

// Len returns the number of queued photos.
func (q *Queue) Len() int { return len(q.items) }

// Push appends p at the tail.
func (q *Queue) Push(p *Photo) {
	q.items = append(q.items, p)
}

// PopFront removes and returns the oldest photo, or nil if q is empty.
func (q *Queue) PopFront() *Photo {
	if len(q.items) == 0 {
		return nil
	}
	p := q.items[0]
	q.items[0] = nil
	q.items = q.items[1:]
	return p
}

// Remove deletes p and reports whether it was queued.
func (q *Queue) Remove(p *Photo) bool {
	i := slices.Index(q.items, p)
	if i < 0 {
		return false
	}
	q.items = slices.Delete(q.items, i, i+1)
	return true
}

// MoveToBack moves p to the tail, appending it if it was not queued.
func (q *Queue) MoveToBack(p *Photo) {
	q.Remove(p)
	q.Push(p)
}

// Contains reports whether p is queued.
func (q *Queue) Contains(p *Photo) bool {
	return slices.Contains(q.items, p)
}

// Items returns a snapshot of the queue, oldest first.
func (q *Queue) Items() []*Photo {
	return slices.Clone(q.items)
}
