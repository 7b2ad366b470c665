// Package input turns platform callbacks into plain per-frame samples.
//
// Callbacks only append events to a Queue; the render loop drains the queue
// once per frame and hands the resulting Sample to the camera, so all camera
// mutation happens in one place and in a fixed order.
package input

// Key is a logical action key, independent of the windowing library.
type Key uint8

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyQuit
	keyCount
)

func (k Key) String() string {
	switch k {
	case KeyForward:
		return "forward"
	case KeyBackward:
		return "backward"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyQuit:
		return "quit"
	}
	return "unknown"
}

// KeySet is the set of keys held down when the sample was taken.
type KeySet uint16

func (s KeySet) Has(k Key) bool {
	return s&(1<<k) != 0
}

func (s KeySet) With(keys ...Key) KeySet {
	for _, k := range keys {
		if k < keyCount {
			s |= 1 << k
		}
	}
	return s
}

// Event is a discrete input occurrence recorded between two frames.
type Event interface {
	isEvent()
}

// CursorMoved carries an absolute cursor position in screen coordinates.
type CursorMoved struct {
	X, Y float64
}

// Scrolled carries one scroll tick.
type Scrolled struct {
	XOffset, YOffset float64
}

func (CursorMoved) isEvent() {}
func (Scrolled) isEvent()    {}

// Sample is everything the camera needs for one frame.
type Sample struct {
	Keys   KeySet
	Events []Event
}

// Queue buffers events until the next frame. It is owned by the main thread:
// platform callbacks fire from inside PollEvents on that same thread.
type Queue struct {
	events []Event
}

func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Drain returns a sample holding every queued event in arrival order and
// empties the queue.
func (q *Queue) Drain(keys KeySet) Sample {
	s := Sample{Keys: keys}
	if len(q.events) > 0 {
		s.Events = make([]Event, len(q.events))
		copy(s.Events, q.events)
		q.events = q.events[:0]
	}
	return s
}
