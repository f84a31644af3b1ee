package viewport

// Event is a notification flowing out of the engine. Events are delivered
// synchronously, in subscription order, before the triggering call returns,
// so a subscriber reacting to the same input observes the new window rather
// than a stale one.
type Event interface {
	isEvent()
}

// ScrollPositionChangedEvent fires on every accepted scroll notification,
// whether or not a new window was committed. Context is the committed
// window at delivery time.
type ScrollPositionChangedEvent struct {
	Position ScrollPosition
	Context  RenderContext
}

func (ScrollPositionChangedEvent) isEvent() {}

// RenderedRowsChangedEvent fires when the committed row interval actually
// changes.
type RenderedRowsChangedEvent struct {
	FirstRowIndex int
	LastRowIndex  int
}

func (RenderedRowsChangedEvent) isEvent() {}

// ContentSizeChangedEvent fires when the computed content size changes.
type ContentSizeChangedEvent struct {
	Size Size
}

func (ContentSizeChangedEvent) isEvent() {}

// Observer receives engine events.
type Observer func(Event)

// Dispatcher fans events out to registered observers. Delivery is
// synchronous and single-threaded; observers run on the caller's
// goroutine in subscription order.
type Dispatcher struct {
	nextID    int
	observers []dispatchEntry
}

type dispatchEntry struct {
	id int
	fn Observer
}

// Subscribe registers an observer and returns its unsubscribe func.
// Unsubscribing during delivery takes effect on the next publish.
func (d *Dispatcher) Subscribe(fn Observer) func() {
	d.nextID++
	id := d.nextID
	d.observers = append(d.observers, dispatchEntry{id: id, fn: fn})
	return func() {
		for i, entry := range d.observers {
			if entry.id == id {
				d.observers = append(d.observers[:i], d.observers[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers the event to every observer registered at the time of
// the call. The list is snapshotted first so an observer unsubscribing
// during delivery cannot skip or double-deliver to its siblings.
func (d *Dispatcher) Publish(e Event) {
	observers := make([]dispatchEntry, len(d.observers))
	copy(observers, d.observers)
	for _, entry := range observers {
		entry.fn(e)
	}
}
