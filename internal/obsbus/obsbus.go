// Package obsbus is a tiny synchronous publish/subscribe fan-out used
// for the scheduler's trace and fault output. The engine
// this package serves has exactly one logical thread of control, so
// delivery is a flat list of subscriber callbacks invoked in-line by
// Publish rather than anything channel-buffered or goroutine-delivered.
// There is no wildcard matching and no retained-message replay: a
// trace consumer that attaches after a message was published simply
// misses it, which is the correct semantics for a log line.
package obsbus

// Message is one published notification: a topic plus an arbitrary
// payload (the scheduler publishes formatted trace and fault lines,
// but any value is accepted).
type Message struct {
	Topic   string
	Payload any
}

// Subscriber receives every Message published on a topic it subscribed to.
type Subscriber func(Message)

// Bus is a single-threaded publish/subscribe fan-out.
type Bus struct {
	subs map[string][]Subscriber
}

// New returns an empty Bus.
func New() *Bus {
	return &Bus{subs: make(map[string][]Subscriber)}
}

// Subscribe registers fn for every future Publish on topic. The
// returned func removes the subscription.
func (b *Bus) Subscribe(topic string, fn Subscriber) (unsubscribe func()) {
	b.subs[topic] = append(b.subs[topic], fn)
	idx := len(b.subs[topic]) - 1
	return func() {
		subs := b.subs[topic]
		if idx < len(subs) {
			subs[idx] = nil
		}
	}
}

// Publish delivers msg synchronously, in subscription order, to every
// live subscriber of msg.Topic.
func (b *Bus) Publish(msg Message) {
	for _, fn := range b.subs[msg.Topic] {
		if fn != nil {
			fn(msg)
		}
	}
}
