package x11

import (
	"context"

	"github.com/BurntSushi/xgb"
)

// Event is either an X event or an asynchronous X error.
type Event struct {
	Event xgb.Event
	Err   xgb.Error
}

// Events starts a goroutine that forwards everything the server sends. The
// channel is closed when the connection goes away or ctx is cancelled. The
// goroutine only reads; all handling stays with the receiver.
func (c *Connection) Events(ctx context.Context) <-chan Event {
	out := make(chan Event, 256)
	go func() {
		defer close(out)
		conn := c.Conn()
		for {
			ev, err := conn.WaitForEvent()
			if ev == nil && err == nil {
				return
			}
			select {
			case out <- Event{Event: ev, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
