package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// AuthEventType names an auth-state transition.
type AuthEventType string

const (
	EventSignedIn       AuthEventType = "signed_in"
	EventSignedOut      AuthEventType = "signed_out"
	EventTokenRefreshed AuthEventType = "token_refreshed"
)

// AuthEvent is an auth-state change notification.
type AuthEvent struct {
	Type       AuthEventType
	IdentityID uuid.UUID
}

// Subscribe consumes auth events and re-resolves on every identity change.
// Token refreshes leave the identity unchanged and are ignored. Subscribe
// may be called at most once per resolver; subsequent calls return an error.
// The subscription ends when events is closed or the resolver is closed.
func (r *Resolver) Subscribe(events <-chan AuthEvent) error {
	subscribed := false
	r.subscribeOnce.Do(func() {
		subscribed = true
		r.wg.Add(1)
		go r.consume(events)
	})
	if !subscribed {
		return fmt.Errorf("resolver already subscribed to auth events")
	}
	return nil
}

func (r *Resolver) consume(events <-chan AuthEvent) {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			switch event.Type {
			case EventSignedIn:
				r.Resolve(context.Background(), event.IdentityID)
			case EventSignedOut:
				r.Resolve(context.Background(), uuid.Nil)
			case EventTokenRefreshed:
				// Identity unchanged; nothing to re-resolve.
			}
		}
	}
}
