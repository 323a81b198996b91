package watch

import "context"

// Subscription is a live handle on the table-change feed.
type Subscription interface {
	// Changes signals that some loan request was inserted or updated. The
	// signal carries no payload: consumers re-query their own scope.
	Changes() <-chan struct{}
	// Release stops delivery and frees the listener. Idempotent.
	Release()
}

// Broker broadcasts table-change signals to every subscriber, regardless of
// which record changed. Scope filtering happens on re-query, not here.
type Broker interface {
	Publish(ctx context.Context) error
	Subscribe(ctx context.Context) (Subscription, error)
}
