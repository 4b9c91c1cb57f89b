package messaging

import "context"

// Message is everything the delivery channel needs: the destination
// client's contact info plus the action's content. Delivery semantics
// (retries, receipts) live on the channel's side.
type Message struct {
	ClientName string
	Phone      string
	Body       string
}

type Sender interface {
	Send(ctx context.Context, msg Message) error
}
