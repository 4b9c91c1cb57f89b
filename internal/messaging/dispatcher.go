package messaging

import (
	"context"
	"log"
	"time"
)

// Dispatcher decouples delivery from the scheduling transaction: the action
// record exists whether or not the channel accepts the message.
type Dispatcher struct {
	sender Sender
	queue  chan Message
}

func NewDispatcher(sender Sender) *Dispatcher {
	d := &Dispatcher{
		sender: sender,
		queue:  make(chan Message, 100), // buffer seguro
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for msg := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := d.sender.Send(ctx, msg); err != nil {
			log.Println("messaging error:", err)
		}
		cancel()
	}
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
		// enviado
	default:
		// fila cheia → descartamos o envio (nunca travar o scheduler)
		log.Println("messaging queue full, dropping message")
	}
}
