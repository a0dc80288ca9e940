package service

import (
	"context"

	"github.com/iliyamo/cine-reservas/internal/queue"
)

// Notifier is the outbound collaborator the screening cancellation
// cascade reports affected customers to.  The core hands over one
// event per distinct customer after the cascade commits and does not
// care how (or whether) delivery happens; the AMQP publisher in the
// queue package is the default implementation.
type Notifier interface {
	ScreeningCancelled(ctx context.Context, ev queue.ScreeningCancelledEvent)
}
