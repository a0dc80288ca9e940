// Package queue defines message payloads exchanged over the message broker.
package queue

// ScreeningCancelledEvent is published once per affected customer when
// an operator cancels a screening. It carries enough information for
// downstream consumers to contact the customer without querying the
// primary database. Delivery semantics belong to the consumer side.
type ScreeningCancelledEvent struct {
	EventID      string `json:"event_id"`
	ScreeningID  uint64 `json:"screening_id"`
	ShowDate     string `json:"show_date"`
	RoomID       uint64 `json:"room_id"`
	CustomerID   uint64 `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Contact      string `json:"contact,omitempty"`
	CancelledAt  string `json:"cancelled_at"`
}
