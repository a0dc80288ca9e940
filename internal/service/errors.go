// Package service implements the reservation core: the seat ledger,
// booking creation and cancellation, the screening cancellation
// cascade and the availability read side.  Services own transaction
// boundaries; repositories only run statements inside them.
package service

import "errors"

// ErrScreeningPast is returned when an operator tries to cancel a
// screening whose date is already behind us.  Handlers should
// translate this into an HTTP 400 response.
var ErrScreeningPast = errors.New("screening date has passed")
