package scheduling

import "errors"

// ErrSlotTaken means the requested slot cannot be booked, either because the
// availability pre-check failed or because a concurrent booking won the slot
// inside the transaction. Handlers map it to HTTP 409.
var ErrSlotTaken = errors.New("slot is not available")
