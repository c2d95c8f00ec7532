/*
Package randx provides functions for generating unique identifiers.

It is primarily used to generate UUID request-correlation IDs attached to every
outbound platform call.
*/
package randx

import "github.com/google/uuid"

// RequestID returns a new UUIDv4 string used to correlate an outbound request
// in client logs with the platform's request logs.
func RequestID() string {
	return uuid.NewString()
}
