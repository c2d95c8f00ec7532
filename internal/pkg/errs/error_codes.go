/*
Package errs provides custom error types and application-level error code constants.

These error codes are used to clearly identify specific transport, platform, or session
errors both internally within the client and in messages shown to the user.
*/
package errs

// 1xxx: Transport and Response Handling Errors
const (
	// ErrNetwork indicates that the request never produced a platform response
	// (connection refused, DNS failure, timeout, cancelled context).
	ErrNetwork = 1001

	// ErrMalformedResponse indicates that the platform response body could not be decoded.
	ErrMalformedResponse = 1002

	// ErrRateLimited indicates that the platform rejected the request with HTTP 429.
	ErrRateLimited = 1003

	// ErrRequestEncoding indicates that the request body could not be serialized.
	ErrRequestEncoding = 1004
)

// 2xxx: Platform Business Errors
const (
	// ErrValidation indicates that the platform rejected a form submission;
	// per-field detail is carried on CustomError.Fields.
	ErrValidation = 2001

	// ErrPermissionDenied indicates that the authenticated user may not perform the operation.
	ErrPermissionDenied = 2002

	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = 2003
)

// 3xxx: Session and Chat Errors
const (
	// ErrUnauthorized indicates an authentication failure reported by the platform.
	// Receiving it means the whole session has been invalidated, not just the failing call.
	ErrUnauthorized = 3001

	// ErrNotLoggedIn indicates that an operation requiring authentication was
	// attempted without an established session.
	ErrNotLoggedIn = 3002

	// ErrChatAlreadyOpen indicates that Open was called on a chat session that
	// already left the idle state.
	ErrChatAlreadyOpen = 3101
)

// 5xxx: Internal Errors
const (
	// ErrUnknown represents an unclassified error, including unexpected platform statuses.
	ErrUnknown = 5000
)
