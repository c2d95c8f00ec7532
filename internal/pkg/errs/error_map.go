/*
Package errs provides custom error types and application-level error code constants.

This file defines the map from error codes to the CustomError struct, used to standardize
error construction and user-facing messages throughout the client.
*/
package errs

import "net/http"

// errorMap stores the detailed CustomError struct corresponding to every application error code.
// The key is the error code (int), and the value contains the user message and, where the code
// always maps to one wire status, the HTTP status code.
var errorMap = map[int]CustomError{
	// 1xxx: Transport and Response Handling Errors
	ErrNetwork:           {Code: ErrNetwork, Message: "Could not reach the platform. Check your connection."},
	ErrMalformedResponse: {Code: ErrMalformedResponse, Message: "The platform returned an unreadable response."},
	ErrRateLimited:       {Code: ErrRateLimited, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},
	ErrRequestEncoding:   {Code: ErrRequestEncoding, Message: "Could not prepare the request."},

	// 2xxx: Platform Business Errors
	ErrValidation:       {Code: ErrValidation, Message: "The platform rejected the submitted data.", Status: http.StatusBadRequest},
	ErrPermissionDenied: {Code: ErrPermissionDenied, Message: "You don't have permission to do that.", Status: http.StatusForbidden},
	ErrNotFound:         {Code: ErrNotFound, Message: "Not found.", Status: http.StatusNotFound},

	// 3xxx: Session and Chat Errors
	ErrUnauthorized: {Code: ErrUnauthorized, Message: "Your session has expired. Please sign in again.", Status: http.StatusUnauthorized},
	ErrNotLoggedIn:  {Code: ErrNotLoggedIn, Message: "Please sign in to continue."},

	ErrChatAlreadyOpen: {Code: ErrChatAlreadyOpen, Message: "Chat is already open for this course."},

	// 5xxx: Internal Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again."},
}
