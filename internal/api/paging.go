/*
Package api implements the shared HTTP client wrapper used for every platform call.

This file covers the platform's list pagination convention: list endpoints accept
limit/offset or page query parameters and respond with a {count, results} envelope.
*/
package api

import (
	"net/url"
	"strconv"
)

// Page is the envelope every platform list endpoint responds with.
type Page[T any] struct {
	// Count is the total number of records matching the query, across all pages.
	Count int `json:"count"`

	// Results holds the records of the requested page.
	Results []T `json:"results"`
}

// ListOptions captures the pagination and filter parameters accepted by list endpoints.
// Page and Limit/Offset are alternative conventions; endpoints honor whichever is sent.
type ListOptions struct {
	// Page selects a 1-based page (page-number convention). Zero means unset.
	Page int

	// Limit caps the page size (limit/offset convention). Zero means unset.
	Limit int

	// Offset skips records (limit/offset convention). Only sent when Limit is set.
	Offset int

	// Filters holds endpoint-specific query parameters (search, course, user, ...).
	Filters url.Values
}

// Values renders the options as URL query values.
func (o ListOptions) Values() url.Values {
	values := url.Values{}

	for key, entries := range o.Filters {
		for _, entry := range entries {
			values.Add(key, entry)
		}
	}

	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
		values.Set("offset", strconv.Itoa(o.Offset))
	}

	return values
}
