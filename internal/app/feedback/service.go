/*
Package feedback contains data structures and platform operations for course
feedback and the status-update feed.

This file defines the Service struct wrapping the /api/feedback/ endpoints.
*/
package feedback

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"learnhub/internal/api"
	"learnhub/internal/pkg/logx"
)

// Service performs feedback and status-feed operations against the platform.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewService constructs a feedback Service on top of the shared platform client.
func NewService(client *api.Client) *Service {
	return &Service{
		api:    client,
		logger: logx.Logger().With().Str("component", "feedback").Logger(),
	}
}

// List fetches a page of feedback, optionally restricted to one course.
func (s *Service) List(ctx context.Context, courseID int64, opts api.ListOptions) (*api.Page[Feedback], error) {
	if opts.Filters == nil {
		opts.Filters = url.Values{}
	}
	if courseID != 0 {
		opts.Filters.Set("course", strconv.FormatInt(courseID, 10))
	}

	var page api.Page[Feedback]
	if err := s.api.Get(ctx, "/api/feedback/feedbacks/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Create posts feedback on a course. Enrollment is required; posting a second
// time overwrites the student's earlier feedback on that course.
func (s *Service) Create(ctx context.Context, input FeedbackInput) (*Feedback, error) {
	var created Feedback
	if err := s.api.Post(ctx, "/api/feedback/feedbacks/", input, &created); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("course_id", input.Course).Int("rating", input.Rating).Msg("Feedback posted.")
	return &created, nil
}

// Update edits the authenticated user's own feedback.
func (s *Service) Update(ctx context.Context, id int64, input FeedbackInput) (*Feedback, error) {
	var updated Feedback
	if err := s.api.Put(ctx, fmt.Sprintf("/api/feedback/feedbacks/%d/", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the authenticated user's own feedback.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/feedback/feedbacks/%d/", id))
}

// ListStatus fetches a page of the status feed. A non-zero userID restricts
// the feed to that author (the "only my posts" toggle).
func (s *Service) ListStatus(ctx context.Context, userID int64, opts api.ListOptions) (*api.Page[StatusUpdate], error) {
	if opts.Filters == nil {
		opts.Filters = url.Values{}
	}
	if userID != 0 {
		opts.Filters.Set("user", strconv.FormatInt(userID, 10))
	}

	var page api.Page[StatusUpdate]
	if err := s.api.Get(ctx, "/api/feedback/status-updates/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateStatus posts a status update.
func (s *Service) CreateStatus(ctx context.Context, input StatusInput) (*StatusUpdate, error) {
	var created StatusUpdate
	if err := s.api.Post(ctx, "/api/feedback/status-updates/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateStatus edits the authenticated user's own status update.
func (s *Service) UpdateStatus(ctx context.Context, id int64, input StatusInput) (*StatusUpdate, error) {
	var updated StatusUpdate
	if err := s.api.Put(ctx, fmt.Sprintf("/api/feedback/status-updates/%d/", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteStatus removes the authenticated user's own status update.
func (s *Service) DeleteStatus(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/feedback/status-updates/%d/", id))
}
