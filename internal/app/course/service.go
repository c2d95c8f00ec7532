/*
Package course contains data structures and platform operations for course
browsing and authoring.

This file defines the Service struct wrapping the /api/courses/ endpoints:
course CRUD, modules, module contents, enrollment, and roster management.
*/
package course

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"

	"learnhub/internal/api"
	"learnhub/internal/pkg/errs"
	"learnhub/internal/pkg/logx"
)

// Service performs course operations against the platform.
type Service struct {
	api    *api.Client
	logger zerolog.Logger
}

// NewService constructs a course Service on top of the shared platform client.
func NewService(client *api.Client) *Service {
	return &Service{
		api:    client,
		logger: logx.Logger().With().Str("component", "course").Logger(),
	}
}

// ListFilter narrows a course listing. All fields are optional.
type ListFilter struct {
	// Search matches keywords against titles and descriptions.
	Search string

	// Instructor restricts to courses created by that user ID.
	Instructor int64

	// Student restricts to courses the given user ID is enrolled in.
	Student int64
}

// values renders the filter as query parameters.
func (f ListFilter) values() url.Values {
	values := url.Values{}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Instructor != 0 {
		values.Set("instructor", strconv.FormatInt(f.Instructor, 10))
	}
	if f.Student != 0 {
		values.Set("student", strconv.FormatInt(f.Student, 10))
	}
	return values
}

// List fetches a page of courses matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter, opts api.ListOptions) (*api.Page[Course], error) {
	if opts.Filters == nil {
		opts.Filters = url.Values{}
	}
	for key, entries := range filter.values() {
		opts.Filters[key] = entries
	}

	var page api.Page[Course]
	if err := s.api.Get(ctx, "/api/courses/courses/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches one course by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Course, error) {
	var fetched Course
	if err := s.api.Get(ctx, fmt.Sprintf("/api/courses/courses/%d/", id), nil, &fetched); err != nil {
		return nil, err
	}
	return &fetched, nil
}

// Create creates a course owned by the authenticated user.
func (s *Service) Create(ctx context.Context, input CourseInput) (*Course, error) {
	var created Course
	if err := s.api.Post(ctx, "/api/courses/courses/", input, &created); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("course_id", created.ID).Str("title", created.Title).Msg("Course created.")
	return &created, nil
}

// Update applies a partial edit to a course. Only the instructor may edit.
func (s *Service) Update(ctx context.Context, id int64, input CourseInput) (*Course, error) {
	var updated Course
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/courses/courses/%d/", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes a course. Only the instructor may delete.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/courses/courses/%d/", id))
}

// enrollResponse is the platform reply to a successful enrollment.
type enrollResponse struct {
	Message      string `json:"message"`
	EnrollmentID int64  `json:"enrollment_id"`
}

// Enroll enrolls the authenticated user in the course and returns the enrollment ID.
func (s *Service) Enroll(ctx context.Context, courseID int64) (int64, error) {
	var reply enrollResponse
	if err := s.api.Post(ctx, fmt.Sprintf("/api/courses/courses/%d/enroll/", courseID), nil, &reply); err != nil {
		return 0, err
	}

	s.logger.Info().Int64("course_id", courseID).Int64("enrollment_id", reply.EnrollmentID).Msg("Enrolled in course.")
	return reply.EnrollmentID, nil
}

// ListModules fetches the modules of a course, in course order.
func (s *Service) ListModules(ctx context.Context, courseID int64, opts api.ListOptions) (*api.Page[Module], error) {
	if opts.Filters == nil {
		opts.Filters = url.Values{}
	}
	opts.Filters.Set("course", strconv.FormatInt(courseID, 10))

	var page api.Page[Module]
	if err := s.api.Get(ctx, "/api/courses/modules/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateModule adds a module to a course. Only the instructor may add modules.
func (s *Service) CreateModule(ctx context.Context, input ModuleInput) (*Module, error) {
	var created Module
	if err := s.api.Post(ctx, "/api/courses/modules/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateModule applies a partial edit to a module.
func (s *Service) UpdateModule(ctx context.Context, id int64, input ModuleInput) (*Module, error) {
	var updated Module
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/courses/modules/%d/", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteModule removes a module.
func (s *Service) DeleteModule(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/courses/modules/%d/", id))
}

// CreateContent adds a content item to a module. The one-payload rule the
// platform enforces is checked before the request goes out, so authoring
// mistakes surface as field errors without a round trip.
func (s *Service) CreateContent(ctx context.Context, input ContentInput) (*Content, error) {
	if err := validateContentInput(input); err != nil {
		return nil, err
	}

	var created Content
	if err := s.api.Post(ctx, "/api/courses/module-contents/", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateContent applies a partial edit to a content item.
func (s *Service) UpdateContent(ctx context.Context, id int64, input ContentInput) (*Content, error) {
	if err := validateContentInput(input); err != nil {
		return nil, err
	}

	var updated Content
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/courses/module-contents/%d/", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteContent removes a content item.
func (s *Service) DeleteContent(ctx context.Context, id int64) error {
	return s.api.Delete(ctx, fmt.Sprintf("/api/courses/module-contents/%d/", id))
}

// validateContentInput mirrors the platform's rule that a content item carries
// exactly one payload field.
func validateContentInput(input ContentInput) error {
	switch input.payloadCount() {
	case 0:
		return errs.NewValidationError(0, map[string][]string{
			"content_type": {"You must provide at least one content type."},
		})
	case 1:
		return nil
	default:
		return errs.NewValidationError(0, map[string][]string{
			"content_type": {"Only one content type can be selected per module content."},
		})
	}
}

// RosterFilter narrows the enrolled-students listing.
type RosterFilter struct {
	// CourseID restricts to one course's roster.
	CourseID int64

	// Search matches the student's name or email.
	Search string

	// Blocked, when non-nil, restricts to blocked or unblocked enrollments.
	Blocked *bool
}

// values renders the filter as query parameters.
func (f RosterFilter) values() url.Values {
	values := url.Values{}
	if f.CourseID != 0 {
		values.Set("course__id", strconv.FormatInt(f.CourseID, 10))
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Blocked != nil {
		values.Set("is_blocked", strconv.FormatBool(*f.Blocked))
	}
	return values
}

// EnrolledStudents fetches a page of the authenticated instructor's roster.
func (s *Service) EnrolledStudents(ctx context.Context, filter RosterFilter, opts api.ListOptions) (*api.Page[Enrollment], error) {
	if opts.Filters == nil {
		opts.Filters = url.Values{}
	}
	for key, entries := range filter.values() {
		opts.Filters[key] = entries
	}

	var page api.Page[Enrollment]
	if err := s.api.Get(ctx, "/api/courses/enrolled-students/", opts.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// SetBlocked blocks or unblocks one enrollment. Only the course instructor may do this.
func (s *Service) SetBlocked(ctx context.Context, enrollmentID int64, blocked bool) (*Enrollment, error) {
	payload := map[string]bool{"is_blocked": blocked}

	var updated Enrollment
	if err := s.api.Patch(ctx, fmt.Sprintf("/api/courses/block-unblock-student/%d/", enrollmentID), payload, &updated); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("enrollment_id", enrollmentID).Bool("is_blocked", blocked).Msg("Enrollment block state changed.")
	return &updated, nil
}
