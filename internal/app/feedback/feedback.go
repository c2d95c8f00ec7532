/*
Package feedback contains data structures and platform operations for course
feedback (ratings with comments) and the short status-update feed.
*/
package feedback

import "learnhub/internal/app/user"

// Feedback is one student's rating and comment on a course.
// The platform keeps at most one feedback per student per course: posting again
// overwrites the earlier entry.
type Feedback struct {
	ID int64 `json:"id"`

	// Course is the rated course's ID.
	Course int64 `json:"course"`

	// Student is the authoring user's profile.
	Student user.User `json:"student"`

	// Rating is the star rating the student gave.
	Rating int `json:"rating"`

	// Comment is the free-form review text.
	Comment string `json:"comment"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// FeedbackInput is the payload for posting or editing feedback.
type FeedbackInput struct {
	Course  int64  `json:"course"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// StatusUpdate is one short post on the status feed.
type StatusUpdate struct {
	ID int64 `json:"id"`

	// User is the authoring user's profile.
	User user.User `json:"user"`

	// Content is the post text.
	Content string `json:"content"`

	CreatedAt string `json:"created_at"`
}

// StatusInput is the payload for posting or editing a status update.
type StatusInput struct {
	Content string `json:"content"`
}
