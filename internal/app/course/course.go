/*
Package course contains data structures and platform operations for course
browsing and authoring: courses, their modules, module content items, and
student enrollment.
*/
package course

import "learnhub/internal/app/user"

// Content type values accepted by module content items.
const (
	ContentTypeText  = "text"
	ContentTypeFile  = "file"
	ContentTypeVideo = "video"
	ContentTypeImage = "image"
)

// Course represents a course as returned by the platform, including the
// viewer-dependent fields the API computes per request.
type Course struct {
	// ID is the unique identifier for the course.
	ID int64 `json:"id"`

	// Title and Description are the authored course fields.
	Title       string `json:"title"`
	Description string `json:"description"`

	// Instructor is the creating user's profile.
	Instructor user.User `json:"instructor"`

	// CreatedAt is the platform-formatted creation timestamp.
	CreatedAt string `json:"created_at"`

	// Banner is the URL of the uploaded course banner, if any.
	Banner string `json:"banner,omitempty"`

	// HasEnrolled reports whether the requesting user is enrolled (or is the instructor).
	HasEnrolled bool `json:"has_enrolled"`

	// Rating is the average feedback rating; the platform reports 1 when no feedback exists.
	Rating float64 `json:"rating"`

	// IsBlocked reports whether the requesting user's enrollment is blocked.
	IsBlocked bool `json:"is_blocked"`
}

// Module groups ordered content inside a course.
type Module struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`

	// Course is the owning course's ID.
	Course int64 `json:"course"`

	// Order positions the module inside the course.
	Order int `json:"order"`

	// ModuleContents lists the module's content items. The platform returns an
	// empty list to viewers who are neither enrolled nor the instructor.
	ModuleContents []Content `json:"module_contents"`
}

// Content is one item inside a module. Exactly one of the type-specific fields
// (Text, File, VideoURL, Image) carries a value, selected by ContentType.
type Content struct {
	ID int64 `json:"id"`

	// Module is the owning module's ID.
	Module int64 `json:"module"`

	// ContentType selects which payload field is populated (see ContentType* constants).
	ContentType string `json:"content_type"`

	Text     string `json:"text,omitempty"`
	File     string `json:"file,omitempty"`
	VideoURL string `json:"video_url,omitempty"`
	Image    string `json:"image,omitempty"`

	// Order positions the item inside the module.
	Order int `json:"order"`
}

// Enrollment ties a student to a course on the instructor's roster.
type Enrollment struct {
	ID int64 `json:"id"`

	// Student is the enrolled user's profile.
	Student user.User `json:"student"`

	// Course is the course ID.
	Course int64 `json:"course"`

	// CreatedAt is the platform-formatted enrollment timestamp.
	CreatedAt string `json:"created_at"`

	// IsBlocked reports whether the instructor blocked this enrollment.
	IsBlocked bool `json:"is_blocked"`
}

// CourseInput is the payload for creating or editing a course.
type CourseInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Banner      string `json:"banner,omitempty"`
}

// ModuleInput is the payload for creating or editing a module.
type ModuleInput struct {
	Title  string `json:"title"`
	Course int64  `json:"course"`
	Order  int    `json:"order"`
}

// ContentInput is the payload for creating or editing a module content item.
// Exactly one of Text, File, VideoURL, and Image may carry a value.
type ContentInput struct {
	Module      int64  `json:"module"`
	ContentType string `json:"content_type"`
	Text        string `json:"text,omitempty"`
	File        string `json:"file,omitempty"`
	VideoURL    string `json:"video_url,omitempty"`
	Image       string `json:"image,omitempty"`
	Order       int    `json:"order"`
}

// payloadCount reports how many type-specific fields carry a value.
func (in ContentInput) payloadCount() int {
	count := 0
	for _, v := range []string{in.Text, in.File, in.VideoURL, in.Image} {
		if v != "" {
			count++
		}
	}
	return count
}
