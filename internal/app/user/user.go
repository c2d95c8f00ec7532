/*
Package user contains data structures and platform operations related to user
identity: registration, login, profile management, and the user directory.
*/
package user

// User represents a platform account as returned by the profile and directory endpoints.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`

	// Name is the display name shown across the platform.
	Name string `json:"name"`

	// Email is the sign-in address. The platform treats it as read-only after registration.
	Email string `json:"email"`

	// Bio is the free-form profile description.
	Bio string `json:"bio,omitempty"`

	// ProfilePic is the URL of the uploaded profile picture.
	ProfilePic string `json:"profile_pic,omitempty"`

	// TotalCourses is the number of courses this user has created.
	TotalCourses int `json:"total_course"`

	// AvgRating is the average rating across the user's created courses.
	// The platform reports 1 when no feedback exists yet.
	AvgRating float64 `json:"avg_rating"`
}

// RegisterInput is the payload for creating a new account.
type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// ProfileInput is the payload for updating the authenticated user's profile.
type ProfileInput struct {
	Name       string `json:"name"`
	Bio        string `json:"bio,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
}
