// Package user provides farmer profile management.
//
// Only the minimal identity needed to route advice is stored: a display name,
// a phone number for OTP login (issued elsewhere), a preferred language for
// localized advisory text, and a home location. No location history and no
// imagery is ever persisted here.
package user

import "time"

// User represents a farmer account.
type User struct {
	// ID is the unique user identifier (format: usr_XXXX).
	ID string

	// Name is the farmer's display name.
	Name string

	// Phone is the login phone number, stored in E.164 form.
	Phone string

	// Language is the preferred language code for advisory text (e.g. "hi", "mr").
	Language string

	// Location is the farmer's home district, free text.
	Location string

	// CreatedAt is when the user was created.
	CreatedAt time.Time

	// UpdatedAt is when the user was last updated.
	UpdatedAt time.Time
}
