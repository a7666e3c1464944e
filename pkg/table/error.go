package table

import "errors"

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// ErrInvalidName is returned when a table name is too short or too long
const ErrInvalidName = UserError("name must be 3-40 characters")

// IsUserError returns true if err is or wraps a UserError
func IsUserError(err error) bool {
	var ue UserError
	return errors.As(err, &ue)
}
