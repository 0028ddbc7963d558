package notification

import (
	"fmt"

	"github.com/google/uuid"
)

// Live event names pushed to websocket clients. Clients match on these
// strings, so they must not change.
const (
	EventJobNew          = "job:new"
	EventJobReopened     = "job:reopened"
	EventJobRecommended  = "job:recommended"
	EventJobMatch        = "job:match"
	EventAppNew          = "app:new"
	EventAppStatus       = "app:status"
	EventJobStatus       = "job:status"
	EventJobDeleted      = "job:deleted"
	EventAccountBanned   = "account:banned"
	EventAccountUnbanned = "account:unbanned"
)

// UserRoom is joined by jobseekers and admins.
func UserRoom(id uuid.UUID) string {
	return fmt.Sprintf("user_%s", id)
}

// RecruiterRoom is joined by recruiters.
func RecruiterRoom(id uuid.UUID) string {
	return fmt.Sprintf("recruiter_%s", id)
}

// RoomFor picks the room a recipient listens on from its role name.
func RoomFor(id uuid.UUID, role string) string {
	if role == "recruiter" {
		return RecruiterRoom(id)
	}
	return UserRoom(id)
}
