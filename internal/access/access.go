// Package access holds the authorization predicates shared by every handler:
// premium gating on the reserved category and ownership checks. Each predicate
// reads the caller's stored flags; nothing is cached between requests.
package access

import "campushub/internal/model"

// CanAccessPremium reports whether the user may see the gated category.
func CanAccessPremium(u *model.User) bool {
	return u != nil && u.IsPaid
}

// IsPremiumRoom reports whether a room belongs to the gated category.
// The topic must be preloaded.
func IsPremiumRoom(room *model.Room) bool {
	return room != nil && room.Topic != nil && room.Topic.IsPremium()
}

// CanAccessRoom combines the two: gated rooms require the premium flag,
// everything else is open.
func CanAccessRoom(u *model.User, room *model.Room) bool {
	if !IsPremiumRoom(room) {
		return true
	}
	return CanAccessPremium(u)
}

// IsRoomHost reports whether the user created the room. Rooms whose host was
// deleted have no owner and fail every ownership check.
func IsRoomHost(u *model.User, room *model.Room) bool {
	return u != nil && room != nil && room.HostID != nil && *room.HostID == u.ID
}

// IsMessageAuthor reports whether the user wrote the comment.
func IsMessageAuthor(u *model.User, msg *model.Message) bool {
	return u != nil && msg != nil && msg.UserID == u.ID
}

// IsAdmin gates the invitation-code administration endpoints.
func IsAdmin(u *model.User) bool {
	return u != nil && u.Role >= 1
}

// FilterTopics drops the gated category for non-premium viewers.
func FilterTopics(topics []model.Topic, u *model.User) []model.Topic {
	if CanAccessPremium(u) {
		return topics
	}
	out := make([]model.Topic, 0, len(topics))
	for _, t := range topics {
		if !t.IsPremium() {
			out = append(out, t)
		}
	}
	return out
}
