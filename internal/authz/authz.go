// Package authz is the pure access-control decision engine. Decisions
// depend only on the principal's identity and the resource's ownership,
// never on request body content or transport details.
package authz

import (
	"github.com/google/uuid"

	"github.com/unievent/unievent-backend/internal/identity"
)

// Action identifies an operation subject to access control.
type Action string

const (
	EventCreate     Action = "event.create"
	EventRead       Action = "event.read"
	EventUpdate     Action = "event.update"
	EventDelete     Action = "event.delete"
	EventLike       Action = "event.like"
	CommentCreate   Action = "comment.create"
	CommentRead     Action = "comment.read"
	CommentDelete   Action = "comment.delete"
	UserModify      Action = "user.modify"
	SocietyUpdate   Action = "society.update"
	SocietyVerify   Action = "society.verify"
	SocietyDelete   Action = "society.delete"
	CommentModerate Action = "comment.moderate"
)

// Stable deny reason codes, mapped by handlers to external statuses.
const (
	ReasonAuthRequired           = "auth_required"
	ReasonSocietyRoleRequired    = "society_role_required"
	ReasonSocietyProfileRequired = "society_profile_required"
	ReasonNotEventOwner          = "not_event_owner"
	ReasonNotSocietyOwner        = "not_society_owner"
	ReasonAdminRequired          = "admin_required"
	ReasonNotAccountOwner        = "not_account_owner"
)

// Resource carries the ownership context of the target entity. Fields not
// relevant to the action are left zero.
type Resource struct {
	OwnerUserID    uuid.UUID // users, comments
	OwnerSocietyID uuid.UUID // events
	SocietyID      uuid.UUID // society-targeted actions
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Decide evaluates (principal, action, resource). It is a pure function.
func Decide(p identity.Principal, action Action, res Resource) Decision {
	switch action {
	case EventRead, CommentRead:
		return allow()

	case EventCreate:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if !p.IsSociety() {
			return deny(ReasonSocietyRoleRequired)
		}
		if p.SocietyID == nil {
			return deny(ReasonSocietyProfileRequired)
		}
		return allow()

	case EventUpdate:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if !p.OwnsSociety(res.OwnerSocietyID) {
			return deny(ReasonNotEventOwner)
		}
		return allow()

	case EventDelete:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if p.IsAdmin() || p.OwnsSociety(res.OwnerSocietyID) {
			return allow()
		}
		return deny(ReasonNotEventOwner)

	case EventLike, CommentCreate:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		return allow()

	case CommentDelete:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if p.IsAdmin() || p.UserID == res.OwnerUserID {
			return allow()
		}
		return deny(ReasonNotAccountOwner)

	case UserModify:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if p.UserID != res.OwnerUserID {
			return deny(ReasonNotAccountOwner)
		}
		return allow()

	case SocietyUpdate:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if !p.OwnsSociety(res.SocietyID) {
			return deny(ReasonNotSocietyOwner)
		}
		return allow()

	case SocietyDelete:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if p.IsAdmin() || p.OwnsSociety(res.SocietyID) {
			return allow()
		}
		return deny(ReasonNotSocietyOwner)

	case SocietyVerify, CommentModerate:
		if !p.Authenticated {
			return deny(ReasonAuthRequired)
		}
		if !p.IsAdmin() {
			return deny(ReasonAdminRequired)
		}
		return allow()
	}

	return deny(ReasonAuthRequired)
}
