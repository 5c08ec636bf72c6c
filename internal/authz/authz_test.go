package authz

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/unievent/unievent-backend/internal/identity"
	"github.com/unievent/unievent-backend/internal/models"
)

func student() identity.Principal {
	return identity.Principal{
		UserID:        uuid.New(),
		Username:      "student",
		Role:          models.RoleStudent,
		Authenticated: true,
	}
}

func admin() identity.Principal {
	return identity.Principal{
		UserID:        uuid.New(),
		Username:      "admin",
		Role:          models.RoleAdmin,
		Authenticated: true,
	}
}

func societyOwner(societyID uuid.UUID) identity.Principal {
	return identity.Principal{
		UserID:        uuid.New(),
		Username:      "society",
		Role:          models.RoleSociety,
		SocietyID:     &societyID,
		Authenticated: true,
	}
}

func TestDecideEventCreate(t *testing.T) {
	mine := uuid.New()

	societyNoProfile := student()
	societyNoProfile.Role = models.RoleSociety

	tests := []struct {
		name    string
		p       identity.Principal
		allowed bool
		reason  string
	}{
		{"anonymous", identity.Anonymous(), false, ReasonAuthRequired},
		{"student", student(), false, ReasonSocietyRoleRequired},
		{"admin", admin(), false, ReasonSocietyRoleRequired},
		{"society without profile", societyNoProfile, false, ReasonSocietyProfileRequired},
		{"society with profile", societyOwner(mine), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.p, EventCreate, Resource{})
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecideEventUpdate(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()

	tests := []struct {
		name    string
		p       identity.Principal
		res     Resource
		allowed bool
		reason  string
	}{
		{"anonymous", identity.Anonymous(), Resource{OwnerSocietyID: mine}, false, ReasonAuthRequired},
		{"owner", societyOwner(mine), Resource{OwnerSocietyID: mine}, true, ""},
		{"other society", societyOwner(other), Resource{OwnerSocietyID: mine}, false, ReasonNotEventOwner},
		{"admin cannot edit content", admin(), Resource{OwnerSocietyID: mine}, false, ReasonNotEventOwner},
		{"student", student(), Resource{OwnerSocietyID: mine}, false, ReasonNotEventOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.p, EventUpdate, tt.res)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestDecideEventDelete(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()

	assert.True(t, Decide(admin(), EventDelete, Resource{OwnerSocietyID: mine}).Allowed)
	assert.True(t, Decide(societyOwner(mine), EventDelete, Resource{OwnerSocietyID: mine}).Allowed)

	d := Decide(societyOwner(other), EventDelete, Resource{OwnerSocietyID: mine})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotEventOwner, d.Reason)

	d = Decide(identity.Anonymous(), EventDelete, Resource{OwnerSocietyID: mine})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAuthRequired, d.Reason)
}

func TestDecideReadsAreOpen(t *testing.T) {
	assert.True(t, Decide(identity.Anonymous(), EventRead, Resource{}).Allowed)
	assert.True(t, Decide(identity.Anonymous(), CommentRead, Resource{}).Allowed)
	assert.True(t, Decide(student(), EventRead, Resource{}).Allowed)
}

func TestDecideInteractionsNeedAuth(t *testing.T) {
	for _, action := range []Action{EventLike, CommentCreate} {
		d := Decide(identity.Anonymous(), action, Resource{})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAuthRequired, d.Reason)

		assert.True(t, Decide(student(), action, Resource{}).Allowed)
		assert.True(t, Decide(admin(), action, Resource{}).Allowed)
	}
}

func TestDecideCommentDelete(t *testing.T) {
	author := student()
	stranger := student()

	assert.True(t, Decide(author, CommentDelete, Resource{OwnerUserID: author.UserID}).Allowed)
	assert.True(t, Decide(admin(), CommentDelete, Resource{OwnerUserID: author.UserID}).Allowed)

	d := Decide(stranger, CommentDelete, Resource{OwnerUserID: author.UserID})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotAccountOwner, d.Reason)
}

func TestDecideUserModify(t *testing.T) {
	owner := student()

	assert.True(t, Decide(owner, UserModify, Resource{OwnerUserID: owner.UserID}).Allowed)

	d := Decide(admin(), UserModify, Resource{OwnerUserID: owner.UserID})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonNotAccountOwner, d.Reason)

	d = Decide(identity.Anonymous(), UserModify, Resource{OwnerUserID: owner.UserID})
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAuthRequired, d.Reason)
}

func TestDecideSocietyActions(t *testing.T) {
	mine := uuid.New()
	other := uuid.New()

	assert.True(t, Decide(societyOwner(mine), SocietyUpdate, Resource{SocietyID: mine}).Allowed)
	assert.False(t, Decide(societyOwner(other), SocietyUpdate, Resource{SocietyID: mine}).Allowed)
	assert.False(t, Decide(admin(), SocietyUpdate, Resource{SocietyID: mine}).Allowed)

	assert.True(t, Decide(admin(), SocietyDelete, Resource{SocietyID: mine}).Allowed)
	assert.True(t, Decide(societyOwner(mine), SocietyDelete, Resource{SocietyID: mine}).Allowed)
	assert.False(t, Decide(societyOwner(other), SocietyDelete, Resource{SocietyID: mine}).Allowed)
}

func TestDecideAdminOnlyActions(t *testing.T) {
	mine := uuid.New()

	for _, action := range []Action{SocietyVerify, CommentModerate} {
		assert.True(t, Decide(admin(), action, Resource{SocietyID: mine}).Allowed)

		d := Decide(societyOwner(mine), action, Resource{SocietyID: mine})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAdminRequired, d.Reason)

		d = Decide(identity.Anonymous(), action, Resource{SocietyID: mine})
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonAuthRequired, d.Reason)
	}
}

func TestDecideUnknownActionDenied(t *testing.T) {
	d := Decide(admin(), Action("unknown"), Resource{})
	assert.False(t, d.Allowed)
}
