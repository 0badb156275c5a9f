package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestSelfPatch_ProfileFieldsOnly(t *testing.T) {
	u := &User{FullName: "Old Name", Email: "old@example.com", Role: RoleUser}
	require.NoError(t, u.SetPassword("original-pw"))

	err := SelfPatch(u, UserPatch{
		FullName: strptr("New Name"),
		Email:    strptr("new@example.com"),
		Password: strptr("fresh-pw"),
		Role:     strptr("admin"), // ignored for non-admin policies
	})

	require.NoError(t, err)
	assert.Equal(t, "New Name", u.FullName)
	assert.Equal(t, "new@example.com", u.Email)
	assert.True(t, u.CheckPassword("fresh-pw"))
	assert.Equal(t, RoleUser, u.Role)
}

func TestAdminPatch_ChangesRole(t *testing.T) {
	u := &User{Username: "bob", Role: RoleUser}

	err := AdminPatch(u, UserPatch{Role: strptr("admin")})

	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, u.Role)
}

func TestAdminPatch_RejectsUnknownRole(t *testing.T) {
	u := &User{Role: RoleUser}

	err := AdminPatch(u, UserPatch{Role: strptr("superuser")})

	assert.Error(t, err)
	assert.Equal(t, RoleUser, u.Role)
}

func TestPatchPolicyFor(t *testing.T) {
	u := &User{Role: RoleGuest}

	err := PatchPolicyFor(RoleGuest)(u, UserPatch{Role: strptr("admin")})
	require.NoError(t, err)
	assert.Equal(t, RoleGuest, u.Role)

	err = PatchPolicyFor(RoleAdmin)(u, UserPatch{Role: strptr("user")})
	require.NoError(t, err)
	assert.Equal(t, RoleUser, u.Role)
}
