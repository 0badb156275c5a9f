package models

import "errors"

// UserPatch is a partial user update. Nil fields are left untouched.
type UserPatch struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Disabled *bool   `json:"disabled"`
}

// PatchPolicy applies a patch to a user under some role's rules.
type PatchPolicy func(u *User, p UserPatch) error

// PatchPolicyFor selects the update policy by the acting user's role.
// Admins may change everything including role and disabled state,
// everyone else is limited to their own profile fields.
func PatchPolicyFor(role Role) PatchPolicy {
	if role == RoleAdmin {
		return AdminPatch
	}
	return SelfPatch
}

// SelfPatch updates profile fields only. Role and disabled flags in
// the patch are ignored.
func SelfPatch(u *User, p UserPatch) error {
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Password != nil {
		if err := u.SetPassword(*p.Password); err != nil {
			return err
		}
	}
	return nil
}

// AdminPatch updates every mutable field.
func AdminPatch(u *User, p UserPatch) error {
	if err := SelfPatch(u, p); err != nil {
		return err
	}
	if p.Role != nil {
		role, ok := ParseRole(*p.Role)
		if !ok {
			return errors.New("unknown role: " + *p.Role)
		}
		u.Role = role
	}
	if p.Disabled != nil {
		u.Disabled = *p.Disabled
	}
	return nil
}
