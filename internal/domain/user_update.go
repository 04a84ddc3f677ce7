package domain

// UserUpdate describes a partial update to a User. Each field is a pointer
// so that "not supplied" (nil) is distinct from "explicitly set": only
// non-nil fields are applied.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
	IsActive  *bool
}

// IsEmpty reports whether the update carries no fields at all.
func (u UserUpdate) IsEmpty() bool {
	return u.Email == nil &&
		u.FirstName == nil &&
		u.LastName == nil &&
		u.Password == nil &&
		u.IsActive == nil
}

// Validate checks every supplied field against the same rules NewUser
// applies. Absent fields are not checked.
func (u UserUpdate) Validate() error {
	if u.Email != nil {
		if *u.Email == "" {
			return ErrEmptyEmail
		}
		if !validEmailFormat(*u.Email) {
			return ErrInvalidEmail
		}
	}
	if u.FirstName != nil && *u.FirstName == "" {
		return ErrEmptyFirstName
	}
	if u.LastName != nil && *u.LastName == "" {
		return ErrEmptyLastName
	}
	if u.Password != nil {
		if *u.Password == "" {
			return ErrEmptyPassword
		}
		if err := validatePassword(*u.Password); err != nil {
			return err
		}
	}
	return nil
}

// Apply copies the supplied fields onto the user. Password is carried as
// plaintext for the store to hash; the store never writes it directly.
func (u UserUpdate) Apply(user *User) {
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Password != nil {
		user.Password = *u.Password
	}
	if u.IsActive != nil {
		user.IsActive = *u.IsActive
	}
}
