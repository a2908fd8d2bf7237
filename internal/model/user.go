package model

type Profile struct {
	Phone                   string `json:"phone" form:"phone" validate:"max=32"`
	Avatar                  string `json:"avatar,omitempty" form:"-"`
	DefaultShippingAddress  string `json:"default_shipping_address" form:"default_shipping_address" validate:"max=255"`
	DefaultShippingCity     string `json:"default_shipping_city" form:"default_shipping_city" validate:"max=128"`
	DefaultShippingPostcode string `json:"default_shipping_postcode" form:"default_shipping_postcode" validate:"max=32"`
	DefaultShippingCountry  string `json:"default_shipping_country" form:"default_shipping_country" validate:"max=128"`
}

type User struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Email       string  `json:"email"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	IsStaff     bool    `json:"is_staff"`
	IsSuperuser bool    `json:"is_superuser"`
	Profile     Profile `json:"profile"`
}

// DisplayName is the full name, or the username when no name is set.
func (u User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}

// ProfileUpdate is the body of a profile PATCH.
type ProfileUpdate struct {
	FirstName string  `json:"first_name" form:"first_name" validate:"max=150"`
	LastName  string  `json:"last_name" form:"last_name" validate:"max=150"`
	Profile   Profile `json:"profile"`
}

// Tokens is the JWT pair issued by the commerce API.
type Tokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// MinPasswordLength matches the min rule on the password fields below.
const MinPasswordLength = 6

// Registration is the sign-up form.
type Registration struct {
	Username        string `json:"username" form:"username" validate:"required,min=2,max=150"`
	Email           string `json:"email" form:"email" validate:"required,email"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" validate:"eqfield=Password"`
	FirstName       string `json:"first_name" form:"first_name" validate:"max=150"`
	LastName        string `json:"last_name" form:"last_name" validate:"max=150"`
}

// Credentials is the sign-in form. Identifier is a username or email.
type Credentials struct {
	Identifier string `json:"username" form:"identifier" validate:"notblank"`
	Password   string `json:"password" form:"password" validate:"required"`
}

type PasswordResetRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	UID             string `json:"uid" form:"uid" validate:"required"`
	Token           string `json:"token" form:"token" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	PasswordConfirm string `json:"password_confirm" form:"password_confirm" validate:"eqfield=Password"`
}
