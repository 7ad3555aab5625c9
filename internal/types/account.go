package types

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Account is a registered user. The password hash never leaves the server.
type Account struct {
	ID        int64     `json:"account_id"`
	Email     string    `json:"account_email"`
	Password  string    `json:"-"`
	Name      string    `json:"account_name"`
	Picture   string    `json:"account_picture"`
	CreatedAt time.Time `json:"created_at"`
}

type SignUpRequest struct {
	Email           string `json:"account_email" validate:"required,email,max=255"`
	Password        string `json:"account_password" validate:"required,min=6,max=72"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type SignInRequest struct {
	Email    string `json:"account_email" validate:"required,email"`
	Password string `json:"account_password" validate:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// UpdateProfileRequest uses pointers so omitted fields keep their stored value.
type UpdateProfileRequest struct {
	Name    *string `json:"account_name" validate:"omitempty,max=100"`
	Picture *string `json:"account_picture" validate:"omitempty,max=2048"`
}

type ProfileLocation struct {
	AccountID int64     `json:"account_id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

// Claims is the bearer token payload.
type Claims struct {
	AccountID      int64  `json:"account_id"`
	AccountEmail   string `json:"account_email"`
	AccountName    string `json:"account_name"`
	AccountPicture string `json:"account_picture"`
	jwt.RegisteredClaims
}
