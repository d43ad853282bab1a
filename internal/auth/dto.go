package auth

import (
	"strings"

	"github.com/frahmantamala/tenant-ledger/internal"
	"github.com/frahmantamala/tenant-ledger/internal/core/common/validation"
)

// LoginDTO is the transport shape used by the HTTP handler to accept login requests.
type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (d LoginDTO) Normalize() LoginDTO {
	d.Email = strings.ToLower(strings.TrimSpace(d.Email))
	return d
}

func (d LoginDTO) Validate() *internal.AppError {
	return validation.Struct(d)
}

func (d RefreshTokenDTO) Validate() *internal.AppError {
	return validation.Struct(d)
}
