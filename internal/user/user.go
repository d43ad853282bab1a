package user

import (
	"time"

	userDatamodel "github.com/frahmantamala/tenant-ledger/internal/core/datamodel/user"
)

// Profile is the signed-in user as shown to themselves.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

func FromDataModel(u *userDatamodel.User) *Profile {
	return &Profile{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Name:      u.Name,
		Roles:     []string{},
		CreatedAt: u.CreatedAt,
	}
}
