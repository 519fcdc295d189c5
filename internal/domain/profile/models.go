package profile

import "time"

type Profile struct {
	ID        string `json:"id"`
	AccountID string `json:"accountId"`

	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Superuser bool   `json:"superuser"`

	Role          string    `json:"role"`
	Department    string    `json:"department"`
	JoinDate      time.Time `json:"joinDate"`
	Phone         string    `json:"phone"`
	Qualification string    `json:"qualification"`
	Address       string    `json:"address"`
	PhotoPath     string    `json:"photoPath,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (p Profile) DisplayName() string {
	if p.FirstName == "" && p.LastName == "" {
		return p.Username
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

type CreateEmployeeInput struct {
	Username      string
	Email         string
	Password      string
	FirstName     string
	LastName      string
	Role          string
	Department    string
	JoinDate      time.Time
	Phone         string
	Qualification string
	Address       string
}

// UpdateEmployeeInput carries partial updates; nil fields keep their
// current value.
type UpdateEmployeeInput struct {
	Email         *string
	FirstName     *string
	LastName      *string
	Role          *string
	Department    *string
	Phone         *string
	Qualification *string
	Address       *string
}

type UpdateContactInput struct {
	Phone         string `json:"phone"`
	Qualification string `json:"qualification"`
	Address       string `json:"address"`
}
