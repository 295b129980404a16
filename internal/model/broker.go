package model

import "time"

// Broker (corretor) is a sales agent that leads can be assigned to.
type Broker struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone"`
	Role      *string   `json:"role"`
	Active    bool      `json:"active"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// BrokerInput is the writable part of a Broker.
type BrokerInput struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Phone  *string `json:"phone"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

// MissingRequired returns the names of required fields that are blank.
// Phone is nullable in storage but required when a broker is registered.
func (in BrokerInput) MissingRequired() []string {
	phone := ""
	if in.Phone != nil {
		phone = *in.Phone
	}
	return missing(map[string]string{"name": in.Name, "email": in.Email, "phone": phone})
}
