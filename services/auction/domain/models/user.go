package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// UserType distinguishes the two caller roles the gateway can assert.
type UserType int

const (
	// BuyerOrSeller may create auctions and place bids.
	BuyerOrSeller UserType = iota
	// Support is a staff identity; rendered without a display name.
	Support
)

// User is the opaque caller identity handed to the core by the authentication
// gateway. The core never parses credentials; it only carries the identity.
//
// Wire form: "BuyerOrSeller|<sub>|<name>" or "Support|<sub>".
type User struct {
	ID   string
	Name string
	Type UserType
}

// NewUser constructs a User, rejecting identities without a subject.
func NewUser(sub, name string, typ UserType) (User, error) {
	if sub == "" {
		return User{}, fmt.Errorf("user subject must not be empty")
	}
	if typ == BuyerOrSeller && name == "" {
		return User{}, fmt.Errorf("buyer-or-seller user must have a display name")
	}
	return User{ID: sub, Name: name, Type: typ}, nil
}

// String renders the wire form used in events and auction views.
func (u User) String() string {
	if u.Type == Support {
		return "Support|" + u.ID
	}
	return "BuyerOrSeller|" + u.ID + "|" + u.Name
}

// ParseUser parses the wire form produced by String.
func ParseUser(s string) (User, error) {
	parts := strings.Split(s, "|")
	switch {
	case len(parts) == 2 && parts[0] == "Support":
		return NewUser(parts[1], "", Support)
	case len(parts) == 3 && parts[0] == "BuyerOrSeller":
		return NewUser(parts[1], parts[2], BuyerOrSeller)
	default:
		return User{}, fmt.Errorf("malformed user %q", s)
	}
}

// MarshalJSON encodes the user as its wire string.
func (u User) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.String())
}

// UnmarshalJSON decodes the wire string form.
func (u *User) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseUser(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
