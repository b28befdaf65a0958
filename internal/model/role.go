package model

import (
	"fmt"
	"strings"
)

// Role: закрытый набор ролей. Нулевое значение невалидно.
type Role uint8

const (
	RoleAdmin Role = iota + 1
	RoleProfessional
	RoleClient
)

// Roles lists every valid role.
var Roles = []Role{RoleAdmin, RoleProfessional, RoleClient}

// ParseRole принимает строковое представление роли из токена.
// "artisan": синоним "professional".
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "admin":
		return RoleAdmin, nil
	case "professional", "artisan":
		return RoleProfessional, nil
	case "client":
		return RoleClient, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleProfessional:
		return "professional"
	case RoleClient:
		return "client"
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProfessional, RoleClient:
		return true
	}
	return false
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid role %d", uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Actor: аутентифицированный пользователь, выполняющий действие.
type Actor struct {
	UserID uint64
	Role   Role
}

func (a Actor) Is(role Role) bool { return a.Role == role }
