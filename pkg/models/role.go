package models

import "fmt"

// Role은 사용자 권한입니다. user, admin 두 값만 허용합니다
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// In은 역할이 허용 목록에 포함되는지 확인합니다
func (r Role) In(roles ...Role) bool {
	for _, allowed := range roles {
		if r == allowed {
			return true
		}
	}
	return false
}
