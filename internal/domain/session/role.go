package session

import "strings"

// Role identifies who is asking. Anything that is not the photographer is a client.
type Role string

const (
	RolePhotographer Role = "photographer"
	RoleClient       Role = "client"
)

func ParseRole(value string) Role {
	if strings.TrimSpace(value) == string(RolePhotographer) {
		return RolePhotographer
	}
	return RoleClient
}
