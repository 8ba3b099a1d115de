package user

import "fmt"

// Role names. Approver roles are per level: holding approver_level1 grants
// the capability to resolve level-1 approvals, regardless of which approver
// was named on the booking. Admins hold every capability.
const (
	RoleRequester      = "requester"
	RoleApproverLevel1 = "approver_level1"
	RoleApproverLevel2 = "approver_level2"
	RoleAdmin          = "admin"
)

type User struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Roles        []string `json:"roles"`
}

func (u *User) HasRole(role string) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// HasLevelCapability reports whether the user may resolve approvals at the
// given level (1 or 2).
func (u *User) HasLevelCapability(level int) bool {
	return u.HasRole(ApproverRole(level)) || u.IsAdmin()
}

func ApproverRole(level int) string {
	return fmt.Sprintf("approver_level%d", level)
}
