package dto

type TeamItem struct {
	ID          int64        `json:"id"`
	Name        string       `json:"name"`
	Description *string      `json:"description,omitempty"`
	LeaderID    int64        `json:"leader_id"`
	Version     int64        `json:"version"`
	CreatedAt   string       `json:"created_at"`
	UpdatedAt   *string      `json:"updated_at,omitempty"`
	Members     []MemberItem `json:"members"`
}

type MemberItem struct {
	ID       int64  `json:"id"`
	UserID   int64  `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	LeaderID    int64   `json:"leader_id" binding:"required,gt=0"`
}

type AddMemberRequest struct {
	UserID int64  `json:"user_id" binding:"required,gt=0"`
	Role   string `json:"role" binding:"required,oneof=leader member viewer"`
}

type ChangeLeaderRequest struct {
	NewLeaderID int64 `json:"new_leader_id" binding:"required,gt=0"`
}

type ChangeMemberRoleRequest struct {
	ActorUserID int64  `json:"actor_user_id" binding:"required,gt=0"`
	Role        string `json:"role" binding:"required,oneof=leader member viewer"`
}
