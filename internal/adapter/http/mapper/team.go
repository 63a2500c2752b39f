package mapper

import (
	"time"

	"taskhub/internal/adapter/http/dto"
	"taskhub/internal/core/domain"
)

func ToTeamItems(teams []*domain.Team) []dto.TeamItem {
	items := make([]dto.TeamItem, 0, len(teams))
	for _, team := range teams {
		items = append(items, ToTeamItem(team))
	}
	return items
}

func ToTeamItem(team *domain.Team) dto.TeamItem {
	item := dto.TeamItem{
		ID:          team.ID(),
		Name:        team.Name(),
		Description: copyString(team.Description()),
		LeaderID:    team.LeaderID(),
		Version:     team.Version(),
		CreatedAt:   team.CreatedAt().Format(time.RFC3339),
		UpdatedAt:   formatTime(team.UpdatedAt()),
		Members:     []dto.MemberItem{},
	}
	for _, member := range team.Members() {
		item.Members = append(item.Members, ToMemberItem(member))
	}
	return item
}

func ToMemberItem(member domain.TeamMember) dto.MemberItem {
	return dto.MemberItem{
		ID:       member.ID(),
		UserID:   member.UserID(),
		Role:     string(member.Role()),
		JoinedAt: member.JoinedAt().Format(time.RFC3339),
	}
}
