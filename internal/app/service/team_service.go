package service

import (
	"context"

	"taskhub/internal/core/domain"
	"taskhub/internal/core/ports"
)

type TeamService struct {
	tx            *Transactor
	newUnitOfWork ports.UnitOfWorkFactory
}

var _ ports.TeamService = (*TeamService)(nil)

func NewTeamService(tx *Transactor, factory ports.UnitOfWorkFactory) *TeamService {
	return &TeamService{tx: tx, newUnitOfWork: factory}
}

func (s *TeamService) CreateTeam(ctx context.Context, input domain.CreateTeamInput) (*domain.Team, error) {
	var team *domain.Team
	err := s.tx.InTransaction(ctx, func(ctx context.Context, work ports.UnitOfWork) error {
		t, err := domain.NewTeam(input.Name, input.Description, input.LeaderID)
		if err != nil {
			return err
		}
		if err := work.Teams().Add(ctx, t); err != nil {
			return err
		}
		team = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) AddMember(ctx context.Context, teamID, userID int64, role domain.TeamRole) (domain.TeamMember, error) {
	team, err := s.mutateTeam(ctx, teamID, func(t *domain.Team) error {
		_, err := t.AddMember(userID, role)
		return err
	})
	if err != nil {
		return domain.TeamMember{}, err
	}
	member, _ := team.Member(userID)
	return member, nil
}

func (s *TeamService) RemoveMember(ctx context.Context, teamID, userID int64, newLeaderID *int64) error {
	_, err := s.mutateTeam(ctx, teamID, func(t *domain.Team) error {
		return t.RemoveMember(userID, newLeaderID)
	})
	return err
}

func (s *TeamService) ChangeLeader(ctx context.Context, teamID, newLeaderID int64) (*domain.Team, error) {
	return s.mutateTeam(ctx, teamID, func(t *domain.Team) error {
		return t.ChangeLeader(newLeaderID)
	})
}

func (s *TeamService) ChangeMemberRole(ctx context.Context, teamID, actorUserID, targetUserID int64, role domain.TeamRole) (*domain.Team, error) {
	return s.mutateTeam(ctx, teamID, func(t *domain.Team) error {
		return t.ChangeMemberRole(actorUserID, targetUserID, role)
	})
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (*domain.Team, error) {
	if teamID <= 0 {
		return nil, invalidID("team id", teamID)
	}
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) (*domain.Team, error) {
		return work.Teams().LoadByID(ctx, teamID)
	})
}

func (s *TeamService) ListTeams(ctx context.Context) ([]*domain.Team, error) {
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) ([]*domain.Team, error) {
		return work.Teams().LoadAll(ctx)
	})
}

func (s *TeamService) ListTeamsByLeader(ctx context.Context, leaderID int64) ([]*domain.Team, error) {
	return query(ctx, s.newUnitOfWork, func(work ports.UnitOfWork) ([]*domain.Team, error) {
		return work.Teams().LoadWhere(ctx, func(t *domain.Team) bool {
			return t.LeaderID() == leaderID
		})
	})
}

func (s *TeamService) mutateTeam(ctx context.Context, teamID int64, mutate func(*domain.Team) error) (*domain.Team, error) {
	if teamID <= 0 {
		return nil, invalidID("team id", teamID)
	}
	var team *domain.Team
	err := s.tx.InTransaction(ctx, func(ctx context.Context, work ports.UnitOfWork) error {
		t, err := work.Teams().LoadByID(ctx, teamID)
		if err != nil {
			return err
		}
		if err := mutate(t); err != nil {
			return err
		}
		work.Teams().MarkUpdated(t)
		team = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}
