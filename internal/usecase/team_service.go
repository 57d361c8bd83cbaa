package usecase

import (
	"context"
	"fmt"

	"github.com/courtsync/courtsync/internal/domain/team"
	"github.com/courtsync/courtsync/internal/platform/logging"
)

type TeamService struct {
	teamRepo team.Repository
	logger   *logging.Logger
}

func NewTeamService(teamRepo team.Repository, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TeamService{teamRepo: teamRepo, logger: logger}
}

func (s *TeamService) ListTeams(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) GetTeam(ctx context.Context, teamID int64) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	if teamID <= 0 {
		return team.Team{}, fmt.Errorf("%w: team id must be greater than zero", ErrInvalidInput)
	}

	item, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %d", ErrNotFound, teamID)
	}
	return item, nil
}

// SeedDefaultTeams writes the 30 NBA franchises, leaving rows that
// already exist untouched. Safe to call repeatedly.
func (s *TeamService) SeedDefaultTeams(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SeedDefaultTeams")
	defer span.End()

	count, err := s.teamRepo.SeedAll(ctx, team.DefaultTeams())
	if err != nil {
		return 0, fmt.Errorf("seed teams: %w", err)
	}
	s.logger.InfoContext(ctx, "seeded teams", "inserted", count)
	return count, nil
}
