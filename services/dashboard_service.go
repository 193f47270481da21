package services

import (
	"context"
	"log/slog"

	"github.com/ulticlub/roster-service/models"
	"github.com/ulticlub/roster-service/repositories"
	"golang.org/x/sync/errgroup"
)

type DashboardService interface {
	GetStats(ctx context.Context, caller models.Caller) (models.DashboardStats, error)
}

type dashboardService struct {
	playerRepo     repositories.PlayerRepository
	tournamentRepo repositories.TournamentRepository
	rosterRepo     repositories.RosterRepository
	logger         *slog.Logger
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	tournamentRepo repositories.TournamentRepository,
	rosterRepo repositories.RosterRepository,
	logger *slog.Logger,
) DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &dashboardService{
		playerRepo:     playerRepo,
		tournamentRepo: tournamentRepo,
		rosterRepo:     rosterRepo,
		logger:         logger,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, caller models.Caller) (models.DashboardStats, error) {
	if err := requireAdmin(caller); err != nil {
		return models.DashboardStats{}, err
	}

	var stats models.DashboardStats
	g, gCtx := errgroup.WithContext(ctx)
	count := func(op string, dst *int, fn func(context.Context) (int, error)) {
		g.Go(func() error {
			n, err := fn(gCtx)
			if err != nil {
				return storageError(gCtx, s.logger, op, err)
			}
			*dst = n
			return nil
		})
	}
	count("count players", &stats.PlayersTotal, func(ctx context.Context) (int, error) {
		return s.playerRepo.Count(ctx, false)
	})
	count("count active players", &stats.ActivePlayers, func(ctx context.Context) (int, error) {
		return s.playerRepo.Count(ctx, true)
	})
	count("count tournaments", &stats.TournamentsTotal, s.tournamentRepo.Count)
	count("count roster entries", &stats.RosterEntriesTotal, s.rosterRepo.Count)

	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, err
	}
	return stats, nil
}
