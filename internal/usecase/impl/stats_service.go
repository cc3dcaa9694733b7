package impl

import (
	"context"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"fairway/internal/domain/entity"
	domainerrors "fairway/internal/domain/errors"
	"fairway/internal/domain/repository"
	"fairway/internal/usecase"
)

// recentLimit is how many courses and rounds the dashboard shows.
const recentLimit = 5

// statsService implements the StatsUsecase interface.
type statsService struct {
	profiles repository.ProfileRepository
	courses  repository.CourseRepository
	rounds   repository.RoundRepository
	logger   *slog.Logger
}

// NewStatsService is the constructor for statsService.
func NewStatsService(
	profiles repository.ProfileRepository,
	courses repository.CourseRepository,
	rounds repository.RoundRepository,
	logger *slog.Logger,
) usecase.StatsUsecase {
	return &statsService{
		profiles: profiles,
		courses:  courses,
		rounds:   rounds,
		logger:   logger,
	}
}

// Dashboard assembles the overview: profile, the five most recently played
// courses, the five newest rounds, stat tiles and the map aggregate.
func (srv *statsService) Dashboard(ctx context.Context, uid string) (*usecase.DashboardView, error) {
	profile, err := srv.profiles.Find(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrNotFound, "profile not found")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	recentCourses, err := srv.courses.ListRecent(ctx, uid, recentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent courses")
	}

	recentRounds, err := srv.rounds.ListRecent(ctx, uid, recentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent rounds")
	}

	allCourses, err := srv.courses.ListAll(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load courses for map")
	}

	allRounds, err := srv.rounds.ListAll(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load rounds for stats")
	}

	tiles := usecase.StatTiles{
		TotalRounds:  profile.TotalRounds,
		TotalCourses: profile.TotalCourses,
	}

	var scoreSum, scoreCount int
	for _, round := range allRounds {
		if round.Score == nil {
			continue
		}
		score := *round.Score
		scoreSum += score
		scoreCount++
		if tiles.BestScore == nil || score < *tiles.BestScore {
			best := score
			tiles.BestScore = &best
		}
	}
	if scoreCount > 0 {
		avg := float64(scoreSum) / float64(scoreCount)
		tiles.AvgScore = &avg
	}

	view := &usecase.DashboardView{
		Profile:       profile,
		RecentCourses: recentCourses,
		RecentRounds:  recentRounds,
		Stats:         tiles,
		Map:           mapAggregate(allCourses),
	}

	return view, nil
}

// mapAggregate computes the bounding box and center over every course with a
// known position. Returns nil when no course carries coordinates.
func mapAggregate(courses []*entity.Course) *usecase.MapAggregate {
	var points orb.MultiPoint
	for _, course := range courses {
		if course.HasCoordinates() {
			points = append(points, orb.Point{course.Lng, course.Lat})
		}
	}
	if len(points) == 0 {
		return nil
	}

	bound := points.Bound()
	center := bound.Center()

	return &usecase.MapAggregate{
		MinLat:    bound.Min.Lat(),
		MinLng:    bound.Min.Lon(),
		MaxLat:    bound.Max.Lat(),
		MaxLng:    bound.Max.Lon(),
		CenterLat: center.Lat(),
		CenterLng: center.Lon(),
		Courses:   len(points),
	}
}
