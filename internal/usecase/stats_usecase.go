package usecase

import (
	"context"

	"fairway/internal/domain/entity"
)

// StatsUsecase assembles the dashboard view.
type StatsUsecase interface {
	// Dashboard returns the signed-in user's overview: recent activity, stat
	// tiles and the map aggregate over course coordinates.
	Dashboard(ctx context.Context, uid string) (*DashboardView, error)
}

// DashboardView is the aggregated dashboard payload.
type DashboardView struct {
	Profile       *entity.Profile  `json:"profile"`
	RecentCourses []*entity.Course `json:"recentCourses"`
	RecentRounds  []*entity.Round  `json:"recentRounds"`
	Stats         StatTiles        `json:"stats"`
	Map           *MapAggregate    `json:"map,omitempty"`
}

// StatTiles are the headline numbers shown on the dashboard.
type StatTiles struct {
	TotalRounds  int64    `json:"totalRounds"`
	TotalCourses int64    `json:"totalCourses"`
	BestScore    *int     `json:"bestScore,omitempty"`
	AvgScore     *float64 `json:"avgScore,omitempty"`
}

// MapAggregate summarizes where the user has played. Courses without
// coordinates are excluded; when none carry coordinates the aggregate is nil.
type MapAggregate struct {
	MinLat    float64 `json:"minLat"`
	MinLng    float64 `json:"minLng"`
	MaxLat    float64 `json:"maxLat"`
	MaxLng    float64 `json:"maxLng"`
	CenterLat float64 `json:"centerLat"`
	CenterLng float64 `json:"centerLng"`
	Courses   int     `json:"courses"`
}
