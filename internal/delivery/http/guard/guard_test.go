package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"fairway/internal/domain/entity"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		status       entity.SessionStatus
		wantPath     string
		wantRedirect bool
	}{
		{
			name:     "anonymous on login stays",
			path:     PathLogin,
			status:   entity.SessionAnonymous,
			wantPath: PathLogin,
		},
		{
			name:         "anonymous on protected page redirects to login",
			path:         PathDashboard,
			status:       entity.SessionAnonymous,
			wantPath:     PathLogin,
			wantRedirect: true,
		},
		{
			name:         "unknown status treated as signed out",
			path:         PathHistory,
			status:       entity.SessionUnknown,
			wantPath:     PathLogin,
			wantRedirect: true,
		},
		{
			name:         "authenticating still counts as signed out",
			path:         PathProfile,
			status:       entity.SessionAuthenticating,
			wantPath:     PathLogin,
			wantRedirect: true,
		},
		{
			name:         "ready on login bounces to dashboard",
			path:         PathLogin,
			status:       entity.SessionReady,
			wantPath:     PathDashboard,
			wantRedirect: true,
		},
		{
			name:         "profile loading counts as signed in",
			path:         PathLogin,
			status:       entity.SessionProfileLoading,
			wantPath:     PathDashboard,
			wantRedirect: true,
		},
		{
			name:     "ready renders requested page",
			path:     PathAddRound,
			status:   entity.SessionReady,
			wantPath: PathAddRound,
		},
		{
			name:         "unknown path falls through to dashboard when signed in",
			path:         "/no-such-page",
			status:       entity.SessionReady,
			wantPath:     PathDashboard,
			wantRedirect: true,
		},
		{
			name:         "auth check precedes catch-all for unknown paths",
			path:         "/no-such-page",
			status:       entity.SessionAnonymous,
			wantPath:     PathLogin,
			wantRedirect: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.path, tt.status)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantRedirect, got.Redirect)
		})
	}
}
