package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// TestEvaluate проверяет полную таблицу решений охраны маршрутов.
func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		view View
		area Area
		want Decision
	}{
		{
			name: "loading user area",
			view: View{Loading: true},
			area: AreaUser,
			want: Decision{State: StateLoading},
		},
		{
			name: "loading admin area",
			view: View{Loading: true, Authenticated: true, Role: models.RoleAdmin},
			area: AreaAdmin,
			want: Decision{State: StateLoading},
		},
		{
			name: "anonymous user area",
			view: View{},
			area: AreaUser,
			want: Decision{State: StateRedirecting, Target: LoginRoute},
		},
		{
			name: "anonymous admin area",
			view: View{},
			area: AreaAdmin,
			want: Decision{State: StateRedirecting, Target: LoginRoute},
		},
		{
			name: "user in user area",
			view: View{Authenticated: true, Role: models.RoleUser},
			area: AreaUser,
			want: Decision{State: StateAuthorized},
		},
		{
			name: "user in admin area",
			view: View{Authenticated: true, Role: models.RoleUser},
			area: AreaAdmin,
			want: Decision{State: StateRedirecting, Target: DashboardRoute},
		},
		{
			name: "admin in user area",
			view: View{Authenticated: true, Role: models.RoleAdmin},
			area: AreaUser,
			want: Decision{State: StateAuthorized},
		},
		{
			name: "admin in admin area",
			view: View{Authenticated: true, Role: models.RoleAdmin},
			area: AreaAdmin,
			want: Decision{State: StateAuthorized},
		},
		{
			name: "authenticated without role in admin area",
			view: View{Authenticated: true},
			area: AreaAdmin,
			want: Decision{State: StateRedirecting, Target: DashboardRoute},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.view, tt.area))
		})
	}
}

// TestEvaluate_LoadingWins убеждается, что Loading имеет приоритет над
// любыми остальными полями состояния.
func TestEvaluate_LoadingWins(t *testing.T) {
	view := View{Loading: true, Authenticated: true, Role: models.RoleAdmin}
	assert.Equal(t, StateLoading, Evaluate(view, AreaUser).State)
	assert.Equal(t, StateLoading, Evaluate(view, AreaAdmin).State)
}
