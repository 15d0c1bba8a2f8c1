// Package guard реализует охрану защищённых разделов приложения.
//
// Для каждого защищённого раздела решение принимается по таблице
// LOADING → {AUTHORIZED, REDIRECTING}: пока сессия инициализируется,
// не показывается ничего, кроме индикатора загрузки; неаутентифицированный
// пользователь перенаправляется на /login; аутентифицированный без роли
// администратора — из админских разделов на /dashboard. Содержимое раздела
// рендерится тогда и только тогда, когда решение — AUTHORIZED.
//
// Это навигационная вежливость, а не граница безопасности: настоящую
// авторизацию выполняет бэкенд на каждом запросе.
package guard

import "github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"

// Area — тип защищённого раздела.
type Area int

const (
	// AreaUser — обычный пользовательский раздел (/dashboard...).
	AreaUser Area = iota
	// AreaAdmin — админский раздел (/admin/dashboard...).
	AreaAdmin
)

// State — состояние охраны.
type State int

const (
	// StateLoading — сессия ещё инициализируется; показывать только индикатор.
	StateLoading State = iota
	// StateAuthorized — доступ разрешён, содержимое раздела рендерится.
	StateAuthorized
	// StateRedirecting — доступ запрещён, выполняется переход на Target.
	StateRedirecting
)

// Пункты назначения перенаправлений.
const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
)

// View — то, что охрана знает о сессии в момент решения.
type View struct {
	Loading       bool
	Authenticated bool
	Role          string
}

// Decision — результат охраны: состояние и, для REDIRECTING, куда идти.
type Decision struct {
	State  State
	Target string
}

// Evaluate принимает решение для раздела area при состоянии сессии view.
func Evaluate(view View, area Area) Decision {
	if view.Loading {
		return Decision{State: StateLoading}
	}
	if !view.Authenticated {
		return Decision{State: StateRedirecting, Target: LoginRoute}
	}
	if area == AreaAdmin && view.Role != models.RoleAdmin {
		return Decision{State: StateRedirecting, Target: DashboardRoute}
	}
	return Decision{State: StateAuthorized}
}
