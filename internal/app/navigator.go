// Package app: навигатор — headless-замена браузерной адресной строки.
package app

import "sync"

// Маршруты приложения, известные навигатору.
const (
	LoginRoute          = "/login"
	RegisterRoute       = "/register"
	DashboardRoute      = "/dashboard"
	AdminDashboardRoute = "/admin/dashboard"
)

// Navigator хранит текущий маршрут и принимает перенаправления.
// Перехватчик 401 по нему решает, находится ли пользователь на странице
// аутентификации (там перенаправление подавляется, чтобы не затирать
// ошибку формы входа).
type Navigator struct {
	mu      sync.Mutex
	current string
}

// NewNavigator создаёт навигатор с начальным маршрутом.
func NewNavigator(initial string) *Navigator {
	return &Navigator{current: initial}
}

// Current возвращает текущий маршрут.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Navigate переходит на маршрут route.
func (n *Navigator) Navigate(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = route
}

// OnAuthPage сообщает, находится ли пользователь на странице входа
// или регистрации.
func (n *Navigator) OnAuthPage() bool {
	cur := n.Current()
	return cur == LoginRoute || cur == RegisterRoute
}
