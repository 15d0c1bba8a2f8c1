// Package stubapi реализует заглушку REST API бэкенда VisionFlow.
//
// Заглушка повторяет контракт внешнего бэкенда: те же пути, те же формы
// ответов, включая исторический разнобой snake_case/camelCase и формат
// ошибок {"detail": ...}.
// Используется интеграционными тестами клиента и локальной разработкой
// (cmd/stubserver). Детекция имитируется: объект выбирается по имени файла.
package stubapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/token"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Server — заглушка бэкенда.
type Server struct {
	log      *slog.Logger
	store    *store
	secret   []byte
	tokenTTL time.Duration
	validate *validator.Validate
	requests *prometheus.CounterVec
	registry *prometheus.Registry
}

// New создаёт заглушку с данным секретом подписи токенов.
func New(log *slog.Logger, secret string, tokenTTL time.Duration) *Server {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stubapi_requests_total",
		Help: "Количество обработанных запросов по методу и пути.",
	}, []string{"method", "path"})
	registry.MustRegister(requests)

	return &Server{
		log:      log,
		store:    newStore(),
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
		validate: validator.New(),
		requests: requests,
		registry: registry,
	}
}

// Router собирает маршруты заглушки.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Recoverer,
		s.countRequests,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)
		r.Get("/subscription/plans", s.handlePlans)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/profile", s.handleProfile)
			r.Put("/profile/update", s.handleProfileUpdate)
			r.Post("/analyze", s.handleAnalyze)
			r.Get("/history", s.handleHistory)
			r.Delete("/history/bulk", s.handleBulkDelete)
			r.Delete("/history/{id}", s.handleDeleteDetection)
			r.Get("/stats", s.handleStats)
			r.Get("/subscription/status", s.handleSubscriptionStatus)
			r.Get("/subscription/api-key", s.handleAPIKey)
			r.Post("/orders", s.handleCreateOrder)
			r.Get("/orders/me", s.handleMyOrders)

			// Админские конечные точки
			r.Group(func(r chi.Router) {
				r.Use(s.requireAdmin)
				r.Get("/admin/orders", s.handleAdminOrders)
				r.Patch("/admin/orders/{id}/review", s.handleReviewOrder)
				r.Get("/admin/stats", s.handleAdminStats)
				r.Get("/admin/users", s.handleAdminUsers)
				r.Patch("/admin/users/{id}/role", s.handleUpdateRole)
			})
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.requests.WithLabelValues(r.Method, r.URL.Path).Inc()
		next.ServeHTTP(w, r)
	})
}

// issueToken подписывает access-токен с email и ролью пользователя.
func (s *Server) issueToken(u *stubUser) (string, error) {
	claims := token.Claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(s.store.now()),
			ExpiresAt: jwt.NewNumericDate(s.store.now().Add(s.tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

type ctxKey string

const userKey ctxKey = "user"

// requireAuth проверяет bearer-токен и кладёт пользователя в контекст.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			respondError(w, r, http.StatusUnauthorized, "Not authenticated")
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims := &token.Claims{}
		parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (any, error) {
			return s.secret, nil
		})
		if err != nil || !parsed.Valid {
			respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		s.store.mu.Lock()
		u := s.store.userByEmail(claims.Email)
		s.store.mu.Unlock()
		if u == nil {
			respondError(w, r, http.StatusUnauthorized, "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r, u)))
	})
}

// requireAdmin пускает дальше только пользователей с ролью ADMIN.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r).Role != models.RoleAdmin {
			respondError(w, r, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
