// Package session: хранилище текущей сессии в памяти поверх Storage.
package session

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/token"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Snapshot — мгновенный снимок состояния сессии.
type Snapshot struct {
	Token           string
	User            *models.User
	IsAuthenticated bool
}

// Store — единственная точка изменения сессии. Все мутации синхронны:
// чтение сразу после Login наблюдает новые значения. Любое другое чтение
// или запись сессии в обход Store — ошибка проектирования.
type Store struct {
	mu          sync.Mutex
	log         *slog.Logger
	storage     Storage
	now         func() time.Time
	snap        Snapshot
	initialized bool
	disposed    bool
}

// NewStore создаёт Store поверх долговременного хранилища.
func NewStore(log *slog.Logger, storage Storage) *Store {
	return &Store{
		log:     log,
		storage: storage,
		now:     time.Now,
	}
}

// Init восстанавливает сессию из хранилища при запуске приложения.
//
// Повреждённая запись не является ошибкой: хранилище очищается, сессия
// остаётся неаутентифицированной. Истёкший токен также не восстанавливается —
// в отличие от браузерного предка, который оставлял уборку первому 401.
// Повторный Init с тем же содержимым хранилища даёт тот же результат.
func (s *Store) Init() {
	const op = "session.Store.Init"

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	log := s.log.With(sl.Op(op))

	s.snap = Snapshot{}
	s.initialized = true

	tok, userRaw, err := s.storage.Load()
	if err != nil {
		log.Warn("failed to read persisted session", sl.Err(err))
		s.clearStorage(log)
		return
	}
	if tok == "" || len(userRaw) == 0 {
		return
	}

	var user models.User
	if err := json.Unmarshal(userRaw, &user); err != nil {
		log.Warn("corrupt persisted user, dropping session", sl.Err(err))
		s.clearStorage(log)
		return
	}
	if token.Expired(tok, s.now()) {
		log.Info("persisted token expired, dropping session")
		s.clearStorage(log)
		return
	}

	s.snap = Snapshot{Token: tok, User: &user, IsAuthenticated: true}
	log.Info("session restored", slog.String("email", user.Email))
}

// Login сохраняет токен и пользователя: сначала в хранилище, затем в память.
// Ошибка записи в хранилище не прерывает вход — сессия остаётся валидной
// в памяти до конца процесса.
func (s *Store) Login(tok string, user models.User) {
	const op = "session.Store.Login"

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	log := s.log.With(sl.Op(op))

	userRaw, err := json.Marshal(user)
	if err != nil {
		log.Warn("failed to serialize user", sl.Err(err))
	} else if err := s.storage.Save(tok, userRaw); err != nil {
		log.Warn("failed to persist session", sl.Err(err))
	}

	u := user
	s.snap = Snapshot{Token: tok, User: &u, IsAuthenticated: true}
	log.Info("session established", slog.String("email", user.Email))
}

// Logout сбрасывает сессию локально. Бэкенд не уведомляется: токен остаётся
// действительным до естественного истечения (поведение оригинала, см. DESIGN.md).
func (s *Store) Logout() {
	const op = "session.Store.Logout"

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return
	}
	s.clearStorage(s.log.With(sl.Op(op)))
	s.snap = Snapshot{}
}

// Current возвращает снимок текущей сессии.
func (s *Store) Current() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Token возвращает текущий bearer-токен либо пустую строку.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Token
}

// Initialized сообщает, выполнялся ли уже Init. Пока false, охрана маршрутов
// находится в состоянии LOADING и не пускает ни в один защищённый раздел.
func (s *Store) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Dispose завершает работу Store: последующие мутации игнорируются.
// Явный аналог закрытия вкладки браузера для headless-окружения.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
}

func (s *Store) clearStorage(log *slog.Logger) {
	if err := s.storage.Clear(); err != nil {
		log.Warn("failed to clear persisted session", sl.Err(err))
	}
}
