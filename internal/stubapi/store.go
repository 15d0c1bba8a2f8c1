// Package stubapi: состояние заглушки бэкенда в памяти.
//
// Хранилище нарочно не долговременное: настоящая персистентность принадлежит
// внешнему бэкенду, заглушка живёт только в рамках процесса.
package stubapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// planConfig — тарифы заглушки: дневной лимит и цена в BDT.
var planConfig = map[string]struct {
	Label       string
	DailyLimit  int
	PriceBDT    int
	Description string
}{
	"basic":    {Label: "Basic", DailyLimit: 50, PriceBDT: 199, Description: "50 detections per day"},
	"pro":      {Label: "Pro", DailyLimit: 200, PriceBDT: 499, Description: "200 detections per day"},
	"ultimate": {Label: "Ultimate", DailyLimit: 1000, PriceBDT: 999, Description: "1000 detections per day"},
}

type stubUser struct {
	ID           int
	Email        string
	FirstName    string
	LastName     string
	PasswordHash []byte
	Role         string
	CreatedAt    time.Time
}

type stubDetection struct {
	ID          int
	UserID      int
	ObjectName  string
	Advice      string
	ImagePath   string
	HeatmapPath string
	CreatedAt   time.Time
}

type stubOrder struct {
	ID            int
	UserID        int
	PlanName      string
	AmountBDT     int
	Currency      string
	BkashNumber   string
	TransactionID string
	Status        string
	UserNote      string
	AdminNote     string
	ReviewedAt    time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type stubSubscription struct {
	UserID     int
	PlanName   string
	DailyLimit int
	DailyUsed  int
	Status     string
	APIKey     string
	StartAt    time.Time
	EndAt      time.Time
}

type store struct {
	mu            sync.Mutex
	users         map[int]*stubUser
	detections    map[int]*stubDetection
	orders        map[int]*stubOrder
	subscriptions map[int]*stubSubscription // по UserID
	nextID        int
	now           func() time.Time
}

func newStore() *store {
	return &store{
		users:         make(map[int]*stubUser),
		detections:    make(map[int]*stubDetection),
		orders:        make(map[int]*stubOrder),
		subscriptions: make(map[int]*stubSubscription),
		nextID:        1,
		now:           time.Now,
	}
}

func (s *store) id() int {
	id := s.nextID
	s.nextID++
	return id
}

func (s *store) userByEmail(email string) *stubUser {
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u
		}
	}
	return nil
}

func (s *store) createUser(firstName, lastName, email, password, role string) (*stubUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("store.createUser: %w", err)
	}
	u := &stubUser{
		ID:           s.id(),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now(),
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *store) createUserPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("store.createUserPassword: %w", err)
	}
	return hash, nil
}

func (s *store) authenticate(email, password string) *stubUser {
	u := s.userByEmail(email)
	if u == nil {
		return nil
	}
	if bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) != nil {
		return nil
	}
	return u
}

// userDetections возвращает детекции пользователя, новые первыми.
func (s *store) userDetections(userID int) []*stubDetection {
	var out []*stubDetection
	for _, d := range s.detections {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// ordersByStatus возвращает заявки с данным статусом (пустой — все), новые первыми.
func (s *store) ordersByStatus(status string) []*stubOrder {
	var out []*stubOrder
	for _, o := range s.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) orderByTransactionID(txn string) *stubOrder {
	for _, o := range s.orders {
		if o.TransactionID == txn {
			return o
		}
	}
	return nil
}

// maskBkash скрывает все цифры номера, кроме последних четырёх.
func maskBkash(number string) string {
	if len(number) <= 4 {
		return number
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}
