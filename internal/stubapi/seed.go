// Package stubapi: наполнение заглушки данными для тестов и разработки.
package stubapi

import (
	"fmt"
	"time"
)

// SeedUser создаёт пользователя и возвращает его id.
func (s *Server) SeedUser(firstName, lastName, email, password, role string) (int, error) {
	const op = "stubapi.SeedUser"

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	if s.store.userByEmail(email) != nil {
		return 0, fmt.Errorf("%s: email %s already registered", op, email)
	}
	u, err := s.store.createUser(firstName, lastName, email, password, role)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return u.ID, nil
}

// SeedDetection создаёт запись детекции для пользователя и возвращает её id.
func (s *Server) SeedDetection(email, objectName string, createdAt time.Time) (int, error) {
	const op = "stubapi.SeedDetection"

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		return 0, fmt.Errorf("%s: user %s not found", op, email)
	}
	d := &stubDetection{
		ID:          s.store.id(),
		UserID:      u.ID,
		ObjectName:  objectName,
		Advice:      adviceFor(objectName),
		ImagePath:   fmt.Sprintf("/media/uploads/input_%d.jpg", createdAt.Unix()),
		HeatmapPath: fmt.Sprintf("/media/uploads/heatmap_%d.jpg", createdAt.Unix()),
		CreatedAt:   createdAt,
	}
	s.store.detections[d.ID] = d
	return d.ID, nil
}
