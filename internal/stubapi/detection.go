// Package stubapi: анализ изображений, история и статистика.
package stubapi

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
)

// advice — заготовленные советы по классам объектов; незнакомый класс
// получает общий совет.
var advice = map[string]string{
	"car":        "Maintain a safe following distance and watch for sudden braking.",
	"truck":      "Keep clear of blind spots and allow extra stopping distance.",
	"bus":        "Expect frequent stops; do not overtake near bus bays.",
	"pedestrian": "Slow down and be prepared to stop; yield at crossings.",
	"bicycle":    "Give at least one metre clearance when passing.",
	"stop sign":  "Come to a complete stop and check all directions.",
}

const defaultAdvice = "Stay alert and follow local traffic regulations."

func adviceFor(object string) string {
	if a, ok := advice[strings.ToLower(object)]; ok {
		return a
	}
	return defaultAdvice
}

// handleAnalyze имитирует детекцию: класс объекта выводится из имени файла
// (например car.jpg → car), что делает результат предсказуемым для тестов.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		respondError(w, r, http.StatusBadRequest, "File and email are required")
		return
	}
	email := r.FormValue("email")
	file, header, err := r.FormFile("file")
	if err != nil || email == "" {
		respondError(w, r, http.StatusBadRequest, "File and email are required")
		return
	}
	defer file.Close()

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}

	if sub := s.store.subscriptions[u.ID]; sub != nil && sub.Status == "ACTIVE" {
		if sub.DailyUsed >= sub.DailyLimit {
			respondError(w, r, http.StatusTooManyRequests, "Daily detection limit reached")
			return
		}
		sub.DailyUsed++
	}

	name := header.Filename
	object := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if object == "" {
		object = "car"
	}

	ts := s.store.now().Unix()
	d := &stubDetection{
		ID:          s.store.id(),
		UserID:      u.ID,
		ObjectName:  object,
		Advice:      adviceFor(object),
		ImagePath:   fmt.Sprintf("/media/uploads/input_%d.jpg", ts),
		HeatmapPath: fmt.Sprintf("/media/uploads/heatmap_%d.jpg", ts),
		CreatedAt:   s.store.now(),
	}
	s.store.detections[d.ID] = d

	respondJSON(w, r, http.StatusOK, map[string]any{
		"id":           d.ID,
		"detected":     d.ObjectName,
		"advice":       d.Advice,
		"heatmap_url":  d.HeatmapPath,
		"original_url": d.ImagePath,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	search := strings.ToLower(r.URL.Query().Get("search"))
	dateFrom := r.URL.Query().Get("date_from")
	dateTo := r.URL.Query().Get("date_to")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		respondJSON(w, r, http.StatusOK, []any{})
		return
	}

	items := make([]map[string]any, 0)
	for _, d := range s.store.userDetections(u.ID) {
		if search != "" && !strings.Contains(strings.ToLower(d.ObjectName), search) {
			continue
		}
		if dateFrom != "" {
			if from, err := time.Parse("2006-01-02", dateFrom); err == nil && d.CreatedAt.Before(from) {
				continue
			}
		}
		if dateTo != "" {
			if to, err := time.Parse("2006-01-02", dateTo); err == nil && d.CreatedAt.After(to.Add(24*time.Hour)) {
				continue
			}
		}
		items = append(items, map[string]any{
			"id":           d.ID,
			"object_name":  d.ObjectName,
			"advice":       d.Advice,
			"image_path":   d.ImagePath,
			"heatmap_path": d.HeatmapPath,
			"created_at":   d.CreatedAt.Format(time.RFC3339),
		})
	}
	respondJSON(w, r, http.StatusOK, items)
}

// handleDeleteDetection удаляет запись; чужие записи недоступны.
func (s *Server) handleDeleteDetection(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid detection id")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	d := s.store.detections[id]
	if d == nil || d.UserID != currentUser(r).ID {
		respondError(w, r, http.StatusNotFound, "Detection not found")
		return
	}
	delete(s.store.detections, id)
	respondMessage(w, r, http.StatusOK, "Detection deleted successfully")
}

func (s *Server) handleBulkDelete(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	var ids []int
	if err := render.DecodeJSON(r.Body, &ids); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}

	deleted := 0
	for _, id := range ids {
		if d := s.store.detections[id]; d != nil && d.UserID == u.ID {
			delete(s.store.detections, id)
			deleted++
		}
	}
	respondMessage(w, r, http.StatusOK, fmt.Sprintf("Successfully deleted %d detection(s)", deleted))
}

// handleStats отвечает в camelCase, как настоящий бэкенд.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	s.store.mu.Lock()
	defer s.store.mu.Unlock()
	u := s.store.userByEmail(email)
	if u == nil {
		respondError(w, r, http.StatusNotFound, "User not found")
		return
	}

	detections := s.store.userDetections(u.ID)
	counts := make(map[string]int)
	byDate := make(map[string]int)
	today := s.store.now()
	for i := 0; i < 30; i++ {
		byDate[today.AddDate(0, 0, -i).Format("2006-01-02")] = 0
	}
	for _, d := range detections {
		counts[d.ObjectName]++
		day := d.CreatedAt.Format("2006-01-02")
		if _, ok := byDate[day]; ok {
			byDate[day]++
		}
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"totalDetections":   len(detections),
		"mostCommonObjects": counts,
		"detectionsByDate":  byDate,
		"recentDetections":  len(detections),
	})
}
