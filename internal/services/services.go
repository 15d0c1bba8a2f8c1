// Package services реализует по одному сервису на каждый ресурс бэкенда.
//
// Все сервисы следуют единому протоколу, унаследованному от хуков
// браузерного предка: перед вызовом выставляется loading и сбрасывается
// ошибка; при неудаче из тела ответа собирается человекочитаемое сообщение,
// оно сохраняется в состоянии сервиса, уходит в уведомление и ошибка
// возвращается вызывающему; loading снимается всегда. Отсутствие
// обязательного параметра (например email) прерывает операцию до сети.
package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
)

// Ошибки клиентских проверок: сеть при них не трогается.
var (
	ErrMissingEmail   = errors.New("email is required")
	ErrMissingFile    = errors.New("file is required")
	ErrEmptySelection = errors.New("nothing selected")
)

// Notifier — транзиентные уведомления о результатах действий
// (аналог toast в браузерном оригинале).
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// NopNotifier — заглушка для тестов и фоновых сценариев.
type NopNotifier struct{}

// Success ничего не делает.
func (NopNotifier) Success(string) {}

// Error ничего не делает.
func (NopNotifier) Error(string) {}

// state — общее для всех сервисов состояние операции: флаг выполнения
// и последняя ошибка. Пока Loading() истинно, вызывающая сторона обязана
// блокировать повторную отправку — это единственный механизм защиты от
// дублей запросов.
type state struct {
	mu      sync.Mutex
	loading bool
	errMsg  string
}

// Loading сообщает, выполняется ли сейчас операция сервиса.
func (s *state) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err возвращает сообщение последней ошибки либо пустую строку.
func (s *state) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

func (s *state) begin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = true
	s.errMsg = ""
}

func (s *state) fail(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errMsg = msg
}

func (s *state) done() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
}

// normalize приводит ошибку запроса к отображаемому сообщению:
// текст из тела ответа, если он есть, иначе запасная формулировка ресурса.
func normalize(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// validationMessage формирует единое сообщение из ошибок валидации,
// объединяя нарушения по полям через ", ".
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, v := range verrs {
		switch v.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is a required field", v.Field()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("field %s must be a valid email", v.Field()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s is too short", v.Field()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("field %s is too long", v.Field()))
		case "gt":
			msgs = append(msgs, fmt.Sprintf("field %s must be greater than %s", v.Field(), v.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("field %s must be one of: %s", v.Field(), v.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is not valid", v.Field()))
		}
	}
	return strings.Join(msgs, ", ")
}
