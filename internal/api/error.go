// Package api: типизированная ошибка запроса и разбор тела ошибки бэкенда.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Error — ошибка, возвращённая бэкендом. Message — человекочитаемый текст,
// собранный из тела ответа; может быть пустым, если тело не разобралось.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// IsUnauthorized сообщает, является ли ошибка отказом аутентификации (401).
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// errorBody — формат тела ошибки бэкенда: detail содержит либо строку,
// либо список ошибок по полям.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

// decodeError нормализует тело ошибки к одной строке: одиночное сообщение
// как есть, список полевых сообщений — через ", ".
func decodeError(status int, body []byte) *Error {
	apiErr := &Error{Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil || len(eb.Detail) == 0 {
		return apiErr
	}

	var single string
	if err := json.Unmarshal(eb.Detail, &single); err == nil {
		apiErr.Message = single
		return apiErr
	}

	var fields []fieldError
	if err := json.Unmarshal(eb.Detail, &fields); err == nil {
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			if f.Msg != "" {
				msgs = append(msgs, f.Msg)
			}
		}
		apiErr.Message = strings.Join(msgs, ", ")
	}
	return apiErr
}
