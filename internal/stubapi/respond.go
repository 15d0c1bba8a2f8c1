// Package stubapi: формирование ответов в формате настоящего бэкенда.
package stubapi

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

// detailError — формат ошибки бэкенда VisionFlow: одно сообщение в detail.
type detailError struct {
	Detail any `json:"detail"`
}

type fieldError struct {
	Msg string `json:"msg"`
}

func respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, detailError{Detail: msg})
}

// respondValidation отдаёт 422 со списком полевых сообщений — как
// валидация запроса в настоящем бэкенде.
func respondValidation(w http.ResponseWriter, r *http.Request, errs validator.ValidationErrors) {
	fields := make([]fieldError, 0, len(errs))
	for _, v := range errs {
		fields = append(fields, fieldError{Msg: "field " + v.Field() + " is not valid"})
	}
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, detailError{Detail: fields})
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

func respondMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, map[string]string{"message": msg})
}
