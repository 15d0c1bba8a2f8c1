// Package services: отправка изображения на анализ.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/api"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/lib/sl"
	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// Detection — сервис анализа изображений.
type Detection struct {
	state
	log    *slog.Logger
	client *api.Client
	notify Notifier
}

// NewDetection создаёт сервис анализа.
func NewDetection(log *slog.Logger, client *api.Client, notify Notifier) *Detection {
	return &Detection{log: log, client: client, notify: notify}
}

// Analyze отправляет изображение на детекцию. Без email или файла запрос
// не выполняется: операция завершается ошибкой ещё на клиенте.
func (d *Detection) Analyze(ctx context.Context, fileName string, file io.Reader, email string) (*models.DetectionResult, error) {
	const op = "services.Detection.Analyze"

	d.begin()
	defer d.done()
	log := d.log.With(sl.Op(op))

	if email == "" {
		d.fail(ErrMissingEmail.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrMissingEmail)
	}
	if file == nil {
		d.fail(ErrMissingFile.Error())
		return nil, fmt.Errorf("%s: %w", op, ErrMissingFile)
	}

	var resp models.DetectionResult
	err := d.client.PostMultipart(ctx, "/analyze", "file", fileName, file, map[string]string{"email": email}, &resp)
	if err != nil {
		msg := normalize(err, "Image analysis failed")
		log.Error("analyze failed", sl.Err(err))
		d.fail(msg)
		d.notify.Error(msg)
		return nil, err
	}

	log.Info("image analyzed", slog.String("detected", resp.Detected))
	d.notify.Success("Detected: " + resp.Detected)
	return &resp, nil
}
