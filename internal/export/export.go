// Package export выгружает выбранные записи детекций в JSON или CSV.
//
// Экспортируется ровно выбранное подмножество записей в исходном порядке;
// CSV использует тот же заголовок, что и браузерный оригинал, со стандартным
// экранированием encoding/csv.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

// csvHeader — заголовок CSV, как в браузерном оригинале.
var csvHeader = []string{"ID", "Object Name", "Advice", "Date", "Image Path", "Heatmap Path"}

// Select возвращает записи из items, чьи id входят в ids, сохраняя порядок items.
func Select(items []models.DetectionRecord, ids []int) []models.DetectionRecord {
	selected := make(map[int]bool, len(ids))
	for _, id := range ids {
		selected[id] = true
	}
	var out []models.DetectionRecord
	for _, item := range items {
		if selected[item.ID] {
			out = append(out, item)
		}
	}
	return out
}

// WriteJSON пишет записи как отформатированный JSON-массив.
func WriteJSON(w io.Writer, items []models.DetectionRecord) error {
	const op = "export.WriteJSON"

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// WriteCSV пишет записи в CSV c фиксированным заголовком.
func WriteCSV(w io.Writer, items []models.DetectionRecord) error {
	const op = "export.WriteCSV"

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	for _, item := range items {
		row := []string{
			strconv.Itoa(item.ID),
			item.ObjectName,
			item.Advice,
			item.CreatedAt,
			item.ImagePath,
			item.HeatmapPath,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FileName возвращает имя файла выгрузки в стиле оригинала:
// traffic-ai-export-<unix>.<ext>.
func FileName(ext string, now time.Time) string {
	return fmt.Sprintf("traffic-ai-export-%d.%s", now.Unix(), ext)
}
