// Package models: записи детекций и результат анализа изображения.
package models

import "encoding/json"

// DetectionRecord — одна запись истории детекций пользователя.
type DetectionRecord struct {
	ID          int    `json:"id"`
	ObjectName  string `json:"object_name"`
	Advice      string `json:"advice"`
	ImagePath   string `json:"image_path"`
	HeatmapPath string `json:"heatmap_path"`
	CreatedAt   string `json:"created_at"`
}

type detectionWire struct {
	ID             int    `json:"id"`
	ObjectName     string `json:"object_name"`
	ObjectNameAlt  string `json:"objectName"`
	Advice         string `json:"advice"`
	ImagePath      string `json:"image_path"`
	ImagePathAlt   string `json:"imagePath"`
	HeatmapPath    string `json:"heatmap_path"`
	HeatmapPathAlt string `json:"heatmapPath"`
	CreatedAt      string `json:"created_at"`
	CreatedAtAlt   string `json:"createdAt"`
}

// UnmarshalJSON принимает оба варианта написания полей.
func (d *DetectionRecord) UnmarshalJSON(data []byte) error {
	var w detectionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.ID = w.ID
	d.ObjectName = coalesce(w.ObjectName, w.ObjectNameAlt)
	d.Advice = w.Advice
	d.ImagePath = coalesce(w.ImagePath, w.ImagePathAlt)
	d.HeatmapPath = coalesce(w.HeatmapPath, w.HeatmapPathAlt)
	d.CreatedAt = coalesce(w.CreatedAt, w.CreatedAtAlt)
	return nil
}

// DetectionResult — ответ POST /analyze.
type DetectionResult struct {
	ID          int    `json:"id"`
	Detected    string `json:"detected"`
	Advice      string `json:"advice"`
	HeatmapURL  string `json:"heatmap_url"`
	OriginalURL string `json:"original_url"`
}
