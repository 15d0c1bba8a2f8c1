package export

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiumallimon/vision-flow-traffic-ai/internal/models"
)

func sampleRecords() []models.DetectionRecord {
	return []models.DetectionRecord{
		{
			ID:          1,
			ObjectName:  "car",
			Advice:      "Maintain a safe following distance and watch for sudden braking.",
			ImagePath:   "/media/uploads/input_1.jpg",
			HeatmapPath: "/media/uploads/heatmap_1.jpg",
			CreatedAt:   "2026-08-01T10:00:00Z",
		},
		{
			ID:          2,
			ObjectName:  "bus",
			Advice:      "Expect frequent stops; do not overtake near bus bays.",
			ImagePath:   "/media/uploads/input_2.jpg",
			HeatmapPath: "/media/uploads/heatmap_2.jpg",
			CreatedAt:   "2026-08-02T10:00:00Z",
		},
		{
			ID:          3,
			ObjectName:  "pedestrian",
			Advice:      "Slow down and be prepared to stop; yield at crossings.",
			ImagePath:   "/media/uploads/input_3.jpg",
			HeatmapPath: "/media/uploads/heatmap_3.jpg",
			CreatedAt:   "2026-08-03T10:00:00Z",
		},
	}
}

// TestSelect проверяет, что выборка сохраняет исходный порядок записей
// и игнорирует неизвестные id.
func TestSelect(t *testing.T) {
	items := sampleRecords()

	tests := []struct {
		name    string
		ids     []int
		wantIDs []int
	}{
		{name: "subset keeps source order", ids: []int{3, 1}, wantIDs: []int{1, 3}},
		{name: "all", ids: []int{1, 2, 3}, wantIDs: []int{1, 2, 3}},
		{name: "unknown ids ignored", ids: []int{42, 2}, wantIDs: []int{2}},
		{name: "empty selection", ids: nil, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(items, tt.ids)
			var ids []int
			for _, item := range got {
				ids = append(ids, item.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

// TestWriteCSV проверяет точный формат выгрузки: заголовок и строки.
func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()[:1]))

	want := "ID,Object Name,Advice,Date,Image Path,Heatmap Path\n" +
		"1,car,Maintain a safe following distance and watch for sudden braking.," +
		"2026-08-01T10:00:00Z,/media/uploads/input_1.jpg,/media/uploads/heatmap_1.jpg\n"
	assert.Equal(t, want, buf.String())
}

// TestWriteCSV_Empty проверяет, что пустая выборка даёт только заголовок.
func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	assert.Equal(t, "ID,Object Name,Advice,Date,Image Path,Heatmap Path\n", buf.String())
}

// TestWriteJSON проверяет, что выгрузка читается обратно без потерь.
func TestWriteJSON(t *testing.T) {
	items := sampleRecords()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, items))

	var got []models.DetectionRecord
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, items, got)
}

func TestFileName(t *testing.T) {
	now := time.Unix(1756300000, 0)
	assert.Equal(t, "traffic-ai-export-1756300000.json", FileName("json", now))
	assert.Equal(t, "traffic-ai-export-1756300000.csv", FileName("csv", now))
}
