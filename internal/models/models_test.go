package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUser_UnmarshalJSON проверяет нормализацию обоих написаний полей:
// /login отвечает в snake_case, /profile — в camelCase.
func TestUser_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want User
	}{
		{
			name: "snake_case",
			body: `{"id":1,"email":"a@b.c","first_name":"Ann","last_name":"Lee","role":"USER","created_at":"2026-01-01"}`,
			want: User{ID: 1, Email: "a@b.c", FirstName: "Ann", LastName: "Lee", Role: "USER", CreatedAt: "2026-01-01"},
		},
		{
			name: "camelCase",
			body: `{"id":2,"email":"a@b.c","firstName":"Ann","lastName":"Lee","role":"ADMIN","createdAt":"2026-01-01"}`,
			want: User{ID: 2, Email: "a@b.c", FirstName: "Ann", LastName: "Lee", Role: "ADMIN", CreatedAt: "2026-01-01"},
		},
		{
			name: "snake_case wins when both present",
			body: `{"id":3,"first_name":"Snake","firstName":"Camel"}`,
			want: User{ID: 3, FirstName: "Snake"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got User
			require.NoError(t, json.Unmarshal([]byte(tt.body), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, User{Role: RoleAdmin}.IsAdmin())
	assert.False(t, User{Role: RoleUser}.IsAdmin())
	assert.False(t, User{}.IsAdmin())
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Ann Lee", User{FirstName: "Ann", LastName: "Lee"}.FullName())
	assert.Equal(t, "Ann", User{FirstName: "Ann"}.FullName())
	assert.Equal(t, "Lee", User{LastName: "Lee"}.FullName())
}

// TestProfile_UnmarshalJSON проверяет camelCase-ответ /profile целиком.
func TestProfile_UnmarshalJSON(t *testing.T) {
	body := `{"id":5,"email":"a@b.c","firstName":"Ann","lastName":"Lee","role":"USER","totalDetections":17}`

	var got Profile
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, 17, got.TotalDetections)
}

// TestDetectionRecord_UnmarshalJSON проверяет оба написания полей записи.
func TestDetectionRecord_UnmarshalJSON(t *testing.T) {
	snake := `{"id":1,"object_name":"car","advice":"x","image_path":"/a","heatmap_path":"/b","created_at":"2026-01-01"}`
	camel := `{"id":1,"objectName":"car","advice":"x","imagePath":"/a","heatmapPath":"/b","createdAt":"2026-01-01"}`

	var a, b DetectionRecord
	require.NoError(t, json.Unmarshal([]byte(snake), &a))
	require.NoError(t, json.Unmarshal([]byte(camel), &b))
	assert.Equal(t, a, b)
	assert.Equal(t, "car", a.ObjectName)
}

// TestStatsSummary_UnmarshalJSON проверяет camelCase-ответ /stats.
func TestStatsSummary_UnmarshalJSON(t *testing.T) {
	body := `{"totalDetections":9,"mostCommonObjects":{"car":5},"detectionsByDate":{"2026-08-01":2},"recentDetections":3}`

	var got StatsSummary
	require.NoError(t, json.Unmarshal([]byte(body), &got))
	assert.Equal(t, 9, got.TotalDetections)
	assert.Equal(t, map[string]int{"car": 5}, got.MostCommonObjects)
	assert.Equal(t, map[string]int{"2026-08-01": 2}, got.DetectionsByDate)
	assert.Equal(t, 3, got.RecentDetections)
}

// TestPaymentOrder_CanReview: действия проверки доступны только для PENDING.
func TestPaymentOrder_CanReview(t *testing.T) {
	assert.True(t, PaymentOrder{Status: OrderPending}.CanReview())
	assert.False(t, PaymentOrder{Status: OrderApproved}.CanReview())
	assert.False(t, PaymentOrder{Status: OrderRejected}.CanReview())
}
