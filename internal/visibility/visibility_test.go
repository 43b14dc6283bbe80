package visibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestImagesVisible(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		want      bool
	}{
		{
			name:      "just created",
			createdAt: now,
			want:      true,
		},
		{
			name:      "three days old",
			createdAt: now.Add(-3 * 24 * time.Hour),
			want:      true,
		},
		{
			name:      "exactly seven days old",
			createdAt: now.Add(-Window),
			want:      true,
		},
		{
			name:      "one second past the window",
			createdAt: now.Add(-Window - time.Second),
			want:      false,
		},
		{
			name:      "ten days old",
			createdAt: now.Add(-10 * 24 * time.Hour),
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ImagesVisible(tt.createdAt, now))
		})
	}
}

func TestCutoff(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	cutoff := Cutoff(now)

	assert.Equal(t, now.Add(-7*24*time.Hour), cutoff)

	// запись ровно на границе не попадает под уборку и остаётся видимой
	assert.False(t, cutoff.After(now.Add(-Window)))
	assert.True(t, ImagesVisible(now.Add(-Window), now))
}
