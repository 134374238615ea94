package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Delay(t *testing.T) {
	p := Default()

	tests := []struct {
		name       string
		retryCount int
		want       time.Duration
	}{
		{name: "first failure", retryCount: 1, want: 5 * time.Minute},
		{name: "second failure doubles", retryCount: 2, want: 10 * time.Minute},
		{name: "third failure doubles again", retryCount: 3, want: 20 * time.Minute},
		{name: "fourth failure hits the cap", retryCount: 4, want: 30 * time.Minute},
		{name: "stays at the cap", retryCount: 10, want: 30 * time.Minute},
		{name: "zero is treated as first", retryCount: 0, want: 5 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Delay(tt.retryCount))
		})
	}
}

func TestPolicy_Exhausted(t *testing.T) {
	p := Default()

	assert.False(t, p.Exhausted(1))
	assert.False(t, p.Exhausted(2))
	assert.True(t, p.Exhausted(3))
	assert.True(t, p.Exhausted(4))
}

func TestPolicy_NextRetry(t *testing.T) {
	p := Default()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	first := p.NextRetry(now, 1)
	require.NotNil(t, first)
	assert.Equal(t, now.Add(5*time.Minute), *first)

	second := p.NextRetry(now, 2)
	require.NotNil(t, second)
	assert.Equal(t, now.Add(10*time.Minute), *second)

	assert.Nil(t, p.NextRetry(now, 3))
}
