package pkg

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalDateString(t *testing.T) {
	t.Run("formats as YYYY-MM-DD in local time", func(t *testing.T) {
		ts := time.Date(2024, 3, 7, 15, 30, 0, 0, time.Local)
		assert.Equal(t, "2024-03-07", LocalDateString(ts))
	})

	t.Run("today matches local date of now", func(t *testing.T) {
		assert.Equal(t, LocalDateString(time.Now()), Today())
	})
}
