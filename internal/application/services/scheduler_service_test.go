package services

import (
	"testing"
	"time"

	"github.com/mysahara/health-assistant/backend/pkg/config"
	"github.com/stretchr/testify/assert"
)

func TestSchedulerNextRun(t *testing.T) {
	scheduler := NewSchedulerService(config.SchedulerConfig{SummaryHour: 8, SummaryMinute: 0}, nil, nil)

	beforeSend := time.Date(2026, time.March, 10, 6, 30, 0, 0, time.UTC)
	next := scheduler.nextRun(beforeSend)
	assert.Equal(t, time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC), next)

	afterSend := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	next = scheduler.nextRun(afterSend)
	assert.Equal(t, time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), next)

	exactlyAtSend := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	next = scheduler.nextRun(exactlyAtSend)
	assert.Equal(t, time.Date(2026, time.March, 11, 8, 0, 0, 0, time.UTC), next)
}
