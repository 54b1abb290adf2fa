package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udpschedule/scheduler-core/internal/domain"
)

func buildScheduleForTest(t *testing.T, capacity, enrolled int) *domain.Schedule {
	t.Helper()
	section, err := domain.NewSection("S1", "BIO101", nil, capacity, "Science", "Room 1")
	require.NoError(t, err)
	section = section.WithPeriod("P1")

	schedule := domain.NewSchedule([]domain.Section{section})
	for i := 0; i < enrolled; i++ {
		studentID := domain.StudentID(rune('A' + i))
		schedule.AddAssignment(domain.Assignment{StudentID: studentID, SectionID: "S1"})
	}
	return schedule
}

func TestAnalyze_ClassifiesByThreshold(t *testing.T) {
	cases := []struct {
		name      string
		capacity  int
		enrolled  int
		wantLevel Level
	}{
		{"low", 10, 1, LevelLow},
		{"good", 10, 5, LevelGood},
		{"high", 10, 10, LevelHigh},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			schedule := buildScheduleForTest(t, c.capacity, c.enrolled)
			stats := Analyze(schedule, domain.DefaultUnderutilizationThreshold)
			require.Len(t, stats, 1)
			assert.Equal(t, c.wantLevel, stats[0].Level)
		})
	}
}

func TestAnalyze_SkipsUnscheduledSections(t *testing.T) {
	section, err := domain.NewSection("S1", "BIO101", nil, 10, "Science", "Room 1")
	require.NoError(t, err)
	schedule := domain.NewSchedule([]domain.Section{section})

	stats := Analyze(schedule, domain.DefaultUnderutilizationThreshold)
	assert.Empty(t, stats)
}

func TestAnalyze_ThresholdIsStrictlyLessThan(t *testing.T) {
	schedule := buildScheduleForTest(t, 4, 3) // ratio == 0.75 == DefaultUnderutilizationThreshold
	stats := Analyze(schedule, domain.DefaultUnderutilizationThreshold)
	require.Len(t, stats, 1)
	assert.False(t, stats[0].Underutil)
}

func TestUnderutilized_FiltersByThresholdFlag(t *testing.T) {
	schedule := buildScheduleForTest(t, 10, 1)
	stats := Analyze(schedule, domain.DefaultUnderutilizationThreshold)
	under := Underutilized(stats)
	require.Len(t, under, 1)
	assert.Equal(t, domain.SectionID("S1"), under[0].Section.ID)
}
