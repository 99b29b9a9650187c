package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(tasks []Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Name
	}
	return out
}

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSortByDeadline_RoundTrip(t *testing.T) {
	tasks := normalize(
		Row{"Task": "A", "Deadline": "2025-03-01"},
		Row{"Task": "B", "Deadline": "2025-02-01"},
	)

	assert.Equal(t, []string{"B", "A"}, names(SortByDeadline(tasks)))
}

func TestSortByDeadline_MissingDeadlinesLastAndStable(t *testing.T) {
	tasks := []Task{
		{ID: "1", Name: "tbd-1"},
		{ID: "2", Name: "late", Deadline: "2025-05-01"},
		{ID: "3", Name: "tbd-2"},
		{ID: "4", Name: "early", Deadline: "2025-01-01"},
		{ID: "5", Name: "late-too", Deadline: "2025-05-01"},
		{ID: "6", Name: "tbd-3"},
	}

	got := SortByDeadline(tasks)

	assert.Equal(t, []string{"early", "late", "late-too", "tbd-1", "tbd-2", "tbd-3"}, names(got))
	assert.Equal(t, "tbd-1", tasks[0].Name, "input must not be reordered")
}

func TestIsBlocked(t *testing.T) {
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"B"}}
	b := Task{ID: "2", Name: "B"}
	all := []Task{a, b}

	assert.True(t, IsBlocked(a, all))

	all[1].Completed = true
	assert.False(t, IsBlocked(a, all))
}

func TestIsBlocked_NoPrerequisites(t *testing.T) {
	a := Task{ID: "1", Name: "A"}
	assert.False(t, IsBlocked(a, []Task{a}))
}

func TestIsBlocked_UnresolvableReference(t *testing.T) {
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"Ghost"}}
	assert.False(t, IsBlocked(a, []Task{a, {ID: "2", Name: "B"}}))
}

func TestIsBlocked_SelfReference(t *testing.T) {
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"1", "A"}}
	assert.False(t, IsBlocked(a, []Task{a}))
}

func TestIsBlocked_IDWinsOverName(t *testing.T) {
	// "2" is the ID of a completed task and the name of an open one.
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"2"}}
	byID := Task{ID: "2", Name: "Two", Completed: true}
	byName := Task{ID: "3", Name: "2"}

	assert.False(t, IsBlocked(a, []Task{a, byID, byName}))
}

func TestIsBlocked_SingleHop(t *testing.T) {
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"B"}}
	b := Task{ID: "2", Name: "B", PreRequisites: []string{"C"}, Completed: true}
	c := Task{ID: "3", Name: "C"}

	assert.False(t, IsBlocked(a, []Task{a, b, c}))
	assert.True(t, IsBlocked(b, []Task{a, b, c}))
}

func TestBlockedBy(t *testing.T) {
	a := Task{ID: "1", Name: "A", PreRequisites: []string{"B", "C", "Ghost"}}
	b := Task{ID: "2", Name: "B", Completed: true}
	c := Task{ID: "3", Name: "C"}

	deps := BlockedBy(a, []Task{a, b, c})
	require.Len(t, deps, 1)
	assert.Equal(t, "C", deps[0].Name)
}

func TestTimelineRange_SingleTask(t *testing.T) {
	r := TimelineRange([]Task{{ID: "1", StartDate: "2025-01-10", Deadline: "2025-01-15"}}, fixedNow())

	assert.Equal(t, day("2025-01-08"), r.Start)
	assert.Equal(t, day("2025-01-20"), r.End)
	assert.Equal(t, 13, r.TotalDays)
	assert.Len(t, r.Days(), 13)
}

func TestTimelineRange_Empty(t *testing.T) {
	r := TimelineRange(nil, fixedNow())

	assert.Equal(t, day("2025-01-05"), r.Start)
	assert.Equal(t, day("2025-01-05"), r.End)
	assert.Equal(t, 1, r.TotalDays)
}

func TestTimelineRange_NothingToLayOut(t *testing.T) {
	r := TimelineRange([]Task{{ID: "1", StartDate: "2025-03-01"}}, fixedNow())

	assert.Equal(t, day("2025-01-05"), r.Start)
	assert.Equal(t, day("2025-01-12"), r.End)
	assert.Equal(t, 8, r.TotalDays)
}

func TestTimelineRange_UsesAllStartsAndDeadlines(t *testing.T) {
	tasks := []Task{
		{ID: "1", StartDate: "2025-02-01", Deadline: "2025-02-03"},
		{ID: "2", StartDate: "2025-01-20"},                         // no deadline, still widens the start
		{ID: "3", StartDate: "2025-02-10", Deadline: "2025-03-01"}, // latest deadline
	}
	r := TimelineRange(tasks, fixedNow())

	assert.Equal(t, day("2025-01-18"), r.Start)
	assert.Equal(t, day("2025-03-06"), r.End)
	assert.Equal(t, 48, r.TotalDays)
}

func TestBars(t *testing.T) {
	tasks := []Task{
		{ID: "1", Name: "A", StartDate: "2025-01-10", Deadline: "2025-01-10"},
		{ID: "2", Name: "B", StartDate: "2025-01-12", Deadline: "2025-01-15", PreRequisites: []string{"A"}},
		{ID: "3", Name: "C", StartDate: "2025-01-11"},
	}
	r := TimelineRange(tasks, fixedNow())
	bars := Bars(tasks, r)

	require.Len(t, bars, 2)
	assert.Equal(t, "A", bars[0].Task.Name)
	assert.Equal(t, 2, bars[0].OffsetDays)
	assert.Equal(t, 1, bars[0].DurationDays)
	assert.False(t, bars[0].Blocked)

	assert.Equal(t, "B", bars[1].Task.Name)
	assert.Equal(t, 4, bars[1].OffsetDays)
	assert.Equal(t, 4, bars[1].DurationDays)
	assert.True(t, bars[1].Blocked)
}

func TestBars_SkipsDeadlineBeforeStart(t *testing.T) {
	tasks := normalize(
		Row{"Task": "Backwards", "Start Date": "2025-01-15", "Deadline": "2025-01-10"},
		Row{"Task": "Forwards", "Start Date": "2025-01-11", "Deadline": "2025-01-12"},
	)
	r := TimelineRange(tasks, fixedNow())
	bars := Bars(tasks, r)

	require.Len(t, bars, 1)
	assert.Equal(t, "Forwards", bars[0].Task.Name)
	for _, b := range bars {
		assert.GreaterOrEqual(t, b.DurationDays, 1)
		assert.GreaterOrEqual(t, b.OffsetDays, 0)
	}
}

func TestTimelineRange_CenturiesApart(t *testing.T) {
	tasks := []Task{
		{ID: "1", StartDate: "1900-01-01", Deadline: "2999-12-31"},
	}
	r := TimelineRange(tasks, fixedNow())

	assert.Equal(t, day("1899-12-30"), r.Start)
	assert.Equal(t, day("3000-01-05"), r.End)
	assert.Equal(t, 401774, r.TotalDays)

	bars := Bars(tasks, r)
	require.Len(t, bars, 1)
	assert.Equal(t, 2, bars[0].OffsetDays)
	assert.Equal(t, 401767, bars[0].DurationDays)
}

func TestBars_AcrossDSTChange(t *testing.T) {
	tasks := []Task{{ID: "1", StartDate: "2025-03-08", Deadline: "2025-03-10"}}
	r := TimelineRange(tasks, fixedNow())
	bars := Bars(tasks, r)

	require.Len(t, bars, 1)
	assert.Equal(t, 3, bars[0].DurationDays)
	assert.Equal(t, 10, r.TotalDays)
}
