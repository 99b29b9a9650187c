package board

import "taskboard/internal/task"

var sampleTasks = []task.Task{
	{
		ID:                "1",
		Name:              "Chassis Design",
		Overview:          "Design the main robot chassis in CAD",
		SubTeam:           task.SubTeamDesign,
		PreRequisites:     []string{},
		RequiredFor:       []string{"4", "5"},
		StartDate:         "2025-01-10",
		Deadline:          "2025-01-15",
		TotalDays:         5,
		PersonResponsible: "Alice",
		Completed:         true,
		SpotsNeeded:       task.DefaultSpotsNeeded,
	},
	{
		ID:                "2",
		Name:              "Power Distribution Layout",
		Overview:          "Plan breaker panel, PDH placement and wire runs",
		SubTeam:           task.SubTeamElectrical,
		PreRequisites:     []string{},
		RequiredFor:       []string{"5"},
		StartDate:         "2025-01-12",
		Deadline:          "2025-01-18",
		TotalDays:         4,
		PersonResponsible: "Ben",
		SpotsNeeded:       2,
	},
	{
		ID:                "3",
		Name:              "Drive Code",
		Overview:          "Swerve drive control and field-relative driving",
		SubTeam:           task.SubTeamProgramming,
		PreRequisites:     []string{},
		RequiredFor:       []string{"6"},
		StartDate:         "2025-01-11",
		Deadline:          "2025-01-24",
		TotalDays:         10,
		PersonResponsible: "Chloe",
		SpotsNeeded:       task.DefaultSpotsNeeded,
	},
	{
		ID:                "4",
		Name:              "Cut Chassis Rails",
		Overview:          "Cut and drill aluminum tube for the frame",
		SubTeam:           task.SubTeamFabrication,
		PreRequisites:     []string{"1"},
		RequiredFor:       []string{"5"},
		StartDate:         "2025-01-16",
		Deadline:          "2025-01-20",
		TotalDays:         3,
		PersonResponsible: "Dev",
		SpotsNeeded:       4,
	},
	{
		ID:                "5",
		Name:              "Wire Robot",
		Overview:          "Mount electronics and run CAN and power wiring",
		SubTeam:           task.SubTeamElectrical,
		PreRequisites:     []string{"2", "Cut Chassis Rails"},
		RequiredFor:       []string{"6"},
		StartDate:         "2025-01-21",
		Deadline:          "2025-01-27",
		TotalDays:         5,
		PersonResponsible: "Ben",
		SpotsNeeded:       task.DefaultSpotsNeeded,
	},
	{
		ID:                "6",
		Name:              "Drive Team Practice",
		Overview:          "First driving session on the practice field",
		SubTeam:           task.DefaultSubTeam,
		PreRequisites:     []string{"3", "5"},
		RequiredFor:       []string{},
		StartDate:         "2025-01-28",
		TotalDays:         1,
		PersonResponsible: task.DefaultPerson,
		SpotsNeeded:       6,
	},
}

// SampleTasks returns a fresh copy of the built-in sample board shown when no
// feed is configured or the feed cannot be loaded.
func SampleTasks() []task.Task {
	return task.CloneAll(sampleTasks)
}
