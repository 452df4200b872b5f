package stats

import "github.com/tgienger/taskdash/internal/models"

// Report bundles every aggregate the analytics page and the stats command show.
type Report struct {
	Today               models.Date  `json:"today"`
	Dashboard           Dashboard    `json:"dashboard"`
	CompletionRate      int          `json:"completionRate"`
	TotalCategories     int          `json:"totalCategories"`
	TeamMembers         int          `json:"teamMembers"`
	AverageTasksPerUser int          `json:"avgTasksPerUser"`
	Categories          []LabelCount `json:"categories"`
	Priorities          []LabelCount `json:"priorities"`
	Users               []UserRow    `json:"users"`
}

// Build computes a full report for the collection as of today.
func Build(tasks models.TaskCollection, today models.Date) Report {
	categories := ByCategory(tasks)
	users := ByUser(tasks)
	return Report{
		Today:               today,
		Dashboard:           Summarize(tasks, today),
		CompletionRate:      CompletionRate(tasks),
		TotalCategories:     len(categories),
		TeamMembers:         len(users),
		AverageTasksPerUser: AverageTasksPerUser(tasks),
		Categories:          categories,
		Priorities:          ByPriority(tasks),
		Users:               users,
	}
}
