package store

import "github.com/tgienger/taskdash/internal/models"

// Seed returns the example tasks a new session starts with. Each call
// returns a fresh slice.
func Seed() models.TaskCollection {
	d := models.MustParseDate
	return models.TaskCollection{
		{
			ID:           "1",
			Name:         "Implement user authentication",
			Priority:     models.PriorityHigh,
			Category:     "Backend",
			DueDate:      d("2025-08-10"),
			AssignedUser: "Alice Johnson",
			AssignedOn:   d("2025-08-01"),
		},
		{
			ID:           "2",
			Name:         "Design dashboard wireframes",
			Priority:     models.PriorityMedium,
			Category:     "Design",
			DueDate:      d("2025-08-08"),
			AssignedUser: "Bob Smith",
			AssignedOn:   d("2025-08-02"),
			Completed:    true,
		},
		{
			ID:           "3",
			Name:         "Setup CI/CD pipeline",
			Priority:     models.PriorityHigh,
			Category:     "Backend",
			DueDate:      d("2025-08-03"),
			AssignedUser: "Charlie Brown",
			AssignedOn:   d("2025-07-30"),
		},
		{
			ID:           "4",
			Name:         "Write unit tests",
			Priority:     models.PriorityMedium,
			Category:     "Testing",
			DueDate:      d("2025-08-12"),
			AssignedUser: "Alice Johnson",
			AssignedOn:   d("2025-08-05"),
		},
		{
			ID:           "5",
			Name:         "Update documentation",
			Priority:     models.PriorityLow,
			Category:     "Documentation",
			DueDate:      d("2025-08-15"),
			AssignedUser: "Bob Smith",
			AssignedOn:   d("2025-08-06"),
			Completed:    true,
		},
		{
			ID:           "6",
			Name:         "Client meeting preparation",
			Priority:     models.PriorityHigh,
			Category:     "Meeting",
			DueDate:      d("2025-08-09"),
			AssignedUser: "Charlie Brown",
			AssignedOn:   d("2025-08-07"),
		},
	}
}
