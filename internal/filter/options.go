package filter

import "github.com/tgienger/taskdash/internal/models"

// Categories returns the distinct categories in first-appearance order.
func Categories(tasks models.TaskCollection) []string {
	return distinct(tasks, func(t models.Task) string { return t.Category })
}

// AssignedUsers returns the distinct assignees in first-appearance order.
func AssignedUsers(tasks models.TaskCollection) []string {
	return distinct(tasks, func(t models.Task) string { return t.AssignedUser })
}

func distinct(tasks models.TaskCollection, key func(models.Task) string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, t := range tasks {
		k := key(t)
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}

// NextStatus rotates to the following status value, wrapping around.
func NextStatus(s Status, step int) Status {
	return rotate(Statuses, s, step)
}

// NextDueBucket rotates to the following due-date bucket, wrapping around.
func NextDueBucket(b DueBucket, step int) DueBucket {
	return rotate(DueBuckets, b, step)
}

// NextPriority rotates through All, High, Medium, Low.
func NextPriority(p string, step int) string {
	values := []string{All}
	for _, pr := range models.Priorities {
		values = append(values, string(pr))
	}
	return rotate(values, p, step)
}

// NextLabel rotates through All followed by options. A current value that is
// no longer among the options counts as All.
func NextLabel(current string, options []string, step int) string {
	return rotate(append([]string{All}, options...), current, step)
}

func rotate[T ~string](values []T, current T, step int) T {
	idx := 0
	for i, v := range values {
		if v == current {
			idx = i
			break
		}
	}
	n := len(values)
	return values[((idx+step)%n+n)%n]
}
