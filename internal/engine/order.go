package engine

import (
	"sort"

	"questforge/internal/storage"
)

var priorityRank = map[string]int{
	string(PriorityHigh):   0,
	string(PriorityMedium): 1,
	string(PriorityLow):    2,
}

// SortQuests orders quests by priority, then earliest due date (undated last), then id.
func SortQuests(qs []storage.Quest) {
	sort.SliceStable(qs, func(i, j int) bool {
		a, b := qs[i], qs[j]
		if priorityRank[a.Priority] != priorityRank[b.Priority] {
			return priorityRank[a.Priority] < priorityRank[b.Priority]
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.ID < b.ID
	})
}
