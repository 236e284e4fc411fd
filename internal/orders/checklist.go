package orders

import "time"

// ReconcileChecklist pads the checklist with default unchecked entries
// until it covers every line item. It runs before every read and every
// toggle so that indexing can never go out of bounds for the current
// item count. Trailing entries beyond the item count are retained as
// history, never pruned.
func ReconcileChecklist(checklist []ChecklistEntry, itemCount int) []ChecklistEntry {
	for len(checklist) < itemCount {
		checklist = append(checklist, ChecklistEntry{})
	}
	return checklist
}

// toggleEntry flips the entry at index. Checking records attribution;
// unchecking resets the entry to the full default so a cleared box never
// carries a stale name.
func toggleEntry(checklist []ChecklistEntry, index int, actorID int64, actorName string, now time.Time) []ChecklistEntry {
	if checklist[index].Checked {
		checklist[index] = ChecklistEntry{}
		return checklist
	}
	checklist[index] = ChecklistEntry{
		Checked:       true,
		CheckedBy:     &actorID,
		CheckedByName: &actorName,
		CheckedAt:     &now,
	}
	return checklist
}

// ChecklistProgress reports checked and total counts. A zero total means
// there is nothing to check; callers must not derive a percentage from it.
func ChecklistProgress(order *Order) (checked, total int) {
	total = len(order.Items)
	for i, entry := range order.Checklist {
		if i >= total {
			break
		}
		if entry.Checked {
			checked++
		}
	}
	return checked, total
}
