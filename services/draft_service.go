package services

import (
	"github.com/Mark-Bosco/Clear-Meals/models"
)

// DraftList holds the foods chosen during one meal-adding session,
// before anything is committed. It is owned by the caller — one list per
// session, passed in wherever it is needed, never shared module state.
// Abandoning the session just drops the list; nothing persists.
type DraftList struct {
	items []models.FoodListItem
}

func NewDraftList() *DraftList {
	return &DraftList{}
}

// Add appends a chosen food to the draft. Duplicate food ids are allowed
// here; they merge when the draft is committed to a meal.
func (d *DraftList) Add(item models.FoodListItem) {
	d.items = append(d.items, item)
}

// Replace swaps the entry at index for an edited one. Out-of-range
// indexes are ignored.
func (d *DraftList) Replace(index int, item models.FoodListItem) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items[index] = item
}

// Remove drops the entry at index. Out-of-range indexes are ignored.
func (d *DraftList) Remove(index int) {
	if index < 0 || index >= len(d.items) {
		return
	}
	d.items = append(d.items[:index], d.items[index+1:]...)
}

// Clear empties the draft after a save or a cancelled session.
func (d *DraftList) Clear() {
	d.items = nil
}

func (d *DraftList) Len() int { return len(d.items) }

// Items returns the drafted foods in the order they were chosen.
func (d *DraftList) Items() []models.FoodListItem {
	out := make([]models.FoodListItem, len(d.items))
	copy(out, d.items)
	return out
}
