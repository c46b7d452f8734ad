package storage

import (
	"encoding/json"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/Drifter-Supremo/calorie-hound/models"
)

const dateKeyLayout = "2006-01-02"

// MealLogStore persists the full meal log collection as one document and
// owns aggregation over it. Every mutation reloads the collection,
// recomputes the affected day's total and rewrites the whole collection
// sorted by date descending.
type MealLogStore struct {
	store *Store
	now   func() time.Time

	// mu serializes the whole load-mutate-save cycle of every mutation.
	// bbolt serializes the individual transactions, but each mutation here
	// spans a read transaction and a write transaction; without the lock,
	// concurrent requests interleave between them and lose updates.
	mu     sync.Mutex
	lastID int64
}

func NewMealLogStore(s *Store) *MealLogStore {
	return &MealLogStore{store: s, now: time.Now}
}

// Today returns the local calendar date key (YYYY-MM-DD).
func (ms *MealLogStore) Today() string {
	return ms.now().Format(dateKeyLayout)
}

// LoadAll returns every stored DayLog, newest date first. An unreadable
// document yields an empty collection rather than an error.
func (ms *MealLogStore) LoadAll() []models.DayLog {
	raw := ms.store.getDocument(keyMealLogs)
	if raw == nil {
		return []models.DayLog{}
	}
	var logs []models.DayLog
	if err := json.Unmarshal(raw, &logs); err != nil {
		slog.Error("meal log document unreadable", "error", err)
		return []models.DayLog{}
	}
	return logs
}

// LoadByDate returns the log for the given date key, or a fresh empty
// (unpersisted) log when none exists. An empty date means today.
func (ms *MealLogStore) LoadByDate(date string) models.DayLog {
	if date == "" {
		date = ms.Today()
	}
	for _, l := range ms.LoadAll() {
		if l.Date == date {
			return l
		}
	}
	return models.NewDayLog(date)
}

// AddMeal appends a meal to today's log regardless of any date implied by
// the input, assigning the id and timestamp and recomputing the total.
// Returns the stored meal, or nil if persistence failed.
func (ms *MealLogStore) AddMeal(meal models.Meal) *models.Meal {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	today := ms.Today()
	logs := ms.LoadAll()

	idx := -1
	for i := range logs {
		if logs[i].Date == today {
			idx = i
			break
		}
	}
	if idx == -1 {
		logs = append(logs, models.NewDayLog(today))
		idx = len(logs) - 1
	}

	meal.ID = ms.nextID()
	meal.Timestamp = ms.now().UnixMilli()
	meal.UpdatedAt = 0

	logs[idx].Meals = append(logs[idx].Meals, meal)
	logs[idx].RecomputeTotal()

	if !ms.saveAll(logs) {
		return nil
	}
	return &meal
}

// UpdateMeal patches the meal with the given id wherever it lives, stamps
// its UpdatedAt and recomputes that day's total. Returns the updated meal
// or nil when the id is not found anywhere or the write fails.
func (ms *MealLogStore) UpdateMeal(id string, patch models.MealPatch) *models.Meal {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	logs := ms.LoadAll()
	for li := range logs {
		for mi := range logs[li].Meals {
			if logs[li].Meals[mi].ID != id {
				continue
			}
			m := &logs[li].Meals[mi]
			if patch.Description != nil {
				m.Description = *patch.Description
			}
			if patch.Calories != nil {
				m.Calories = *patch.Calories
			}
			if patch.Portions != nil {
				m.Portions = *patch.Portions
			}
			m.UpdatedAt = ms.now().UnixMilli()
			logs[li].RecomputeTotal()
			if !ms.saveAll(logs) {
				return nil
			}
			updated := *m
			return &updated
		}
	}
	return nil
}

// DeleteMeal removes the first meal matching id and recomputes that day's
// total. Reports whether a meal was removed and persisted.
func (ms *MealLogStore) DeleteMeal(id string) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	logs := ms.LoadAll()
	for li := range logs {
		for mi := range logs[li].Meals {
			if logs[li].Meals[mi].ID != id {
				continue
			}
			logs[li].Meals = append(logs[li].Meals[:mi], logs[li].Meals[mi+1:]...)
			logs[li].RecomputeTotal()
			return ms.saveAll(logs)
		}
	}
	return false
}

// RecentLogs returns the logs whose date key is within the last `days`
// calendar days, inclusive. The boundary is calendar-date subtraction,
// not elapsed time.
func (ms *MealLogStore) RecentLogs(days int) []models.DayLog {
	cutoff := ms.now().AddDate(0, 0, -days).Format(dateKeyLayout)
	out := []models.DayLog{}
	for _, l := range ms.LoadAll() {
		if l.Date >= cutoff {
			out = append(out, l)
		}
	}
	return out
}

// WeeklyAverage returns the rounded mean of daily totals over the last
// seven days, or 0 when there are no recent logs.
func (ms *MealLogStore) WeeklyAverage() int {
	logs := ms.RecentLogs(7)
	if len(logs) == 0 {
		return 0
	}
	total := 0
	for _, l := range logs {
		total += l.TotalCalories
	}
	return int(math.Round(float64(total) / float64(len(logs))))
}

// ReplaceAll overwrites the whole collection. Used by import.
func (ms *MealLogStore) ReplaceAll(logs []models.DayLog) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if logs == nil {
		logs = []models.DayLog{}
	}
	for i := range logs {
		logs[i].RecomputeTotal()
	}
	sortByDateDesc(logs)
	raw, err := json.Marshal(logs)
	if err != nil {
		return err
	}
	return ms.store.putDocument(keyMealLogs, raw)
}

// saveAll re-sorts the collection newest date first and rewrites it.
// A failed write is logged and reported as false, never raised.
func (ms *MealLogStore) saveAll(logs []models.DayLog) bool {
	sortByDateDesc(logs)
	raw, err := json.Marshal(logs)
	if err != nil {
		slog.Error("meal log marshal failed", "error", err)
		return false
	}
	if err := ms.store.putDocument(keyMealLogs, raw); err != nil {
		slog.Error("meal log write failed", "error", err)
		return false
	}
	return true
}

// nextID derives a time-based meal id, bumped past the previous one so
// ids stay unique within a session even under millisecond collisions.
// Callers must hold ms.mu.
func (ms *MealLogStore) nextID() string {
	id := ms.now().UnixMilli()
	if id <= ms.lastID {
		id = ms.lastID + 1
	}
	ms.lastID = id
	return strconv.FormatInt(id, 10)
}

func sortByDateDesc(logs []models.DayLog) {
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Date > logs[j].Date
	})
}
