package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskflow/internal/model"
	"taskflow/internal/repository"
)

// fakeDB is an in-memory stand-in for the GORM store. The Users, Categories,
// Tasks and Stats views satisfy the service store interfaces and mirror the
// repository contract, including gorm.ErrRecordNotFound on missing rows.
type fakeDB struct {
	mu sync.RWMutex

	users      map[string]model.User
	categories map[string]model.Category
	tasks      map[string]model.Task
	stats      map[string]model.PerformanceStats
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:      make(map[string]model.User),
		categories: make(map[string]model.Category),
		tasks:      make(map[string]model.Task),
		stats:      make(map[string]model.PerformanceStats),
	}
}

func (db *fakeDB) Users() fakeUsers           { return fakeUsers{db} }
func (db *fakeDB) Categories() fakeCategories { return fakeCategories{db} }
func (db *fakeDB) Tasks() fakeTasks           { return fakeTasks{db} }
func (db *fakeDB) Stats() fakeStats           { return fakeStats{db} }

func statsKey(userID string, date time.Time) string {
	return userID + "|" + date.Format("2006-01-02")
}

// fakeUsers implements UserStore.
type fakeUsers struct{ db *fakeDB }

func (f fakeUsers) Upsert(_ context.Context, user *model.User) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if existing, ok := f.db.users[user.ID]; ok {
		existing.Email = user.Email
		existing.FirstName = user.FirstName
		existing.LastName = user.LastName
		existing.ProfileImageURL = user.ProfileImageURL
		existing.UpdatedAt = time.Now()
		f.db.users[user.ID] = existing
		*user = existing
		return nil
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	f.db.users[user.ID] = *user
	return nil
}

func (f fakeUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	user, ok := f.db.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (f fakeUsers) ListAll(context.Context) ([]model.User, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	users := make([]model.User, 0, len(f.db.users))
	for _, user := range f.db.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (f fakeUsers) LinkTelegramChat(_ context.Context, userID string, chatID int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	user, ok := f.db.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.TelegramChatID = chatID
	f.db.users[userID] = user
	return nil
}

// fakeCategories implements CategoryStore.
type fakeCategories struct{ db *fakeDB }

func (f fakeCategories) Create(_ context.Context, category *model.Category) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	if category.Color == "" {
		category.Color = "#3B82F6"
	}
	category.CreatedAt = time.Now()
	f.db.categories[category.ID] = *category
	return nil
}

func (f fakeCategories) ListByUser(_ context.Context, userID string) ([]model.Category, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var categories []model.Category
	for _, category := range f.db.categories {
		if category.UserID == userID {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })
	return categories, nil
}

func (f fakeCategories) FindByID(_ context.Context, userID, id string) (*model.Category, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	category, ok := f.db.categories[id]
	if !ok || category.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &category, nil
}

func (f fakeCategories) Update(_ context.Context, category *model.Category, updates map[string]interface{}) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.categories[category.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "name":
			stored.Name = value.(string)
		case "color":
			stored.Color = value.(string)
		}
	}
	f.db.categories[category.ID] = stored
	return nil
}

func (f fakeCategories) Delete(_ context.Context, userID, id string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for taskID, task := range f.db.tasks {
		if task.UserID == userID && task.CategoryID != nil && *task.CategoryID == id {
			task.CategoryID = nil
			f.db.tasks[taskID] = task
		}
	}
	delete(f.db.categories, id)
	return nil
}

// fakeTasks implements TaskStore.
type fakeTasks struct{ db *fakeDB }

func (f fakeTasks) Create(_ context.Context, task *model.Task) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = task.CreatedAt
	f.db.tasks[task.ID] = *task
	return nil
}

func (f fakeTasks) ListByUser(_ context.Context, userID string, limit int) ([]model.Task, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var tasks []model.Task
	for _, task := range f.db.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	if limit > 0 && len(tasks) > limit {
		tasks = tasks[:limit]
	}
	return tasks, nil
}

func (f fakeTasks) ListByDate(_ context.Context, userID string, from, to time.Time) ([]model.Task, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var tasks []model.Task
	for _, task := range f.db.tasks {
		if task.UserID == userID && !task.CreatedAt.Before(from) && task.CreatedAt.Before(to) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].CreatedAt.After(tasks[j].CreatedAt) })
	return tasks, nil
}

func (f fakeTasks) FindByID(_ context.Context, userID, taskID string) (*model.Task, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	task, ok := f.db.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &task, nil
}

func (f fakeTasks) Update(_ context.Context, task *model.Task, updates map[string]interface{}) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.tasks[task.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for column, value := range updates {
		switch column {
		case "title":
			stored.Title = value.(string)
		case "description":
			stored.Description = value.(string)
		case "priority":
			stored.Priority = value.(string)
		case "status":
			stored.Status = value.(string)
		case "category_id":
			if value == nil {
				stored.CategoryID = nil
			} else {
				id := value.(string)
				stored.CategoryID = &id
			}
		case "due_date":
			if value == nil {
				stored.DueDate = nil
			} else {
				due := value.(time.Time)
				stored.DueDate = &due
			}
		case "completed_at":
			if value == nil {
				stored.CompletedAt = nil
			} else {
				completed := value.(time.Time)
				stored.CompletedAt = &completed
			}
		case "updated_at":
			stored.UpdatedAt = value.(time.Time)
		}
	}
	f.db.tasks[task.ID] = stored
	return nil
}

func (f fakeTasks) MarkCompleted(_ context.Context, task *model.Task, completedAt time.Time) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.tasks[task.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Status = model.StatusCompleted
	stored.CompletedAt = &completedAt
	stored.UpdatedAt = completedAt
	f.db.tasks[task.ID] = stored
	*task = stored
	return nil
}

func (f fakeTasks) Delete(_ context.Context, userID, taskID string) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	task, ok := f.db.tasks[taskID]
	if ok && task.UserID == userID {
		delete(f.db.tasks, taskID)
	}
	return nil
}

func (f fakeTasks) CountsBetween(_ context.Context, userID string, from, to time.Time) (total, completed int64, err error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	for _, task := range f.db.tasks {
		if task.UserID != userID || task.CreatedAt.Before(from) || !task.CreatedAt.Before(to) {
			continue
		}
		total++
		if task.Status == model.StatusCompleted {
			completed++
		}
	}
	return total, completed, nil
}

func (f fakeTasks) CountCreatedSince(_ context.Context, userID string, since time.Time) (int64, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var total int64
	for _, task := range f.db.tasks {
		if task.UserID == userID && !task.CreatedAt.Before(since) {
			total++
		}
	}
	return total, nil
}

func (f fakeTasks) Leaderboard(_ context.Context, since time.Time, limit int) ([]repository.LeaderboardRow, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()

	type agg struct {
		total     int64
		completed int64
	}
	byUser := make(map[string]*agg)
	for _, task := range f.db.tasks {
		if task.CreatedAt.Before(since) {
			continue
		}
		// Tasks whose owner has no users row never rank, same as the join.
		if _, ok := f.db.users[task.UserID]; !ok {
			continue
		}
		entry, ok := byUser[task.UserID]
		if !ok {
			entry = &agg{}
			byUser[task.UserID] = entry
		}
		entry.total++
		if task.Status == model.StatusCompleted {
			entry.completed++
		}
	}

	ids := make([]string, 0, len(byUser))
	for id := range byUser {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if byUser[ids[i]].completed != byUser[ids[j]].completed {
			return byUser[ids[i]].completed > byUser[ids[j]].completed
		}
		return ids[i] < ids[j]
	})
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	var rows []repository.LeaderboardRow
	for _, id := range ids {
		rows = append(rows, repository.LeaderboardRow{
			User:           f.db.users[id],
			TotalTasks:     byUser[id].total,
			CompletedTasks: byUser[id].completed,
		})
	}
	return rows, nil
}

// fakeStats implements StatsStore.
type fakeStats struct{ db *fakeDB }

func (f fakeStats) Upsert(_ context.Context, stats *model.PerformanceStats) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	key := statsKey(stats.UserID, stats.Date)
	if existing, ok := f.db.stats[key]; ok {
		existing.TasksCreated = stats.TasksCreated
		existing.TasksCompleted = stats.TasksCompleted
		existing.CompletionRate = stats.CompletionRate
		existing.StreakDays = stats.StreakDays
		f.db.stats[key] = existing
		*stats = existing
		return nil
	}
	if stats.ID == "" {
		stats.ID = uuid.NewString()
	}
	stats.CreatedAt = time.Now()
	f.db.stats[key] = *stats
	return nil
}

func (f fakeStats) ListSince(_ context.Context, userID string, since time.Time) ([]model.PerformanceStats, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var rows []model.PerformanceStats
	for _, stats := range f.db.stats {
		if stats.UserID == userID && !stats.Date.Before(since) {
			rows = append(rows, stats)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}

func (f fakeStats) ListRecent(_ context.Context, userID string, limit int) ([]model.PerformanceStats, error) {
	f.db.mu.RLock()
	defer f.db.mu.RUnlock()
	var rows []model.PerformanceStats
	for _, stats := range f.db.stats {
		if stats.UserID == userID {
			rows = append(rows, stats)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.After(rows[j].Date) })
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}
