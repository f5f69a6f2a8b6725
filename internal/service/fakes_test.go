package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lshigami/lawdesk/internal/auth"
	"github.com/lshigami/lawdesk/internal/model"
	"github.com/lshigami/lawdesk/internal/repository"
	"gorm.io/gorm"
)

var (
	learner = &auth.Principal{UserID: 7, Email: "learner@example.com", Role: model.RoleUser}
	admin   = &auth.Principal{UserID: 2, Email: "admin@example.com", Role: model.RoleAdmin}
	owner   = &auth.Principal{UserID: 1, Email: "owner@example.com", Role: model.RoleOwner}
)

// fakeTestRepo keeps tests with their questions in memory. Every call is
// counted so tests can assert the store was never reached.
type fakeTestRepo struct {
	mu     sync.Mutex
	tests  map[uint]*model.Test
	nextID uint
	calls  int
}

func newFakeTestRepo(tests ...model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: map[uint]*model.Test{}, nextID: 100}
	for i := range tests {
		t := tests[i]
		t.TotalQuestions = len(t.Questions)
		r.tests[t.ID] = &t
	}
	return r
}

func (r *fakeTestRepo) get(id uint) (*model.Test, error) {
	r.calls++
	t, ok := r.tests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *fakeTestRepo) Create(_ context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.nextID++
	test.ID = r.nextID
	for i := range test.Questions {
		r.nextID++
		test.Questions[i].ID = r.nextID
		test.Questions[i].TestID = test.ID
	}
	test.TotalQuestions = len(test.Questions)
	stored := *test
	r.tests[test.ID] = &stored
	return nil
}

func (r *fakeTestRepo) FindByID(_ context.Context, id uint) (*model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(id)
	if err != nil {
		return nil, err
	}
	cp := *t
	cp.Questions = nil
	return &cp, nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(_ context.Context, id uint) (*model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(id)
	if err != nil {
		return nil, err
	}
	cp := *t
	cp.Questions = append([]model.Question(nil), t.Questions...)
	sort.Slice(cp.Questions, func(i, j int) bool {
		return cp.Questions[i].QuestionNumber < cp.Questions[j].QuestionNumber
	})
	return &cp, nil
}

func (r *fakeTestRepo) FindAll(_ context.Context, publishedOnly bool) ([]model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []model.Test
	for _, t := range r.tests {
		if publishedOnly && !t.IsPublished {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeTestRepo) Update(_ context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(test.ID)
	if err != nil {
		return err
	}
	questions := t.Questions
	*t = *test
	t.Questions = questions
	return nil
}

func (r *fakeTestRepo) SetPublished(_ context.Context, id uint, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(id)
	if err != nil {
		return err
	}
	t.IsPublished = published
	return nil
}

func (r *fakeTestRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := r.get(id); err != nil {
		return err
	}
	delete(r.tests, id)
	return nil
}

func (r *fakeTestRepo) AddQuestion(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(q.TestID)
	if err != nil {
		return err
	}
	for _, existing := range t.Questions {
		if existing.QuestionNumber == q.QuestionNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	r.nextID++
	q.ID = r.nextID
	t.Questions = append(t.Questions, *q)
	t.TotalQuestions = len(t.Questions)
	return nil
}

func (r *fakeTestRepo) UpdateQuestion(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(q.TestID)
	if err != nil {
		return err
	}
	for i := range t.Questions {
		if t.Questions[i].ID == q.ID {
			t.Questions[i] = *q
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTestRepo) DeleteQuestion(_ context.Context, q *model.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, err := r.get(q.TestID)
	if err != nil {
		return err
	}
	for i := range t.Questions {
		if t.Questions[i].ID == q.ID {
			t.Questions = append(t.Questions[:i], t.Questions[i+1:]...)
			t.TotalQuestions = len(t.Questions)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *fakeTestRepo) question(id uint) (*model.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tests {
		for i := range t.Questions {
			if t.Questions[i].ID == id {
				q := t.Questions[i]
				return &q, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// fakeQuestionRepo reads through the test repo so both views stay consistent.
type fakeQuestionRepo struct {
	tests *fakeTestRepo
}

func (r *fakeQuestionRepo) FindByID(_ context.Context, id uint) (*model.Question, error) {
	return r.tests.question(id)
}

func (r *fakeQuestionRepo) FindByTestID(ctx context.Context, testID uint) ([]model.Question, error) {
	t, err := r.tests.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		return nil, err
	}
	return t.Questions, nil
}

func (r *fakeQuestionRepo) UpdateExplanation(_ context.Context, id uint, explanation string) error {
	r.tests.mu.Lock()
	defer r.tests.mu.Unlock()
	for _, t := range r.tests.tests {
		for i := range t.Questions {
			if t.Questions[i].ID == id {
				t.Questions[i].Explanation = explanation
				return nil
			}
		}
	}
	return gorm.ErrRecordNotFound
}

type attemptKey struct{ testID, userID uint }

// fakeAttemptRepo mirrors the unique (test_id, user_id) index: upserts land on
// the existing row, and unknown tests fail like a foreign key would.
type fakeAttemptRepo struct {
	mu        sync.Mutex
	rows      map[attemptKey]*model.TestAttempt
	nextID    uint
	knownTest func(id uint) bool
	calls     int
}

func newFakeAttemptRepo(tests *fakeTestRepo) *fakeAttemptRepo {
	return &fakeAttemptRepo{
		rows:   map[attemptKey]*model.TestAttempt{},
		nextID: 500,
		knownTest: func(id uint) bool {
			tests.mu.Lock()
			defer tests.mu.Unlock()
			_, ok := tests.tests[id]
			return ok
		},
	}
}

func (r *fakeAttemptRepo) FindByTestAndUser(_ context.Context, testID, userID uint) (*model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	a, ok := r.rows[attemptKey{testID, userID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAttemptRepo) FindCompleted(ctx context.Context, testID, userID uint) (*model.TestAttempt, error) {
	a, err := r.FindByTestAndUser(ctx, testID, userID)
	if err != nil {
		return nil, err
	}
	if !a.IsCompleted {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (r *fakeAttemptRepo) FindByUser(_ context.Context, userID uint) ([]model.TestAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	var out []model.TestAttempt
	for k, a := range r.rows {
		if k.userID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) StartIfAbsent(_ context.Context, attempt *model.TestAttempt) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	key := attemptKey{attempt.TestID, attempt.UserID}
	if existing, ok := r.rows[key]; ok {
		*attempt = *existing
		return false, nil
	}
	r.nextID++
	attempt.ID = r.nextID
	stored := *attempt
	r.rows[key] = &stored
	return true, nil
}

func (r *fakeAttemptRepo) UpsertGraded(_ context.Context, attempt *model.TestAttempt, keepTimeSpent bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if !r.knownTest(attempt.TestID) {
		return &pgconn.PgError{Code: "23503", Message: "insert or update on table \"test_attempts\" violates foreign key constraint"}
	}
	key := attemptKey{attempt.TestID, attempt.UserID}
	existing, ok := r.rows[key]
	if !ok {
		r.nextID++
		attempt.ID = r.nextID
		stored := *attempt
		r.rows[key] = &stored
		return nil
	}
	attempt.ID = existing.ID
	if keepTimeSpent {
		attempt.TimeSpent = existing.TimeSpent
	}
	attempt.CreatedAt = existing.CreatedAt
	stored := *attempt
	r.rows[key] = &stored
	return nil
}

func (r *fakeAttemptRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserRepo(users ...model.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]*model.User{}, nextID: 10}
	for i := range users {
		u := users[i]
		r.users[u.ID] = &u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint \"idx_users_email\""}
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(_ context.Context, query string) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		if query == "" || strings.Contains(u.Email, query) || strings.Contains(u.Name, query) {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, id uint, role model.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeDocumentRepo struct {
	mu        sync.Mutex
	docs      map[uint]*model.Document
	nextID    uint
	createErr error
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: map[uint]*model.Document{}}
}

func (r *fakeDocumentRepo) Create(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	doc.ID = r.nextID
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) FindByID(_ context.Context, kind model.DocumentKind, id uint) (*model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.Kind != kind {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDocumentRepo) List(_ context.Context, kind model.DocumentKind, filter repository.DocumentFilter) ([]model.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Document
	for _, d := range r.docs {
		if d.Kind != kind || (!filter.IncludeUnpublished && !d.IsPublished) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(filter.Query)) {
			continue
		}
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeDocumentRepo) Update(_ context.Context, doc *model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[doc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *doc
	r.docs[doc.ID] = &stored
	return nil
}

func (r *fakeDocumentRepo) Delete(_ context.Context, kind model.DocumentKind, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.docs[id]
	if !ok || d.Kind != kind {
		return gorm.ErrRecordNotFound
	}
	delete(r.docs, id)
	return nil
}

type fakeSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
	reads  int
	err    error
}

func (r *fakeSettingRepo) Get(_ context.Context, keys ...string) (map[string]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := r.values[k]; ok {
			out[k] = v
		}
	}
	return out, nil
}

func (r *fakeSettingRepo) Set(_ context.Context, values map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values == nil {
		r.values = map[string]string{}
	}
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

type fakeAnalyticsRepo struct {
	roles    []repository.RoleCount
	total    int64
	publish  int64
	attempts repository.AttemptTotals
	docs     map[model.DocumentKind]int64
	stats    []repository.TestStat
}

func (r *fakeAnalyticsRepo) UsersByRole(context.Context) ([]repository.RoleCount, error) {
	return r.roles, nil
}

func (r *fakeAnalyticsRepo) TestCounts(context.Context) (int64, int64, error) {
	return r.total, r.publish, nil
}

func (r *fakeAnalyticsRepo) DocumentCount(_ context.Context, kind model.DocumentKind) (int64, error) {
	return r.docs[kind], nil
}

func (r *fakeAnalyticsRepo) AttemptTotals(context.Context) (*repository.AttemptTotals, error) {
	totals := r.attempts
	return &totals, nil
}

func (r *fakeAnalyticsRepo) TestStats(context.Context) ([]repository.TestStat, error) {
	return r.stats, nil
}

// sampleTest is a published three-question test with id 1.
func sampleTest() model.Test {
	return model.Test{
		ID:           1,
		Title:        "Law of Torts",
		Category:     "Torts",
		Difficulty:   model.DifficultyMedium,
		TimeLimit:    30,
		PassingScore: 60,
		IsPublished:  true,
		Questions: []model.Question{
			{ID: 11, TestID: 1, QuestionNumber: 2, QuestionText: "Q2", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "B"},
			{ID: 10, TestID: 1, QuestionNumber: 1, QuestionText: "Q1", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "A", Explanation: "because"},
			{ID: 12, TestID: 1, QuestionNumber: 3, QuestionText: "Q3", OptionA: "a", OptionB: "b", OptionC: "c", OptionD: "d", CorrectAnswer: "C"},
		},
	}
}
