package services

import (
	"context"
	"strings"
	"sync"

	"github.com/TonyStark-47/Job-Application-Tracker/internal/models"
	"github.com/TonyStark-47/Job-Application-Tracker/internal/store"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*models.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, usr *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[usr.Email]; exists {
		return store.ErrDuplicateEmail
	}
	f.nextID++
	usr.ID = f.nextID
	cp := *usr
	f.users[usr.Email] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	usr, ok := f.users[email]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *usr
	return &cp, nil
}

type fakeJobStore struct {
	mu     sync.Mutex
	nextID uint
	jobs   map[uint]*models.JobApplication
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{jobs: make(map[uint]*models.JobApplication)}
}

func (f *fakeJobStore) Create(ctx context.Context, job *models.JobApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	job.ID = f.nextID
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobStore) GetByID(ctx context.Context, id uint) (*models.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	cp := *job
	return &cp, nil
}

func (f *fakeJobStore) Update(ctx context.Context, job *models.JobApplication) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[job.ID]; !ok {
		return store.ErrRecordNotFound
	}
	cp := *job
	f.jobs[job.ID] = &cp
	return nil
}

func (f *fakeJobStore) Delete(ctx context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.jobs[id]; !ok {
		return store.ErrRecordNotFound
	}
	delete(f.jobs, id)
	return nil
}

func (f *fakeJobStore) ListByUser(ctx context.Context, userID uint) ([]models.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.JobApplication
	for _, job := range f.jobs {
		if job.UserID == userID {
			out = append(out, *job)
		}
	}
	return out, nil
}

// Search mirrors the SQL store's semantics: case-insensitive substring match
// over the six text fields, OR-combined, scoped to the owner.
func (f *fakeJobStore) Search(ctx context.Context, userID uint, text string) ([]models.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.ToLower(text)
	var out []models.JobApplication
	for _, job := range f.jobs {
		if job.UserID != userID {
			continue
		}
		for _, field := range []string{job.JobTitle, job.Company, job.Status, job.Location, job.Date, job.Link} {
			if strings.Contains(strings.ToLower(field), needle) {
				out = append(out, *job)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeJobStore) DueOn(ctx context.Context, date string) ([]models.JobApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.JobApplication
	for _, job := range f.jobs {
		if job.Date == date && job.NotifiedOn != date {
			out = append(out, *job)
		}
	}
	return out, nil
}

func (f *fakeJobStore) MarkNotified(ctx context.Context, id uint, date string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return store.ErrRecordNotFound
	}
	job.NotifiedOn = date
	return nil
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu     sync.Mutex
	sent   []sentMail
	err    error            // fail every send
	failTo map[string]error // fail sends to specific recipients
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if err, ok := f.failTo[to]; ok {
		return err
	}
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func (f *fakeMailer) sentTo(to string) []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []sentMail
	for _, m := range f.sent {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}

type stubGenerator struct {
	reply      string
	err        error
	lastPrompt string
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}
