package store

import (
	"sync"

	"github.com/deckfetch/api/internal/model"
)

// JobStore is the injected home of all job records. Components hold a store
// reference, never a job reference; records are replaced whole on update.
type JobStore interface {
	Get(id string) (model.Job, bool)
	Set(job model.Job)
	Delete(id string)
	List() []model.Job
}

// MemoryStore is the in-process JobStore used by the service. Writes are
// whole-record replacements, so readers only need the lock for the map
// access itself.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]model.Job
}

// NewMemoryStore creates an empty in-memory job store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]model.Job)}
}

func (s *MemoryStore) Get(id string) (model.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

func (s *MemoryStore) Set(job model.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func (s *MemoryStore) List() []model.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	jobs := make([]model.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		jobs = append(jobs, job)
	}
	return jobs
}
