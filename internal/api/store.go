package api

import (
	"slices"
	"sync"
	"time"

	"github.com/samcharles93/contfrac/internal/series"
)

type evaluationRecord struct {
	Evaluation Evaluation
	seq        uint64
}

// EvaluationStore keeps finished evaluations in memory.
type EvaluationStore struct {
	mu          sync.Mutex
	seq         uint64
	evaluations map[string]*evaluationRecord
}

func NewEvaluationStore() *EvaluationStore {
	return &EvaluationStore{
		evaluations: make(map[string]*evaluationRecord),
	}
}

func (s *EvaluationStore) Create(settings series.Settings, results []series.Report, now time.Time) Evaluation {
	ev := Evaluation{
		ID:        newEvaluationID(),
		Object:    "evaluation",
		CreatedAt: now.Unix(),
		Settings:  settings,
		Results:   results,
	}

	s.mu.Lock()
	s.seq++
	s.evaluations[ev.ID] = &evaluationRecord{Evaluation: ev, seq: s.seq}
	s.mu.Unlock()

	return ev
}

func (s *EvaluationStore) Get(id string) (Evaluation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.evaluations[id]
	if !ok {
		return Evaluation{}, false
	}
	return rec.Evaluation, true
}

func (s *EvaluationStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.evaluations[id]; !ok {
		return false
	}
	delete(s.evaluations, id)
	return true
}

// List returns the stored IDs, newest first.
func (s *EvaluationStore) List() []string {
	s.mu.Lock()
	recs := make([]*evaluationRecord, 0, len(s.evaluations))
	for _, rec := range s.evaluations {
		recs = append(recs, rec)
	}
	s.mu.Unlock()

	slices.SortFunc(recs, func(a, b *evaluationRecord) int {
		switch {
		case a.seq > b.seq:
			return -1
		case a.seq < b.seq:
			return 1
		}
		return 0
	})
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.Evaluation.ID
	}
	return ids
}
