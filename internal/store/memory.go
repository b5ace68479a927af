package store

import (
	"context"
	"slices"
	"sort"
	"sync"

	"euchre-lite/history"
)

type memoryService struct {
	mu      sync.RWMutex
	records map[string]record
}

func NewMemoryService() Service {
	return &memoryService{records: make(map[string]record)}
}

func (s *memoryService) Close() error { return nil }

func (s *memoryService) Save(_ context.Context, name string, l *history.Log) (string, error) {
	rec, err := newRecord(name, l)
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return rec.ID, nil
}

func (s *memoryService) Load(_ context.Context, id string) (*history.Log, error) {
	id, err := normalizeID(id)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decodePayload(id, slices.Clone(rec.Payload))
}

func (s *memoryService) List(context.Context) ([]Summary, error) {
	s.mu.RLock()
	out := make([]Summary, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec.Summary)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *memoryService) Delete(_ context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}
