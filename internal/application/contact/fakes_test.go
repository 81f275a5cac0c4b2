package contact_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	domain "github.com/mohammadpnp/contact-import/internal/domain/contact"
)

type fakeSource struct {
	files   map[string]string
	readers map[string]io.Reader
}

func (f *fakeSource) Open(ctx context.Context, sourcePath string) (io.ReadCloser, error) {
	if r, ok := f.readers[sourcePath]; ok {
		return io.NopCloser(r), nil
	}
	data, ok := f.files[sourcePath]
	if !ok {
		return nil, fmt.Errorf("open file %s: %w", sourcePath, os.ErrNotExist)
	}
	return io.NopCloser(strings.NewReader(data)), nil
}

type memContactStore struct {
	mu        sync.Mutex
	contacts  map[string]domain.StoredContact
	upserts   int
	failAfter int
	err       error
}

func newMemContactStore() *memContactStore {
	return &memContactStore{contacts: map[string]domain.StoredContact{}, failAfter: -1}
}

func (m *memContactStore) UpsertByEmail(ctx context.Context, email, name, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil && m.upserts >= m.failAfter {
		return false, m.err
	}
	m.upserts++

	existing, ok := m.contacts[email]
	if !ok {
		m.contacts[email] = domain.StoredContact{ID: fmt.Sprintf("c-%d", len(m.contacts)+1), Name: name, Email: email, Phone: phone}
		return true, nil
	}
	existing.Name = name
	existing.Phone = phone
	m.contacts[email] = existing
	return false, nil
}

func (m *memContactStore) get(email string) (domain.StoredContact, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.contacts[email]
	return c, ok
}

type fakeSummaryStore struct {
	mu        sync.Mutex
	summaries []domain.ImportSummary
	err       error
}

func (f *fakeSummaryStore) Append(ctx context.Context, summary domain.ImportSummary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.summaries = append(f.summaries, summary)
	return nil
}

type publishedMessage struct {
	topic   string
	payload any
}

type fakePublisher struct {
	mu        sync.Mutex
	published []publishedMessage
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, topic string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, publishedMessage{topic: topic, payload: payload})
	return f.err
}

var errDBDown = errors.New("db down")
