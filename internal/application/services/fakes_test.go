package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rabbitmq/amqp091-go"

	"fileshare-api/internal/domain/file"
	"fileshare-api/internal/domain/user"
	"fileshare-api/internal/infrastructure/mq"
)

// Non-registering counter so parallel tests never collide on the
// default prometheus registry.
func newTestCounter() *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fileshare_test",
			Name:      "general_counters",
		},
		[]string{"result"})
}

type fakeFileRepository struct {
	mu     sync.Mutex
	nextID uint64
	files  map[file.ID]*file.File

	createErr error
	deleteErr error
	fetchErr  error
}

func newFakeFileRepository() *fakeFileRepository {
	return &fakeFileRepository{
		nextID: 1,
		files:  make(map[file.ID]*file.File),
	}
}

func (r *fakeFileRepository) CreateFile(_ context.Context, req *file.File) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}

	cp := *req
	cp.ID = file.ID(r.nextID)
	r.nextID++
	r.files[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (r *fakeFileRepository) FetchFileByID(_ context.Context, id file.ID) (*file.File, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fetchErr != nil {
		return nil, r.fetchErr
	}
	f, ok := r.files[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepository) FetchFilesByOwner(_ context.Context, ownerID user.ID) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fs file.Files
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			cp := *f
			fs = append(fs, &cp)
		}
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].CreatedAt.After(fs[j].CreatedAt) })
	return fs, nil
}

func (r *fakeFileRepository) FetchPublicFiles(_ context.Context) (file.Files, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var fs file.Files
	for _, f := range r.files {
		if f.IsPublic {
			cp := *f
			fs = append(fs, &cp)
		}
	}
	sort.Slice(fs, func(i, j int) bool { return fs[i].CreatedAt.After(fs[j].CreatedAt) })
	return fs, nil
}

func (r *fakeFileRepository) DeleteFile(_ context.Context, id file.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.files, id)
	return nil
}

type fakeBlobStore struct {
	mu    sync.Mutex
	blobs map[string][]byte

	writeErr  error
	deleteErr error
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Write(name string, data io.Reader) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.writeErr != nil {
		return 0, s.writeErr
	}
	var buf bytes.Buffer
	n, err := io.Copy(&buf, data)
	if err != nil {
		return 0, err
	}
	s.blobs[name] = buf.Bytes()
	return n, nil
}

func (s *fakeBlobStore) Read(name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.blobs[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return b, nil
}

func (s *fakeBlobStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.blobs, name)
	return nil
}

func (s *fakeBlobStore) Exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.blobs[name]
	return ok
}

type fakeRabbitMQ struct {
	in chan mq.Event
}

func newFakeRabbitMQ() *fakeRabbitMQ {
	return &fakeRabbitMQ{in: make(chan mq.Event, 16)}
}

func (f *fakeRabbitMQ) Connect(context.Context, string) error { return nil }
func (f *fakeRabbitMQ) Init() error                           { return nil }
func (f *fakeRabbitMQ) PublisherWorker(context.Context)       {}
func (f *fakeRabbitMQ) GetInputChan() chan mq.Event           { return f.in }
func (f *fakeRabbitMQ) GetConn() *amqp091.Connection          { return nil }

var errBoom = errors.New("boom")
