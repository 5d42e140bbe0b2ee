// Package notes manages the per-course text notes stored by the backend and
// the single note currently open for editing.
package notes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/five82/notedeck/internal/backend"
)

// Extension is appended to note names that lack it.
const Extension = ".txt"

var (
	// ErrNoFile is returned when an operation needs an open note and none is.
	ErrNoFile = errors.New("no note is open")
	// ErrInvalidName is returned for empty or path-like note names.
	ErrInvalidName = errors.New("invalid note name")
)

// Context identifies the note being edited.
type Context struct {
	Course string
	File   string
}

// Service wraps the backend file API and tracks the editing context. It is
// safe for concurrent use; network calls run outside the lock.
type Service struct {
	api    backend.FileAPI
	logger *log.Logger

	mu      sync.Mutex
	current *Context
}

// NewService returns a Service over api. A nil logger discards messages.
func NewService(api backend.FileAPI, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{api: api, logger: logger}
}

// NormalizeFilename trims name and appends Extension when missing. Empty
// names and names containing path separators are rejected.
func NormalizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if !strings.HasSuffix(name, Extension) {
		name += Extension
	}
	return name, nil
}

// List returns the notes stored for course.
func (s *Service) List(ctx context.Context, course string) ([]backend.FileInfo, error) {
	files, err := s.api.ListFiles(ctx, course)
	if err != nil {
		s.logger.Printf("list notes for %q: %v", course, err)
		return nil, err
	}
	return files, nil
}

// Open loads a note and makes it the editing context.
func (s *Service) Open(ctx context.Context, course, name string) (string, error) {
	content, err := s.api.FetchFile(ctx, course, name)
	if err != nil {
		s.logger.Printf("open note %q/%q: %v", course, name, err)
		return "", err
	}
	s.mu.Lock()
	s.current = &Context{Course: course, File: name}
	s.mu.Unlock()
	return content, nil
}

// Save replaces the content of target. The editing context is neither
// consulted nor changed, so a save requested before Close still lands.
func (s *Service) Save(ctx context.Context, target Context, content string) error {
	if target.Course == "" || target.File == "" {
		return ErrNoFile
	}
	if err := s.api.SaveFile(ctx, target.Course, target.File, content); err != nil {
		s.logger.Printf("save note %q/%q: %v", target.Course, target.File, err)
		return err
	}
	return nil
}

// Create stores a new note under course and returns its normalized name. An
// existing note with the same name is overwritten. The editing context is
// left unchanged.
func (s *Service) Create(ctx context.Context, course, name, content string) (string, error) {
	name, err := NormalizeFilename(name)
	if err != nil {
		return "", err
	}
	if err := s.api.SaveFile(ctx, course, name, content); err != nil {
		s.logger.Printf("create note %q/%q: %v", course, name, err)
		return "", err
	}
	return name, nil
}

// Delete removes a note, clearing the editing context when it was open.
func (s *Service) Delete(ctx context.Context, course, name string) error {
	if err := s.api.DeleteFile(ctx, course, name); err != nil {
		s.logger.Printf("delete note %q/%q: %v", course, name, err)
		return err
	}
	s.mu.Lock()
	if s.current != nil && s.current.Course == course && s.current.File == name {
		s.current = nil
	}
	s.mu.Unlock()
	return nil
}

// Close clears the editing context.
func (s *Service) Close() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// Current returns the editing context, if any.
func (s *Service) Current() (Context, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Context{}, false
	}
	return *s.current, true
}
