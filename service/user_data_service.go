package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"uzazi-salama-backend/repository"
	"uzazi-salama-backend/section"

	"github.com/google/uuid"
)

// UserDataService enforces identity and typing on top of the document store
type UserDataService struct {
	dataRepo repository.UserDataStore
	now      func() time.Time
}

// UserDataServiceOption is a functional option for UserDataService
type UserDataServiceOption func(*UserDataService)

// WithUserDataRepository sets the document store
func WithUserDataRepository(repo repository.UserDataStore) UserDataServiceOption {
	return func(s *UserDataService) {
		s.dataRepo = repo
	}
}

// WithClock overrides the clock used for lastUpdated stamps
func WithClock(now func() time.Time) UserDataServiceOption {
	return func(s *UserDataService) {
		s.now = now
	}
}

// NewUserDataService creates a new user data service
func NewUserDataService(opts ...UserDataServiceOption) *UserDataService {
	s := &UserDataService{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetSectionRequest represents a request to read one section
type GetSectionRequest struct {
	CallerID uuid.UUID
	UserID   uuid.UUID
	Kind     section.Kind
}

// GetSectionResult carries the stored section; Data is nil when never written
type GetSectionResult struct {
	Data json.RawMessage
}

// PutSectionRequest represents a full replacement of one section
type PutSectionRequest struct {
	CallerID uuid.UUID
	UserID   uuid.UUID
	Kind     section.Kind
	Data     json.RawMessage
}

// PutSectionResult carries the stored, stamped section
type PutSectionResult struct {
	Data json.RawMessage
}

func (s *UserDataService) authorize(callerID, userID uuid.UUID) error {
	if s.dataRepo == nil {
		return errors.New("user data repository not set")
	}
	if callerID != userID {
		return ErrUnauthorized
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}

// GetSection returns one section of the user's document
func (s *UserDataService) GetSection(ctx context.Context, req GetSectionRequest) (*GetSectionResult, error) {
	if err := s.authorize(req.CallerID, req.UserID); err != nil {
		return nil, err
	}
	if !req.Kind.Valid() {
		_, err := section.ParseKind(string(req.Kind))
		return nil, err
	}

	data, found, err := s.dataRepo.Get(ctx, req.UserID, req.Kind)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	if !found {
		return &GetSectionResult{}, nil
	}
	return &GetSectionResult{Data: data}, nil
}

// PutSection decodes and validates the payload as the kind's typed value,
// stamps lastUpdated and replaces the stored section.
func (s *UserDataService) PutSection(ctx context.Context, req PutSectionRequest) (*PutSectionResult, error) {
	if err := s.authorize(req.CallerID, req.UserID); err != nil {
		return nil, err
	}

	value, err := section.Decode(req.Kind, req.Data)
	if err != nil {
		return nil, err
	}
	if err := section.Validate(value); err != nil {
		return nil, err
	}

	stamped := section.Stamp(value, s.now())
	data, err := section.Encode(stamped)
	if err != nil {
		return nil, err
	}
	if err := s.dataRepo.Put(ctx, req.UserID, req.Kind, data); err != nil {
		return nil, mapRepoErr(err)
	}
	return &PutSectionResult{Data: data}, nil
}

// GetAllSections returns every stored section keyed by dataType
func (s *UserDataService) GetAllSections(ctx context.Context, callerID, userID uuid.UUID) (map[section.Kind]json.RawMessage, error) {
	if err := s.authorize(callerID, userID); err != nil {
		return nil, err
	}
	all, err := s.dataRepo.GetAll(ctx, userID)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return all, nil
}
