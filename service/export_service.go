package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"uzazi-salama-backend/models"
	"uzazi-salama-backend/section"
	"uzazi-salama-backend/storage"

	"github.com/google/uuid"
)

// ExportService writes snapshots of a user's sections to object storage
type ExportService struct {
	data    *UserDataService
	storage storage.Storage
	now     func() time.Time
}

// NewExportService creates a new export service
func NewExportService(data *UserDataService, st storage.Storage) *ExportService {
	return &ExportService{data: data, storage: st, now: time.Now}
}

type exportDocument struct {
	UserID     uuid.UUID                        `json:"userId"`
	ExportedAt time.Time                        `json:"exportedAt"`
	Sections   map[section.Kind]json.RawMessage `json:"sections"`
}

// CreateExport snapshots every stored section of userID
func (s *ExportService) CreateExport(ctx context.Context, callerID, userID uuid.UUID) (*models.Export, error) {
	if s.storage == nil {
		return nil, errors.New("export storage not set")
	}
	all, err := s.data.GetAllSections(ctx, callerID, userID)
	if err != nil {
		return nil, err
	}

	doc := exportDocument{UserID: userID, ExportedAt: s.now().UTC(), Sections: all}
	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode export: %w", err)
	}

	export := &models.Export{
		ID:        uuid.New(),
		UserID:    userID,
		Sections:  make([]string, 0, len(all)),
		Size:      int64(len(body)),
		CreatedAt: doc.ExportedAt,
	}
	for kind := range all {
		export.Sections = append(export.Sections, string(kind))
	}
	sort.Strings(export.Sections)

	filename := fmt.Sprintf("user-data-%s.json", doc.ExportedAt.Format("20060102T150405Z"))
	path, err := s.storage.Upload(ctx, userID, export.ID, filename, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	export.StoragePath = path
	return export, nil
}

// OpenExport returns a reader for one of the caller's exports
func (s *ExportService) OpenExport(ctx context.Context, callerID uuid.UUID, path string) (io.ReadCloser, error) {
	if !storage.OwnedBy(path, callerID) {
		return nil, ErrExportNotFound
	}
	rc, err := s.storage.Download(ctx, path)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return nil, ErrExportNotFound
	}
	return rc, err
}

// DeleteExport removes one of the caller's exports
func (s *ExportService) DeleteExport(ctx context.Context, callerID uuid.UUID, path string) error {
	if !storage.OwnedBy(path, callerID) {
		return ErrExportNotFound
	}
	return s.storage.Delete(ctx, path)
}
