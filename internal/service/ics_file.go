package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/roster-server/internal/logger"
	"github.com/dtroode/roster-server/internal/model"
)

const publishPrefix = "calendars"

// IcsFile manages stored calendar files. Callers work with
// model.IcsFileEntity values, which must be backed by *model.IcsFile.
type IcsFile struct {
	store   model.EntityStore[*model.IcsFile]
	storage model.Storage
	logger  *logger.Logger
	now     func() time.Time
}

// NewIcsFile creates the calendar file service. storage may be nil, in which
// case Publish is unavailable.
func NewIcsFile(store model.EntityStore[*model.IcsFile], storage model.Storage, logger *logger.Logger) *IcsFile {
	return &IcsFile{
		store:   store,
		storage: storage,
		logger:  logger,
		now:     time.Now,
	}
}

// ImportOptions describes an imported calendar payload.
type ImportOptions struct {
	// FileName is the stored name. Defaults to the base of the original name.
	FileName        string
	ContentType     string
	Description     *string
	CreatedByUserID *int
}

func (s *IcsFile) Get(ctx context.Context, id int) (model.IcsFileEntity, error) {
	if id <= 0 {
		return nil, s.fail("Error getting ICS file", model.NewOutOfRangeError("id", id), "ics_file_id", id)
	}

	file, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, s.fail("Error getting ICS file", err, "ics_file_id", id)
	}
	if file == nil {
		return nil, nil
	}

	return file, nil
}

func (s *IcsFile) GetAll(ctx context.Context) ([]model.IcsFileEntity, error) {
	files, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, s.fail("Error getting all ICS files", err)
	}

	return toEntities(files), nil
}

func (s *IcsFile) Add(ctx context.Context, icsFile model.IcsFileEntity) (model.IcsFileEntity, error) {
	if model.IsNil(icsFile) {
		return nil, s.fail("Error adding ICS file", model.NewNullArgumentError("icsFile"))
	}
	if icsFile.GetID() != 0 {
		return nil, s.fail("Error adding ICS file", model.NewOutOfRangeError("Id", icsFile.GetID()), "ics_file_id", icsFile.GetID())
	}
	file, err := asIcsFile(icsFile)
	if err != nil {
		return nil, s.fail("Error adding ICS file", err)
	}

	added, err := s.store.Add(ctx, file)
	if err != nil {
		return nil, s.fail("Error adding ICS file", err)
	}
	if added == nil {
		return nil, nil
	}

	return added, nil
}

func (s *IcsFile) Update(ctx context.Context, icsFile model.IcsFileEntity) (model.IcsFileEntity, error) {
	if err := checkEntity(icsFile, "icsFile"); err != nil {
		return nil, s.fail("Error updating ICS file", err)
	}
	file, err := asIcsFile(icsFile)
	if err != nil {
		return nil, s.fail("Error updating ICS file", err, "ics_file_id", icsFile.GetID())
	}

	updated, err := s.store.Update(ctx, file)
	if err != nil {
		return nil, s.fail("Error updating ICS file", err, "ics_file_id", icsFile.GetID())
	}
	if updated == nil {
		return nil, nil
	}

	return updated, nil
}

func (s *IcsFile) UpdateRange(ctx context.Context, icsFiles []model.IcsFileEntity) ([]model.IcsFileEntity, error) {
	if err := checkEntities(icsFiles, "icsFiles"); err != nil {
		return nil, s.fail("Error updating range of ICS files", err)
	}
	files, err := asIcsFiles(icsFiles)
	if err != nil {
		return nil, s.fail("Error updating range of ICS files", err)
	}

	updated, err := s.store.UpdateRange(ctx, files)
	if err != nil {
		return nil, s.fail("Error updating range of ICS files", err, "count", len(files))
	}

	return toEntities(updated), nil
}

func (s *IcsFile) Delete(ctx context.Context, icsFile model.IcsFileEntity) (bool, error) {
	if err := checkEntity(icsFile, "icsFile"); err != nil {
		return false, s.fail("Error deleting ICS file", err)
	}
	file, err := asIcsFile(icsFile)
	if err != nil {
		return false, s.fail("Error deleting ICS file", err, "ics_file_id", icsFile.GetID())
	}

	deleted, err := s.store.Delete(ctx, file)
	if err != nil {
		return false, s.fail("Error deleting ICS file", err, "ics_file_id", icsFile.GetID())
	}

	return deleted, nil
}

func (s *IcsFile) DeleteRange(ctx context.Context, icsFiles []model.IcsFileEntity) (bool, error) {
	if err := checkEntities(icsFiles, "icsFiles"); err != nil {
		return false, s.fail("Error deleting range of ICS files", err)
	}
	files, err := asIcsFiles(icsFiles)
	if err != nil {
		return false, s.fail("Error deleting range of ICS files", err)
	}

	deleted, err := s.store.DeleteRange(ctx, files)
	if err != nil {
		return false, s.fail("Error deleting range of ICS files", err, "count", len(files))
	}

	return deleted, nil
}

func (s *IcsFile) HasEntity(ctx context.Context, id int) (bool, error) {
	if id <= 0 {
		return false, s.fail("Error checking existence of ICS file", model.NewOutOfRangeError("id", id), "ics_file_id", id)
	}

	exists, err := s.store.HasEntity(ctx, id)
	if err != nil {
		return false, s.fail("Error checking existence of ICS file", err, "ics_file_id", id)
	}

	return exists, nil
}

// Import reads an iCalendar payload and stores it as a new file. Only the base
// name of originalName is kept.
func (s *IcsFile) Import(ctx context.Context, originalName string, r io.Reader, opts ImportOptions) (model.IcsFileEntity, error) {
	if r == nil {
		return nil, s.fail("Error importing ICS file", model.NewNullArgumentError("reader"))
	}
	if originalName == "" && opts.FileName == "" {
		return nil, s.fail("Error importing ICS file", model.NewNullArgumentError("fileName"))
	}

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, s.fail("Error importing ICS file", fmt.Errorf("failed to read calendar: %w", err), "original_file_name", originalName)
	}
	if !bytes.HasPrefix(bytes.TrimSpace(content), []byte("BEGIN:VCALENDAR")) {
		return nil, s.fail("Error importing ICS file", model.ErrInvalidCalendar, "original_file_name", originalName)
	}

	file := model.NewIcsFile()
	file.FileName = opts.FileName
	if file.FileName == "" {
		file.FileName = path.Base(originalName)
	}
	if opts.ContentType != "" {
		file.ContentType = opts.ContentType
	}
	if originalName != "" {
		base := path.Base(originalName)
		file.OriginalFileName = &base
	}
	file.Description = opts.Description
	file.CreatedByUserID = opts.CreatedByUserID
	file.FileContent = content
	file.FileSize = int64(len(content))
	file.DateCreated = s.now().UTC()

	added, err := s.Add(ctx, file)
	if err != nil {
		return nil, err
	}
	if added == nil {
		return nil, s.fail("Error importing ICS file", fmt.Errorf("calendar was not stored: %w", model.ErrOperationFailed), "file_name", file.FileName)
	}

	s.logger.Info("ICS file service: calendar imported",
		"ics_file_id", added.GetID(),
		"file_name", added.GetFileName(),
		"file_size", added.GetFileSize())

	return added, nil
}

// Publish uploads the content of the file to object storage and returns the
// object key.
func (s *IcsFile) Publish(ctx context.Context, id int) (string, error) {
	if model.IsNil(s.storage) {
		return "", s.fail("Error publishing ICS file", model.ErrStorageUnavailable, "ics_file_id", id)
	}

	file, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if file == nil {
		return "", s.fail("Error publishing ICS file", fmt.Errorf("ics file %d: %w", id, model.ErrNotFound), "ics_file_id", id)
	}

	key := path.Join(publishPrefix, uuid.New().String(), path.Base(file.GetFileName()))
	content := file.GetFileContent()

	err = s.storage.Upload(ctx, key, bytes.NewReader(content), int64(len(content)), file.GetContentType())
	if err != nil {
		return "", s.fail("Error publishing ICS file", fmt.Errorf("failed to upload to storage: %w", err), "ics_file_id", id)
	}

	s.logger.Info("ICS file service: calendar published", "ics_file_id", id, "key", key)

	return key, nil
}

func (s *IcsFile) fail(msg string, err error, attrs ...any) error {
	args := append(attrs, "error", err.Error())
	s.logger.Error("ICS file service: "+msg, args...)
	return err
}

func asIcsFile(e model.IcsFileEntity) (*model.IcsFile, error) {
	file, ok := e.(*model.IcsFile)
	if !ok {
		return nil, fmt.Errorf("%T is not *model.IcsFile: %w", e, model.ErrInvalidCast)
	}
	return file, nil
}

func asIcsFiles(entities []model.IcsFileEntity) ([]*model.IcsFile, error) {
	files := make([]*model.IcsFile, 0, len(entities))
	for _, e := range entities {
		if model.IsNil(e) {
			return nil, model.NewNullArgumentError("icsFiles")
		}
		file, err := asIcsFile(e)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func toEntities(files []*model.IcsFile) []model.IcsFileEntity {
	entities := make([]model.IcsFileEntity, 0, len(files))
	for _, f := range files {
		entities = append(entities, f)
	}
	return entities
}
