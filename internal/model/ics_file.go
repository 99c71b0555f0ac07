package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultContentType is the content type of a calendar file unless told otherwise.
const DefaultContentType = "text/calendar"

// IcsFileEntity is the capability view of a calendar file.
type IcsFileEntity interface {
	Entity
	GetFileName() string
	SetFileName(name string)
	GetDescription() *string
	SetDescription(description *string)
	GetContentType() string
	SetContentType(contentType string)
	GetFileContent() []byte
	SetFileContent(content []byte)
	GetFileSize() int64
	SetFileSize(size int64)
	GetOriginalFileName() *string
	SetOriginalFileName(name *string)
	GetCreatedByUserID() *int
	SetCreatedByUserID(id *int)
}

var _ IcsFileEntity = (*IcsFile)(nil)

// IcsFile is a stored calendar export.
type IcsFile struct {
	DomainEntity
	FileName         string
	Description      *string
	ContentType      string
	FileContent      []byte
	FileSize         int64
	OriginalFileName *string
	CreatedByUserID  *int
}

// NewIcsFile returns an empty calendar file with the default content type.
func NewIcsFile() *IcsFile {
	return &IcsFile{ContentType: DefaultContentType}
}

func (f *IcsFile) GetFileName() string { return f.FileName }
func (f *IcsFile) SetFileName(name string) { f.FileName = name }
func (f *IcsFile) GetDescription() *string { return f.Description }
func (f *IcsFile) SetDescription(description *string) { f.Description = description }
func (f *IcsFile) GetContentType() string { return f.ContentType }
func (f *IcsFile) SetContentType(contentType string) { f.ContentType = contentType }
func (f *IcsFile) GetFileContent() []byte { return f.FileContent }
func (f *IcsFile) SetFileContent(content []byte) { f.FileContent = content }
func (f *IcsFile) GetFileSize() int64 { return f.FileSize }
func (f *IcsFile) SetFileSize(size int64) { f.FileSize = size }
func (f *IcsFile) GetOriginalFileName() *string { return f.OriginalFileName }
func (f *IcsFile) SetOriginalFileName(name *string) { f.OriginalFileName = name }
func (f *IcsFile) GetCreatedByUserID() *int { return f.CreatedByUserID }
func (f *IcsFile) SetCreatedByUserID(id *int) { f.CreatedByUserID = id }

func (f *IcsFile) String() string {
	return fmt.Sprintf("model.IcsFile.Id:%d.FileName:%s", f.ID, f.FileName)
}

func (f *IcsFile) ToJSON() (string, error) { return toJSON(f) }

type icsFileJSON struct {
	ID               int        `json:"id"`
	FileName         string     `json:"fileName"`
	Description      *string    `json:"description,omitempty"`
	ContentType      string     `json:"contentType"`
	FileContent      string     `json:"fileContent"`
	FileSize         int64      `json:"fileSize"`
	OriginalFileName *string    `json:"originalFileName,omitempty"`
	CreatedByUserID  *int       `json:"createdByUserId,omitempty"`
	DateCreated      timestamp  `json:"dateCreated"`
	DateModified     *timestamp `json:"dateModified,omitempty"`
}

func (f *IcsFile) MarshalJSON() ([]byte, error) {
	return json.Marshal(icsFileJSON{
		ID:               f.ID,
		FileName:         f.FileName,
		Description:      f.Description,
		ContentType:      f.ContentType,
		FileContent:      base64.StdEncoding.EncodeToString(f.FileContent),
		FileSize:         f.FileSize,
		OriginalFileName: f.OriginalFileName,
		CreatedByUserID:  f.CreatedByUserID,
		DateCreated:      timestamp(f.DateCreated),
		DateModified:     newTimestamp(f.DateModified),
	})
}

func (f *IcsFile) UnmarshalJSON(data []byte) error {
	w := icsFileJSON{ContentType: DefaultContentType}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var content []byte
	if w.FileContent != "" {
		decoded, err := base64.StdEncoding.DecodeString(w.FileContent)
		if err != nil {
			return fmt.Errorf("decode fileContent: %w", err)
		}
		content = decoded
	}

	*f = IcsFile{
		DomainEntity: DomainEntity{
			ID:           w.ID,
			DateCreated:  time.Time(w.DateCreated),
			DateModified: w.DateModified.time(),
		},
		FileName:         w.FileName,
		Description:      w.Description,
		ContentType:      w.ContentType,
		FileContent:      content,
		FileSize:         w.FileSize,
		OriginalFileName: w.OriginalFileName,
		CreatedByUserID:  w.CreatedByUserID,
	}
	return nil
}
