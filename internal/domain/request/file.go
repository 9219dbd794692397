package request

import (
	"fmt"
	"strings"
	"time"

	vo "github.com/adli-inc/adli/internal/domain/request/valueobjects"
)

// File is write-once attachment metadata. The bytes live in external storage.
type File struct {
	id           uint
	requestID    uint
	kind         vo.FileKind
	storageKey   string
	originalName string
	size         int64
	createdAt    time.Time
}

func NewFile(requestID uint, storageKey, originalName string, size int64, policy vo.AttachmentPolicy, now time.Time) (*File, error) {
	if strings.TrimSpace(storageKey) == "" {
		return nil, fmt.Errorf("file storage key is required")
	}
	if err := policy.Check(originalName, size); err != nil {
		return nil, err
	}
	return &File{
		requestID:    requestID,
		kind:         vo.FileKindAttachment,
		storageKey:   storageKey,
		originalName: originalName,
		size:         size,
		createdAt:    now,
	}, nil
}

func ReconstructFile(id, requestID uint, kind vo.FileKind, storageKey, originalName string, size int64, createdAt time.Time) *File {
	return &File{
		id:           id,
		requestID:    requestID,
		kind:         kind,
		storageKey:   storageKey,
		originalName: originalName,
		size:         size,
		createdAt:    createdAt,
	}
}

func (f *File) ID() uint             { return f.id }
func (f *File) RequestID() uint      { return f.requestID }
func (f *File) Kind() vo.FileKind    { return f.kind }
func (f *File) StorageKey() string   { return f.storageKey }
func (f *File) OriginalName() string { return f.originalName }
func (f *File) Size() int64          { return f.size }
func (f *File) CreatedAt() time.Time { return f.createdAt }
func (f *File) SetID(id uint)        { f.id = id }

// BindRequest sets the owning request on metadata built before insert.
func (f *File) BindRequest(id uint) {
	if f.requestID == 0 {
		f.requestID = id
	}
}
