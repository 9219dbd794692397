package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/adli-inc/adli/internal/shared/constants"
)

// RequestModel is the case row. Foreign keys and cascades are declared in
// the SQL migrations; the models carry no gorm associations.
type RequestModel struct {
	ID                   uint            `gorm:"primaryKey"`
	PublicID             string          `gorm:"size:20;not null;uniqueIndex"`
	PublicYear           int             `gorm:"not null;index:idx_requests_public_seq,priority:1"`
	PublicSeq            int64           `gorm:"not null;index:idx_requests_public_seq,priority:2"`
	Status               string          `gorm:"size:32;not null;index"`
	CompanyID            uint            `gorm:"not null;index"`
	CompanyEmployeeID    *uint           `gorm:"index"`
	AssignedDepartmentID *uint           `gorm:"index"`
	AssignedEmployeeID   *uint           `gorm:"index"`
	DeputyAssistantID    *uint           `gorm:"index"`
	Description          string          `gorm:"type:text;not null"`
	DueDate              *datatypes.Date `gorm:"index"`
	ResolvedAt           *time.Time
	CreatedAt            time.Time `gorm:"not null;index"`
	UpdatedAt            time.Time `gorm:"not null"`
}

func (RequestModel) TableName() string {
	return constants.TableRequests
}

type RequestDirectionModel struct {
	RequestID   uint `gorm:"primaryKey;autoIncrement:false"`
	DirectionID uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (RequestDirectionModel) TableName() string {
	return constants.TableRequestDirections
}

// RequestCounterModel holds the per-year high-water mark of public IDs.
type RequestCounterModel struct {
	Year       int   `gorm:"primaryKey;autoIncrement:false"`
	LastNumber int64 `gorm:"not null;default:0"`
	UpdatedAt  time.Time
}

func (RequestCounterModel) TableName() string {
	return constants.TableRequestCounters
}

type RequestResolutionModel struct {
	ID                 uint            `gorm:"primaryKey"`
	RequestID          uint            `gorm:"not null;index"`
	AuthorID           uint            `gorm:"not null"`
	Text               string          `gorm:"type:text;not null"`
	TargetDepartmentID *uint           `gorm:"index"`
	TargetEmployeeID   *uint           `gorm:"index"`
	DueDate            *datatypes.Date
	CreatedAt          time.Time `gorm:"not null"`
}

func (RequestResolutionModel) TableName() string {
	return constants.TableRequestResolutions
}

type RequestStepModel struct {
	ID        uint      `gorm:"primaryKey"`
	RequestID uint      `gorm:"not null;index"`
	AuthorID  uint      `gorm:"not null"`
	Text      string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

func (RequestStepModel) TableName() string {
	return constants.TableRequestSteps
}

type RequestFileModel struct {
	ID           uint      `gorm:"primaryKey"`
	RequestID    uint      `gorm:"not null;index"`
	Kind         string    `gorm:"size:20;not null"`
	StorageKey   string    `gorm:"size:500;not null"`
	OriginalName string    `gorm:"size:255;not null"`
	Size         int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (RequestFileModel) TableName() string {
	return constants.TableRequestFiles
}

// RequestHistoryModel is append-only. Rows are ordered by ID for audit
// replay since several can share one timestamp.
type RequestHistoryModel struct {
	ID         uint              `gorm:"primaryKey"`
	RequestID  uint              `gorm:"not null;index"`
	ActorID    *uint             `gorm:"index"`
	Action     string            `gorm:"size:32;not null;index"`
	FromStatus string            `gorm:"size:32;not null;default:''"`
	ToStatus   string            `gorm:"size:32;not null;default:''"`
	Comment    string            `gorm:"type:text"`
	Metadata   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt  time.Time         `gorm:"not null;index"`
}

func (RequestHistoryModel) TableName() string {
	return constants.TableRequestHistory
}
