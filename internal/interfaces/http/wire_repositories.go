package http

import (
	"gorm.io/gorm"

	"github.com/adli-inc/adli/internal/infrastructure/repository"
	"github.com/adli-inc/adli/internal/shared/logger"
)

// repositories holds all repository instances used by the application.
type repositories struct {
	requestRepo        *repository.RequestRepository
	counterRepo        *repository.RequestCounterRepository
	historyRepo        *repository.RequestHistoryRepository
	resolutionRepo     repository.ResolutionRepository
	stepRepo           repository.StepRepository
	fileRepo           repository.FileRepository
	companyRepo        *repository.CompanyRepository
	requesterRepo      *repository.CompanyEmployeeRepository
	directionRepo      *repository.DirectionRepository
	agencyEmployeeRepo *repository.AgencyEmployeeRepository
	departmentRepo     *repository.DepartmentRepository
}

func newRepositories(db *gorm.DB, allocations repository.AllocationObserver, log logger.Interface) *repositories {
	records := repository.NewRequestRecordRepository(db)
	return &repositories{
		requestRepo:        repository.NewRequestRepository(db, log),
		counterRepo:        repository.NewRequestCounterRepository(db, allocations),
		historyRepo:        repository.NewRequestHistoryRepository(db),
		resolutionRepo:     records.Resolutions(),
		stepRepo:           records.Steps(),
		fileRepo:           records.Files(),
		companyRepo:        repository.NewCompanyRepository(db),
		requesterRepo:      repository.NewCompanyEmployeeRepository(db),
		directionRepo:      repository.NewDirectionRepository(db),
		agencyEmployeeRepo: repository.NewAgencyEmployeeRepository(db),
		departmentRepo:     repository.NewDepartmentRepository(db),
	}
}
