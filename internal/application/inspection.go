package application

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxserv365/concierge/internal/domain/inspection"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/storage"
)

type InspectionService struct {
	Repos *repository.Repos
	files fileStore
	now   func() time.Time
}

func NewInspectionService(repos *repository.Repos, opts Options) *InspectionService {
	return &InspectionService{
		Repos: repos,
		files: fileStore{store: opts.Store, maxBytes: opts.MaxUploadBytes},
		now:   opts.clock(),
	}
}

// Create records an inspection report. The report file is optional; PDFs,
// Word documents and images are accepted.
func (s *InspectionService) Create(ctx context.Context, input inspection.CreateReportDTO, file *storage.Upload, uploadedBy string) (inspection.Report, error) {
	input.Normalize()
	rep := inspection.Report{
		ID:              uuid.NewString(),
		Title:           input.Title,
		Notes:           input.Notes,
		OwnerEmail:      input.OwnerEmail,
		PropertyAddress: input.PropertyAddress,
		InspectionDate:  input.InspectionDate,
		UploadedBy:      uploadedBy,
		CreatedAt:       s.now().UTC(),
	}

	var stored []StoredFile
	if file != nil {
		sf, err := s.files.save(ctx, FolderInspections, *file, acceptReports)
		if err != nil {
			return inspection.Report{}, err
		}
		stored = append(stored, sf)
		url := "/api/inspections/file/" + sf.Filename
		rep.FileName = &sf.Filename
		rep.FileURL = &url
		rep.OriginalName = &sf.OriginalName
		rep.ContentType = &sf.ContentType
	}

	if err := s.Repos.Inspection.Create(&rep); err != nil {
		s.files.remove(ctx, stored)
		return inspection.Report{}, err
	}
	return rep, nil
}

func (s *InspectionService) ListByOwner(email string) ([]inspection.Report, error) {
	return nonNil(s.Repos.Inspection.ListByOwner(strings.ToLower(strings.TrimSpace(email))))
}

func (s *InspectionService) OpenFile(ctx context.Context, filename string) (io.ReadCloser, storage.Object, error) {
	return s.files.open(ctx, FolderInspections, filename)
}
