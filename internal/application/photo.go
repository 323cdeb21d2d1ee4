package application

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/storage"
)

type PhotoService struct {
	Repos *repository.Repos
	files fileStore
	now   func() time.Time
}

func NewPhotoService(repos *repository.Repos, opts Options) *PhotoService {
	return &PhotoService{
		Repos: repos,
		files: fileStore{store: opts.Store, maxBytes: opts.MaxUploadBytes},
		now:   opts.clock(),
	}
}

// Upload stores a batch of property photos. Either every photo is saved or
// none is.
func (s *PhotoService) Upload(ctx context.Context, input photo.UploadDTO, files []storage.Upload) ([]photo.PropertyPhoto, error) {
	input.Normalize()
	if len(files) == 0 {
		return nil, ErrNoPhotos
	}
	if len(files) > photo.MaxPerUpload {
		return nil, fmt.Errorf("%w: at most %d photos per upload", ErrTooManyPhotos, photo.MaxPerUpload)
	}

	stored, err := s.files.saveAll(ctx, FolderPhotos, files, acceptImages)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	photos := make([]photo.PropertyPhoto, 0, len(stored))
	for _, sf := range stored {
		photos = append(photos, photo.PropertyPhoto{
			ID:              uuid.NewString(),
			OwnerEmail:      input.OwnerEmail,
			PropertyAddress: input.PropertyAddress,
			Caption:         input.Caption,
			FileName:        sf.Filename,
			FileURL:         "/api/photos/file/" + sf.Filename,
			OriginalName:    sf.OriginalName,
			ContentType:     sf.ContentType,
			CreatedAt:       now,
		})
	}
	if err := s.Repos.Photo.CreateBatch(photos); err != nil {
		s.files.remove(ctx, stored)
		return nil, err
	}
	return photos, nil
}

func (s *PhotoService) ListByOwner(email string) ([]photo.PropertyPhoto, error) {
	return nonNil(s.Repos.Photo.ListByOwner(strings.ToLower(strings.TrimSpace(email))))
}

func (s *PhotoService) OpenFile(ctx context.Context, filename string) (io.ReadCloser, storage.Object, error) {
	return s.files.open(ctx, FolderPhotos, filename)
}
