package application

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/repository"
)

type PropertyService struct {
	Repos *repository.Repos
	now   func() time.Time
}

func NewPropertyService(repos *repository.Repos, opts Options) *PropertyService {
	return &PropertyService{Repos: repos, now: opts.clock()}
}

type PropertyPage struct {
	Properties []property.Property `json:"properties"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

func (s *PropertyService) List(q property.ListQuery) (PropertyPage, error) {
	q = q.Normalize()
	items, total, err := s.Repos.Property.List(q)
	if err != nil {
		return PropertyPage{}, err
	}
	if items == nil {
		items = []property.Property{}
	}
	return PropertyPage{Properties: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

func (s *PropertyService) Get(id string) (property.Property, error) {
	p, err := s.Repos.Property.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return property.Property{}, ErrPropertyNotFound
		}
		return property.Property{}, err
	}
	return p, nil
}

func (s *PropertyService) Create(input property.CreatePropertyDTO) (property.Property, error) {
	p := input.ToModel(s.now().UTC())
	p.ID = uuid.NewString()
	if err := s.Repos.Property.Create(&p); err != nil {
		return property.Property{}, err
	}
	return p, nil
}

// Update returns the property before and after the change.
func (s *PropertyService) Update(id string, input property.UpdatePropertyDTO) (property.Property, property.Property, error) {
	var before, after property.Property
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		p, err := tx.Property.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPropertyNotFound
			}
			return err
		}
		before = p
		input.Apply(&p)
		if p.OwnerName == "" || p.PropertyAddress == "" {
			return invalid("owner name and property address cannot be blank")
		}
		p.UpdatedAt = s.now().UTC()
		if err := tx.Property.Save(&p); err != nil {
			return err
		}
		after = p
		return nil
	})
	return before, after, err
}

func (s *PropertyService) Delete(id string) (property.Property, error) {
	p, err := s.Get(id)
	if err != nil {
		return property.Property{}, err
	}
	if err := s.Repos.Property.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return property.Property{}, ErrPropertyNotFound
		}
		return property.Property{}, err
	}
	return p, nil
}

func (s *PropertyService) ListByOwner(email string) ([]property.Property, error) {
	items, err := s.Repos.Property.ListByOwner(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []property.Property{}
	}
	return items, nil
}
