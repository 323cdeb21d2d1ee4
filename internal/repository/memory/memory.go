// Package memory implements the repository interfaces on top of maps guarded
// by a single lock. It backs STORAGE_DRIVER=memory and router tests.
package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/luxserv365/concierge/internal/domain/admin"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/contact"
	"github.com/luxserv365/concierge/internal/domain/inspection"
	"github.com/luxserv365/concierge/internal/domain/message"
	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/domain/request"
	"github.com/luxserv365/concierge/internal/repository"
	"gorm.io/gorm"
)

type store struct {
	mu          sync.RWMutex
	requests    map[string]request.ServiceRequest
	contacts    []contact.Submission
	messages    map[string]message.OwnerMessage
	inspections []inspection.Report
	photos      []photo.PropertyPhoto
	properties  map[string]property.Property
	admins      map[string]admin.User
	audits      []audit.AuditLog
	nextAdminID uint
	nextAuditID uint
}

func NewRepositories() *repository.Repos {
	s := &store{
		requests:   map[string]request.ServiceRequest{},
		messages:   map[string]message.OwnerMessage{},
		properties: map[string]property.Property{},
		admins:     map[string]admin.User{},
	}
	repos := &repository.Repos{
		Request:    &RequestRepo{s: s},
		Contact:    &ContactRepo{s: s},
		Message:    &MessageRepo{s: s},
		Inspection: &InspectionRepo{s: s},
		Photo:      &PhotoRepo{s: s},
		Property:   &PropertyRepo{s: s},
		Admin:      &AdminRepo{s: s},
		Audit:      &AuditRepo{s: s},
	}
	return repos.Serialized()
}

type RequestRepo struct{ s *store }

func (r *RequestRepo) Create(req *request.ServiceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.requests[req.ID]; ok {
		return gorm.ErrDuplicatedKey
	}
	for _, existing := range r.s.requests {
		if existing.ConfirmationNumber == req.ConfirmationNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	r.s.requests[req.ID] = req.Clone()
	return nil
}

func (r *RequestRepo) GetByID(id string) (request.ServiceRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	req, ok := r.s.requests[id]
	if !ok {
		return request.ServiceRequest{}, gorm.ErrRecordNotFound
	}
	return req.Clone(), nil
}

func (r *RequestRepo) GetByIDForUpdate(id string) (request.ServiceRequest, error) {
	return r.GetByID(id)
}

func (r *RequestRepo) GetByConfirmation(number string) (request.ServiceRequest, error) {
	number = strings.ToUpper(strings.TrimSpace(number))
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, req := range r.s.requests {
		if req.ConfirmationNumber == number {
			return req.Clone(), nil
		}
	}
	return request.ServiceRequest{}, gorm.ErrRecordNotFound
}

func (r *RequestRepo) List(filter request.Filter) ([]request.ServiceRequest, int64, error) {
	page, p := filter.Apply(r.snapshot())
	return page, p.TotalCount, nil
}

func (r *RequestRepo) ListAll() ([]request.ServiceRequest, error) {
	all := r.snapshot()
	request.SortNewestFirst(all)
	return all, nil
}

func (r *RequestRepo) Save(req *request.ServiceRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.requests[req.ID]
	if ok {
		req.CreatedAt = existing.CreatedAt
	}
	r.s.requests[req.ID] = req.Clone()
	return nil
}

func (r *RequestRepo) Stats(since time.Time) (request.Stats, error) {
	stats := request.Stats{
		ByStatus: map[request.Status]int64{},
		ByType:   map[request.RequestType]int64{},
	}
	for _, req := range r.snapshot() {
		stats.Total++
		stats.ByStatus[req.Status]++
		stats.ByType[req.RequestType]++
		if req.Priority == request.PriorityUrgent {
			stats.Urgent++
		}
		if !req.CreatedAt.Before(since) {
			stats.Recent++
		}
	}
	return stats, nil
}

func (r *RequestRepo) WithTx(tx *gorm.DB) repository.RequestRepo { return r }

func (r *RequestRepo) snapshot() []request.ServiceRequest {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]request.ServiceRequest, 0, len(r.s.requests))
	for _, req := range r.s.requests {
		out = append(out, req.Clone())
	}
	return out
}

type ContactRepo struct{ s *store }

func (r *ContactRepo) Create(sub *contact.Submission) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.contacts = append(r.s.contacts, *sub)
	return nil
}

func (r *ContactRepo) List() ([]contact.Submission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := append([]contact.Submission(nil), r.s.contacts...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ContactRepo) WithTx(tx *gorm.DB) repository.ContactRepo { return r }

type MessageRepo struct{ s *store }

func (r *MessageRepo) Create(m *message.OwnerMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.messages[m.ID] = *m
	return nil
}

func (r *MessageRepo) GetByID(id string) (message.OwnerMessage, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	m, ok := r.s.messages[id]
	if !ok {
		return message.OwnerMessage{}, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (r *MessageRepo) List() ([]message.OwnerMessage, error) {
	return r.filter(func(message.OwnerMessage) bool { return true }), nil
}

func (r *MessageRepo) ListByOwner(email string) ([]message.OwnerMessage, error) {
	email = strings.ToLower(email)
	return r.filter(func(m message.OwnerMessage) bool { return m.OwnerEmail == email }), nil
}

func (r *MessageRepo) Save(m *message.OwnerMessage) error {
	return r.Create(m)
}

func (r *MessageRepo) WithTx(tx *gorm.DB) repository.MessageRepo { return r }

func (r *MessageRepo) filter(keep func(message.OwnerMessage) bool) []message.OwnerMessage {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []message.OwnerMessage{}
	for _, m := range r.s.messages {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

type InspectionRepo struct{ s *store }

func (r *InspectionRepo) Create(rep *inspection.Report) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.inspections = append(r.s.inspections, *rep)
	return nil
}

func (r *InspectionRepo) ListByOwner(email string) ([]inspection.Report, error) {
	email = strings.ToLower(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []inspection.Report{}
	for _, rep := range r.s.inspections {
		if rep.OwnerEmail == email {
			out = append(out, rep)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].InspectionDate == out[j].InspectionDate {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].InspectionDate > out[j].InspectionDate
	})
	return out, nil
}

func (r *InspectionRepo) WithTx(tx *gorm.DB) repository.InspectionRepo { return r }

type PhotoRepo struct{ s *store }

func (r *PhotoRepo) CreateBatch(photos []photo.PropertyPhoto) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.photos = append(r.s.photos, photos...)
	return nil
}

func (r *PhotoRepo) ListByOwner(email string) ([]photo.PropertyPhoto, error) {
	email = strings.ToLower(email)
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []photo.PropertyPhoto{}
	for _, p := range r.s.photos {
		if p.OwnerEmail == email {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PhotoRepo) WithTx(tx *gorm.DB) repository.PhotoRepo { return r }

type PropertyRepo struct{ s *store }

func (r *PropertyRepo) Create(p *property.Property) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.properties[p.ID] = *p
	return nil
}

func (r *PropertyRepo) GetByID(id string) (property.Property, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.properties[id]
	if !ok {
		return property.Property{}, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *PropertyRepo) List(q property.ListQuery) ([]property.Property, int64, error) {
	q = q.Normalize()
	needle := strings.ToLower(q.Search)
	all := r.filter(func(p property.Property) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(p.OwnerEmail), needle) ||
			strings.Contains(strings.ToLower(p.OwnerName), needle) ||
			strings.Contains(strings.ToLower(p.PropertyAddress), needle)
	})
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	start := (q.Page - 1) * q.Limit
	if start > len(all) {
		start = len(all)
	}
	end := start + q.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (r *PropertyRepo) ListByOwner(email string) ([]property.Property, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	out := r.filter(func(p property.Property) bool { return p.OwnerEmail == email })
	sort.SliceStable(out, func(i, j int) bool { return out[i].PropertyAddress < out[j].PropertyAddress })
	return out, nil
}

func (r *PropertyRepo) Save(p *property.Property) error {
	return r.Create(p)
}

func (r *PropertyRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.properties[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.s.properties, id)
	return nil
}

func (r *PropertyRepo) WithTx(tx *gorm.DB) repository.PropertyRepo { return r }

func (r *PropertyRepo) filter(keep func(property.Property) bool) []property.Property {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []property.Property{}
	for _, p := range r.s.properties {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

type AdminRepo struct{ s *store }

func (r *AdminRepo) GetByUsername(username string) (admin.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.admins[username]
	if !ok {
		return admin.User{}, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *AdminRepo) Save(u *admin.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u.ID == 0 {
		r.s.nextAdminID++
		u.ID = r.s.nextAdminID
	}
	r.s.admins[u.Username] = *u
	return nil
}

func (r *AdminRepo) WithTx(tx *gorm.DB) repository.AdminRepo { return r }

type AuditRepo struct{ s *store }

func (r *AuditRepo) Record(l *audit.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.nextAuditID++
	l.ID = r.s.nextAuditID
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now()
	}
	r.s.audits = append(r.s.audits, *l)
	return nil
}

func (r *AuditRepo) Find(q audit.Query) ([]audit.AuditLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []audit.AuditLog{}
	for i := len(r.s.audits) - 1; i >= 0; i-- {
		if q.Matches(r.s.audits[i]) {
			out = append(out, r.s.audits[i])
		}
	}
	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []audit.AuditLog{}, nil
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (r *AuditRepo) PurgeBefore(cutoff time.Time) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	kept := r.s.audits[:0]
	var removed int64
	for _, l := range r.s.audits {
		if l.CreatedAt.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, l)
	}
	r.s.audits = kept
	return removed, nil
}

func (r *AuditRepo) WithTx(tx *gorm.DB) repository.AuditRepo { return r }
