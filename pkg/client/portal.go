package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/luxserv365/concierge/internal/domain/admin"
	"github.com/luxserv365/concierge/internal/domain/audit"
	"github.com/luxserv365/concierge/internal/domain/contact"
	"github.com/luxserv365/concierge/internal/domain/inspection"
	"github.com/luxserv365/concierge/internal/domain/message"
	"github.com/luxserv365/concierge/internal/domain/photo"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/pkg/types"
	"github.com/luxserv365/concierge/pkg/validation"
)

func validate(v any) error {
	return validation.Struct(v)
}

func (c *Client) login(ctx context.Context, path string, in any) (*Session, error) {
	cl, err := jsonCall(http.MethodPost, path, in)
	if err != nil {
		return nil, err
	}
	raw, err := c.do(ctx, cl)
	if err != nil {
		return nil, err
	}
	s, err := decode[Session](raw)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) AdminLogin(ctx context.Context, username, password string) (*Session, error) {
	in := admin.LoginDTO{Username: strings.TrimSpace(username), Password: password}
	if err := validate(in); err != nil {
		return nil, validationError(err, nil)
	}
	return c.login(ctx, "/admin/login", in)
}

// OwnerLogin signs an owner in with the e-mail and address of one of their properties.
func (c *Client) OwnerLogin(ctx context.Context, email, propertyAddress string) (*Session, error) {
	in := admin.OwnerLoginDTO{Email: strings.TrimSpace(email), PropertyAddress: strings.TrimSpace(propertyAddress)}
	if err := validate(in); err != nil {
		return nil, validationError(err, map[string]string{"PropertyAddress": "property address"})
	}
	return c.login(ctx, "/owner/login", in)
}

// Refresh trades an admin session for a new one. The old token stops working.
func (c *Client) Refresh(ctx context.Context, s *Session) (*Session, error) {
	raw, err := c.do(ctx, call{method: http.MethodPost, path: "/admin/refresh"}.as(s))
	if err != nil {
		return nil, err
	}
	next, err := decode[Session](raw)
	if err != nil {
		return nil, err
	}
	return &next, nil
}

// Logout revokes the session on the server.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	path := "/admin/logout"
	if s != nil && s.Role == types.RoleOwner {
		path = "/owner/logout"
	}
	_, err := c.do(ctx, call{method: http.MethodPost, path: path}.as(s))
	return err
}

func (c *Client) OwnerProperties(ctx context.Context, s *Session) ([]property.Property, error) {
	return sendJSON[[]property.Property](ctx, c, http.MethodGet, "/owner/properties", s, nil)
}

// PropertyPage is one page of the admin property list.
type PropertyPage struct {
	Properties []property.Property `json:"properties"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

func (c *Client) ListProperties(ctx context.Context, s *Session, q property.ListQuery) (PropertyPage, error) {
	v := url.Values{}
	if q.Search = strings.TrimSpace(q.Search); q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return data[PropertyPage](ctx, c, call{method: http.MethodGet, path: "/admin/properties", query: v}.as(s))
}

func (c *Client) CreateProperty(ctx context.Context, s *Session, in property.CreatePropertyDTO) (property.Property, error) {
	if err := validate(in); err != nil {
		return property.Property{}, validationError(err, property.FieldLabels)
	}
	return sendJSON[property.Property](ctx, c, http.MethodPost, "/admin/properties", s, in)
}

func (c *Client) UpdateProperty(ctx context.Context, s *Session, id string, in property.UpdatePropertyDTO) (property.Property, error) {
	if strings.TrimSpace(id) == "" {
		return property.Property{}, invalid("property id is required")
	}
	if err := validate(in); err != nil {
		return property.Property{}, validationError(err, property.FieldLabels)
	}
	return sendJSON[property.Property](ctx, c, http.MethodPut, "/admin/properties/"+url.PathEscape(id), s, in)
}

func (c *Client) DeleteProperty(ctx context.Context, s *Session, id string) error {
	if strings.TrimSpace(id) == "" {
		return invalid("property id is required")
	}
	_, err := c.do(ctx, call{method: http.MethodDelete, path: "/admin/properties/" + url.PathEscape(id)}.as(s))
	return err
}

func (c *Client) SubmitContact(ctx context.Context, in contact.CreateContactDTO) (contact.Submission, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return contact.Submission{}, validationError(err, contact.FieldLabels)
	}
	return sendPublic[contact.Submission](ctx, c, http.MethodPost, "/contact", in)
}

func (c *Client) ListContacts(ctx context.Context, s *Session) ([]contact.Submission, error) {
	return sendJSON[[]contact.Submission](ctx, c, http.MethodGet, "/contact", s, nil)
}

func (c *Client) SendMessage(ctx context.Context, in message.CreateMessageDTO) (message.OwnerMessage, error) {
	in.Normalize()
	if err := validate(in); err != nil {
		return message.OwnerMessage{}, validationError(err, message.FieldLabels)
	}
	return sendPublic[message.OwnerMessage](ctx, c, http.MethodPost, "/messages", in)
}

func (c *Client) ListMessages(ctx context.Context, s *Session) ([]message.OwnerMessage, error) {
	return sendJSON[[]message.OwnerMessage](ctx, c, http.MethodGet, "/messages", s, nil)
}

func (c *Client) OwnerMessages(ctx context.Context, s *Session, email string) ([]message.OwnerMessage, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("owner email is required")
	}
	return sendJSON[[]message.OwnerMessage](ctx, c, http.MethodGet, "/messages/owner/"+url.PathEscape(strings.TrimSpace(email)), s, nil)
}

func (c *Client) MarkMessageRead(ctx context.Context, s *Session, id string) (message.OwnerMessage, error) {
	if strings.TrimSpace(id) == "" {
		return message.OwnerMessage{}, invalid("message id is required")
	}
	return sendJSON[message.OwnerMessage](ctx, c, http.MethodPut, "/admin/messages/"+url.PathEscape(id)+"/read", s, nil)
}

func (c *Client) UploadInspection(ctx context.Context, s *Session, in inspection.CreateReportDTO, report File) (inspection.Report, error) {
	if err := validate(in); err != nil {
		return inspection.Report{}, validationError(err, inspection.FieldLabels)
	}
	if report.Content == nil {
		return inspection.Report{}, invalid("report file is required")
	}
	fields := map[string]string{
		"title":           in.Title,
		"ownerEmail":      in.OwnerEmail,
		"propertyAddress": in.PropertyAddress,
		"inspectionDate":  in.InspectionDate,
	}
	if in.Notes != nil {
		fields["notes"] = *in.Notes
	}
	cl, err := multipartCall(http.MethodPost, "/inspections", fields, "reportFile", []File{report})
	if err != nil {
		return inspection.Report{}, err
	}
	return data[inspection.Report](ctx, c, cl.as(s))
}

func (c *Client) OwnerInspections(ctx context.Context, s *Session, email string) ([]inspection.Report, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("owner email is required")
	}
	return sendJSON[[]inspection.Report](ctx, c, http.MethodGet, "/inspections/owner/"+url.PathEscape(strings.TrimSpace(email)), s, nil)
}

func (c *Client) UploadPhotos(ctx context.Context, s *Session, in photo.UploadDTO, photos ...File) ([]photo.PropertyPhoto, error) {
	if err := validate(in); err != nil {
		return nil, validationError(err, photo.FieldLabels)
	}
	if len(photos) == 0 {
		return nil, invalid("at least one photo is required")
	}
	fields := map[string]string{
		"ownerEmail":      in.OwnerEmail,
		"propertyAddress": in.PropertyAddress,
	}
	if in.Caption != nil {
		fields["caption"] = *in.Caption
	}
	cl, err := multipartCall(http.MethodPost, "/photos/upload", fields, "photos", photos)
	if err != nil {
		return nil, err
	}
	return data[[]photo.PropertyPhoto](ctx, c, cl.as(s))
}

func (c *Client) OwnerPhotos(ctx context.Context, s *Session, email string) ([]photo.PropertyPhoto, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("owner email is required")
	}
	return sendJSON[[]photo.PropertyPhoto](ctx, c, http.MethodGet, "/photos/owner/"+url.PathEscape(strings.TrimSpace(email)), s, nil)
}

// AuditQuery filters the admin audit log. Zero values are not sent.
type AuditQuery struct {
	Actor        string
	ResourceType string
	Action       string
	Start        time.Time
	End          time.Time
	Limit        int
	Offset       int
}

func (q AuditQuery) values() url.Values {
	v := url.Values{}
	for k, s := range map[string]string{"actor": q.Actor, "resource_type": q.ResourceType, "action": q.Action} {
		if s != "" {
			v.Set(k, s)
		}
	}
	if !q.Start.IsZero() {
		v.Set("start_time", q.Start.Format(time.RFC3339))
	}
	if !q.End.IsZero() {
		v.Set("end_time", q.End.Format(time.RFC3339))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	return v
}

func (c *Client) AuditLogs(ctx context.Context, s *Session, q AuditQuery) ([]audit.AuditLog, error) {
	return data[[]audit.AuditLog](ctx, c, call{method: http.MethodGet, path: "/admin/audit-logs", query: q.values()}.as(s))
}

// Download fetches a stored file by the URL the API handed out, e.g.
// "/api/guest-photos/<name>" or a path relative to the base URL. The caller
// must close the reader.
func (c *Client) Download(ctx context.Context, fileURL string) (io.ReadCloser, string, error) {
	path := strings.TrimSpace(fileURL)
	if path == "" {
		return nil, "", invalid("file url is required")
	}
	if base, err := url.Parse(c.baseURL); err == nil && base.Path != "" {
		path = strings.TrimPrefix(path, base.Path)
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", &Error{Kind: KindValidation, Message: "Invalid request", Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", transportError(err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		return nil, "", serverError(resp.StatusCode, raw)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}
