package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/luxserv365/concierge/internal/domain/request"
)

// Submission is the server's answer to a new guest request.
type Submission struct {
	Request            request.ServiceRequest `json:"data"`
	ConfirmationNumber string                 `json:"confirmationNumber"`
	Message            string                 `json:"message"`
}

// SubmitRequest validates in and files a guest request. Photos, when given,
// are sent as multipart form data.
func (c *Client) SubmitRequest(ctx context.Context, in request.CreateRequestDTO, photos ...File) (Submission, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return Submission{}, validationError(err, request.FieldLabels)
	}

	var (
		cl  call
		err error
	)
	if len(photos) == 0 {
		cl, err = jsonCall(http.MethodPost, "/guest-requests", in)
	} else {
		cl, err = multipartCall(http.MethodPost, "/guest-requests", requestFields(in), "photos", photos)
	}
	if err != nil {
		return Submission{}, err
	}

	raw, err := c.do(ctx, cl)
	if err != nil {
		return Submission{}, err
	}
	return decode[Submission](raw)
}

func requestFields(in request.CreateRequestDTO) map[string]string {
	f := map[string]string{
		"guestName":       in.GuestName,
		"guestEmail":      in.GuestEmail,
		"propertyAddress": in.PropertyAddress,
		"requestType":     string(in.RequestType),
		"priority":        string(in.Priority),
		"message":         in.Message,
		"source":          string(in.Source),
	}
	optional := map[string]*string{
		"guestPhone":   in.GuestPhone,
		"unitNumber":   in.UnitNumber,
		"checkInDate":  in.CheckInDate,
		"checkOutDate": in.CheckOutDate,
	}
	for k, v := range optional {
		if v != nil {
			f[k] = *v
		}
	}
	if in.NumberOfGuests != nil {
		f["numberOfGuests"] = strconv.Itoa(*in.NumberOfGuests)
	}
	return f
}

func (c *Client) LookupRequest(ctx context.Context, confirmationNumber string) (request.ServiceRequest, error) {
	confirmationNumber = strings.TrimSpace(confirmationNumber)
	if confirmationNumber == "" {
		return request.ServiceRequest{}, invalid("confirmation number is required")
	}
	return sendPublic[request.ServiceRequest](ctx, c, http.MethodGet, "/guest-requests/"+url.PathEscape(confirmationNumber), nil)
}

// AllRequests returns every request without filtering, newest first.
func (c *Client) AllRequests(ctx context.Context, s *Session) ([]request.ServiceRequest, error) {
	return sendJSON[[]request.ServiceRequest](ctx, c, http.MethodGet, "/guest-requests", s, nil)
}

// ListRequests asks the server for one filtered page.
func (c *Client) ListRequests(ctx context.Context, s *Session, f request.Filter) (request.Page, error) {
	cl := call{method: http.MethodGet, path: "/admin/guest-requests", query: filterQuery(f)}
	return data[request.Page](ctx, c, cl.as(s))
}

func filterQuery(f request.Filter) url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v = strings.TrimSpace(v); v != "" {
			q.Set(k, v)
		}
	}
	set("search", f.Search)
	set("status", string(f.Status))
	set("priority", string(f.Priority))
	set("request_type", string(f.RequestType))
	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q
}

// FilterRequests applies f to an already fetched slice, the same way the
// server filters, sorts and paginates.
func FilterRequests(all []request.ServiceRequest, f request.Filter) ([]request.ServiceRequest, request.Pagination) {
	return f.Apply(all)
}

func (c *Client) UpdateRequest(ctx context.Context, s *Session, id string, in request.UpdateRequestDTO) (request.ServiceRequest, error) {
	if strings.TrimSpace(id) == "" {
		return request.ServiceRequest{}, invalid("request id is required")
	}
	if in.Empty() {
		return request.ServiceRequest{}, invalid("nothing to update")
	}
	if err := validate(in); err != nil {
		return request.ServiceRequest{}, validationError(err, request.FieldLabels)
	}
	return sendJSON[request.ServiceRequest](ctx, c, http.MethodPut, "/admin/guest-requests/"+url.PathEscape(id), s, in)
}

// BulkUpdate sends one batch call. Per-item failures come back in the result,
// not as an error.
func (c *Client) BulkUpdate(ctx context.Context, s *Session, in request.BulkUpdateDTO) (request.BulkResult, error) {
	if err := validate(in); err != nil {
		return request.BulkResult{}, validationError(err, request.FieldLabels)
	}
	return sendJSON[request.BulkResult](ctx, c, http.MethodPut, "/admin/guest-requests/bulk-update", s, in)
}

func (c *Client) Reply(ctx context.Context, s *Session, id string, in request.ReplyDTO) (request.ReplyReceipt, error) {
	if strings.TrimSpace(id) == "" {
		return request.ReplyReceipt{}, invalid("request id is required")
	}
	if err := validate(in); err != nil {
		return request.ReplyReceipt{}, validationError(err, request.FieldLabels)
	}
	return sendJSON[request.ReplyReceipt](ctx, c, http.MethodPost, "/admin/guest-requests/"+url.PathEscape(id)+"/reply", s, in)
}

func (c *Client) Analytics(ctx context.Context, s *Session) (request.Analytics, error) {
	return sendJSON[request.Analytics](ctx, c, http.MethodGet, "/admin/analytics", s, nil)
}

func (c *Client) Catalog(ctx context.Context) (request.Catalog, error) {
	return sendPublic[request.Catalog](ctx, c, http.MethodGet, "/catalog", nil)
}

// Health returns nil when the API answers its health check.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, call{method: http.MethodGet, path: "/health"})
	return err
}
