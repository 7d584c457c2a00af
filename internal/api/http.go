package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"quotedesk/internal/debug"
	"quotedesk/internal/domain"
	appErrors "quotedesk/internal/errors"
	"quotedesk/internal/session"
)

const (
	maxErrorSnippetLen = 200

	quotationsPath = "/api/quotations"
	projectsPath   = "/api/projects"
	suppliersPath  = "/api/suppliers"

	// HeaderUserID carries the resolved identity on every call.
	HeaderUserID = "X-User-ID"
)

var httpLog = debug.Scope("api")

const defaultTimeout = 15 * time.Second

type httpClient struct {
	baseURL  *url.URL
	http     *http.Client
	timeout  time.Duration
	resolver session.Resolver
}

// HTTPOption configures the HTTP client implementation.
type HTTPOption func(*httpClient)

// WithHTTPClient overrides the transport used for requests.
func WithHTTPClient(hc *http.Client) HTTPOption {
	return func(c *httpClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout sets the per-request timeout. It applies to a copy of any
// client passed through WithHTTPClient, whatever the option order.
func WithTimeout(d time.Duration) HTTPOption {
	return func(c *httpClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithResolver sets the identity source injected into each request.
func WithResolver(r session.Resolver) HTTPOption {
	return func(c *httpClient) {
		if r != nil {
			c.resolver = r
		}
	}
}

// NewHTTPClient constructs a Client talking to the quotation backend.
func NewHTTPClient(baseURL string, opts ...HTTPOption) (Client, error) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(baseURL), "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("invalid api base url %q", baseURL), err)
	}
	client := &httpClient{
		baseURL:  u,
		http:     &http.Client{Timeout: defaultTimeout},
		resolver: session.StaticResolver{},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.timeout > 0 {
		hc := *client.http
		hc.Timeout = client.timeout
		client.http = &hc
	}
	return client, nil
}

func (c *httpClient) ListQuotations(ctx context.Context, params ListParams) (QuotationPage, error) {
	q := url.Values{}
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		q.Set("keyword", kw)
	}
	for _, s := range params.States {
		q.Add("states", string(s))
	}
	for _, id := range params.ProjectIDs {
		q.Add("projectIds", id)
	}
	for _, id := range params.SupplierIDs {
		q.Add("supplierIds", id)
	}
	setPaging(q, params.Page, params.Size)

	var page PageDTO[QuotationDTO]
	if err := c.get(ctx, quotationsPath, q, &page); err != nil {
		return QuotationPage{}, fmt.Errorf("list quotations: %w", err)
	}
	rows := make([]domain.QuotationSummary, 0, len(page.Content))
	for _, dto := range page.Content {
		row, err := dto.toDomain()
		if err != nil {
			return QuotationPage{}, appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("decode quotation %q: %v", dto.ID, err), err)
		}
		rows = append(rows, row)
	}
	return QuotationPage{Rows: rows, Page: page.Page, Size: page.Size, Total: page.TotalElements}, nil
}

func (c *httpClient) GetQuotation(ctx context.Context, id string) (domain.QuotationDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.QuotationDetail{}, fmt.Errorf("quotation id is required")
	}
	var dto QuotationDetailDTO
	if err := c.get(ctx, quotationsPath+"/"+url.PathEscape(id), nil, &dto); err != nil {
		return domain.QuotationDetail{}, fmt.Errorf("get quotation %s: %w", id, err)
	}
	detail, err := dto.toDomain()
	if err != nil {
		return domain.QuotationDetail{}, appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("decode quotation %q: %v", id, err), err)
	}
	return detail, nil
}

func (c *httpClient) SearchProjects(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error) {
	var page PageDTO[ProjectDTO]
	if err := c.get(ctx, projectsPath, searchQuery(params), &page); err != nil {
		return nil, fmt.Errorf("search projects: %w", err)
	}
	opts := make([]domain.ReferenceOption, 0, len(page.Content))
	for _, p := range page.Content {
		opts = append(opts, ProjectOption(p))
	}
	return opts, nil
}

func (c *httpClient) SearchSuppliers(ctx context.Context, params SearchParams) ([]domain.ReferenceOption, error) {
	var page PageDTO[SupplierDTO]
	if err := c.get(ctx, suppliersPath, searchQuery(params), &page); err != nil {
		return nil, fmt.Errorf("search suppliers: %w", err)
	}
	opts := make([]domain.ReferenceOption, 0, len(page.Content))
	for _, s := range page.Content {
		opts = append(opts, SupplierOption(s))
	}
	return opts, nil
}

func searchQuery(params SearchParams) url.Values {
	q := url.Values{}
	if kw := strings.TrimSpace(params.Keyword); kw != "" {
		q.Set("keyword", kw)
	}
	setPaging(q, params.Page, params.Size)
	return q
}

func setPaging(q url.Values, page, size int) {
	if page < 0 {
		page = 0
	}
	q.Set("page", strconv.Itoa(page))
	if size > 0 {
		q.Set("size", strconv.Itoa(size))
	}
}

func (c *httpClient) get(ctx context.Context, path string, query url.Values, out any) error {
	id, err := c.resolver.Resolve(ctx)
	if err != nil {
		return err
	}

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return appErrors.New(appErrors.CodeHTTPFailed, fmt.Sprintf("build request: %v", err), err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderUserID, id.UserID)
	if id.Token != "" {
		req.Header.Set("Authorization", "Bearer "+id.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return appErrors.New(appErrors.CodeHTTPFailed, fmt.Sprintf("GET %s: %v", path, err), err)
	}
	defer resp.Body.Close()
	httpLog.Logf("GET %s -> %d (%s)", u.RequestURI(), resp.StatusCode, time.Since(start).Round(time.Millisecond))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.New(appErrors.CodeHTTPFailed, fmt.Sprintf("read %s response: %v", path, err), err)
	}
	if err := classifyStatus(resp.StatusCode, path, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return appErrors.New(appErrors.CodeParseFailed, fmt.Sprintf("decode %s response: %v (output: %s)", path, err, snippet(body)), err)
	}
	return nil
}

func classifyStatus(status int, path string, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return appErrors.New(appErrors.CodeUnauthorized, fmt.Sprintf("GET %s: %s", path, http.StatusText(status)), nil)
	case status == http.StatusNotFound:
		return appErrors.New(appErrors.CodeNotFound, fmt.Sprintf("GET %s: not found", path), nil)
	default:
		return appErrors.New(appErrors.CodeHTTPFailed, fmt.Sprintf("GET %s: status %d: %s", path, status, snippet(body)), nil)
	}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippetLen {
		s = s[:maxErrorSnippetLen] + "..."
	}
	return s
}
