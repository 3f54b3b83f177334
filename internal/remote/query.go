package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Query composes a single table-scoped request: optional column selection,
// equality/inequality filters, ordering and a row limit. Terminal methods
// issue exactly one round trip.
type Query struct {
	c       *Client
	table   string
	columns string
	filters []filter
	order   string
	limit   int
	single  bool
}

type filter struct {
	column string
	op     string
	value  string
}

// Select names the columns (or embedded resources) to return. The string
// is passed through verbatim, so joins like "*,product:products(*)" work.
func (q *Query) Select(columns string) *Query {
	q.columns = columns
	return q
}

func (q *Query) Eq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column, "eq", fmt.Sprint(value)})
	return q
}

func (q *Query) Neq(column string, value any) *Query {
	q.filters = append(q.filters, filter{column, "neq", fmt.Sprint(value)})
	return q
}

// Order sorts by column; ascending when asc is true, descending otherwise.
func (q *Query) Order(column string, asc bool) *Query {
	dir := "desc"
	if asc {
		dir = "asc"
	}
	q.order = column + "." + dir
	return q
}

func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Single requests exactly one row; the read fails with a not-found error
// when no row matches.
func (q *Query) Single() *Query {
	q.single = true
	return q
}

func (q *Query) url() string {
	params := url.Values{}
	if q.columns != "" {
		params.Set("select", q.columns)
	}
	for _, f := range q.filters {
		params.Add(f.column, f.op+"."+f.value)
	}
	if q.order != "" {
		params.Set("order", q.order)
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}

	u := q.c.baseURL + "/rest/v1/" + q.table
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

func (q *Query) do(ctx context.Context, method string, body []byte, prefer string) (*http.Response, error) {
	var rdr *bytes.Reader
	var req *http.Request
	var err error
	if body != nil {
		rdr = bytes.NewReader(body)
		req, err = http.NewRequestWithContext(ctx, method, q.url(), rdr)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, q.url(), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s request for %s: %w", method, q.table, err)
	}

	q.c.setHeaders(req)
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}
	if q.single {
		req.Header.Set("Accept", "application/vnd.pgrst.object+json")
	}

	resp, err := q.c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, q.table, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		return nil, decodeError(resp)
	}
	return resp, nil
}

// Get reads matching rows into dest (a *T with Single, a *[]T otherwise).
func (q *Query) Get(ctx context.Context, dest any) error {
	resp, err := q.do(ctx, http.MethodGet, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode %s response: %w", q.table, err)
	}
	return nil
}

// Count performs a count-only read; no row data crosses the wire.
func (q *Query) Count(ctx context.Context) (int, error) {
	resp, err := q.do(ctx, http.MethodHead, nil, "count=exact")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	// Content-Range is "0-24/3573" or "*/0".
	cr := resp.Header.Get("Content-Range")
	idx := strings.LastIndex(cr, "/")
	if idx < 0 {
		return 0, fmt.Errorf("count %s: missing Content-Range header", q.table)
	}
	n, err := strconv.Atoi(cr[idx+1:])
	if err != nil {
		return 0, fmt.Errorf("count %s: bad Content-Range %q: %w", q.table, cr, err)
	}
	return n, nil
}

// Insert writes one row (or a slice of rows). When dest is non-nil the
// created representation is read back into it.
func (q *Query) Insert(ctx context.Context, row any, dest any) error {
	body, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("marshal %s row: %w", q.table, err)
	}

	prefer := "return=minimal"
	if dest != nil {
		prefer = "return=representation"
	}
	resp, err := q.do(ctx, http.MethodPost, body, prefer)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode inserted %s row: %w", q.table, err)
	}
	return nil
}

// Update patches all rows matching the filters.
func (q *Query) Update(ctx context.Context, patch any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("marshal %s patch: %w", q.table, err)
	}

	resp, err := q.do(ctx, http.MethodPatch, body, "return=minimal")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}

// Delete removes all rows matching the filters.
func (q *Query) Delete(ctx context.Context) error {
	resp, err := q.do(ctx, http.MethodDelete, nil, "return=minimal")
	if err != nil {
		return err
	}
	return resp.Body.Close()
}
