package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpserver "staff_reviews/internal/adapters/http_server"
	"staff_reviews/internal/app"
	"staff_reviews/internal/domain"
)

// ---- fakes ----

type memStore struct {
	rows   map[int64]domain.ReviewRow
	order  []int64
	nextID int64
}

func newMemStore() *memStore { return &memStore{rows: map[int64]domain.ReviewRow{}, nextID: 1} }

func (m *memStore) Insert(ctx context.Context, row domain.ReviewRow) (int64, error) {
	id := m.nextID
	m.nextID++
	row.ID = id
	m.rows[id] = row
	m.order = append(m.order, id)
	return id, nil
}

func (m *memStore) Update(ctx context.Context, row domain.ReviewRow) error {
	m.rows[row.ID] = row
	return nil
}

func (m *memStore) Delete(ctx context.Context, id int64) error {
	delete(m.rows, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (domain.ReviewRow, error) {
	row, ok := m.rows[id]
	if !ok {
		return domain.ReviewRow{}, domain.ErrNotFound
	}
	return row, nil
}

func (m *memStore) ListAll(ctx context.Context) ([]domain.ReviewRow, error) {
	out := make([]domain.ReviewRow, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.rows[id])
	}
	return out, nil
}

func (m *memStore) CreateSchema(ctx context.Context) error { return nil }
func (m *memStore) DropSchema(ctx context.Context) error   { return nil }

type memDirectory struct{ ids map[int64]bool }

func (d *memDirectory) FindByID(ctx context.Context, id int64) (domain.Employee, error) {
	if d.ids[id] {
		return domain.Employee{ID: id, Name: "emp"}, nil
	}
	return domain.Employee{}, domain.ErrNotFound
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	svc := app.NewRecordService(newMemStore(), &memDirectory{ids: map[int64]bool{1: true, 2: true}})
	srv := httpserver.New(1000, 1000)
	srv.MountHandlers(&httpserver.Handlers{Records: svc})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

type reviewBody struct {
	ID         int64  `json:"id"`
	Year       int    `json:"year"`
	Summary    string `json:"summary"`
	EmployeeID int64  `json:"employee_id"`
}

func postReview(t *testing.T, ts *httptest.Server, year int, summary string, employeeID int64) (*http.Response, reviewBody) {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{"year": year, "summary": summary, "employee_id": employeeID})
	res, err := http.Post(ts.URL+"/v1/reviews", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer res.Body.Close()
	var body reviewBody
	_ = json.NewDecoder(res.Body).Decode(&body)
	return res, body
}

// ---- tests ----

func TestCreateThenGet(t *testing.T) {
	ts := newTestServer(t)

	res, created := postReview(t, ts, 2023, "Good work", 1)
	if res.StatusCode != http.StatusCreated {
		t.Fatalf("create status %d", res.StatusCode)
	}
	if created.ID == 0 {
		t.Fatalf("create response has no id: %+v", created)
	}

	getRes, err := http.Get(fmt.Sprintf("%s/v1/reviews/%d", ts.URL, created.ID))
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer getRes.Body.Close()
	if getRes.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", getRes.StatusCode)
	}
	var got reviewBody
	if err := json.NewDecoder(getRes.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != created {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, created)
	}
}

func TestCreate_ValidationFailures(t *testing.T) {
	ts := newTestServer(t)

	cases := []struct {
		name       string
		year       int
		summary    string
		employeeID int64
	}{
		{"year too early", 1999, "fine", 1},
		{"blank summary", 2023, "   ", 1},
		{"unknown employee", 2023, "fine", 99},
	}
	for _, tc := range cases {
		res, _ := postReview(t, ts, tc.year, tc.summary, tc.employeeID)
		if res.StatusCode != http.StatusUnprocessableEntity {
			t.Fatalf("%s: status %d, want 422", tc.name, res.StatusCode)
		}
		if ct := res.Header.Get("Content-Type"); ct != "application/problem+json" {
			t.Fatalf("%s: content type %q", tc.name, ct)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	ts := newTestServer(t)

	res, err := http.Get(ts.URL + "/v1/reviews/12345")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d, want 404", res.StatusCode)
	}
}

func TestUpdateThenDelete(t *testing.T) {
	ts := newTestServer(t)
	client := &http.Client{}

	_, created := postReview(t, ts, 2020, "before", 1)

	payload, _ := json.Marshal(map[string]any{"year": 2021, "summary": "after", "employee_id": 2})
	req, _ := http.NewRequest(http.MethodPut, fmt.Sprintf("%s/v1/reviews/%d", ts.URL, created.ID), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	res, err := client.Do(req)
	if err != nil {
		t.Fatalf("PUT: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("update status %d", res.StatusCode)
	}
	var updated reviewBody
	if err := json.NewDecoder(res.Body).Decode(&updated); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if updated.Year != 2021 || updated.Summary != "after" || updated.EmployeeID != 2 {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	delReq, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/v1/reviews/%d", ts.URL, created.ID), nil)
	delRes, err := client.Do(delReq)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	delRes.Body.Close()
	if delRes.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status %d", delRes.StatusCode)
	}

	getRes, err := http.Get(fmt.Sprintf("%s/v1/reviews/%d", ts.URL, created.ID))
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	getRes.Body.Close()
	if getRes.StatusCode != http.StatusNotFound {
		t.Fatalf("status %d after delete, want 404", getRes.StatusCode)
	}
}

func TestList_ReturnsAll(t *testing.T) {
	ts := newTestServer(t)

	for i := 0; i < 3; i++ {
		res, _ := postReview(t, ts, 2020+i, "entry", 1)
		if res.StatusCode != http.StatusCreated {
			t.Fatalf("create #%d status %d", i, res.StatusCode)
		}
	}

	res, err := http.Get(ts.URL + "/v1/reviews")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	defer res.Body.Close()
	var list []reviewBody
	if err := json.NewDecoder(res.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 reviews, got %d", len(list))
	}
}

func TestRateLimit_Kicks(t *testing.T) {
	svc := app.NewRecordService(newMemStore(), &memDirectory{ids: map[int64]bool{1: true}})
	srv := httpserver.New(1, 1)
	srv.MountHandlers(&httpserver.Handlers{Records: svc})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	saw429 := false
	for i := 0; i < 5; i++ {
		res, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		res.Body.Close()
		if res.StatusCode == http.StatusTooManyRequests {
			saw429 = true
		}
	}
	if !saw429 {
		t.Fatalf("expected at least one 429 with a 1 rps bucket")
	}
}
