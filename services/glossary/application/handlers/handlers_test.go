package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/glossary/services/glossary/application/handlers"
	appsvcs "github.com/ghuser/glossary/services/glossary/application/services"
	glossarydomain "github.com/ghuser/glossary/services/glossary/domain"
	"github.com/ghuser/glossary/services/glossary/domain/models"
	"github.com/ghuser/glossary/services/glossary/domain/repositories"
)

// memRepo backs handler tests without Postgres. Same contract as the real
// repository: assigned ids, unique names, sentinel errors.
type memRepo struct {
	nextID int64
	terms  map[int64]*models.Term
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1, terms: make(map[int64]*models.Term)}
}

func (m *memRepo) Save(_ context.Context, term *models.Term) error {
	for _, existing := range m.terms {
		if existing.Name == term.Name {
			return glossarydomain.ErrTermAlreadyExists
		}
	}
	now := time.Now().UTC()
	term.ID = m.nextID
	term.CreatedAt = now
	term.UpdatedAt = now
	m.nextID++
	cp := *term
	m.terms[term.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id int64) (*models.Term, error) {
	term, ok := m.terms[id]
	if !ok {
		return nil, glossarydomain.ErrTermNotFound
	}
	cp := *term
	return &cp, nil
}

func (m *memRepo) Find(_ context.Context, params repositories.ListParams) ([]*models.Term, int, error) {
	var matched []*models.Term
	for id := int64(1); id < m.nextID; id++ {
		term, ok := m.terms[id]
		if !ok {
			continue
		}
		if params.Search != "" {
			needle := strings.ToLower(params.Search)
			if !strings.Contains(strings.ToLower(term.Name.String()), needle) &&
				!strings.Contains(strings.ToLower(term.Description), needle) {
				continue
			}
		}
		cp := *term
		matched = append(matched, &cp)
	}

	total := len(matched)
	start := params.Offset()
	if start > total {
		start = total
	}
	end := start + params.PageSize
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (m *memRepo) Update(_ context.Context, term *models.Term) error {
	existing, ok := m.terms[term.ID]
	if !ok {
		return glossarydomain.ErrTermNotFound
	}
	for id, other := range m.terms {
		if id != term.ID && other.Name == term.Name {
			return glossarydomain.ErrTermAlreadyExists
		}
	}
	term.CreatedAt = existing.CreatedAt
	term.UpdatedAt = time.Now().UTC()
	cp := *term
	m.terms[term.ID] = &cp
	return nil
}

func (m *memRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.terms[id]; !ok {
		return glossarydomain.ErrTermNotFound
	}
	delete(m.terms, id)
	return nil
}

func (m *memRepo) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := m.terms[id]
	return ok, nil
}

// newTestRouter mounts the glossary routes over an in-memory repository, the
// same layout cmd/api registers under /api.
func newTestRouter() chi.Router {
	svcs := &appsvcs.Services{Term: appsvcs.NewTermService(newMemRepo(), nil, nil)}

	r := chi.NewRouter()
	r.Route("/glossary", func(r chi.Router) {
		r.Get("/", handlers.NewListTermsHandler(svcs).Execute)
		r.Post("/", handlers.NewPostTermHandler(svcs).Execute)
		r.Get("/search", handlers.NewSearchTermsHandler(svcs).Execute)
		r.Get("/{id}", handlers.NewGetTermHandler(svcs).Execute)
		r.Put("/{id}", handlers.NewPutTermHandler(svcs).Execute)
		r.Delete("/{id}", handlers.NewDeleteTermHandler(svcs).Execute)
	})
	return r
}

func doJSON(t *testing.T, router chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func createTerm(t *testing.T, router chi.Router, name, description string) handlers.TermResponse {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"name": name, "description": description})
	rr := doJSON(t, router, http.MethodPost, "/glossary", string(body))
	if rr.Code != http.StatusCreated {
		t.Fatalf("create %q: expected 201, got %d: %s", name, rr.Code, rr.Body.String())
	}
	var resp handlers.TermResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	return resp
}

func TestPostTerm(t *testing.T) {
	t.Run("creates term with assigned id and timestamps", func(t *testing.T) {
		router := newTestRouter()
		resp := createTerm(t, router, "API", "Application Programming Interface")
		if resp.ID == 0 {
			t.Error("expected assigned id")
		}
		if resp.Name != "API" {
			t.Errorf("unexpected name: %q", resp.Name)
		}
		if resp.CreatedAt.IsZero() || !resp.CreatedAt.Equal(resp.UpdatedAt) {
			t.Errorf("expected equal non-zero timestamps, got %v / %v", resp.CreatedAt, resp.UpdatedAt)
		}
	})

	t.Run("missing fields return 422 with field map", func(t *testing.T) {
		router := newTestRouter()
		rr := doJSON(t, router, http.MethodPost, "/glossary", `{"name":"API"}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		var resp handlers.ValidationErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := resp.Fields["description"]; !ok {
			t.Errorf("expected description field violation, got %v", resp.Fields)
		}
	})

	t.Run("unknown body field returns 422", func(t *testing.T) {
		router := newTestRouter()
		rr := doJSON(t, router, http.MethodPost, "/glossary", `{"name":"API","description":"d","extra":1}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		if !strings.Contains(rr.Body.String(), "extra") {
			t.Errorf("expected offending field in body: %s", rr.Body.String())
		}
	})

	t.Run("malformed JSON returns 400", func(t *testing.T) {
		router := newTestRouter()
		rr := doJSON(t, router, http.MethodPost, "/glossary", `{broken`)
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rr.Code)
		}
	})

	t.Run("duplicate name returns 409", func(t *testing.T) {
		router := newTestRouter()
		createTerm(t, router, "API", "first")
		rr := doJSON(t, router, http.MethodPost, "/glossary", `{"name":"API","description":"second"}`)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
		}
	})
}

func TestGetTerm(t *testing.T) {
	router := newTestRouter()
	created := createTerm(t, router, "API", "desc")

	t.Run("returns stored term", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/1", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp handlers.TermResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.ID != created.ID || resp.Name != "API" {
			t.Errorf("unexpected term: %+v", resp)
		}
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/9999", "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})

	t.Run("non-numeric id returns 422 naming the id field", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/abc", "")
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		var resp handlers.ValidationErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := resp.Fields["id"]; !ok {
			t.Errorf("expected id field violation, got %v", resp.Fields)
		}
	})
}

func TestListTerms(t *testing.T) {
	router := newTestRouter()
	for _, name := range []string{"API", "REST", "CRUD", "Pagination", "Migration"} {
		createTerm(t, router, name, "about "+name)
	}

	decode := func(t *testing.T, rr *httptest.ResponseRecorder) handlers.TermListResponse {
		t.Helper()
		var resp handlers.TermListResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp
	}

	t.Run("defaults to page 1 size 20", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		resp := decode(t, rr)
		if resp.Page != 1 || resp.PageSize != 20 {
			t.Errorf("unexpected paging: page=%d size=%d", resp.Page, resp.PageSize)
		}
		if resp.TotalCount != 5 || len(resp.Items) != 5 {
			t.Errorf("expected 5 terms, got %d (total %d)", len(resp.Items), resp.TotalCount)
		}
	})

	t.Run("pagination slices results and keeps total", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary?page=2&page_size=2", "")
		resp := decode(t, rr)
		if len(resp.Items) != 2 {
			t.Errorf("expected 2 items, got %d", len(resp.Items))
		}
		if resp.TotalCount != 5 {
			t.Errorf("expected total 5, got %d", resp.TotalCount)
		}
		if resp.Items[0].ID != 3 {
			t.Errorf("expected page 2 to start at id 3, got %d", resp.Items[0].ID)
		}
	})

	t.Run("page past the end returns empty items", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary?page=40", "")
		resp := decode(t, rr)
		if len(resp.Items) != 0 {
			t.Errorf("expected empty page, got %d items", len(resp.Items))
		}
		if resp.TotalCount != 5 {
			t.Errorf("total must ignore pagination, got %d", resp.TotalCount)
		}
	})

	t.Run("oversized page_size is clamped", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary?page_size=9999", "")
		resp := decode(t, rr)
		if resp.PageSize != 100 {
			t.Errorf("expected clamped page size 100, got %d", resp.PageSize)
		}
	})

	t.Run("garbage paging params fall back to defaults", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary?page=abc&page_size=-1", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		resp := decode(t, rr)
		if resp.Page != 1 || resp.PageSize != 20 {
			t.Errorf("unexpected paging: page=%d size=%d", resp.Page, resp.PageSize)
		}
	})

	t.Run("search filters by name and description", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary?search=rest", "")
		resp := decode(t, rr)
		if resp.TotalCount != 1 || len(resp.Items) != 1 {
			t.Fatalf("expected 1 match, got %d (total %d)", len(resp.Items), resp.TotalCount)
		}
		if resp.Items[0].Name != "REST" {
			t.Errorf("unexpected match: %q", resp.Items[0].Name)
		}
	})
}

func TestSearchTerms(t *testing.T) {
	router := newTestRouter()
	createTerm(t, router, "API", "Application Programming Interface")
	createTerm(t, router, "REST", "architectural style")

	t.Run("missing q returns 422", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/search", "")
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
		var resp handlers.ValidationErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, ok := resp.Fields["q"]; !ok {
			t.Errorf("expected q field violation, got %v", resp.Fields)
		}
	})

	t.Run("matches against description", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/search?q=architectural", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp handlers.TermListResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.TotalCount != 1 || resp.Items[0].Name != "REST" {
			t.Errorf("unexpected result: %+v", resp)
		}
	})

	t.Run("no matches returns empty list", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/search?q=zzzzz", "")
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rr.Code)
		}
		var resp handlers.TermListResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.TotalCount != 0 || len(resp.Items) != 0 {
			t.Errorf("expected no matches, got %+v", resp)
		}
	})
}

func TestPutTerm(t *testing.T) {
	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		router := newTestRouter()
		created := createTerm(t, router, "API", "old description")

		rr := doJSON(t, router, http.MethodPut, "/glossary/1", `{"description":"new description"}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var resp handlers.TermResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if resp.Name != "API" {
			t.Errorf("name changed unexpectedly: %q", resp.Name)
		}
		if resp.Description != "new description" {
			t.Errorf("description not updated: %q", resp.Description)
		}
		if !resp.CreatedAt.Equal(created.CreatedAt) {
			t.Error("created_at must not change on update")
		}
	})

	t.Run("empty patch returns 422", func(t *testing.T) {
		router := newTestRouter()
		createTerm(t, router, "API", "desc")
		rr := doJSON(t, router, http.MethodPut, "/glossary/1", `{}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
	})

	t.Run("missing id returns 404", func(t *testing.T) {
		router := newTestRouter()
		rr := doJSON(t, router, http.MethodPut, "/glossary/77", `{"name":"x"}`)
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})

	t.Run("renaming onto a taken name returns 409", func(t *testing.T) {
		router := newTestRouter()
		createTerm(t, router, "API", "desc")
		createTerm(t, router, "REST", "desc")
		rr := doJSON(t, router, http.MethodPut, "/glossary/2", `{"name":"API"}`)
		if rr.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rr.Code, rr.Body.String())
		}
	})

	t.Run("non-numeric id returns 422", func(t *testing.T) {
		router := newTestRouter()
		rr := doJSON(t, router, http.MethodPut, "/glossary/abc", `{"name":"x"}`)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
	})
}

func TestDeleteTerm(t *testing.T) {
	router := newTestRouter()
	createTerm(t, router, "API", "desc")

	t.Run("returns 204 with empty body", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodDelete, "/glossary/1", "")
		if rr.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rr.Code)
		}
		if rr.Body.Len() != 0 {
			t.Errorf("expected empty body, got %q", rr.Body.String())
		}
	})

	t.Run("term no longer retrievable", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/glossary/1", "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})

	t.Run("second delete returns 404", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodDelete, "/glossary/1", "")
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	})
}
