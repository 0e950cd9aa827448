// Package mockapi is an in-process stand-in for the remote product
// API. It serves the same surface the client consumes, backed by the
// fixture catalogue. Mutations are simulated: handlers respond as if
// the write happened but never touch the catalogue, matching the
// remote service's behavior.
package mockapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hasmiknersesyan/DummyJSON/internal/fixtures"
	"github.com/hasmiknersesyan/DummyJSON/internal/model"
)

const defaultLimit = 30

type Server struct {
	catalog []model.Product
}

// New builds a server over the fixture seed catalogue.
func New() *Server {
	return NewWithCatalog(fixtures.MustLoad().Seed)
}

func NewWithCatalog(products []model.Product) *Server {
	return &Server{catalog: products}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /products", s.handleList)
	mux.HandleFunc("GET /products/search", s.handleSearch)
	mux.HandleFunc("GET /products/categories", s.handleCategories)
	mux.HandleFunc("GET /products/category/{slug}", s.handleByCategory)
	mux.HandleFunc("GET /products/{id}", s.handleGet)
	mux.HandleFunc("POST /products/add", s.handleAdd)
	mux.HandleFunc("PUT /products/{id}", s.handleUpdate)
	mux.HandleFunc("PATCH /products/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /products/{id}", s.handleDelete)
	return mux
}

// ---- reads ----

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, paginate(s.catalog, r))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		notFound(w, r.PathValue("id"))
		return
	}
	p, ok := s.find(id)
	if !ok {
		notFound(w, r.PathValue("id"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(r.URL.Query().Get("q"))

	var hits []model.Product
	for _, p := range s.catalog {
		if strings.Contains(strings.ToLower(p.Title), q) ||
			strings.Contains(strings.ToLower(p.Description), q) ||
			(p.Brand != "" && strings.Contains(strings.ToLower(p.Brand), q)) {
			hits = append(hits, p)
		}
	}
	writeJSON(w, http.StatusOK, paginate(hits, r))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}

	seen := map[string]bool{}
	out := []model.Category{} // encode as [], never null
	for _, p := range s.catalog {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, model.Category{
			Slug: p.Category,
			Name: strings.ToUpper(p.Category[:1]) + p.Category[1:],
			URL:  fmt.Sprintf("%s://%s/products/category/%s", scheme, r.Host, p.Category),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleByCategory(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")

	var hits []model.Product
	for _, p := range s.catalog {
		if p.Category == slug {
			hits = append(hits, p)
		}
	}
	// Unknown categories yield an empty listing, not an error.
	writeJSON(w, http.StatusOK, paginate(hits, r))
}

// ---- simulated writes ----

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorBody{Message: "invalid request body"})
		return
	}

	maxID := 0
	for _, p := range s.catalog {
		if p.ID > maxID {
			maxID = p.ID
		}
	}
	body["id"] = maxID + 1
	writeJSON(w, http.StatusCreated, body)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		notFound(w, r.PathValue("id"))
		return
	}
	p, ok := s.find(id)
	if !ok {
		notFound(w, r.PathValue("id"))
		return
	}

	var patch map[string]any
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, model.ErrorBody{Message: "invalid request body"})
		return
	}

	// Merge over the stored product; the id is not overridable.
	merged := toMap(p)
	for k, v := range patch {
		if k == "id" {
			continue
		}
		merged[k] = v
	}
	writeJSON(w, http.StatusOK, merged)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		notFound(w, r.PathValue("id"))
		return
	}
	p, ok := s.find(id)
	if !ok {
		notFound(w, r.PathValue("id"))
		return
	}

	out := toMap(p)
	out["isDeleted"] = true
	out["deletedOn"] = time.Now().UTC().Format(time.RFC3339)
	writeJSON(w, http.StatusOK, out)
}

// ---- helpers ----

func (s *Server) find(id int) (model.Product, bool) {
	for _, p := range s.catalog {
		if p.ID == id {
			return p, true
		}
	}
	return model.Product{}, false
}

// paginate slices products by the request's limit/skip. limit=0 means
// "everything after skip". Both values echo back exactly as requested,
// limit=0 included.
func paginate(products []model.Product, r *http.Request) model.ProductList {
	limit := queryInt(r, "limit", defaultLimit)
	skip := queryInt(r, "skip", 0)
	if limit < 0 {
		limit = defaultLimit
	}
	if skip < 0 {
		skip = 0
	}

	end := len(products)
	start := skip
	if start > end {
		start = end
	}
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	page := products[start:end]
	if page == nil {
		page = []model.Product{} // encode as [], never null
	}
	return model.ProductList{
		Products: page,
		Total:    len(products),
		Skip:     skip,
		Limit:    limit,
	}
}

func queryInt(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func toMap(p model.Product) map[string]any {
	buf, _ := json.Marshal(p)
	var m map[string]any
	_ = json.Unmarshal(buf, &m)
	return m
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, id string) {
	writeJSON(w, http.StatusNotFound, model.ErrorBody{
		Message: fmt.Sprintf("Product with id '%s' not found", id),
	})
}
