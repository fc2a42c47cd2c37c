package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	j "github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/events"
	"github.com/reoring/catalogpatch/i18n"
	"github.com/reoring/catalogpatch/server"
	"github.com/reoring/catalogpatch/store/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func strPtr(s string) *string { return &s }

type fixture struct {
	srv   *server.Server
	store *memory.Store
	sink  *events.Recorder
}

func newFixture(t *testing.T, opts ...func(*server.Config)) *fixture {
	t.Helper()
	st := memory.New(
		catalog.Product{SKU: "SKU001", Name: "Beta", ImgURI: "https://example.com/b.png", Price: decimal.RequireFromString("10.50"), Description: strPtr("Old")},
		catalog.Product{SKU: "SKU002", Name: "Gamma", ImgURI: "https://example.com/g.png", Price: decimal.RequireFromString("3")},
		catalog.Product{SKU: "SKU003", Name: "Alpha", ImgURI: "https://example.com/a.png", Price: decimal.RequireFromString("99.99")},
	)
	sink := &events.Recorder{}
	versions, err := server.NewVersions("1", "1", "2")
	require.NoError(t, err)

	cfg := server.Config{
		Handler:    catalog.NewHandler(st, catalog.WithEventSink(sink)),
		Read:       st,
		Versions:   versions,
		Translator: i18n.New("en"),
	}
	for _, o := range opts {
		o(&cfg)
	}
	srv, err := server.New(cfg)
	require.NoError(t, err)
	return &fixture{srv: srv, store: st, sink: sink}
}

func (f *fixture) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) patch(target, body string) *httptest.ResponseRecorder {
	return f.do(http.MethodPatch, target, server.ContentTypeMergePatch, body)
}

func decodeProblem(t *testing.T, rec *httptest.ResponseRecorder) server.Problem {
	t.Helper()
	assert.Equal(t, server.ContentTypeProblem, rec.Header().Get("Content-Type"))
	var p server.Problem
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func TestPatch_UpdatesDescription(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"description":"New"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Body.String())

	p, err := f.store.GetBySKU(context.Background(), "SKU001")
	require.NoError(t, err)
	assert.Equal(t, "New", *p.Description)
	assert.Equal(t, "Beta", p.Name)

	evs := f.sink.Events()
	require.Len(t, evs, 1)
	assert.Equal(t, "product.description.changed", evs[0].EventType())
}

func TestPatch_ClearsDescriptionAndChangesPrice(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/products/SKU001", `{"Description":null,"price":12}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	p, err := f.store.GetBySKU(context.Background(), "SKU001")
	require.NoError(t, err)
	assert.Nil(t, p.Description)
	assert.True(t, p.Price.Equal(decimal.NewFromInt(12)))
	assert.Len(t, f.sink.Events(), 2)
}

func TestPatch_EmptyDocumentSavesWithoutEvents(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU002", `{}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, f.sink.Events())
}

func TestPatch_UnknownKeysIgnored(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"color":"red","description":"x"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Len(t, f.sink.Events(), 1)
}

func TestPatch_HugeNumberUnderUnknownKey(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"extra":1e400,"description":"New"}`)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())
	p, err := f.store.GetBySKU(context.Background(), "SKU001")
	require.NoError(t, err)
	assert.Equal(t, "New", *p.Description)
}

func TestPatch_ValidationFailure(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"price":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "validation_failed", p.Code)
	assert.Equal(t, "One or more validation errors occurred.", p.Title)
	assert.Equal(t, []string{"Price must be greater than or equal to 0"}, p.Errors["price"])
	assert.Equal(t, "/api/v1/products/SKU001", p.Instance)

	got, err := f.store.GetBySKU(context.Background(), "SKU001")
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("10.50")))
	assert.Empty(t, f.sink.Events())
}

func TestPatch_NullPriceRejected(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"price":null}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, []string{"Price cannot be null"}, p.Errors["price"])
}

func TestPatch_MalformedField(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"price":"abc"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "malformed_field", p.Code)
	assert.Len(t, p.Errors["price"], 1)
}

func TestPatch_NotAnObject(t *testing.T) {
	f := newFixture(t)

	for _, body := range []string{`[1,2]`, `"x"`, `null`, `{"price":`} {
		rec := f.patch("/api/v1/products/SKU001", body)
		require.Equal(t, http.StatusBadRequest, rec.Code, body)
		p := decodeProblem(t, rec)
		assert.Equal(t, "invalid_input", p.Code, body)
		assert.NotEmpty(t, p.Detail, body)
	}
}

func TestPatch_InvalidSKU(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/"+strings.Repeat("A", 51), `{"price":1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, []string{"SKU cannot exceed 50 characters"}, p.Errors["sku"])
}

func TestPatch_NotFound(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/NOPE", `{"price":1}`)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeProblem(t, rec).Code)
	assert.Empty(t, f.sink.Events())
}

func TestPatch_NotSupportedField(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v1/products/SKU001", `{"name":"Renamed"}`)
	require.Equal(t, http.StatusNotImplemented, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, "not_supported", p.Code)
	assert.Equal(t, "Updating name is not yet supported", p.Detail)

	got, err := f.store.GetBySKU(context.Background(), "SKU001")
	require.NoError(t, err)
	assert.Equal(t, "Beta", got.Name)
}

func TestPatch_UnsupportedMediaType(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPatch, "/api/v1/products/SKU001", "text/plain", `{"price":1}`)
	require.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Equal(t, "unsupported_media_type", decodeProblem(t, rec).Code)

	rec = f.do(http.MethodPatch, "/api/v1/products/SKU001", "application/json; charset=utf-8", `{"price":1}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestPatch_BodyTooLarge(t *testing.T) {
	f := newFixture(t, func(c *server.Config) { c.MaxBodyBytes = 16 })

	rec := f.patch("/api/v1/products/SKU001", `{"description":"`+strings.Repeat("x", 64)+`"}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestPatch_UnsupportedVersion(t *testing.T) {
	f := newFixture(t)

	rec := f.patch("/api/v9/products/SKU001", `{"price":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestList_V1ReturnsAllOrderedByName(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []map[string]any
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha", got[0]["name"])
	assert.Equal(t, "Beta", got[1]["name"])
	assert.Equal(t, 10.5, got[1]["price"])
	assert.Nil(t, got[2]["description"])
	assert.Equal(t, "1.0, 2.0", rec.Header().Get("api-supported-versions"))
}

func TestList_V2Pages(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v2/products?pageNumber=2&pageSize=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Items      []map[string]any `json:"items"`
		TotalCount int              `json:"totalCount"`
		PageNumber int              `json:"pageNumber"`
		PageSize   int              `json:"pageSize"`
		TotalPages int              `json:"totalPages"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 3, got.TotalCount)
	assert.Equal(t, 2, got.PageNumber)
	assert.Equal(t, 2, got.PageSize)
	assert.Equal(t, 2, got.TotalPages)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Gamma", got.Items[0]["name"])
}

func TestList_V2PageBeyondEnd(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v2/products?pageNumber=9223372036854775807&pageSize=100", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got struct {
		Items      []map[string]any `json:"items"`
		TotalCount int              `json:"totalCount"`
	}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &got))
	assert.Empty(t, got.Items)
	assert.Equal(t, 3, got.TotalCount)
}

func TestList_V2RejectsBadPaging(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v2/products?pageNumber=0&pageSize=101", "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	p := decodeProblem(t, rec)
	assert.Equal(t, []string{"Page number must be greater than 0"}, p.Errors["pageNumber"])
	assert.Equal(t, []string{"Page size must be between 1 and 100"}, p.Errors["pageSize"])
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v2/products/SKU003", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got map[string]any
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "SKU003", got["sku"])
	assert.Equal(t, 99.99, got["price"])

	rec = f.do(http.MethodGet, "/api/v2/products/MISSING", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOpenAPI(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/openapi/v2.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var doc server.Document
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "3.0.3", doc.OpenAPI)
	require.Contains(t, doc.Paths, "/api/v2/products/{sku}")
	assert.Contains(t, doc.Paths["/api/v2/products/{sku}"], "patch")
	patch := doc.Components.Schemas["ProductPatch"]
	require.NotNil(t, patch)
	assert.ElementsMatch(t, []string{"name", "imgUri", "price", "description"}, keys(patch.Properties))
	assert.True(t, patch.Properties["description"].Nullable)
	assert.Contains(t, doc.Components.Schemas, "ProductPage")

	rec = f.do(http.MethodGet, "/openapi/v1.json", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	doc = server.Document{}
	require.NoError(t, j.Unmarshal(rec.Body.Bytes(), &doc))
	assert.NotContains(t, doc.Components.Schemas, "ProductPage")

	rec = f.do(http.MethodGet, "/openapi/v3.json", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func keys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	down := newFixture(t, func(c *server.Config) {
		c.Health = func(context.Context) error { return errors.New("db down") }
	})
	rec = down.do(http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNew_RequiresDependencies(t *testing.T) {
	_, err := server.New(server.Config{})
	assert.Error(t, err)
}
