package server

import (
	"net/http"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/labstack/echo/v4"

	"github.com/reoring/catalogpatch/catalog"
	"github.com/reoring/catalogpatch/jsonschema"
)

// Document is the subset of an OpenAPI 3 document the server publishes.
type Document struct {
	OpenAPI    string                          `json:"openapi"`
	Info       Info                            `json:"info"`
	Paths      map[string]map[string]Operation `json:"paths"`
	Components Components                      `json:"components"`
}

type Info struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type Operation struct {
	OperationID string              `json:"operationId"`
	Summary     string              `json:"summary,omitempty"`
	Parameters  []Parameter         `json:"parameters,omitempty"`
	RequestBody *RequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]Response `json:"responses"`
}

type Parameter struct {
	Name     string             `json:"name"`
	In       string             `json:"in"`
	Required bool               `json:"required,omitempty"`
	Schema   *jsonschema.Schema `json:"schema"`
}

type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

type MediaType struct {
	Schema *jsonschema.Schema `json:"schema"`
}

type Components struct {
	Schemas map[string]*jsonschema.Schema `json:"schemas"`
}

func ref(name string) *jsonschema.Schema {
	return &jsonschema.Schema{Ref: "#/components/schemas/" + name}
}

func jsonContent(s *jsonschema.Schema) map[string]MediaType {
	return map[string]MediaType{ContentTypeJSON: {Schema: s}}
}

func problemResponse(desc string) Response {
	return Response{Description: desc, Content: map[string]MediaType{ContentTypeProblem: {Schema: ref("ProblemDetails")}}}
}

// BuildDocument describes the endpoints of API version v. The patch body
// schema comes from the catalog field table.
func BuildDocument(v *semver.Version) Document {
	base := "/api/" + DocumentName(v) + "/products"
	skuParam := Parameter{Name: "sku", In: "path", Required: true,
		Schema: &jsonschema.Schema{Type: "string", MaxLength: jsonschema.Ptr(catalog.MaxSKULength)}}

	list := Operation{
		OperationID: "listProducts",
		Summary:     "List products ordered by name",
		Responses: map[string]Response{
			"200": {Description: "OK", Content: jsonContent(&jsonschema.Schema{Type: "array", Items: ref("Product")})},
		},
	}
	schemas := map[string]*jsonschema.Schema{
		"Product":        productSchema(),
		"ProductPatch":   catalog.PatchSchema.JSONSchema(),
		"ProblemDetails": problemSchema(),
	}
	if Satisfies(v, ">= 2") {
		list.Parameters = []Parameter{
			{Name: "pageNumber", In: "query", Schema: &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Ptr(1.0), Default: defaultPageNumber}},
			{Name: "pageSize", In: "query", Schema: &jsonschema.Schema{Type: "integer", Minimum: jsonschema.Ptr(1.0), Maximum: jsonschema.Ptr(float64(maxPageSize)), Default: defaultPageSize}},
		}
		list.Responses = map[string]Response{
			"200": {Description: "OK", Content: jsonContent(ref("ProductPage"))},
			"400": problemResponse("Invalid paging parameters"),
		}
		schemas["ProductPage"] = &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"items":      {Type: "array", Items: ref("Product")},
				"totalCount": {Type: "integer"},
				"pageNumber": {Type: "integer"},
				"pageSize":   {Type: "integer"},
				"totalPages": {Type: "integer"},
			},
		}
	}

	return Document{
		OpenAPI: "3.0.3",
		Info:    Info{Title: "Product catalog API", Version: v.String()},
		Paths: map[string]map[string]Operation{
			base: {"get": list},
			base + "/{sku}": {
				"get": {
					OperationID: "getProduct",
					Parameters:  []Parameter{skuParam},
					Responses: map[string]Response{
						"200": {Description: "OK", Content: jsonContent(ref("Product"))},
						"400": problemResponse("Invalid SKU"),
						"404": problemResponse("Product not found"),
					},
				},
				"patch": {
					OperationID: "patchProduct",
					Summary:     "Partially update a product with a JSON merge patch",
					Parameters:  []Parameter{skuParam},
					RequestBody: &RequestBody{
						Required: true,
						Content: map[string]MediaType{
							ContentTypeMergePatch: {Schema: ref("ProductPatch")},
							ContentTypeJSON:       {Schema: ref("ProductPatch")},
						},
					},
					Responses: map[string]Response{
						"204": {Description: "Updated"},
						"400": problemResponse("Invalid patch document"),
						"404": problemResponse("Product not found"),
						"415": problemResponse("Unsupported media type"),
						"501": problemResponse("Field cannot be updated yet"),
					},
				},
			},
		},
		Components: Components{Schemas: schemas},
	}
}

func productSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"sku":         {Type: "string", MaxLength: jsonschema.Ptr(catalog.MaxSKULength)},
			"name":        {Type: "string"},
			"imgUri":      {Type: "string", Format: "uri"},
			"price":       {Type: "number"},
			"description": {Type: "string", Nullable: true},
		},
		Required: []string{"sku", "name", "imgUri", "price"},
	}
}

func problemSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"type":     {Type: "string"},
			"title":    {Type: "string"},
			"status":   {Type: "integer"},
			"detail":   {Type: "string"},
			"instance": {Type: "string"},
			"code":     {Type: "string"},
			"errors": {
				Type:                 "object",
				AdditionalProperties: &jsonschema.Schema{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
			},
		},
	}
}

// openAPI serves /openapi/v{n}.json.
func (s *Server) openAPI(c echo.Context) error {
	name, ok := strings.CutSuffix(c.Param("doc"), ".json")
	if !ok {
		return echo.ErrNotFound
	}
	v, err := s.versions.Resolve(name)
	if err != nil {
		return echo.ErrNotFound
	}
	return c.JSON(http.StatusOK, BuildDocument(v))
}
