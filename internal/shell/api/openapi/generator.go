// Package openapi provides reflective OpenAPI 3.0 specification generation.
package openapi

import (
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
)

// =============================================================================
// Generator
// =============================================================================

// Generator produces OpenAPI 3.0 specifications by reflecting on registered resources.
type Generator struct {
	title       string
	version     string
	description string
	servers     []string
	resources   []ResourceInfo
	mu          sync.RWMutex
	cachedSpec  *openapi3.T
}

// ResourceInfo holds information about a registered resource for OpenAPI generation.
type ResourceInfo struct {
	Name           string      // Resource path segment (e.g., "products")
	Model          interface{} // The response struct for schema extraction
	SupportsList   bool        // GET /{type}
	SupportsGet    bool        // GET /{type}/{id}
	SupportsCreate bool        // POST /{type}
	SupportsUpdate bool        // PUT /{type}/{id}
	Actions        []string    // POST /{type}/{id}/{action}
}

// Option configures the generator.
type Option func(*Generator)

// WithTitle sets the API title.
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithVersion sets the API version.
func WithVersion(version string) Option {
	return func(g *Generator) {
		g.version = version
	}
}

// WithDescription sets the API description.
func WithDescription(description string) Option {
	return func(g *Generator) {
		g.description = description
	}
}

// WithServer adds a server URL.
func WithServer(url string) Option {
	return func(g *Generator) {
		g.servers = append(g.servers, url)
	}
}

// NewGenerator creates a new OpenAPI generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		title:       "Storefront API",
		version:     "1.0.0",
		description: "Storefront backend API",
		servers:     []string{"http://localhost:8000"},
		resources:   make([]ResourceInfo, 0),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// RegisterResource adds a resource to the generator for spec generation.
func (g *Generator) RegisterResource(info ResourceInfo) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.resources = append(g.resources, info)
	g.cachedSpec = nil // Invalidate cache
}

// Generate produces the complete OpenAPI 3.0 specification.
func (g *Generator) Generate() *openapi3.T {
	g.mu.RLock()
	if g.cachedSpec != nil {
		spec := g.cachedSpec
		g.mu.RUnlock()
		return spec
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()

	// Double-check after acquiring write lock
	if g.cachedSpec != nil {
		return g.cachedSpec
	}

	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       g.title,
			Version:     g.version,
			Description: g.description,
		},
		Servers: make(openapi3.Servers, 0, len(g.servers)),
		Paths:   &openapi3.Paths{},
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
	}

	for _, url := range g.servers {
		spec.Servers = append(spec.Servers, &openapi3.Server{URL: url})
	}

	g.addErrorSchema(spec)

	for _, res := range g.resources {
		g.addResourceToSpec(spec, res)
	}

	g.cachedSpec = spec
	return spec
}

// Handler returns an HTTP handler that serves the OpenAPI specification.
func (g *Generator) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spec := g.Generate()

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		if err := json.NewEncoder(w).Encode(spec); err != nil {
			http.Error(w, "Failed to encode OpenAPI spec", http.StatusInternalServerError)
		}
	}
}

// =============================================================================
// Schema Generation
// =============================================================================

// addErrorSchema adds the shared error body schema.
func (g *Generator) addErrorSchema(spec *openapi3.T) {
	spec.Components.Schemas["Error"] = &openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"object"},
			Properties: openapi3.Schemas{
				"error": &openapi3.SchemaRef{
					Value: &openapi3.Schema{Type: &openapi3.Types{"string"}},
				},
				"code": &openapi3.SchemaRef{
					Value: &openapi3.Schema{Type: &openapi3.Types{"string"}},
				},
			},
		},
	}
}

// addResourceToSpec adds paths and schemas for a resource.
func (g *Generator) addResourceToSpec(spec *openapi3.T, res ResourceInfo) {
	basePath := "/api/v1/" + res.Name
	schemaName := capitalize(singularize(res.Name))

	spec.Components.Schemas[schemaName] = g.extractSchema(res.Model)

	collection := &openapi3.PathItem{}
	if res.SupportsList {
		collection.Get = g.collectionOperation("List "+res.Name, schemaName)
	}
	if res.SupportsCreate {
		collection.Post = g.writeOperation("Create a "+singularize(res.Name), schemaName, "201")
	}
	if collection.Get != nil || collection.Post != nil {
		spec.Paths.Set(basePath, collection)
	}

	item := &openapi3.PathItem{}
	if res.SupportsGet {
		item.Get = g.itemOperation("Get a "+singularize(res.Name), schemaName)
	}
	if res.SupportsUpdate {
		item.Put = g.writeOperation("Update a "+singularize(res.Name), schemaName, "200")
	}
	if item.Get != nil || item.Put != nil {
		item.Parameters = idParameters()
		spec.Paths.Set(basePath+"/{id}", item)
	}

	for _, action := range res.Actions {
		spec.Paths.Set(basePath+"/{id}/"+action, &openapi3.PathItem{
			Parameters: idParameters(),
			Post:       g.itemOperation(capitalize(action)+" a "+singularize(res.Name), schemaName),
		})
	}
}

func idParameters() openapi3.Parameters {
	return openapi3.Parameters{
		&openapi3.ParameterRef{
			Value: &openapi3.Parameter{
				Name:     "id",
				In:       "path",
				Required: true,
				Schema: &openapi3.SchemaRef{
					Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"},
				},
			},
		},
	}
}

func (g *Generator) collectionOperation(summary, schemaName string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.AddResponse(200, jsonResponse(&openapi3.SchemaRef{
		Value: &openapi3.Schema{
			Type: &openapi3.Types{"array"},
			Items: &openapi3.SchemaRef{
				Ref: "#/components/schemas/" + schemaName,
			},
		},
	}))
	return op
}

func (g *Generator) itemOperation(summary, schemaName string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.AddResponse(200, jsonResponse(&openapi3.SchemaRef{
		Ref: "#/components/schemas/" + schemaName,
	}))
	op.AddResponse(404, jsonResponse(&openapi3.SchemaRef{
		Ref: "#/components/schemas/Error",
	}))
	return op
}

func (g *Generator) writeOperation(summary, schemaName, successStatus string) *openapi3.Operation {
	op := openapi3.NewOperation()
	op.Summary = summary
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithJSONSchemaRef(&openapi3.SchemaRef{
			Ref: "#/components/schemas/" + schemaName,
		}),
	}
	status := 200
	if successStatus == "201" {
		status = 201
	}
	op.AddResponse(status, jsonResponse(&openapi3.SchemaRef{
		Ref: "#/components/schemas/" + schemaName,
	}))
	op.AddResponse(400, jsonResponse(&openapi3.SchemaRef{
		Ref: "#/components/schemas/Error",
	}))
	return op
}

func jsonResponse(schema *openapi3.SchemaRef) *openapi3.Response {
	return openapi3.NewResponse().
		WithDescription("response").
		WithJSONSchemaRef(schema)
}

// extractSchema builds an object schema from a struct's json tags.
func (g *Generator) extractSchema(model interface{}) *openapi3.SchemaRef {
	schema := &openapi3.Schema{
		Type:       &openapi3.Types{"object"},
		Properties: make(openapi3.Schemas),
	}

	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return &openapi3.SchemaRef{Value: schema}
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		schema.Properties[name] = g.goTypeToSchema(field.Type)
	}

	return &openapi3.SchemaRef{Value: schema}
}

// goTypeToSchema maps a Go type to an OpenAPI schema.
func (g *Generator) goTypeToSchema(t reflect.Type) *openapi3.SchemaRef {
	if t == reflect.TypeOf(time.Time{}) {
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{Type: &openapi3.Types{"string"}, Format: "date-time"},
		}
	}

	switch t.Kind() {
	case reflect.Ptr:
		return g.goTypeToSchema(t.Elem())
	case reflect.String:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"string"}}}
	case reflect.Bool:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"boolean"}}}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}}}
	case reflect.Int64, reflect.Uint64:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{Type: &openapi3.Types{"integer"}, Format: "int64"},
		}
	case reflect.Float32, reflect.Float64:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"number"}}}
	case reflect.Slice, reflect.Array:
		return &openapi3.SchemaRef{
			Value: &openapi3.Schema{
				Type:  &openapi3.Types{"array"},
				Items: g.goTypeToSchema(t.Elem()),
			},
		}
	case reflect.Struct:
		return g.extractSchema(reflect.New(t).Elem().Interface())
	default:
		return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: &openapi3.Types{"object"}}}
	}
}

// =============================================================================
// Naming Helpers
// =============================================================================

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func singularize(s string) string {
	if strings.HasSuffix(s, "s") {
		return s[:len(s)-1]
	}
	return s
}
