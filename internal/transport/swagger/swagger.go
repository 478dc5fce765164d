package swagger

import (
	"context"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	httpSwagger "github.com/swaggo/http-swagger"
)

func Handler() http.Handler {
	// Serve the OpenAPI spec from api/openapi.yml
	return httpSwagger.Handler(
		httpSwagger.URL("/openapi.yml"), // URL to the OpenAPI spec served at root
	)
}

// ValidateSpecFile loads and validates the OpenAPI document so a broken
// spec is caught at startup rather than by the first swagger visitor.
func ValidateSpecFile(ctx context.Context, path string) error {
	loader := &openapi3.Loader{Context: ctx, IsExternalRefsAllowed: true}

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return fmt.Errorf("load openapi spec %s: %w", path, err)
	}

	if err := doc.Validate(ctx); err != nil {
		return fmt.Errorf("validate openapi spec %s: %w", path, err)
	}

	return nil
}
