package handler

import (
	"fmt"
	"net/http"

	"github.com/oapi-codegen/runtime"
)

// bindQuery binds an optional form-style query parameter into dest, which
// must be a pointer to a pointer (nil when the parameter is absent).
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid format for parameter %s: %w", name, err)
	}
	return nil
}

// limitParam reads ?limit= for the ranking endpoints. Absent means 0, which
// the tally helpers treat as their default size.
func limitParam(r *http.Request) (int, error) {
	var limit *int
	if err := bindQuery(r, "limit", &limit); err != nil {
		return 0, err
	}
	if limit == nil {
		return 0, nil
	}
	if *limit < 1 || *limit > 100 {
		return 0, fmt.Errorf("limit must be between 1 and 100")
	}
	return *limit, nil
}
