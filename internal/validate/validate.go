// Package validate centralizes the required-field checks that create and
// edit forms of the same entity must agree on. Anything beyond presence is
// the upstream API's job.
package validate

import (
	"net/url"
	"strings"
)

type Field struct {
	Name     string // form field name
	Label    string // human label used in the error message
	Required bool
}

type Schema struct {
	Fields []Field
}

// Validate returns one message per missing required field. An empty slice
// means the form may be submitted upstream.
func (s Schema) Validate(form url.Values) []string {
	var errs []string
	for _, f := range s.Fields {
		if !f.Required {
			continue
		}
		if strings.TrimSpace(form.Get(f.Name)) == "" {
			errs = append(errs, f.Label+" is required")
		}
	}
	return errs
}

// Ok reports whether the form passes the schema.
func (s Schema) Ok(form url.Values) bool {
	return len(s.Validate(form)) == 0
}
