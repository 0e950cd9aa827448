// Package schema validates response bodies against declarative JSON
// schema documents. Documents are embedded, compiled once at startup
// and immutable thereafter. Validation aggregates every violation into
// a single error that carries instance paths, reasons and a dump of
// the offending body.
package schema

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const dumpLimit = 4 << 10 // body dump cap in failure messages

var registry = mustLoad()

func mustLoad() map[string]*openapi3.Schema {
	r, err := load()
	if err != nil {
		panic(err)
	}
	return r
}

func load() (map[string]*openapi3.Schema, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	out := make(map[string]*openapi3.Schema, len(entries))
	for _, e := range entries {
		raw, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", e.Name(), err)
		}
		var sch openapi3.Schema
		if err := sch.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("parse %s: %w", e.Name(), err)
		}
		// Strict: a malformed schema document fails fast with a clear message.
		if err := sch.Validate(context.Background()); err != nil {
			return nil, fmt.Errorf("validate %s: %w", e.Name(), err)
		}
		out[strings.TrimSuffix(e.Name(), ".json")] = &sch
	}
	return out, nil
}

// Names lists the registered schema documents.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	return out
}

// Validate checks body against the named schema. It returns nil on
// success; on failure it returns one aggregated error listing every
// violation plus a pretty-printed dump of the body.
func Validate(name string, body []byte) error {
	sch, ok := registry[name]
	if !ok {
		return fmt.Errorf("unknown schema %q (have: %s)", name, strings.Join(Names(), ", "))
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return fmt.Errorf("schema %s: body is not valid JSON: %w", name, err)
	}

	err := sch.VisitJSON(value, openapi3.MultiErrors())
	if err == nil {
		return nil
	}

	var lines []string
	for _, e := range flatten(err) {
		if se, ok := e.(*openapi3.SchemaError); ok {
			ptr := "/" + strings.Join(se.JSONPointer(), "/")
			lines = append(lines, fmt.Sprintf("%s: %s", ptr, se.Reason))
			continue
		}
		lines = append(lines, e.Error())
	}
	return fmt.Errorf("schema %s: %d violation(s):\n  %s\nbody:\n%s",
		name, len(lines), strings.Join(lines, "\n  "), dump(value))
}

func flatten(err error) []error {
	if me, ok := err.(openapi3.MultiError); ok {
		var out []error
		for _, e := range me {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

func dump(v any) string {
	buf, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	if len(buf) > dumpLimit {
		return string(buf[:dumpLimit]) + "\n...[truncated]..."
	}
	return string(buf)
}
