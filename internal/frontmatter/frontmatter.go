// Package frontmatter splits a content file into its leading metadata block
// and markdown body. Two fence conventions are recognized: "---" delimits a
// YAML block and "+++" delimits a TOML block. The fence must open on the very
// first line; otherwise the whole input is treated as body.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gomarkdown/markdown"
	"gopkg.in/yaml.v3"
)

// ErrMalformed is returned when a metadata block is present but cannot be
// decoded per the front-matter convention. It is an authoring error: the
// build fails instead of degrading.
var ErrMalformed = errors.New("malformed front matter")

// Matter carries the metadata parsed from the top of a content file. The
// fields the pipeline depends on are typed; any other author-supplied field
// lands in Extra, restricted to scalar values.
type Matter struct {
	Title       string
	Date        string
	Description string
	Extra       map[string]any
}

const (
	yamlFence = "---"
	tomlFence = "+++"
)

type decodeFunc func([]byte) (map[string]any, error)

// Parse splits src into metadata and body. Absent an opening fence the
// returned Matter is zero and the body is the entire input, unchanged apart
// from newline normalization.
func Parse(src []byte) (Matter, []byte, error) {
	src = markdown.NormalizeNewlines(src)

	fence, decode := detectFence(src)
	if fence == "" {
		return Matter{}, src, nil
	}

	rest := src[len(fence):]
	end := bytes.Index(rest, []byte("\n"+fence))
	if end < 0 {
		return Matter{}, nil, fmt.Errorf("%w: missing closing %q fence", ErrMalformed, fence)
	}

	block := rest[:end]
	body := rest[end+1+len(fence):]
	if len(body) > 0 && body[0] == '\n' {
		body = body[1:]
	}

	fields, err := decode(block)
	if err != nil {
		return Matter{}, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	m := Matter{}
	for key, value := range fields {
		scalar, err := coerceScalar(value)
		if err != nil {
			return Matter{}, nil, fmt.Errorf("%w: field %q: %v", ErrMalformed, key, err)
		}

		switch key {
		case "title":
			m.Title = asString(scalar)
		case "date":
			m.Date = asString(scalar)
		case "description":
			m.Description = asString(scalar)
		default:
			if m.Extra == nil {
				m.Extra = make(map[string]any)
			}
			m.Extra[key] = scalar
		}
	}

	return m, body, nil
}

// detectFence inspects the first line of src. The fence characters must be
// followed by a newline; anything else (e.g. a "----" thematic break) is body.
func detectFence(src []byte) (string, decodeFunc) {
	if fenced(src, yamlFence) {
		return yamlFence, decodeYAML
	}
	if fenced(src, tomlFence) {
		return tomlFence, decodeTOML
	}
	return "", nil
}

func fenced(src []byte, fence string) bool {
	if !bytes.HasPrefix(src, []byte(fence)) {
		return false
	}
	rest := src[len(fence):]
	return len(rest) > 0 && rest[0] == '\n'
}

func decodeYAML(block []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := yaml.Unmarshal(block, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeTOML(block []byte) (map[string]any, error) {
	fields := map[string]any{}
	if err := toml.Unmarshal(block, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// coerceScalar narrows a decoded value to the closed union the rest of the
// pipeline accepts: string, bool, int64 or float64. Timestamps decoded by the
// YAML/TOML libraries are folded back into their string form so that dates
// stay lexically sortable.
func coerceScalar(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case bool:
		return v, nil
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		return v, nil
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 {
			return v.Format("2006-01-02"), nil
		}
		return v.Format(time.RFC3339), nil
	default:
		return nil, fmt.Errorf("expected scalar value, got %T", value)
	}
}

func asString(scalar any) string {
	if s, ok := scalar.(string); ok {
		return s
	}
	return fmt.Sprint(scalar)
}
