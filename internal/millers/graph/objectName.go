package graph

import (
	"fmt"
	"io"
	"strings"

	"nq2jld/internal/common"

	"github.com/valyala/fasttemplate"
)

// ObjectName expands an output key template. Known tags are {{name}}, the
// source name, and {{sha}}, the sha1 of the rendered document.
func ObjectName(template, sourceName string, jsonld []byte) (string, error) {
	t, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		return "", fmt.Errorf("output key %q: %w", template, err)
	}
	key, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		switch strings.TrimSpace(tag) {
		case "name":
			return w.Write([]byte(sourceName))
		case "sha":
			return w.Write([]byte(common.GetSHA(jsonld)))
		default:
			return 0, fmt.Errorf("unknown tag {{%s}} in output key %q", tag, template)
		}
	})
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(key, "/"), nil
}
