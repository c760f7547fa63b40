package millers

import (
	"fmt"

	"nq2jld/internal/common"
	"nq2jld/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// RenderOptions shape the bytes written for one converted document
type RenderOptions struct {
	Select string // JSONPath run over the node array
	Graph  bool   // wrap the result as {"@graph": [...]}
	Pretty bool
}

// RenderOptionsFor combines the convert section with a source's own select
func RenderOptionsFor(c config.Convert, s config.Source) RenderOptions {
	return RenderOptions{Select: s.Select, Graph: c.Graph, Pretty: c.Pretty}
}

// Render applies the select, the envelope and pretty printing, in that order.
// The node array is never re-parsed into a map, so key order survives.
func Render(doc []byte, opts RenderOptions) ([]byte, error) {
	out := doc
	if opts.Select != "" {
		selected, err := common.SelectByPath(opts.Select, out)
		if err != nil {
			return nil, fmt.Errorf("select %q: %w", opts.Select, err)
		}
		log.Debug("select ", opts.Select, " kept ", gjson.GetBytes(selected, "#").Int(), " values")
		out = selected
	}

	if opts.Graph {
		wrapped, err := sjson.SetRawBytes([]byte(`{}`), "@graph", out)
		if err != nil {
			return nil, fmt.Errorf("graph envelope: %w", err)
		}
		out = wrapped
	}

	if opts.Pretty {
		out = pretty.PrettyOptions(out, &pretty.Options{Width: 80, Indent: "  "})
	}
	return out, nil
}
