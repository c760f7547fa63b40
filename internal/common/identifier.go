package common

/* info on possible packages:
https://cburgmer.github.io/json-path-comparison/
using https://github.com/ohler55/ojg

test your jsonpaths here:
http://jsonpath.herokuapp.com/
There are four implementations... so you can see if one might be a little quirky
*/
import (
	"crypto/sha1"
	"fmt"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"github.com/tidwall/gjson"
)

// SelectByPath applies a JSONPath expression to a JSON document and returns
// the matches as a JSON array. A match that is a whole node object of the
// document is copied from the input so its keys stay in order; any other
// match has its object keys sorted.
//
// Keys starting with @ need the bracket form: $[?(@['@type']=='https://schema.org/Person')]
func SelectByPath(jsonPath string, doc []byte) ([]byte, error) {
	obj, err := oj.Parse(doc)
	if err != nil {
		return nil, err
	}
	x, err := jp.ParseString(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("bad JSONPath %q: %w", jsonPath, err)
	}
	ys := x.Get(obj)

	nodes := topLevelNodes(doc)
	out := []byte{'['}
	for i, y := range ys {
		if i > 0 {
			out = append(out, ',')
		}
		if raw, ok := sameNode(y, nodes); ok {
			out = append(out, raw...)
			continue
		}
		out = append(out, oj.JSON(y, &ojg.Options{Sort: true})...)
	}
	return append(out, ']'), nil
}

type rawNode struct {
	raw  string
	keys int
}

// topLevelNodes indexes the node objects of a top level array by @id
func topLevelNodes(doc []byte) map[string]rawNode {
	nodes := map[string]rawNode{}
	gjson.ParseBytes(doc).ForEach(func(_, value gjson.Result) bool {
		id := value.Get(`\@id`)
		if value.IsObject() && id.Type == gjson.String {
			if _, dup := nodes[id.String()]; !dup {
				nodes[id.String()] = rawNode{raw: value.Raw, keys: len(value.Map())}
			}
		}
		return true
	})
	return nodes
}

// a match is the node itself, not a reference to it, when the key counts agree
func sameNode(y interface{}, nodes map[string]rawNode) (string, bool) {
	m, ok := y.(map[string]interface{})
	if !ok {
		return "", false
	}
	id, ok := m["@id"].(string)
	if !ok {
		return "", false
	}
	n, ok := nodes[id]
	if !ok || n.keys != len(m) {
		return "", false
	}
	return n.raw, true
}

func GetSHA(b []byte) string {
	h := sha1.New()
	h.Write(b)
	hs := h.Sum(nil)
	return fmt.Sprintf("%x", hs)
}
