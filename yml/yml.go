// Package yml renders values as YAML and reads YAML documents into values, using the node
// API of gopkg.in/yaml.v3 so mapping order survives both ways.
//
// Symbols and strings both become !!str scalars and procedures become the string
// "<procedure>", exactly as in the JSON form. Numbers become !!int when they are integers
// that a float64 holds exactly and !!float otherwise, including .nan and .inf which YAML,
// unlike JSON, can express.
package yml

import (
	"math"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"variant.mleku.dev/number"
	"variant.mleku.dev/value"
)

// ErrUnsupported is matched by errors for YAML that has no value form.
var ErrUnsupported = errors.New("unsupported YAML")

// ProcedureSentinel is the string a procedure renders as.
const ProcedureSentinel = "<procedure>"

// maxDepth bounds nesting.
const maxDepth = 1000

// Nodes reached through an alias are copied into the value, so a document may expand to
// at most aliasRatio times its own node count, and never less than minAliasBudget nodes.
const (
	aliasRatio     = 10
	minAliasBudget = 1 << 16
)

const (
	tagStr   = "!!str"
	tagInt   = "!!int"
	tagFloat = "!!float"
	tagBool  = "!!bool"
	tagNull  = "!!null"
)

func scalar(tag, s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: s}
}

// ToNode converts v to a YAML node tree.
func ToNode(v value.T) (n *yaml.Node) {
	if value.IsNull(v) {
		return scalar(tagNull, "null")
	}
	switch x := v.(type) {
	case value.Symbol:
		return scalar(tagStr, string(x))
	case value.String:
		return scalar(tagStr, string(x))
	case value.Number:
		return numberNode(float64(x))
	case value.Bool:
		if x {
			return scalar(tagBool, "true")
		}
		return scalar(tagBool, "false")
	case *value.List:
		n = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		x.Each(func(_ int, e value.T) bool {
			n.Content = append(n.Content, ToNode(e))
			return true
		})
		return
	case *value.Mapping:
		n = &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		x.Each(func(k string, e value.T) bool {
			n.Content = append(n.Content, scalar(tagStr, k), ToNode(e))
			return true
		})
		return
	case *value.Procedure:
		return scalar(tagStr, ProcedureSentinel)
	}
	return scalar(tagNull, "null")
}

func numberNode(f float64) *yaml.Node {
	switch {
	case math.IsNaN(f):
		return scalar(tagFloat, ".nan")
	case math.IsInf(f, 1):
		return scalar(tagFloat, ".inf")
	case math.IsInf(f, -1):
		return scalar(tagFloat, "-.inf")
	case f == math.Trunc(f) && math.Abs(f) < number.MaxExact && (f != 0 || !math.Signbit(f)):
		return scalar(tagInt, number.String(f))
	}
	return scalar(tagFloat, number.String(f))
}

// Marshal renders v as a YAML document.
func Marshal(v value.T) (b []byte, err error) {
	if b, err = yaml.Marshal(ToNode(v)); chk.T(err) {
		err = errors.Wrap(err, "yml")
	}
	return
}

// Unmarshal reads the first YAML document of b. An empty document is Null.
func Unmarshal(b []byte) (v value.T, err error) {
	var n yaml.Node
	if err = yaml.Unmarshal(b, &n); chk.T(err) {
		err = errors.Wrap(err, "yml")
		return
	}
	return FromNode(&n)
}

// FromNode converts a YAML node tree to a value.
func FromNode(n *yaml.Node) (v value.T, err error) {
	d := &decoder{budget: max(minAliasBudget, aliasRatio*countNodes(n))}
	return d.node(n, 0, false)
}

// countNodes counts the nodes of the tree without following aliases.
func countNodes(n *yaml.Node) (c int) {
	if n == nil {
		return
	}
	c = 1
	for _, ch := range n.Content {
		c += countNodes(ch)
	}
	return
}

func unsupported(n *yaml.Node, format string, a ...any) error {
	return errors.Wrapf(ErrUnsupported, "line %d column %d: "+format,
		append([]any{n.Line, n.Column}, a...)...)
}

type decoder struct {
	expanded, budget int
}

func (d *decoder) node(n *yaml.Node, depth int, aliased bool) (v value.T, err error) {
	if n == nil || n.Kind == 0 {
		return value.NewNull(), nil
	}
	if depth > maxDepth {
		return nil, unsupported(n, "nesting deeper than %d", maxDepth)
	}
	if aliased {
		if d.expanded++; d.expanded > d.budget {
			return nil, unsupported(n, "aliases expand to more than %d nodes", d.budget)
		}
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return value.NewNull(), nil
		}
		return d.node(n.Content[0], depth, aliased)
	case yaml.AliasNode:
		return d.node(n.Alias, depth+1, true)
	case yaml.ScalarNode:
		return fromScalar(n)
	case yaml.SequenceNode:
		items := make([]value.T, 0, len(n.Content))
		for _, c := range n.Content {
			var item value.T
			if item, err = d.node(c, depth+1, aliased); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return value.NewList(items...), nil
	case yaml.MappingNode:
		entries := make([]value.KeyValue, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			for k.Kind == yaml.AliasNode && k.Alias != nil {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, unsupported(k, "mapping key must be a scalar")
			}
			var item value.T
			if item, err = d.node(n.Content[i+1], depth+1, aliased); err != nil {
				return nil, err
			}
			entries = append(entries, value.KV(k.Value, item))
		}
		return value.NewMapping(entries...), nil
	}
	return nil, unsupported(n, "node kind %d", n.Kind)
}

func fromScalar(n *yaml.Node) (v value.T, err error) {
	switch n.ShortTag() {
	case tagNull:
		return value.NewNull(), nil
	case tagBool:
		var b bool
		if err = n.Decode(&b); chk.T(err) {
			return nil, unsupported(n, "bool %q: %v", n.Value, err)
		}
		return value.NewBool(b), nil
	case tagInt, tagFloat:
		var f float64
		if err = n.Decode(&f); chk.T(err) {
			return nil, unsupported(n, "number %q: %v", n.Value, err)
		}
		return value.NewNumber(f), nil
	}
	// strings, timestamps and binary keep their text
	return value.NewString(n.Value), nil
}
