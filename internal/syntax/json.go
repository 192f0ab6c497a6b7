package syntax

import (
	"encoding/json"
	"io"
)

// FprintJSON writes a JSON representation of the AST to w.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

// FprintJSONProgram writes decls to w as a JSON array.
func FprintJSONProgram(w io.Writer, decls []Decl) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(mapSlice(decls, func(d Decl) interface{} { return toJSON(d) }))
}

func toJSON(node Node) interface{} {
	if node == nil {
		return nil
	}

	switch n := node.(type) {
	case *Definition:
		return map[string]interface{}{
			"type":  "Definition",
			"pos":   n.pos.String(),
			"proto": toJSON(n.Proto),
			"body":  toJSON(n.Body),
		}

	case *Prototype:
		return map[string]interface{}{
			"type":   "Prototype",
			"pos":    n.pos.String(),
			"name":   n.Name,
			"params": n.Params,
		}

	case *NumberLit:
		return map[string]interface{}{
			"type":  "NumberLit",
			"pos":   n.pos.String(),
			"value": n.Value,
		}

	case *VariableRef:
		return map[string]interface{}{
			"type": "VariableRef",
			"pos":  n.pos.String(),
			"name": n.Name,
		}

	case *BinaryOp:
		return map[string]interface{}{
			"type": "BinaryOp",
			"pos":  n.pos.String(),
			"op":   string(n.Op),
			"x":    toJSON(n.X),
			"y":    toJSON(n.Y),
		}

	case *Call:
		return map[string]interface{}{
			"type":   "Call",
			"pos":    n.pos.String(),
			"callee": n.Callee,
			"args":   mapSlice(n.Args, func(a Expr) interface{} { return toJSON(a) }),
		}

	default:
		return map[string]interface{}{
			"type": "Unknown",
		}
	}
}

func mapSlice[T any](s []T, f func(T) interface{}) []interface{} {
	result := make([]interface{}, len(s))
	for i, v := range s {
		result[i] = f(v)
	}
	return result
}
