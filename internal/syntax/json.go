package syntax

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"
)

// FprintJSON writes a JSON representation of the AST to w. Every node is
// an object with "node" (its kind) and "range" keys plus its non-empty
// fields under their lower-camel-case names.
func FprintJSON(w io.Writer, node Node) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(node))
}

func toJSON(node Node) interface{} {
	if isNil(node) {
		return nil
	}
	m := map[string]interface{}{
		"node":  nodeName(node),
		"range": lineCol(node.Range()),
	}
	fields(node, func(name string, v reflect.Value) {
		if !isEmpty(v) {
			m[jsonKey(name)] = jsonValue(v)
		}
	})
	return m
}

func jsonValue(v reflect.Value) interface{} {
	switch x := v.Interface().(type) {
	case *Name:
		return x.Value
	case Node:
		return toJSON(x)
	case fmt.Stringer:
		return x.String()
	}
	if v.Kind() == reflect.Slice {
		list := make([]interface{}, v.Len())
		for i := range list {
			list[i] = jsonValue(v.Index(i))
		}
		return list
	}
	return v.Interface()
}

func jsonKey(field string) string {
	return strings.ToLower(field[:1]) + field[1:]
}
