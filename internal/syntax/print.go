package syntax

import (
	"fmt"
	"io"
	"reflect"
	"strings"
)

// Fprint writes a textual representation of the AST to w: one line per
// node with its kind and source range, fields indented below it.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

func (p *printer) print(node Node) {
	if isNil(node) {
		p.printf("nil\n")
		return
	}
	p.printf("%s %s\n", nodeName(node), lineCol(node.Range()))
	p.indent++
	fields(node, p.field)
	p.indent--
}

func (p *printer) field(name string, v reflect.Value) {
	if isEmpty(v) {
		return
	}
	switch x := v.Interface().(type) {
	case *Name:
		p.printf("%s: %q\n", name, x.Value)
	case []*Name:
		vals := make([]string, len(x))
		for i, n := range x {
			vals[i] = fmt.Sprintf("%q", n.Value)
		}
		p.printf("%s: %s\n", name, strings.Join(vals, ", "))
	case Node:
		p.printf("%s:\n", name)
		p.indent++
		p.print(x)
		p.indent--
	case fmt.Stringer:
		p.printf("%s: %s\n", name, x)
	case string:
		p.printf("%s: %q\n", name, x)
	case bool:
		p.printf("%s: true\n", name)
	default:
		if v.Kind() != reflect.Slice {
			p.printf("%s: %v\n", name, x)
			return
		}
		p.printf("%s:\n", name)
		p.indent++
		for i := range v.Len() {
			if n, ok := v.Index(i).Interface().(Node); ok {
				p.print(n)
			}
		}
		p.indent--
	}
}

var stringerType = reflect.TypeOf((*fmt.Stringer)(nil)).Elem()

// fields calls fn for the attributes and modifiers of a declaration and
// then for each exported field of the node, in declaration order.
func fields(node Node, fn func(name string, v reflect.Value)) {
	if d, ok := node.(Decl); ok {
		fn("Attributes", reflect.ValueOf(d.Attrs()))
		fn("Modifiers", reflect.ValueOf(d.Mods()))
	}
	e := reflect.ValueOf(node).Elem()
	t := e.Type()
	for i := range t.NumField() {
		if f := t.Field(i); !f.Anonymous && f.IsExported() {
			fn(f.Name, e.Field(i))
		}
	}
}

// isEmpty reports whether a field is left out of a dump. Enumerations are
// always shown, since their zero value is meaningful.
func isEmpty(v reflect.Value) bool {
	switch {
	case v.Kind() == reflect.Slice:
		return v.Len() == 0
	case v.Type().Implements(stringerType):
		return false
	}
	return v.IsZero()
}

func isNil(node Node) bool {
	if node == nil {
		return true
	}
	v := reflect.ValueOf(node)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func nodeName(node Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// lineCol renders r as "line:col-line:col" without the file name.
func lineCol(r Range) string {
	if !r.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d-%d:%d", r.Start.line, r.Start.col, r.End.line, r.End.col)
}
