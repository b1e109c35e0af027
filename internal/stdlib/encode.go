// Copyright 2026 The Jsonnet-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Manifestation and parsing for the wire/config formats std exposes:
// JSON (gjson for parsing, hand-written writer for manifestation so
// indentation matches the reference implementation's rules exactly),
// YAML (yaml.v3), TOML (go-toml/v2), base64, and the INI/XML-JSONML/
// Python-literal writers the spec's supplemented-features list adds,
// which have no third-party counterpart in the example pack and are
// hand-written (see DESIGN.md).
package stdlib

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/jsonnet-go/jsonnet/internal/core/adt"
	"github.com/jsonnet-go/jsonnet/syntax/ast"
)

// registerEncode wires the manifestJsonEx intrinsic (std.jsonnet defines
// manifestJson/manifestJsonMinified as thin wrappers over it) plus the
// parsing/manifestation entry points that need a real codec: JSON
// parsing, YAML doc/stream manifestation and parsing, TOML, base64, and
// the INI/XML-JSONML/Python writers that have no library counterpart in
// the example pack (see DESIGN.md).
//
// manifestJsonEx accepts a key_val_sep argument but does not use it: keys
// and values are always separated by ": ".
func (b *builder) registerEncode() {
	b.fnD("manifestJsonEx", []ast.Param{req("value"), req("indent"), opt("newline", litString("\n")), opt("key_val_sep", litString(": "))}, func(a []adt.Value) (adt.Value, error) {
		indent, err := argString(a, 1)
		if err != nil {
			return nil, err
		}
		newline, err := argString(a, 2)
		if err != nil {
			return nil, err
		}
		s, err := manifestJSON(a[0], indent.String(), newline.String())
		if err != nil {
			return nil, err
		}
		return adt.NewString(s), nil
	})
	b.fn("parseJson", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		text := s.String()
		if !gjson.Valid(text) {
			return nil, &adt.TypeError{Expected: "valid JSON", Got: "parse error"}
		}
		return fromGJSON(gjson.Parse(text)), nil
	})

	b.fnD("manifestYamlDoc", []ast.Param{
		req("value"),
		opt("indent_array_in_object", litBool(false)),
		opt("quote_keys", litBool(true)),
	}, func(a []adt.Value) (adt.Value, error) {
		indentArrayInObject, err := argBool(a, 1)
		if err != nil {
			return nil, err
		}
		quoteKeys, err := argBool(a, 2)
		if err != nil {
			return nil, err
		}
		s, err := manifestYAMLDoc(a[0], bool(indentArrayInObject), bool(quoteKeys))
		if err != nil {
			return nil, err
		}
		return adt.NewString(s), nil
	})
	b.fn("manifestYamlStream", []string{"value"}, func(a []adt.Value) (adt.Value, error) {
		arr, err := argArray(a, 0)
		if err != nil {
			return nil, err
		}
		var out strings.Builder
		for _, t := range arr {
			v, err := t.Force()
			if err != nil {
				return nil, err
			}
			nv, err := toNative(v)
			if err != nil {
				return nil, err
			}
			doc, err := yaml.Marshal(nv)
			if err != nil {
				return nil, err
			}
			out.WriteString("---\n")
			out.Write(doc)
		}
		return adt.NewString(out.String()), nil
	})
	b.fn("parseYaml", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		var nv interface{}
		if err := yaml.Unmarshal([]byte(s.String()), &nv); err != nil {
			return nil, &adt.TypeError{Expected: "valid YAML", Got: err.Error()}
		}
		return fromNative(nv)
	})

	b.fn("manifestToml", []string{"value"}, func(a []adt.Value) (adt.Value, error) {
		nv, err := toNative(a[0])
		if err != nil {
			return nil, err
		}
		out, err := toml.Marshal(nv)
		if err != nil {
			return nil, err
		}
		return adt.NewString(strings.TrimSuffix(string(out), "\n")), nil
	})

	b.fn("base64", []string{"input"}, func(a []adt.Value) (adt.Value, error) {
		switch x := a[0].(type) {
		case adt.String:
			return adt.NewString(base64.StdEncoding.EncodeToString([]byte(x.String()))), nil
		case adt.Array:
			bs, err := byteArray(x)
			if err != nil {
				return nil, err
			}
			return adt.NewString(base64.StdEncoding.EncodeToString(bs)), nil
		}
		return nil, typeError("string or array of codepoints", a[0])
	})
	b.fn("base64Decode", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		bs, err := base64.StdEncoding.DecodeString(s.String())
		if err != nil {
			return nil, &adt.TypeError{Expected: "valid base64", Got: err.Error()}
		}
		return adt.NewString(string(bs)), nil
	})
	b.fn("base64DecodeBytes", []string{"str"}, func(a []adt.Value) (adt.Value, error) {
		s, err := argString(a, 0)
		if err != nil {
			return nil, err
		}
		bs, err := base64.StdEncoding.DecodeString(s.String())
		if err != nil {
			return nil, &adt.TypeError{Expected: "valid base64", Got: err.Error()}
		}
		out := make(adt.Array, len(bs))
		for i, byt := range bs {
			out[i] = adt.Resolved(adt.Number(byt))
		}
		return out, nil
	})

	b.fn("manifestIni", []string{"ini"}, stdManifestIni)
	b.fn("manifestXmlJsonml", []string{"value"}, stdManifestXMLJsonml)
	b.fn("manifestPython", []string{"v"}, func(a []adt.Value) (adt.Value, error) {
		var out strings.Builder
		if err := writePython(&out, a[0]); err != nil {
			return nil, err
		}
		return adt.NewString(out.String()), nil
	})
}

// ManifestJSON, ManifestYAML, ManifestTOML, ManifestXMLJsonml, and
// ManifestPython are exported so the top-level encoding/{json,yaml,toml,xml}
// packages can manifest an already-evaluated adt.Value without duplicating
// this package's writers; std.manifestJsonEx and friends call the
// unexported form through the builder above.
func ManifestJSON(v adt.Value, indent string) (string, error) {
	return manifestJSON(v, indent, "\n")
}

// ManifestYAML renders v the way std.manifestYamlDoc does with its
// documented defaults (indent_array_in_object=false, quote_keys=true).
func ManifestYAML(v adt.Value) (string, error) {
	return manifestYAMLDoc(v, false, true)
}

// ManifestYAMLStream renders arr, an array of values, as a `---`-separated
// YAML stream, the same rendering std.manifestYamlStream produces.
func ManifestYAMLStream(arr adt.Array) (string, error) {
	var out strings.Builder
	for _, t := range arr {
		v, err := t.Force()
		if err != nil {
			return "", err
		}
		nv, err := toNative(v)
		if err != nil {
			return "", err
		}
		doc, err := yaml.Marshal(nv)
		if err != nil {
			return "", err
		}
		out.WriteString("---\n")
		out.Write(doc)
	}
	return out.String(), nil
}

func ManifestTOML(v adt.Value) (string, error) {
	nv, err := toNative(v)
	if err != nil {
		return "", err
	}
	out, err := toml.Marshal(nv)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

func ManifestXMLJsonml(v adt.Value) (string, error) {
	var out bytes.Buffer
	if err := writeJsonml(&out, v); err != nil {
		return "", err
	}
	return out.String(), nil
}

func ManifestPython(v adt.Value) (string, error) {
	var out strings.Builder
	if err := writePython(&out, v); err != nil {
		return "", err
	}
	return out.String(), nil
}

// ParseJSON and ParseYAML are the exported forms of std.parseJson/
// std.parseYaml, for the top-level encoding/json and encoding/yaml
// packages' Unmarshal-equivalents.
func ParseJSON(text string) (adt.Value, error) {
	if !gjson.Valid(text) {
		return nil, &adt.TypeError{Expected: "valid JSON", Got: "parse error"}
	}
	return fromGJSON(gjson.Parse(text)), nil
}

func ParseYAML(text string) (adt.Value, error) {
	var nv interface{}
	if err := yaml.Unmarshal([]byte(text), &nv); err != nil {
		return nil, &adt.TypeError{Expected: "valid YAML", Got: err.Error()}
	}
	return fromNative(nv)
}

func byteArray(arr adt.Array) ([]byte, error) {
	out := make([]byte, len(arr))
	for i, t := range arr {
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		n, ok := v.(adt.Number)
		if !ok {
			return nil, typeError("number", v)
		}
		out[i] = byte(n)
	}
	return out, nil
}

func fromGJSON(r gjson.Result) adt.Value {
	switch r.Type {
	case gjson.Null:
		return adt.NullValue
	case gjson.True:
		return adt.Bool(true)
	case gjson.False:
		return adt.Bool(false)
	case gjson.Number:
		return adt.Number(r.Num)
	case gjson.String:
		return adt.NewString(r.Str)
	}
	if r.IsArray() {
		var out adt.Array
		r.ForEach(func(_, v gjson.Result) bool {
			out = append(out, adt.Resolved(fromGJSON(v)))
			return true
		})
		return out
	}
	if r.IsObject() {
		layer := adt.NewLayer()
		r.ForEach(func(k, v gjson.Result) bool {
			layer.Fields[k.String()] = adt.FieldDescriptor{Visibility: ast.VisForced, Native: fromGJSON(v)}
			return true
		})
		return adt.NewNativeObjectFromLayer(layer)
	}
	return adt.NullValue
}

// manifestJSON renders v as JSON, indenting nested containers by indent
// per level and joining with newline, matching std.manifestJsonEx. An
// empty newline puts the whole value on one line, the form
// std.manifestJsonMinified uses; an empty indent alone still breaks lines.
func manifestJSON(v adt.Value, indent, newline string) (string, error) {
	var b strings.Builder
	if err := writeJSON(&b, v, indent, newline, ""); err != nil {
		return "", err
	}
	return b.String(), nil
}

func writeJSON(b *strings.Builder, v adt.Value, indent, newline, prefix string) error {
	switch x := v.(type) {
	case adt.Null:
		b.WriteString("null")
	case adt.Bool:
		b.WriteString(x.String())
	case adt.Number:
		b.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case adt.String:
		b.WriteString(jsonQuote(x.String()))
	case adt.Array:
		if len(x) == 0 {
			b.WriteString("[]")
			return nil
		}
		inner := prefix + indent
		b.WriteByte('[')
		for i, t := range x {
			if i > 0 {
				b.WriteByte(',')
			}
			if newline != "" {
				b.WriteString(newline)
				b.WriteString(inner)
			}
			ev, err := t.Force()
			if err != nil {
				return err
			}
			if err := writeJSON(b, ev, indent, newline, inner); err != nil {
				return err
			}
		}
		if newline != "" {
			b.WriteString(newline)
			b.WriteString(prefix)
		}
		b.WriteByte(']')
	case *adt.Object:
		names := x.FieldNames(false)
		if len(names) == 0 {
			b.WriteString("{}")
			return nil
		}
		sort.Strings(names)
		inner := prefix + indent
		b.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				b.WriteByte(',')
			}
			if newline != "" {
				b.WriteString(newline)
				b.WriteString(inner)
			}
			b.WriteString(jsonQuote(name))
			b.WriteString(": ")
			t, err := x.Field(name)
			if err != nil {
				return err
			}
			fv, err := t.Force()
			if err != nil {
				return err
			}
			if err := writeJSON(b, fv, indent, newline, inner); err != nil {
				return err
			}
		}
		if newline != "" {
			b.WriteString(newline)
			b.WriteString(prefix)
		}
		b.WriteByte('}')
	case *adt.Function:
		return &adt.TypeError{Expected: "manifestable value", Got: "function"}
	}
	return nil
}

// manifestYAMLDoc renders v as a single YAML document, honoring the two
// switches std.manifestYamlDoc exposes: quoteKeys forces every mapping
// key to be double-quoted rather than left bare when it's already a
// plain scalar, and indentArrayInObject indents a mapping value's array
// under the key instead of aligning its dashes with the key itself.
func manifestYAMLDoc(v adt.Value, indentArrayInObject, quoteKeys bool) (string, error) {
	var b strings.Builder
	cfg := yamlConfig{indentArrayInObject: indentArrayInObject, quoteKeys: quoteKeys}
	switch v.(type) {
	case *adt.Object, adt.Array:
		if err := writeYAMLBlock(&b, v, 0, false, cfg); err != nil {
			return "", err
		}
		return strings.TrimSuffix(b.String(), "\n"), nil
	default:
		s, err := yamlScalar(v)
		if err != nil {
			return "", err
		}
		return s, nil
	}
}

type yamlConfig struct {
	indentArrayInObject bool
	quoteKeys           bool
}

// writeYAMLBlock writes v (an object or array) in block style at the
// given indent. inArraySeq marks that v is an object appearing right
// after a sequence "- " marker, whose first key shares that line.
func writeYAMLBlock(b *strings.Builder, v adt.Value, indent int, inArraySeq bool, cfg yamlConfig) error {
	switch x := v.(type) {
	case *adt.Object:
		names := x.FieldNames(false)
		if len(names) == 0 {
			b.WriteString("{}\n")
			return nil
		}
		sort.Strings(names)
		pad := strings.Repeat(" ", indent)
		for i, name := range names {
			if i > 0 || !inArraySeq {
				b.WriteString(pad)
			}
			b.WriteString(yamlKey(name, cfg.quoteKeys))
			b.WriteByte(':')
			t, err := x.Field(name)
			if err != nil {
				return err
			}
			fv, err := t.Force()
			if err != nil {
				return err
			}
			if err := writeYAMLFieldValue(b, fv, indent, cfg); err != nil {
				return err
			}
		}
		return nil
	case adt.Array:
		return writeYAMLSeq(b, x, indent, cfg)
	}
	return typeError("object or array", v)
}

// writeYAMLFieldValue writes the `: value` (or nested block) part of one
// mapping entry whose key was already written at the given indent.
func writeYAMLFieldValue(b *strings.Builder, fv adt.Value, indent int, cfg yamlConfig) error {
	switch x := fv.(type) {
	case adt.Array:
		if len(x) == 0 {
			b.WriteString(" []\n")
			return nil
		}
		b.WriteByte('\n')
		childIndent := indent
		if cfg.indentArrayInObject {
			childIndent = indent + 2
		}
		return writeYAMLSeq(b, x, childIndent, cfg)
	case *adt.Object:
		if len(x.FieldNames(false)) == 0 {
			b.WriteString(" {}\n")
			return nil
		}
		b.WriteByte('\n')
		return writeYAMLBlock(b, x, indent+2, false, cfg)
	default:
		s, err := yamlScalar(x)
		if err != nil {
			return err
		}
		b.WriteByte(' ')
		b.WriteString(s)
		b.WriteByte('\n')
		return nil
	}
}

func writeYAMLSeq(b *strings.Builder, arr adt.Array, indent int, cfg yamlConfig) error {
	if len(arr) == 0 {
		b.WriteString(strings.Repeat(" ", indent))
		b.WriteString("[]\n")
		return nil
	}
	pad := strings.Repeat(" ", indent)
	for _, t := range arr {
		v, err := t.Force()
		if err != nil {
			return err
		}
		b.WriteString(pad)
		b.WriteString("- ")
		switch x := v.(type) {
		case *adt.Object:
			if len(x.FieldNames(false)) == 0 {
				b.WriteString("{}\n")
				continue
			}
			if err := writeYAMLBlock(b, x, indent+2, true, cfg); err != nil {
				return err
			}
		case adt.Array:
			if len(x) == 0 {
				b.WriteString("[]\n")
				continue
			}
			b.WriteByte('\n')
			if err := writeYAMLSeq(b, x, indent+2, cfg); err != nil {
				return err
			}
		default:
			s, err := yamlScalar(x)
			if err != nil {
				return err
			}
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}
	return nil
}

// yamlScalar renders a leaf value, falling back to a double-quoted
// JSON-escaped string when the plain form would be ambiguous.
func yamlScalar(v adt.Value) (string, error) {
	switch x := v.(type) {
	case adt.Null:
		return "null", nil
	case adt.Bool:
		return x.String(), nil
	case adt.Number:
		return strconv.FormatFloat(float64(x), 'g', -1, 64), nil
	case adt.String:
		s := x.String()
		if yamlPlainSafe(s) {
			return s, nil
		}
		return jsonQuote(s), nil
	}
	return "", typeError("manifestable scalar", v)
}

func yamlKey(name string, quoteKeys bool) string {
	if quoteKeys || !yamlPlainSafe(name) {
		return jsonQuote(name)
	}
	return name
}

// yamlPlainSafe reports whether s can appear unquoted as a YAML plain
// scalar: non-empty, not a reserved word or number-looking token, and
// built only from characters that never start a YAML indicator.
func yamlPlainSafe(s string) bool {
	if s == "" {
		return false
	}
	switch strings.ToLower(s) {
	case "null", "~", "true", "false", "yes", "no", "on", "off":
		return false
	}
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	for i, r := range s {
		switch r {
		case ':', '{', '}', '[', ']', ',', '&', '*', '#', '?', '|', '-', '<', '>', '=', '!', '%', '@', '`', '"', '\'', '\n', '\t':
			if i == 0 || r == ':' || r == '#' {
				return false
			}
		}
	}
	return true
}

// stdManifestIni renders an object of the shape
// {main: {...}, sections: {name: {...}, ...}} as an INI file. No INI
// library appears anywhere in the example pack, so this is hand-written
// against the format's own (simple) grammar rather than adapted from a
// dependency.
func stdManifestIni(a []adt.Value) (adt.Value, error) {
	root, err := argObject(a, 0)
	if err != nil {
		return nil, err
	}
	var out strings.Builder
	if root.Has("main", false) {
		t, err := root.Field("main")
		if err != nil {
			return nil, err
		}
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		mo, ok := v.(*adt.Object)
		if !ok {
			return nil, typeError("object", v)
		}
		if err := writeIniSection(&out, mo); err != nil {
			return nil, err
		}
	}
	if root.Has("sections", false) {
		t, err := root.Field("sections")
		if err != nil {
			return nil, err
		}
		v, err := t.Force()
		if err != nil {
			return nil, err
		}
		so, ok := v.(*adt.Object)
		if !ok {
			return nil, typeError("object", v)
		}
		names, vals, err := orderedFields(so)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			sec, ok := vals[name].(*adt.Object)
			if !ok {
				return nil, typeError("object", vals[name])
			}
			fmt.Fprintf(&out, "[%s]\n", name)
			if err := writeIniSection(&out, sec); err != nil {
				return nil, err
			}
		}
	}
	return adt.NewString(out.String()), nil
}

func writeIniSection(out *strings.Builder, o *adt.Object) error {
	names, vals, err := orderedFields(o)
	if err != nil {
		return err
	}
	for _, name := range names {
		switch v := vals[name].(type) {
		case adt.Array:
			for _, t := range v {
				ev, err := t.Force()
				if err != nil {
					return err
				}
				s, err := adt.DisplayString(ev)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s = %s\n", name, s)
			}
		default:
			s, err := adt.DisplayString(v)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s = %s\n", name, s)
		}
	}
	return nil
}

// stdManifestXMLJsonml renders the JsonML-encoded XML value (a
// [tag, {attr: val, ...}?, child, ...] array) as an XML string.
func stdManifestXMLJsonml(a []adt.Value) (adt.Value, error) {
	var out bytes.Buffer
	if err := writeJsonml(&out, a[0]); err != nil {
		return nil, err
	}
	return adt.NewString(out.String()), nil
}

func writeJsonml(out *bytes.Buffer, v adt.Value) error {
	arr, ok := v.(adt.Array)
	if !ok || len(arr) == 0 {
		return typeError("non-empty JsonML array", v)
	}
	vals, err := forceAll(arr)
	if err != nil {
		return err
	}
	tag, ok := vals[0].(adt.String)
	if !ok {
		return typeError("string tag name", vals[0])
	}
	rest := vals[1:]
	var attrs *adt.Object
	if len(rest) > 0 {
		if o, ok := rest[0].(*adt.Object); ok {
			attrs = o
			rest = rest[1:]
		}
	}
	out.WriteByte('<')
	out.WriteString(tag.String())
	if attrs != nil {
		names, vs, err := orderedFields(attrs)
		if err != nil {
			return err
		}
		for _, name := range names {
			s, err := adt.DisplayString(vs[name])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, " %s=%q", name, s)
		}
	}
	if len(rest) == 0 {
		out.WriteString("/>")
		return nil
	}
	out.WriteByte('>')
	for _, child := range rest {
		if s, ok := child.(adt.String); ok {
			out.WriteString(s.String())
			continue
		}
		if err := writeJsonml(out, child); err != nil {
			return err
		}
	}
	fmt.Fprintf(out, "</%s>", tag.String())
	return nil
}

// writePython renders v as a Python literal, the idiom std.manifestPython
// exposes for config consumed by Python tooling.
func writePython(out *strings.Builder, v adt.Value) error {
	switch x := v.(type) {
	case adt.Null:
		out.WriteString("None")
	case adt.Bool:
		if x {
			out.WriteString("True")
		} else {
			out.WriteString("False")
		}
	case adt.Number:
		out.WriteString(strconv.FormatFloat(float64(x), 'g', -1, 64))
	case adt.String:
		out.WriteString(jsonQuote(x.String()))
	case adt.Array:
		out.WriteByte('[')
		for i, t := range x {
			if i > 0 {
				out.WriteString(", ")
			}
			ev, err := t.Force()
			if err != nil {
				return err
			}
			if err := writePython(out, ev); err != nil {
				return err
			}
		}
		out.WriteByte(']')
	case *adt.Object:
		names, vals, err := orderedFields(x)
		if err != nil {
			return err
		}
		out.WriteByte('{')
		for i, name := range names {
			if i > 0 {
				out.WriteString(", ")
			}
			fmt.Fprintf(out, "%s: ", jsonQuote(name))
			if err := writePython(out, vals[name]); err != nil {
				return err
			}
		}
		out.WriteByte('}')
	default:
		return typeError("manifestable value", v)
	}
	return nil
}
