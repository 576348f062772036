package markup

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/gomlgo/internal/errors"
	"github.com/vk/gomlgo/internal/fsutil"
	"github.com/vk/gomlgo/internal/nsid"
)

const (
	xmlnsAttr       = "xmlns"
	idAttr          = "id"
	componentsBlock = "components"
)

// ErrSyntax marks documents that are not valid markup.
var ErrSyntax = errors.New("markup syntax error")

// Document is the result of parsing one or more markup files.
type Document struct {
	Files []string
	Roots []*Element
}

// Option configures parsing.
type Option func(*hcl.EvalContext)

// WithVariables makes vars available to attribute expressions, e.g.
// "${env.HOME}".
func WithVariables(vars map[string]cty.Value) Option {
	return func(ctx *hcl.EvalContext) {
		for name, v := range vars {
			ctx.Variables[name] = v
		}
	}
}

// Parse reads one document. Each top-level block becomes a root element.
func Parse(src []byte, filename string, opts ...Option) (*Document, error) {
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{}}
	for _, opt := range opts {
		opt(evalCtx)
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, syntaxError(filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, errors.Mark(errors.Newf("%s: unexpected body type %T", filename, file.Body), ErrSyntax)
	}

	p := &parser{ctx: evalCtx}
	namespace, diags := p.namespace(body, "")
	for _, attr := range sortedAttributes(body) {
		if attr.Name == xmlnsAttr {
			continue
		}
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unexpected top-level attribute",
			Detail:   fmt.Sprintf("Only %q may be set outside of a block, got %q.", xmlnsAttr, attr.Name),
			Subject:  attr.SrcRange.Ptr(),
		})
	}

	doc := &Document{Files: []string{filename}}
	for _, block := range body.Blocks {
		if block.Type == componentsBlock {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Misplaced components block",
				Detail:   "A components block must be nested in an element.",
				Subject:  block.DefRange().Ptr(),
			})
			continue
		}
		el, elDiags := p.element(block, namespace)
		diags = append(diags, elDiags...)
		if el != nil {
			doc.Roots = append(doc.Roots, el)
		}
	}
	if diags.HasErrors() {
		return nil, syntaxError(filename, diags)
	}
	return doc, nil
}

// LoadFile reads and parses a single markup file.
func LoadFile(path string, opts ...Option) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read markup file %s", path)
	}
	return Parse(src, path, opts...)
}

// LoadDir parses every .hcl file under root, in lexical path order, and
// merges their roots into one document.
func LoadDir(root string, opts ...Option) (*Document, error) {
	paths, err := fsutil.FindFilesByExtension(root, ".hcl")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to walk markup directory %s", root)
	}

	merged := &Document{}
	for _, path := range paths {
		doc, err := LoadFile(path, opts...)
		if err != nil {
			return nil, err
		}
		merged.Files = append(merged.Files, doc.Files...)
		merged.Roots = append(merged.Roots, doc.Roots...)
	}
	return merged, nil
}

// Load reads path as a file or, when it is a directory, with LoadDir.
func Load(path string, opts ...Option) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error accessing path %s", path)
	}
	if info.IsDir() {
		return LoadDir(path, opts...)
	}
	return LoadFile(path, opts...)
}

type parser struct {
	ctx *hcl.EvalContext
}

func (p *parser) element(block *hclsyntax.Block, inherited string) (*Element, hcl.Diagnostics) {
	namespace, diags := p.namespace(block.Body, inherited)
	el := &Element{namespace: namespace, name: block.Type, rng: block.DefRange()}

	switch len(block.Labels) {
	case 0:
	case 1:
		el.attrs = append(el.attrs, attr(idAttr, block.Labels[0]))
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Too many labels",
			Detail:   fmt.Sprintf("Element %q takes at most one label, its id.", block.Type),
			Subject:  block.LabelRanges[1].Ptr(),
		})
	}

	attrDiags := p.attributes(el, block.Body)
	diags = append(diags, attrDiags...)

	for _, nested := range block.Body.Blocks {
		if nested.Type != componentsBlock {
			child, childDiags := p.element(nested, namespace)
			diags = append(diags, childDiags...)
			if child != nil {
				el.children = append(el.children, child)
			}
			continue
		}
		componentDiags := p.components(el, nested, namespace)
		diags = append(diags, componentDiags...)
	}
	return el, diags
}

func (p *parser) components(owner *Element, block *hclsyntax.Block, inherited string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	if len(block.Labels) > 0 || len(block.Body.Attributes) > 0 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid components block",
			Detail:   "A components block holds component blocks only.",
			Subject:  block.DefRange().Ptr(),
		})
	}

	for _, nested := range block.Body.Blocks {
		comp, compDiags := p.element(nested, inherited)
		diags = append(diags, compDiags...)
		if len(comp.children) > 0 || len(comp.components) > 0 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Nested blocks in a component",
				Detail:   fmt.Sprintf("Component %q cannot contain blocks.", nested.Type),
				Subject:  nested.DefRange().Ptr(),
			})
		}
		owner.components = append(owner.components, comp)
	}
	return diags
}

func (p *parser) attributes(el *Element, body *hclsyntax.Body) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, a := range sortedAttributes(body) {
		if a.Name == xmlnsAttr {
			continue
		}
		if _, dup := el.Attr(a.Name); dup {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate attribute",
				Detail:   fmt.Sprintf("%q is already set by the block label.", a.Name),
				Subject:  a.SrcRange.Ptr(),
			})
			continue
		}
		value, valueDiags := p.value(a)
		diags = append(diags, valueDiags...)
		if !valueDiags.HasErrors() {
			el.attrs = append(el.attrs, attr(a.Name, value))
		}
	}
	return diags
}

func (p *parser) namespace(body *hclsyntax.Body, inherited string) (string, hcl.Diagnostics) {
	a, ok := body.Attributes[xmlnsAttr]
	if !ok {
		return inherited, nil
	}
	value, diags := a.Expr.Value(p.ctx)
	if diags.HasErrors() {
		return inherited, diags
	}
	if value.IsNull() || !value.Type().Equals(cty.String) || !value.IsKnown() {
		return inherited, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid namespace",
			Detail:   "The xmlns attribute must be a string.",
			Subject:  a.Expr.Range().Ptr(),
		}}
	}
	namespace := value.AsString()
	if _, err := nsid.Parse(namespace + ".x"); err != nil {
		return inherited, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid namespace",
			Detail:   fmt.Sprintf("%q is not a valid namespace: %v", namespace, err),
			Subject:  a.Expr.Range().Ptr(),
		}}
	}
	return namespace, nil
}

func (p *parser) value(a *hclsyntax.Attribute) (string, hcl.Diagnostics) {
	value, diags := a.Expr.Value(p.ctx)
	if diags.HasErrors() {
		return "", diags
	}
	text, err := valueText(value)
	if err != nil {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Unsupported attribute value",
			Detail:   fmt.Sprintf("Attribute %q: %v.", a.Name, err),
			Subject:  a.Expr.Range().Ptr(),
		}}
	}
	return text, nil
}

// valueText renders an evaluated attribute as the raw string converters
// receive. Null renders as the empty string, which counts as absent.
func valueText(v cty.Value) (string, error) {
	if !v.IsWhollyKnown() {
		return "", fmt.Errorf("value is not known")
	}
	if v.IsNull() {
		return "", nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Number:
		return v.AsBigFloat().Text('f', -1), nil
	case ty == cty.Bool:
		if v.True() {
			return "true", nil
		}
		return "false", nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		parts := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, item := it.Element()
			if !item.Type().IsPrimitiveType() {
				return string(hclwrite.TokensForValue(v).Bytes()), nil
			}
			part, err := valueText(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return strings.Join(parts, " "), nil
	case ty.IsObjectType() || ty.IsMapType():
		return string(hclwrite.TokensForValue(v).Bytes()), nil
	default:
		return "", fmt.Errorf("values of type %s are not supported", ty.FriendlyName())
	}
}

func sortedAttributes(body *hclsyntax.Body) []*hclsyntax.Attribute {
	attrs := make([]*hclsyntax.Attribute, 0, len(body.Attributes))
	for _, a := range body.Attributes {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].SrcRange.Start.Byte < attrs[j].SrcRange.Start.Byte
	})
	return attrs
}

func syntaxError(filename string, diags hcl.Diagnostics) error {
	return errors.Mark(errors.Wrapf(diags, "failed to parse markup file %s", filename), ErrSyntax)
}
