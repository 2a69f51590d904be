// Package tools implements the operation-dispatch and execution core:
// the descriptor table, argument normalizer, execution strategies,
// result projection and the dispatcher consumed by the transports.
package tools

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Kind selects the execution strategy for an operation.
type Kind string

const (
	// KindSimple is a single synchronous engine call.
	KindSimple Kind = "simple"
	// KindBounded runs under an enforced wall-clock deadline and
	// collects the engine's incremental log lines.
	KindBounded Kind = "bounded"
	// KindStreaming reads an ordered sequence of periodic snapshots.
	KindStreaming Kind = "streaming"
)

// ParamType is the semantic type a parameter is coerced to.
type ParamType string

const (
	TypeString    ParamType = "string"
	TypeBool      ParamType = "boolean"
	TypeInt       ParamType = "integer"
	TypeStringMap ParamType = "string_map"
)

// Param declares one operation parameter.
type Param struct {
	Name        string
	Type        ParamType
	Required    bool
	Default     any // substituted when absent; nil means stay absent
	Description string
}

// Descriptor declares one operation: its name, its parameter schema and
// the strategy used to execute it. Descriptors are registered once in
// the package-level table and never mutated.
type Descriptor struct {
	Name        string
	Description string
	Kind        Kind
	Params      []Param
}

// InputSchema renders the descriptor's parameter schema as an MCP tool
// input schema.
func (d Descriptor) InputSchema() mcp.ToolInputSchema {
	props := make(map[string]any, len(d.Params))
	var required []string
	for _, p := range d.Params {
		props[p.Name] = p.schema()
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Tool renders the descriptor as an MCP tool definition.
func (d Descriptor) Tool() mcp.Tool {
	return mcp.Tool{
		Name:        d.Name,
		Description: d.Description,
		InputSchema: d.InputSchema(),
	}
}

func (p Param) schema() map[string]any {
	s := map[string]any{"description": p.Description}
	switch p.Type {
	case TypeString:
		s["type"] = "string"
	case TypeBool:
		s["type"] = "boolean"
	case TypeInt:
		s["type"] = "integer"
	case TypeStringMap:
		s["type"] = "object"
		s["additionalProperties"] = map[string]any{"type": "string"}
	}
	if p.Default != nil {
		s["default"] = p.Default
	}
	return s
}
