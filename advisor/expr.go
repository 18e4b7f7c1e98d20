package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
)

type NodeType string

const (
	NodeValue NodeType = "value"
	NodeAnd   NodeType = "and"
	NodeOr    NodeType = "or"
)

// ExprNode is a prerequisite expression: either a course leaf or an
// AND/OR node over child expressions. The stored JSON column is decoded
// into this closed form once, at catalog load.
type ExprNode struct {
	Type     NodeType
	CourseId string
	Children []ExprNode
}

type exprJSON struct {
	CourseId string            `json:"course_id,omitempty"`
	Op       string            `json:"op,omitempty"`
	Children []json.RawMessage `json:"children,omitempty"`
}

func DecodeExpr(raw []byte) (ExprNode, error) {
	var wire exprJSON
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ExprNode{}, fmt.Errorf("decode prerequisite expression: %w", err)
	}

	if wire.CourseId != "" {
		if wire.Op != "" || len(wire.Children) > 0 {
			return ExprNode{}, fmt.Errorf("expression node %q is both leaf and operator", wire.CourseId)
		}
		return ExprNode{Type: NodeValue, CourseId: wire.CourseId}, nil
	}

	var nodeType NodeType
	switch strings.ToUpper(wire.Op) {
	case "AND":
		nodeType = NodeAnd
	case "OR":
		nodeType = NodeOr
	default:
		return ExprNode{}, fmt.Errorf("unknown expression operator %q", wire.Op)
	}
	if len(wire.Children) == 0 {
		return ExprNode{}, fmt.Errorf("%v expression node has no children", wire.Op)
	}

	node := ExprNode{Type: nodeType}
	for _, rawChild := range wire.Children {
		child, err := DecodeExpr(rawChild)
		if err != nil {
			return ExprNode{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}

// EncodeExpr renders a node back into the stored wire form.
func EncodeExpr(node ExprNode) ([]byte, error) {
	wire, err := encodeExpr(node)
	if err != nil {
		return nil, err
	}
	return json.Marshal(wire)
}

func encodeExpr(node ExprNode) (map[string]any, error) {
	switch node.Type {
	case NodeValue:
		return map[string]any{"course_id": node.CourseId}, nil
	case NodeAnd, NodeOr:
		op := "AND"
		if node.Type == NodeOr {
			op = "OR"
		}
		var children []map[string]any
		for _, child := range node.Children {
			wire, err := encodeExpr(child)
			if err != nil {
				return nil, err
			}
			children = append(children, wire)
		}
		return map[string]any{"op": op, "children": children}, nil
	}
	return nil, fmt.Errorf("unknown expression node type %q", node.Type)
}

// Leaves returns every course id under the node, in document order.
func (n ExprNode) Leaves() []string {
	if n.Type == NodeValue {
		return []string{n.CourseId}
	}
	var leaves []string
	for _, child := range n.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}
