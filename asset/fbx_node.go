package asset

import "strings"

// fbxNode is one record of an FBX document tree. Property values are
// int64, float64, string, []byte or numeric slices.
type fbxNode struct {
	Name     string
	Props    []interface{}
	Children []*fbxNode
}

func (n *fbxNode) child(name string) *fbxNode {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (n *fbxNode) children() []*fbxNode {
	if n == nil {
		return nil
	}
	return n.Children
}

func (n *fbxNode) prop(i int) interface{} {
	if n == nil || i >= len(n.Props) {
		return nil
	}
	return n.Props[i]
}

func (n *fbxNode) propString(i int) string {
	switch v := n.prop(i).(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}

func (n *fbxNode) propInt(i int) int64 {
	switch v := n.prop(i).(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	}
	return 0
}

func (n *fbxNode) propFloat(i int, def float64) float64 {
	switch v := n.prop(i).(type) {
	case int64:
		return float64(v)
	case float64:
		return v
	}
	return def
}

func (n *fbxNode) propFloats(i int) []float64 {
	switch v := n.prop(i).(type) {
	case []float64:
		return v
	case []float32:
		r := make([]float64, len(v))
		for i, f := range v {
			r[i] = float64(f)
		}
		return r
	case []int32:
		r := make([]float64, len(v))
		for i, f := range v {
			r[i] = float64(f)
		}
		return r
	case []int64:
		r := make([]float64, len(v))
		for i, f := range v {
			r[i] = float64(f)
		}
		return r
	}
	return nil
}

// objectName strips the class suffix from "Name\x00\x01Class" (binary) or
// "Class::Name" (text).
func objectName(s string) string {
	if i := strings.Index(s, "\x00\x01"); i >= 0 {
		return s[:i]
	}
	if i := strings.Index(s, "::"); i >= 0 {
		return s[i+2:]
	}
	return s
}
