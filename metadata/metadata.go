// Package metadata reads the JSON description exported next to a character
// model into an immutable, order-preserving tree.
package metadata

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

type Kind int

const (
	Null Kind = iota
	Object
	Array
	String
	Number
	Bool
)

var ErrParse = errors.New("malformed metadata")

type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("metadata: %v", e.Err)
	}
	return fmt.Sprintf("metadata %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// Node is a value in the document. A nil *Node behaves as an absent value.
type Node struct {
	kind   Kind
	keys   []string
	fields map[string]*Node
	items  []*Node
	str    string
	num    float64
	b      bool
}

func (n *Node) Kind() Kind {
	if n == nil {
		return Null
	}
	return n.kind
}

func (n *Node) IsObject() bool { return n.Kind() == Object }
func (n *Node) IsArray() bool  { return n.Kind() == Array }
func (n *Node) IsString() bool { return n.Kind() == String }
func (n *Node) IsNumber() bool { return n.Kind() == Number }

// Keys returns object keys in document order.
func (n *Node) Keys() []string {
	if !n.IsObject() {
		return nil
	}
	return append([]string(nil), n.keys...)
}

func (n *Node) Len() int {
	switch n.Kind() {
	case Object:
		return len(n.keys)
	case Array:
		return len(n.items)
	}
	return 0
}

// Child returns the direct member named key.
func (n *Node) Child(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	return n.fields[key]
}

func (n *Node) Index(i int) *Node {
	if !n.IsArray() || i < 0 || i >= len(n.items) {
		return nil
	}
	return n.items[i]
}

// First returns the value of the first member of an object.
func (n *Node) First() *Node {
	if !n.IsObject() || len(n.keys) == 0 {
		return nil
	}
	return n.fields[n.keys[0]]
}

func (n *Node) Str() string {
	switch n.Kind() {
	case String:
		return n.str
	case Number:
		return strconv.FormatFloat(n.num, 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(n.b)
	}
	return ""
}

func (n *Node) Float() (float64, bool) {
	switch n.Kind() {
	case Number:
		return n.num, true
	case String:
		f, err := strconv.ParseFloat(n.str, 64)
		return f, err == nil
	}
	return 0, false
}

func (n *Node) Bool() bool {
	switch n.Kind() {
	case Bool:
		return n.b
	case Number:
		return n.num != 0
	}
	return false
}

// Find searches the tree depth-first in document order: each member is
// compared with key before its value is searched. A direct member named key
// is returned as is. A match found below a member is accepted only when it
// is an object, string or number.
func (n *Node) Find(key string) *Node {
	if !n.IsObject() {
		return nil
	}
	for _, k := range n.keys {
		v := n.fields[k]
		if k == key {
			return v
		}
		if r := v.Find(key); r.IsObject() || r.IsString() || r.IsNumber() {
			return r
		}
	}
	return nil
}

// Parse decodes a document. UTF-8 and UTF-16 byte order marks are honored.
func Parse(r io.Reader) (*Node, error) {
	dec := json.NewDecoder(transform.NewReader(bufio.NewReader(r), unicode.BOMOverride(unicode.UTF8.NewDecoder())))
	dec.UseNumber()
	n, err := parseValue(dec)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &ParseError{Err: errors.New("trailing data after document")}
	}
	return n, nil
}

func ParseBytes(b []byte) (*Node, error) {
	return Parse(bytes.NewReader(b))
}

func ReadFile(path string) (*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	n, err := Parse(f)
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
		}
		return nil, err
	}
	return n, nil
}

func parseValue(dec *json.Decoder) (*Node, error) {
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			n := &Node{kind: Object, fields: map[string]*Node{}}
			for dec.More() {
				kt, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, _ := kt.(string)
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				if _, dup := n.fields[key]; !dup {
					n.keys = append(n.keys, key)
				}
				n.fields[key] = child
			}
			_, err := dec.Token()
			return n, err
		case '[':
			n := &Node{kind: Array}
			for dec.More() {
				child, err := parseValue(dec)
				if err != nil {
					return nil, err
				}
				n.items = append(n.items, child)
			}
			_, err := dec.Token()
			return n, err
		}
		return nil, fmt.Errorf("unexpected %v", v)
	case string:
		return &Node{kind: String, str: v}, nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return nil, err
		}
		return &Node{kind: Number, num: f}, nil
	case bool:
		return &Node{kind: Bool, b: v}, nil
	case nil:
		return &Node{kind: Null}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}
