package asset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type tokenType int

const (
	tokIdent tokenType = iota
	tokNumber
	tokString
	tokOperator
	tokBlockStart
	tokBlockEnd
	tokEOL
	tokEOF
)

// textParser reads ASCII FBX documents.
type textParser struct {
	r    *bufio.Reader
	back []byte
	err  error
}

func (p *textParser) errorf(f string, a ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf(f, a...)
	}
}

func (p *textParser) read() byte {
	if len(p.back) > 0 {
		b := p.back[len(p.back)-1]
		p.back = p.back[:len(p.back)-1]
		return b
	}
	if p.err != nil {
		return 0
	}
	b, err := p.r.ReadByte()
	p.err = err
	return b
}

func (p *textParser) unread(c byte) {
	if p.err == nil {
		p.back = append(p.back, c)
	}
}

func isNumberChar(c byte) bool {
	return c >= '0' && c <= '9' || c == '.' || c == 'e' || c == 'E' || c == '-' || c == '+'
}

func isIdentChar(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_' || c >= '0' && c <= '9' || c == '-'
}

func (p *textParser) getToken() (tokenType, string) {
	for p.err == nil {
		c := p.read()
		switch {
		case p.err != nil:
		case c == ';':
			for p.err == nil && c != '\n' {
				c = p.read()
			}
			return tokEOL, ""
		case c == '{':
			return tokBlockStart, "{"
		case c == '}':
			return tokBlockEnd, "}"
		case c == '*' || c == ':' || c == ',':
			return tokOperator, string(c)
		case c == '\n':
			return tokEOL, ""
		case c >= '0' && c <= '9' || c == '.' || c == '-':
			buf := []byte{c}
			for c = p.read(); isNumberChar(c) && p.err == nil; c = p.read() {
				buf = append(buf, c)
			}
			p.unread(c)
			return tokNumber, string(buf)
		case c == '"':
			var buf []byte
			for c = p.read(); c != '"' && p.err == nil; c = p.read() {
				buf = append(buf, c)
			}
			return tokString, string(buf)
		case isIdentChar(c):
			var buf []byte
			for ; isIdentChar(c) && p.err == nil; c = p.read() {
				buf = append(buf, c)
			}
			p.unread(c)
			return tokIdent, string(buf)
		}
	}
	return tokEOF, ""
}

func parseNumber(s string) interface{} {
	if strings.ContainsAny(s, ".eE") {
		v, _ := strconv.ParseFloat(s, 64)
		return v
	}
	v, _ := strconv.ParseInt(s, 10, 64)
	return v
}

func (p *textParser) parseArrayProp() interface{} {
	_, s := p.getToken()
	size, err := strconv.Atoi(s)
	if err != nil {
		p.errorf("bad array size %q", s)
		return nil
	}
	if t, _ := p.getToken(); t != tokBlockStart {
		p.errorf("array block expected")
		return nil
	}
	var values []float64
	hasPoint := false
	for p.err == nil {
		typ, s := p.getToken()
		if typ == tokBlockEnd {
			break
		} else if typ == tokNumber {
			v, _ := strconv.ParseFloat(s, 64)
			values = append(values, v)
			hasPoint = hasPoint || strings.ContainsAny(s, ".eE")
		}
	}
	if len(values) != size {
		p.errorf("array size %d != %d", len(values), size)
	}
	if hasPoint {
		return values
	}
	ints := make([]int64, len(values))
	for i, v := range values {
		ints[i] = int64(v)
	}
	return ints
}

func (p *textParser) parseNodeList() []*fbxNode {
	var nodes []*fbxNode
	for p.err == nil {
		typ, name := p.getToken()
		if typ == tokEOL {
			continue
		} else if typ != tokIdent {
			break
		}
		if t, s := p.getToken(); t != tokOperator || s != ":" {
			p.errorf("':' expected after %s", name)
			break
		}
		node := &fbxNode{Name: name}
		nodes = append(nodes, node)
		for p.err == nil {
			typ, s := p.getToken()
			if typ == tokEOL {
				break
			} else if typ == tokBlockStart {
				node.Children = p.parseNodeList()
				break
			} else if typ == tokNumber {
				node.Props = append(node.Props, parseNumber(s))
			} else if typ == tokString {
				node.Props = append(node.Props, s)
			} else if typ == tokIdent {
				// bare words such as T or Y
				node.Props = append(node.Props, s)
			} else if typ == tokOperator && s == "*" {
				node.Props = append(node.Props, p.parseArrayProp())
			}
		}
	}
	return nodes
}

func (p *textParser) Parse() (*fbxNode, error) {
	root := &fbxNode{Name: "_FBX_ROOT"}
	root.Children = p.parseNodeList()
	if p.err != nil && p.err != io.EOF {
		return nil, p.err
	}
	return root, nil
}
