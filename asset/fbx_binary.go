package asset

import (
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
)

const fbxBinaryMagic = "Kaydara FBX Binary  \x00"

type positionReader struct {
	r        io.Reader
	position int64
}

func (r *positionReader) Read(p []byte) (n int, err error) {
	n, err = r.r.Read(p)
	r.position += int64(n)
	return n, err
}

func (r *positionReader) SkipTo(pos int64) error {
	offset := pos - r.position
	if offset < 0 {
		return fmt.Errorf("cannot rewind to %d", pos)
	}
	_, err := io.CopyN(io.Discard, r, offset)
	return err
}

type binaryParser struct {
	r       *positionReader
	version uint32
	err     error
}

func (p *binaryParser) read(v interface{}) {
	if p.err == nil {
		p.err = binary.Read(p.r, binary.LittleEndian, v)
	}
}

func (p *binaryParser) readUint8() uint8 {
	var v uint8
	p.read(&v)
	return v
}

func (p *binaryParser) readUint32() uint32 {
	var v uint32
	p.read(&v)
	return v
}

// readOffset reads a record header field, 64 bit since version 7.5.
func (p *binaryParser) readOffset() uint64 {
	if p.version >= 7500 {
		var v uint64
		p.read(&v)
		return v
	}
	return uint64(p.readUint32())
}

func (p *binaryParser) readBytes(n uint32) []byte {
	b := make([]byte, n)
	p.read(b)
	return b
}

func (p *binaryParser) readPropArray(typ uint8) interface{} {
	count := p.readUint32()
	encoding := p.readUint32()
	size := p.readUint32()
	var buf interface{}
	switch typ {
	case 'b':
		buf = make([]byte, count)
	case 'i':
		buf = make([]int32, count)
	case 'l':
		buf = make([]int64, count)
	case 'f':
		buf = make([]float32, count)
	case 'd':
		buf = make([]float64, count)
	}
	if p.err != nil {
		return buf
	}
	if encoding == 0 {
		p.read(buf)
		return buf
	}
	next := p.r.position + int64(size)
	r, err := zlib.NewReader(io.LimitReader(p.r, int64(size)))
	if err != nil {
		p.err = err
		return buf
	}
	defer r.Close()
	p.err = binary.Read(r, binary.LittleEndian, buf)
	if p.err == nil {
		p.err = p.r.SkipTo(next)
	}
	return buf
}

func (p *binaryParser) readProp() interface{} {
	typ := p.readUint8()
	switch typ {
	case 'B', 'C':
		return int64(p.readUint8())
	case 'Y':
		var v int16
		p.read(&v)
		return int64(v)
	case 'I':
		var v int32
		p.read(&v)
		return int64(v)
	case 'L':
		var v int64
		p.read(&v)
		return v
	case 'F':
		var v float32
		p.read(&v)
		return float64(v)
	case 'D':
		var v float64
		p.read(&v)
		return v
	case 'S':
		return string(p.readBytes(p.readUint32()))
	case 'R':
		return p.readBytes(p.readUint32())
	case 'b', 'i', 'l', 'f', 'd':
		return p.readPropArray(typ)
	}
	if p.err == nil {
		p.err = fmt.Errorf("unknown property type %q", typ)
	}
	return nil
}

// readNode returns nil at a null record that terminates a node list.
func (p *binaryParser) readNode() *fbxNode {
	next := p.readOffset()
	nprop := p.readOffset()
	p.readOffset() // property list length
	name := string(p.readBytes(uint32(p.readUint8())))
	if next == 0 || p.err != nil {
		return nil
	}

	n := &fbxNode{Name: name}
	for i := uint64(0); i < nprop && p.err == nil; i++ {
		n.Props = append(n.Props, p.readProp())
	}
	for p.r.position < int64(next) && p.err == nil {
		child := p.readNode()
		if child == nil {
			break
		}
		n.Children = append(n.Children, child)
	}
	if p.err == nil {
		p.err = p.r.SkipTo(int64(next))
	}
	return n
}

func (p *binaryParser) Parse() (*fbxNode, error) {
	if string(p.readBytes(uint32(len(fbxBinaryMagic)))) != fbxBinaryMagic {
		return nil, fmt.Errorf("%w: not a binary fbx", ErrUnsupportedFormat)
	}
	p.readBytes(2)
	p.version = p.readUint32()
	if p.err != nil {
		return nil, p.err
	}

	root := &fbxNode{Name: "_FBX_ROOT"}
	for p.err == nil {
		node := p.readNode()
		if node == nil {
			break
		}
		root.Children = append(root.Children, node)
	}
	if p.err != nil && p.err != io.EOF {
		return nil, p.err
	}
	return root, nil
}
