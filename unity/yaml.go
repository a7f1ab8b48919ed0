package unity

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v2"
)

const unityTagPrefix = "tag:unity3d.com,2011:"

// Class IDs of the serialized objects written by this package.
const (
	ClassGameObject          = 1
	ClassTransform           = 4
	ClassMaterial            = 21
	ClassMeshRenderer        = 23
	ClassSkinnedMeshRenderer = 137
	ClassLODGroup            = 205
	ClassPrefabInstance      = 1001
)

type YAMLDoc struct {
	Tag      string // tag:unity3d.com,2011:21
	FileID   int64
	Stripped bool
	Body     []byte
}

// ClassID returns the class id encoded in the document tag.
func (d *YAMLDoc) ClassID() int {
	id, err := strconv.Atoi(strings.TrimPrefix(d.Tag, unityTagPrefix))
	if err != nil {
		return 0
	}
	return id
}

func (d *YAMLDoc) Decode(dst interface{}) error {
	return yaml.Unmarshal(d.Body, dst)
}

type yamlSplitter struct {
	data []byte
	pos  int
	tags map[string]string
}

// ParseYamlDocuments splits a Unity multi-document YAML file. Unity files
// use a custom tag directive and anchors as file ids, which yaml.v2 does not
// handle across documents.
func ParseYamlDocuments(data []byte) []*YAMLDoc {
	s := yamlSplitter{data: data, tags: map[string]string{}}
	docStart := 0
	var doc *YAMLDoc
	var docs []*YAMLDoc

	for s.pos < len(data)-3 {
		if bytes.HasPrefix(data[s.pos:], []byte("%TAG")) {
			s.pos += 4
			name := strings.Trim(s.readToken(), "!")
			s.tags[name] = s.readToken()
		} else if bytes.HasPrefix(data[s.pos:], []byte("---")) {
			if doc != nil {
				doc.Body = data[docStart:s.pos]
				docs = append(docs, doc)
			}
			s.pos += 3
			doc = &YAMLDoc{Tag: s.getTag()}
			doc.FileID, _ = strconv.ParseInt(strings.TrimPrefix(s.readToken(), "&"), 10, 64)
			doc.Stripped = s.readToken() == "stripped"
			s.nextLine()
			docStart = s.pos
			continue
		}
		s.nextLine()
	}
	if doc != nil {
		doc.Body = data[docStart:]
		docs = append(docs, doc)
	}
	return docs
}

func (s *yamlSplitter) getTag() string {
	tag := s.readToken()
	if len(tag) > 0 && tag[0] == '!' {
		t := strings.SplitN(tag[1:], "!", 2)
		if v, ok := s.tags[t[0]]; ok {
			tag = v + tag[len(t[0])+2:]
		}
	}
	return tag
}

func (s *yamlSplitter) readToken() string {
	for s.pos < len(s.data) && s.data[s.pos] == ' ' {
		s.pos++
	}
	st := s.pos
	for s.pos < len(s.data) && s.data[s.pos] != '\n' && s.data[s.pos] != ' ' && s.data[s.pos] != '\r' {
		s.pos++
	}
	return string(s.data[st:s.pos])
}

func (s *yamlSplitter) nextLine() {
	for s.pos < len(s.data) {
		s.pos++
		if s.data[s.pos-1] == '\n' {
			break
		}
	}
}

// DocumentWriter writes Unity serialized objects as tagged YAML documents.
type DocumentWriter struct {
	w   io.Writer
	err error
}

func NewDocumentWriter(w io.Writer) *DocumentWriter {
	d := &DocumentWriter{w: w}
	_, d.err = io.WriteString(w, "%YAML 1.1\n%TAG !u! "+unityTagPrefix+"\n")
	return d
}

// Write emits one object. body is marshalled as a single-key mapping of
// the class name to the object.
func (d *DocumentWriter) Write(classID int, fileID int64, className string, body interface{}) error {
	return d.write(classID, fileID, "", yaml.MapSlice{{Key: className, Value: body}})
}

// WriteStripped emits a stripped object referring into a source prefab.
func (d *DocumentWriter) WriteStripped(classID int, fileID int64, className string, body interface{}) error {
	return d.write(classID, fileID, " stripped", yaml.MapSlice{{Key: className, Value: body}})
}

func (d *DocumentWriter) write(classID int, fileID int64, suffix string, v interface{}) error {
	if d.err != nil {
		return d.err
	}
	b, err := yaml.Marshal(v)
	if err != nil {
		d.err = err
		return err
	}
	if _, err = fmt.Fprintf(d.w, "--- !u!%d &%d%s\n", classID, fileID, suffix); err == nil {
		_, err = d.w.Write(b)
	}
	d.err = err
	return err
}

func (d *DocumentWriter) Err() error {
	return d.err
}
