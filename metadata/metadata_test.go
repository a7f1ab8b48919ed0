package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sample = `{
	"CC_Character": {
		"Version": "1.10.1822.1",
		"Object": {
			"Neutral_Body": {
				"Generation": "RL_CC3_Plus",
				"Meshes": {
					"CC_Base_Body": {"Materials": {"Std_Skin_Head": {}, "Std_Skin_Body": {}}}
				}
			}
		}
	}
}`

func TestParseKeepsOrder(t *testing.T) {
	doc, err := ParseBytes([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}
	mats := doc.Find("CC_Base_Body").Child("Materials")
	keys := mats.Keys()
	if len(keys) != 2 || keys[0] != "Std_Skin_Head" || keys[1] != "Std_Skin_Body" {
		t.Error("unexpected key order", keys)
	}
	if doc.Find("Generation").Str() != "RL_CC3_Plus" {
		t.Error("Find(Generation) failed")
	}
	if doc.Child("CC_Character").Child("Object").First() == nil {
		t.Error("First() returned nil")
	}
}

func TestAbsentValues(t *testing.T) {
	var n *Node
	if n.Child("x") != nil || n.Find("x") != nil || n.Len() != 0 || n.Str() != "" {
		t.Error("nil node should behave as absent")
	}
	doc, _ := ParseBytes([]byte(`{"a": [1, 2], "b": true}`))
	if doc.Child("a").Child("x") != nil {
		t.Error("Child on array should be nil")
	}
	if v, ok := doc.Child("a").Index(1).Float(); !ok || v != 2 {
		t.Error("Index(1)", v)
	}
	if !doc.Child("b").Bool() {
		t.Error("Bool()")
	}
}

func TestFindSkipsNestedBooleans(t *testing.T) {
	doc, _ := ParseBytes([]byte(`{"a": {"Generation": false}, "b": {"Generation": "RL_G6_Standard_Series"}}`))
	if doc.Find("Generation").Str() != "RL_G6_Standard_Series" {
		t.Error("nested boolean match should be skipped")
	}
}

func TestFindDocumentOrder(t *testing.T) {
	doc, _ := ParseBytes([]byte(`{"Kevin": {"Generation": "RL_CC3_Plus"}, "Generation": "RL_CharacterCreator_Base_Std_G3"}`))
	if got := doc.Find("Generation").Str(); got != "RL_CC3_Plus" {
		t.Error("earlier nested match should win, got", got)
	}
	doc, _ = ParseBytes([]byte(`{"Generation": "RL_G6_Standard_Series", "a": {"Generation": "RL_CC3_Plus"}}`))
	if got := doc.Find("Generation").Str(); got != "RL_G6_Standard_Series" {
		t.Error("direct member should win, got", got)
	}
}

func TestParseError(t *testing.T) {
	for _, src := range []string{`{"a": `, `{"a" 1}`, `{} {}`, ``} {
		_, err := ParseBytes([]byte(src))
		if !errors.Is(err, ErrParse) {
			t.Errorf("%q: expected parse error, got %v", src, err)
		}
	}
}

func TestReadFileBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.json")
	data := append([]byte{0xef, 0xbb, 0xbf}, []byte(`{"Version": "1.2.3.4"}`)...)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Child("Version").Str() != "1.2.3.4" {
		t.Error("BOM not stripped")
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	_, err = ReadFile(bad)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Path != bad {
		t.Error("expected ParseError with path", err)
	}
}

func TestCheckVersion(t *testing.T) {
	cases := map[string]bool{
		`{"Version": "1.10.1822.1"}`:  true,
		`{"Version": "1.01.0.0"}`:     true,
		`{"Version": "1.11.0.0"}`:     false,
		`{"Version": "2.0.0.0"}`:      false,
		`{"Version": "1.10.1"}`:       false,
		`{"Version": "1.x.0.0"}`:      false,
		`{"Version": "1.10.1822.1a"}`: true,
		`{}`:                          false,
	}
	for src, ok := range cases {
		doc, err := ParseBytes([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		err = CheckVersion(doc, DefaultVersion)
		if (err == nil) != ok {
			t.Errorf("%s: got %v", src, err)
		}
		if err != nil && !errors.Is(err, ErrIncompatibleVersion) {
			t.Errorf("%s: unexpected error type %v", src, err)
		}
	}
}
