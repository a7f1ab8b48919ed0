package generation

import (
	"testing"

	"github.com/binzume/autosetup/metadata"
)

func parse(t *testing.T, src string) *metadata.Node {
	t.Helper()
	doc, err := metadata.ParseBytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestExplicitTags(t *testing.T) {
	expected := map[string]Label{
		"RL_CC3_Plus": G3Plus,
		"RL_CharacterCreator_Base_Game_G1_Divide_Eyelash_UV": GameBase,
		"RL_CharacterCreator_Base_Game_G1_Multi_UV":          GameBase,
		"RL_CharacterCreator_Base_Game_G1_One_UV":            GameBase,
		"RL_CharacterCreator_Base_Std_G3":                    G3,
		"RL_G6_Standard_Series":                              G1,
	}
	for tag, l := range expected {
		doc := parse(t, `{"Char": {"Object": {"Char": {"Generation": "`+tag+`"}}}}`)
		if got := Classify(doc, []string{"pinky_03_l"}); got != l {
			t.Errorf("%s: got %v, want %v", tag, got, l)
		}
	}
}

func TestNestedTagBeforeSibling(t *testing.T) {
	doc := parse(t, `{"Kevin": {"Generation": "RL_CC3_Plus"}, "Generation": "RL_CharacterCreator_Base_Std_G3"}`)
	if got := Classify(doc, nil); got != G3Plus {
		t.Error("got", got)
	}
}

func TestUnknownTagFallsThrough(t *testing.T) {
	doc := parse(t, `{"Generation": "RL_Something_New"}`)
	if got := Classify(doc, []string{"hip", "pinky_03_l"}); got != GameBase {
		t.Error("expected skeleton probe, got", got)
	}
	if got := Classify(doc, nil); got != Unknown {
		t.Error("expected Unknown, got", got)
	}
}

func TestSkeletonProbe(t *testing.T) {
	doc := parse(t, `{}`)
	cases := []struct {
		joints []string
		want   Label
	}{
		{[]string{"CC_Base_Hip", "CC_Base_L_Pinky3"}, G3},
		{[]string{"pelvis", "pinky_03_l"}, GameBase},
		{[]string{"CC_Base_L_Finger42"}, G1},
		{[]string{"CC_Base_L_Finger42", "CC_Base_L_Pinky3"}, G1},
		{[]string{"Hips", "Spine"}, G3},
		{[]string{}, G3},
	}
	for _, c := range cases {
		if got := Classify(doc, c.joints); got != c.want {
			t.Errorf("%v: got %v, want %v", c.joints, got, c.want)
		}
	}
}

func TestMaterialProbe(t *testing.T) {
	cases := []struct {
		src  string
		want Label
	}{
		{`{"A": {"Object": {"A": {"Meshes": {"CC_Base_Body": {"Materials": {"Std_Skin_Head": {}, "Std_Skin_Body": {}}}}}}}}`, G3},
		{`{"A": {"Object": {"A": {"Meshes": {"CC_Base_Body": {"Materials": {"Ga_Skin_Body": {}}}}}}}}`, GameBase},
		{`{"A": {"Object": {"A": {"Meshes": {"CC_Base_Body": {"Materials": {"Skin_Body": {}}}}}}}}`, G1},
		{`{"A": {"Object": {"A": {"Meshes": {"CC_Game_Tongue": {}}}}}}`, GameBase},
		{`{"A": {"Object": {"A": {"Meshes": {"Hat": {}}}}}}`, Unknown},
		// first decisive mesh entry wins
		{`{"A": {"Object": {"A": {"Meshes": {"Hat": {}}}}}, "B": {"Object": {"B": {"Meshes": {"CC_Base_Body": {"Materials": {"Skin_Body": {}}}}}}}, "C": {"Object": {"C": {"Meshes": {"CC_Game_Body": {}}}}}}`, G1},
		{`{}`, Unknown},
	}
	for i, c := range cases {
		if got := Classify(parse(t, c.src), nil); got != c.want {
			t.Errorf("case %d: got %v, want %v", i, got, c.want)
		}
	}
}

func TestLabelString(t *testing.T) {
	for _, l := range []Label{Unknown, GameBase, G1, G3, G3Plus} {
		if ParseLabel(l.String()) != l {
			t.Error("round trip failed for", l)
		}
	}
}

func TestIsAvatar(t *testing.T) {
	if !IsAvatar([]string{"RL_BoneRoot", "CC_Base_BoneRoot"}) || !IsAvatar([]string{"root"}) {
		t.Error("expected avatar")
	}
	if IsAvatar([]string{"Armature"}) || IsAvatar(nil) {
		t.Error("unexpected avatar")
	}
}
