package unity

import (
	"fmt"

	"github.com/binzume/autosetup/material"
)

const builtinExtraGUID = "0000000000000000f000000000000000"

type builtinShader struct {
	Name    string
	Ref     Ref
	Backend material.BackendKind
}

var builtinShaders = []builtinShader{
	{"Standard", Ref{FileID: 46, GUID: builtinExtraGUID}, material.Legacy},
	{"Standard (Specular setup)", Ref{FileID: 45, GUID: builtinExtraGUID}, material.Legacy},
	{"Universal Render Pipeline/Lit", Ref{FileID: 4800000, GUID: "933532a4fcc9baf4fa0491de14d08ed7", Type: 3}, material.URP},
	{"HDRP/Lit", Ref{FileID: 4800000, GUID: "6e4ae4064600d784cac1e41a9e6f2e59", Type: 3}, material.HDRP},
}

// ShaderRegistry resolves shader names to asset references. Only the
// shaders of one render pipeline are visible.
type ShaderRegistry struct {
	kind    material.BackendKind
	shaders map[string]Ref
}

func NewShaderRegistry(kind material.BackendKind) *ShaderRegistry {
	r := &ShaderRegistry{kind: kind, shaders: map[string]Ref{}}
	for _, s := range builtinShaders {
		if s.Backend == kind {
			r.shaders[s.Name] = s.Ref
		}
	}
	return r
}

// Register adds a project shader, e.g. one found in the asset database.
func (r *ShaderRegistry) Register(name string, ref Ref) {
	r.shaders[name] = ref
}

func (r *ShaderRegistry) FindShader(name string) (material.ShaderHandle, error) {
	ref, ok := r.shaders[name]
	if !ok {
		return material.ShaderHandle{}, fmt.Errorf("%w: %q (%v)", material.ErrShaderNotFound, name, r.kind)
	}
	return material.ShaderHandle{Name: name, FileID: ref.FileID, GUID: ref.GUID, Type: ref.Type}, nil
}

// shaderName is the reverse lookup used when reading material files.
func (r *ShaderRegistry) shaderName(ref *Ref) string {
	if ref == nil {
		return ""
	}
	for name, s := range r.shaders {
		if s.FileID == ref.FileID && s.GUID == ref.GUID {
			return name
		}
	}
	return ""
}
