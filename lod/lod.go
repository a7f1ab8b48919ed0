// Package lod groups renderers into level-of-detail levels by their
// "_LOD<n>" name suffix.
package lod

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/binzume/autosetup/geom"
)

// LastLevelHeight is the transition height of the coarsest level.
const LastLevelHeight = 0.02

var markerPattern = regexp.MustCompile(`_LOD(\d+)$`)

type Renderer struct {
	Name    string
	Path    string // hierarchy path below the model root
	Skinned bool
	Bounds  geom.Box
}

type Level struct {
	Renderers []*Renderer
	// Height is the screen-relative transition height.
	Height float32
}

type Group struct {
	Levels []Level
	Bounds geom.Box
}

// Marker returns the LOD number in a renderer name.
func Marker(name string) (int, bool) {
	m := markerPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

// IsLODAsset reports whether a model file holds LOD variants.
func IsLODAsset(path string) bool {
	return strings.Contains(strings.ToLower(path), "_lod")
}

func height(i int) float32 {
	return 1 / float32(i+2)
}

// Assemble builds the LOD group. When every renderer is marked and the
// renderer count equals the level count, level i holds marker i+1.
// Otherwise unmarked renderers form level 0 and marker i forms level i.
func Assemble(renderers []*Renderer) *Group {
	levels := 0
	marked := 0
	for _, r := range renderers {
		if n, ok := Marker(r.Name); ok {
			marked++
			levels = max(levels, n)
		}
	}

	g := &Group{}
	if levels > 0 && marked == len(renderers) && len(renderers) == levels {
		for i := 0; i < levels; i++ {
			g.Levels = append(g.Levels, Level{Renderers: withMarker(renderers, i+1), Height: height(i)})
		}
	} else {
		var base []*Renderer
		for _, r := range renderers {
			if _, ok := Marker(r.Name); !ok {
				base = append(base, r)
			}
		}
		g.Levels = append(g.Levels, Level{Renderers: base, Height: height(0)})
		for i := 1; i <= levels; i++ {
			g.Levels = append(g.Levels, Level{Renderers: withMarker(renderers, i), Height: height(i)})
		}
	}
	if levels > 0 {
		g.Levels[len(g.Levels)-1].Height = LastLevelHeight
	}

	for _, l := range g.Levels {
		for _, r := range l.Renderers {
			g.Bounds = g.Bounds.Union(r.Bounds)
		}
	}
	return g
}

func withMarker(renderers []*Renderer, n int) []*Renderer {
	var dst []*Renderer
	for _, r := range renderers {
		if m, ok := Marker(r.Name); ok && m == n {
			dst = append(dst, r)
		}
	}
	return dst
}
