package geom

// Box is an axis-aligned bounding box. The zero value is empty.
type Box struct {
	Min   Vector3
	Max   Vector3
	Valid bool
}

func NewBox(min, max *Vector3) Box {
	return Box{Min: *min, Max: *max, Valid: true}
}

func (b Box) AddPoint(p *Vector3) Box {
	if !b.Valid {
		return Box{Min: *p, Max: *p, Valid: true}
	}
	return Box{Min: *b.Min.Min(p), Max: *b.Max.Max(p), Valid: true}
}

func (b Box) Union(o Box) Box {
	if !o.Valid {
		return b
	}
	if !b.Valid {
		return o
	}
	return Box{Min: *b.Min.Min(&o.Min), Max: *b.Max.Max(&o.Max), Valid: true}
}

func (b Box) Center() *Vector3 {
	return b.Min.Add(&b.Max).Scale(0.5)
}

func (b Box) Size() *Vector3 {
	return b.Max.Sub(&b.Min)
}

// Transform returns the bounds of the eight transformed corners.
func (b Box) Transform(m *Matrix4) Box {
	if !b.Valid {
		return b
	}
	var r Box
	for i := 0; i < 8; i++ {
		p := b.Min
		if i&1 != 0 {
			p.X = b.Max.X
		}
		if i&2 != 0 {
			p.Y = b.Max.Y
		}
		if i&4 != 0 {
			p.Z = b.Max.Z
		}
		r = r.AddPoint(m.ApplyTo(&p))
	}
	return r
}
