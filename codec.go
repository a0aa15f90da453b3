package vfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrUnknownVariant is returned when a document names a variant that does not
// exist, or when a Go value of an unknown variant type is encoded.
var ErrUnknownVariant = errors.New("vfx: unknown variant")

// Effects are stored as YAML. Tagged unions are a single-key mapping from the
// variant name to its payload ({Gravity: [0, -9.8, 0]}); variants without a
// payload are a bare name (RotateByVelocity).

// MarshalEffect encodes e as a YAML document.
func MarshalEffect(e *Effect) ([]byte, error) {
	data, err := yaml.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("vfx: encode effect %q: %w", e.Name, err)
	}
	return data, nil
}

// UnmarshalEffect decodes and validates a YAML effect document.
func UnmarshalEffect(data []byte) (Effect, error) {
	var e Effect
	if err := yaml.Unmarshal(data, &e); err != nil {
		return Effect{}, fmt.Errorf("vfx: decode effect: %w", err)
	}
	if err := e.Validate(); err != nil {
		return Effect{}, err
	}
	return e, nil
}

// Nil and empty lists stay distinct across a round trip: a nil list is
// written as null or left out, an empty one as [].

type effectDoc struct {
	Name     string       `yaml:"name"`
	Emitters []Emitter    `yaml:"emitters"`
	Params   *[]Parameter `yaml:"params,omitempty"`
	Duration float32      `yaml:"duration"`
	Looping  bool         `yaml:"looping"`
}

func (e Effect) MarshalYAML() (any, error) {
	d := effectDoc{Name: e.Name, Emitters: e.Emitters, Duration: e.Duration, Looping: e.Looping}
	if e.Params != nil {
		d.Params = &e.Params
	}
	return d, nil
}

func (e *Effect) UnmarshalYAML(n *yaml.Node) error {
	var d effectDoc
	if err := n.Decode(&d); err != nil {
		return err
	}
	*e = Effect{Name: d.Name, Emitters: d.Emitters, Duration: d.Duration, Looping: d.Looping}
	if d.Params != nil {
		e.Params = *d.Params
	}
	return nil
}

// variant builds {name: payload}, or the bare name when payload is nil.
func variant(name string, payload any) (*yaml.Node, error) {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	if payload == nil {
		return key, nil
	}
	val, ok := payload.(*yaml.Node)
	if !ok {
		val = &yaml.Node{}
		if err := val.Encode(payload); err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
	}
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{key, val}}, nil
}

// splitVariant returns the variant name and payload of a union node. The
// payload is nil for a bare name.
func splitVariant(n *yaml.Node) (string, *yaml.Node, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Value, nil, nil
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return "", nil, fmt.Errorf("line %d: variant must have exactly one key, got %d", n.Line, len(n.Content)/2)
		}
		return n.Content[0].Value, n.Content[1], nil
	}
	return "", nil, fmt.Errorf("line %d: expected variant name or single-key mapping", n.Line)
}

func decodePayload(name string, body *yaml.Node, out any) error {
	if body == nil {
		return fmt.Errorf("variant %s needs a payload", name)
	}
	if err := body.Decode(out); err != nil {
		return fmt.Errorf("variant %s: %w", name, err)
	}
	return nil
}

func unknownVariant(union, name string) error {
	return fmt.Errorf("%w: %s %q", ErrUnknownVariant, union, name)
}

// flow encodes v as a flow-style node.
func flow(v any) (*yaml.Node, error) {
	n := &yaml.Node{}
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

func marshalEnum[T ~uint8](names []string, v T, what string) (any, error) {
	if int(v) >= len(names) {
		return nil, fmt.Errorf("%w: %s %d", ErrUnknownVariant, what, uint8(v))
	}
	return names[v], nil
}

func unmarshalEnum[T ~uint8](names []string, n *yaml.Node, what string) (T, error) {
	for i, name := range names {
		if n.Value == name {
			return T(i), nil
		}
	}
	return 0, unknownVariant(what, n.Value)
}

// Scalars.

// MarshalYAML writes a constant as a number and a random range as [lo, hi].
func (r ScalarRange) MarshalYAML() (any, error) {
	if !r.IsRandom {
		return r.Lo, nil
	}
	return flow([]float32{r.Lo, r.Hi})
}

// UnmarshalYAML accepts a number, a [lo, hi] pair, or the explicit
// {Constant: v} and {Random: [lo, hi]} forms.
func (r *ScalarRange) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		var v float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		*r = Constant(v)
		return nil
	case yaml.SequenceNode:
		var v []float32
		if err := n.Decode(&v); err != nil {
			return err
		}
		if len(v) != 2 {
			return fmt.Errorf("line %d: random range needs 2 values, got %d", n.Line, len(v))
		}
		*r = Random(v[0], v[1])
		return nil
	}
	name, body, err := splitVariant(n)
	if err != nil {
		return err
	}
	switch name {
	case "Constant", "Random":
		return r.UnmarshalYAML(body)
	}
	return unknownVariant("scalar range", name)
}

// MarshalYAML writes the color as [r, g, b, a].
func (c Color) MarshalYAML() (any, error) {
	return flow([]float32{c.R, c.G, c.B, c.A})
}

// UnmarshalYAML reads [r, g, b] or [r, g, b, a]; alpha defaults to 1.
func (c *Color) UnmarshalYAML(n *yaml.Node) error {
	var v []float32
	if err := n.Decode(&v); err != nil {
		return err
	}
	switch len(v) {
	case 3:
		*c = Color{v[0], v[1], v[2], 1}
	case 4:
		*c = Color{v[0], v[1], v[2], v[3]}
	default:
		return fmt.Errorf("line %d: color needs 3 or 4 channels, got %d", n.Line, len(v))
	}
	return nil
}

// MarshalYAML writes the keys as a list of flow mappings.
func (c Curve) MarshalYAML() (any, error) {
	if c.Keys == nil {
		return nil, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(c.Keys); err != nil {
		return nil, err
	}
	for _, k := range n.Content {
		k.Style = yaml.FlowStyle
	}
	return n, nil
}

func (c *Curve) UnmarshalYAML(n *yaml.Node) error {
	var keys []CurveKey
	if err := n.Decode(&keys); err != nil {
		return err
	}
	c.Keys = keys
	return nil
}

func (g Gradient) MarshalYAML() (any, error) {
	if g.Keys == nil {
		return nil, nil
	}
	n := &yaml.Node{}
	if err := n.Encode(g.Keys); err != nil {
		return nil, err
	}
	for _, k := range n.Content {
		k.Style = yaml.FlowStyle
	}
	return n, nil
}

func (g *Gradient) UnmarshalYAML(n *yaml.Node) error {
	var keys []GradientKey
	if err := n.Decode(&keys); err != nil {
		return err
	}
	g.Keys = keys
	return nil
}

// Enums.

func (i Interp) MarshalYAML() (any, error) { return marshalEnum(interpNames[:], i, "interp") }

func (i *Interp) UnmarshalYAML(n *yaml.Node) (err error) {
	*i, err = unmarshalEnum[Interp](interpNames[:], n, "interp")
	return err
}

func (o OrientMode) MarshalYAML() (any, error) {
	return marshalEnum(orientModeNames[:], o, "orient mode")
}

func (o *OrientMode) UnmarshalYAML(n *yaml.Node) (err error) {
	*o, err = unmarshalEnum[OrientMode](orientModeNames[:], n, "orient mode")
	return err
}

func (s SimSpace) MarshalYAML() (any, error) { return marshalEnum(simSpaceNames[:], s, "sim space") }

func (s *SimSpace) UnmarshalYAML(n *yaml.Node) (err error) {
	*s, err = unmarshalEnum[SimSpace](simSpaceNames[:], n, "sim space")
	return err
}

func (a AlphaMode) MarshalYAML() (any, error) {
	return marshalEnum(alphaModeNames[:], a, "alpha mode")
}

func (a *AlphaMode) UnmarshalYAML(n *yaml.Node) (err error) {
	*a, err = unmarshalEnum[AlphaMode](alphaModeNames[:], n, "alpha mode")
	return err
}

func (b BillboardOrient) MarshalYAML() (any, error) {
	return marshalEnum(billboardOrientNames[:], b, "billboard orient")
}

func (b *BillboardOrient) UnmarshalYAML(n *yaml.Node) (err error) {
	*b, err = unmarshalEnum[BillboardOrient](billboardOrientNames[:], n, "billboard orient")
	return err
}

func (m RibbonTextureMode) MarshalYAML() (any, error) {
	return marshalEnum(ribbonTextureModeNames[:], m, "ribbon texture mode")
}

func (m *RibbonTextureMode) UnmarshalYAML(n *yaml.Node) (err error) {
	*m, err = unmarshalEnum[RibbonTextureMode](ribbonTextureModeNames[:], n, "ribbon texture mode")
	return err
}

// MarshalYAML writes a built-in mesh by name and a custom one as {Custom: path}.
func (s MeshShape) MarshalYAML() (any, error) {
	if s.Kind == MeshCustom {
		return variant("Custom", s.Path)
	}
	return marshalEnum(meshKindNames[:MeshCustom], s.Kind, "mesh shape")
}

func (s *MeshShape) UnmarshalYAML(n *yaml.Node) error {
	name, body, err := splitVariant(n)
	if err != nil {
		return err
	}
	if name == "Custom" {
		var path string
		if err := decodePayload(name, body, &path); err != nil {
			return err
		}
		*s = MeshShape{Kind: MeshCustom, Path: path}
		return nil
	}
	kind, err := unmarshalEnum[MeshKind](meshKindNames[:MeshCustom], &yaml.Node{Kind: yaml.ScalarNode, Value: name}, "mesh shape")
	if err != nil {
		return err
	}
	*s = MeshShape{Kind: kind}
	return nil
}

// Emitters and parameters.

type emitterDoc struct {
	Name      string       `yaml:"name"`
	Enabled   bool         `yaml:"enabled"`
	Capacity  uint32       `yaml:"capacity"`
	Spawn     yaml.Node    `yaml:"spawn"`
	Init      *[]yaml.Node `yaml:"init,omitempty"`
	Update    *[]yaml.Node `yaml:"update,omitempty"`
	Render    yaml.Node    `yaml:"render"`
	SimSpace  SimSpace     `yaml:"sim_space"`
	AlphaMode AlphaMode    `yaml:"alpha_mode"`
}

func (em Emitter) MarshalYAML() (any, error) {
	d := emitterDoc{
		Name:      em.Name,
		Enabled:   em.Enabled,
		Capacity:  em.Capacity,
		SimSpace:  em.SimSpace,
		AlphaMode: em.AlphaMode,
	}
	n, err := encodeSpawn(em.Spawn)
	if err != nil {
		return nil, fmt.Errorf("emitter %q: %w", em.Name, err)
	}
	d.Spawn = *n
	if em.Init != nil {
		init := make([]yaml.Node, 0, len(em.Init))
		for _, m := range em.Init {
			n, err := encodeInit(m)
			if err != nil {
				return nil, fmt.Errorf("emitter %q: %w", em.Name, err)
			}
			init = append(init, *n)
		}
		d.Init = &init
	}
	if em.Update != nil {
		update := make([]yaml.Node, 0, len(em.Update))
		for _, m := range em.Update {
			n, err := encodeUpdate(m)
			if err != nil {
				return nil, fmt.Errorf("emitter %q: %w", em.Name, err)
			}
			update = append(update, *n)
		}
		d.Update = &update
	}
	if n, err = encodeRender(em.Render); err != nil {
		return nil, fmt.Errorf("emitter %q: %w", em.Name, err)
	}
	d.Render = *n
	return d, nil
}

// UnmarshalYAML decodes an emitter. Absent enabled and capacity keys keep
// their DefaultEmitter values.
func (em *Emitter) UnmarshalYAML(n *yaml.Node) error {
	d := emitterDoc{Enabled: true, Capacity: DefaultCapacity}
	if err := n.Decode(&d); err != nil {
		return err
	}
	out := Emitter{
		Name:      d.Name,
		Enabled:   d.Enabled,
		Capacity:  d.Capacity,
		SimSpace:  d.SimSpace,
		AlphaMode: d.AlphaMode,
	}
	var err error
	if out.Spawn, err = decodeSpawn(&d.Spawn); err != nil {
		return fmt.Errorf("emitter %q: %w", d.Name, err)
	}
	if d.Init != nil {
		out.Init = make([]InitModifier, 0, len(*d.Init))
		for i := range *d.Init {
			m, err := decodeInit(&(*d.Init)[i])
			if err != nil {
				return fmt.Errorf("emitter %q: %w", d.Name, err)
			}
			out.Init = append(out.Init, m)
		}
	}
	if d.Update != nil {
		out.Update = make([]UpdateModifier, 0, len(*d.Update))
		for i := range *d.Update {
			m, err := decodeUpdate(&(*d.Update)[i])
			if err != nil {
				return fmt.Errorf("emitter %q: %w", d.Name, err)
			}
			out.Update = append(out.Update, m)
		}
	}
	if out.Render, err = decodeRender(&d.Render); err != nil {
		return fmt.Errorf("emitter %q: %w", d.Name, err)
	}
	*em = out
	return nil
}

type paramDoc struct {
	Name  string    `yaml:"name"`
	Value yaml.Node `yaml:"value"`
}

func (p Parameter) MarshalYAML() (any, error) {
	var (
		n   *yaml.Node
		err error
	)
	switch v := p.Value.(type) {
	case FloatParam:
		n, err = variant("Float", float32(v))
	case Vec3Param:
		var vec *yaml.Node
		if vec, err = flow(mgl32.Vec3(v)); err == nil {
			n, err = variant("Vec3", vec)
		}
	case ColorParam:
		n, err = variant("Color", Color(v))
	case CurveParam:
		n, err = variant("Curve", Curve(v))
	default:
		return nil, fmt.Errorf("parameter %q: %w: %T", p.Name, ErrUnknownVariant, p.Value)
	}
	if err != nil {
		return nil, fmt.Errorf("parameter %q: %w", p.Name, err)
	}
	return paramDoc{Name: p.Name, Value: *n}, nil
}

func (p *Parameter) UnmarshalYAML(n *yaml.Node) error {
	var d paramDoc
	if err := n.Decode(&d); err != nil {
		return err
	}
	name, body, err := splitVariant(&d.Value)
	if err != nil {
		return fmt.Errorf("parameter %q: %w", d.Name, err)
	}
	switch name {
	case "Float":
		var v float32
		err = decodePayload(name, body, &v)
		p.Value = FloatParam(v)
	case "Vec3":
		var v mgl32.Vec3
		err = decodePayload(name, body, &v)
		p.Value = Vec3Param(v)
	case "Color":
		var v Color
		err = decodePayload(name, body, &v)
		p.Value = ColorParam(v)
	case "Curve":
		var v Curve
		err = decodePayload(name, body, &v)
		p.Value = CurveParam(v)
	default:
		err = unknownVariant("parameter", name)
	}
	if err != nil {
		return fmt.Errorf("parameter %q: %w", d.Name, err)
	}
	p.Name = d.Name
	return nil
}

// Spawn policies.

func encodeSpawn(p SpawnPolicy) (*yaml.Node, error) {
	switch p := p.(type) {
	case Rate:
		return variant("Rate", p.PerSecond)
	case Burst:
		return variant("Burst", p)
	case Once:
		return variant("Once", p)
	case Distance:
		return variant("Distance", p)
	}
	return nil, fmt.Errorf("%w: spawn policy %T", ErrUnknownVariant, p)
}

func decodeSpawn(n *yaml.Node) (SpawnPolicy, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Rate":
		var p Rate
		err = decodePayload(name, body, &p.PerSecond)
		return p, err
	case "Burst":
		var p Burst
		err = decodePayload(name, body, &p)
		return p, err
	case "Once":
		var p Once
		err = decodePayload(name, body, &p)
		return p, err
	case "Distance":
		var p Distance
		err = decodePayload(name, body, &p)
		return p, err
	}
	return nil, unknownVariant("spawn policy", name)
}

// Init modifiers.

func encodeInit(m InitModifier) (*yaml.Node, error) {
	switch m := m.(type) {
	case SetLifetime:
		return variant("SetLifetime", m.Lifetime)
	case SetPosition:
		shape, err := encodeShape(m.Shape)
		if err != nil {
			return nil, err
		}
		return variant("SetPosition", shape)
	case SetVelocity:
		mode, err := encodeVelocity(m.Mode)
		if err != nil {
			return nil, err
		}
		return variant("SetVelocity", mode)
	case SetColor:
		src, err := encodeColorSource(m.Source)
		if err != nil {
			return nil, err
		}
		return variant("SetColor", src)
	case SetSize:
		return variant("SetSize", m.Size)
	case SetRotation:
		return variant("SetRotation", m.Angle)
	case SetOrientation:
		return variant("SetOrientation", m.Mode)
	case SetScale3d:
		return variant("SetScale3d", m)
	case SetUvScale:
		uv, err := flow(m.Scale)
		if err != nil {
			return nil, err
		}
		return variant("SetUvScale", uv)
	case InheritVelocity:
		return variant("InheritVelocity", m)
	}
	return nil, fmt.Errorf("%w: init modifier %T", ErrUnknownVariant, m)
}

func decodeInit(n *yaml.Node) (InitModifier, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "SetLifetime":
		var m SetLifetime
		err = decodePayload(name, body, &m.Lifetime)
		return m, err
	case "SetPosition":
		if body == nil {
			err = decodePayload(name, body, nil)
			return nil, err
		}
		shape, err := decodeShape(body)
		return SetPosition{Shape: shape}, err
	case "SetVelocity":
		if body == nil {
			err = decodePayload(name, body, nil)
			return nil, err
		}
		mode, err := decodeVelocity(body)
		return SetVelocity{Mode: mode}, err
	case "SetColor":
		if body == nil {
			err = decodePayload(name, body, nil)
			return nil, err
		}
		src, err := decodeColorSource(body)
		return SetColor{Source: src}, err
	case "SetSize":
		var m SetSize
		err = decodePayload(name, body, &m.Size)
		return m, err
	case "SetRotation":
		var m SetRotation
		err = decodePayload(name, body, &m.Angle)
		return m, err
	case "SetOrientation":
		var m SetOrientation
		err = decodePayload(name, body, &m.Mode)
		return m, err
	case "SetScale3d":
		var m SetScale3d
		err = decodePayload(name, body, &m)
		return m, err
	case "SetUvScale":
		var m SetUvScale
		err = decodePayload(name, body, &m.Scale)
		return m, err
	case "InheritVelocity":
		var m InheritVelocity
		err = decodePayload(name, body, &m)
		return m, err
	}
	return nil, unknownVariant("init modifier", name)
}

func encodeShape(s Shape) (*yaml.Node, error) {
	switch s := s.(type) {
	case SphereShape:
		return variant("Sphere", s)
	case BoxShape:
		return variant("Box", s)
	case ConeShape:
		return variant("Cone", s)
	case CircleShape:
		return variant("Circle", s)
	case EdgeShape:
		return variant("Edge", s)
	case PointShape:
		p, err := flow(s.Position)
		if err != nil {
			return nil, err
		}
		return variant("Point", p)
	}
	return nil, fmt.Errorf("%w: shape %T", ErrUnknownVariant, s)
}

func decodeShape(n *yaml.Node) (Shape, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Sphere":
		var s SphereShape
		err = decodePayload(name, body, &s)
		return s, err
	case "Box":
		var s BoxShape
		err = decodePayload(name, body, &s)
		return s, err
	case "Cone":
		var s ConeShape
		err = decodePayload(name, body, &s)
		return s, err
	case "Circle":
		var s CircleShape
		err = decodePayload(name, body, &s)
		return s, err
	case "Edge":
		var s EdgeShape
		err = decodePayload(name, body, &s)
		return s, err
	case "Point":
		var s PointShape
		err = decodePayload(name, body, &s.Position)
		return s, err
	}
	return nil, unknownVariant("shape", name)
}

func encodeVelocity(v VelocityMode) (*yaml.Node, error) {
	switch v := v.(type) {
	case RadialVelocity:
		return variant("Radial", v)
	case DirectionalVelocity:
		return variant("Directional", v)
	case TangentVelocity:
		return variant("Tangent", v)
	case ConeVelocity:
		return variant("Cone", v)
	case RandomVelocity:
		return variant("Random", v)
	}
	return nil, fmt.Errorf("%w: velocity mode %T", ErrUnknownVariant, v)
}

func decodeVelocity(n *yaml.Node) (VelocityMode, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Radial":
		var v RadialVelocity
		err = decodePayload(name, body, &v)
		return v, err
	case "Directional":
		var v DirectionalVelocity
		err = decodePayload(name, body, &v)
		return v, err
	case "Tangent":
		var v TangentVelocity
		err = decodePayload(name, body, &v)
		return v, err
	case "Cone":
		var v ConeVelocity
		err = decodePayload(name, body, &v)
		return v, err
	case "Random":
		var v RandomVelocity
		err = decodePayload(name, body, &v)
		return v, err
	}
	return nil, unknownVariant("velocity mode", name)
}

func encodeColorSource(c ColorSource) (*yaml.Node, error) {
	switch c := c.(type) {
	case ConstantColor:
		return variant("Constant", c.Color)
	case RandomFromGradient:
		return variant("RandomFromGradient", c.Gradient)
	}
	return nil, fmt.Errorf("%w: color source %T", ErrUnknownVariant, c)
}

func decodeColorSource(n *yaml.Node) (ColorSource, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Constant":
		var c ConstantColor
		err = decodePayload(name, body, &c.Color)
		return c, err
	case "RandomFromGradient":
		var c RandomFromGradient
		err = decodePayload(name, body, &c.Gradient)
		return c, err
	}
	return nil, unknownVariant("color source", name)
}

// Update modifiers.

type killZoneDoc struct {
	Shape  yaml.Node `yaml:"shape"`
	Invert bool      `yaml:"invert"`
}

func encodeUpdate(m UpdateModifier) (*yaml.Node, error) {
	switch m := m.(type) {
	case Gravity:
		a, err := flow(m.Accel)
		if err != nil {
			return nil, err
		}
		return variant("Gravity", a)
	case ConstantForce:
		a, err := flow(m.Accel)
		if err != nil {
			return nil, err
		}
		return variant("ConstantForce", a)
	case Drag:
		return variant("Drag", m.Coefficient)
	case Noise:
		return variant("Noise", m)
	case OrbitAround:
		return variant("OrbitAround", m)
	case Attract:
		return variant("Attract", m)
	case KillZone:
		shape, err := encodeKillShape(m.Shape)
		if err != nil {
			return nil, err
		}
		return variant("KillZone", killZoneDoc{Shape: *shape, Invert: m.Invert})
	case SizeByLife:
		return variant("SizeByLife", m.Curve)
	case ColorByLife:
		return variant("ColorByLife", m.Gradient)
	case SizeBySpeed:
		return variant("SizeBySpeed", m)
	case RotateByVelocity:
		return variant("RotateByVelocity", nil)
	case TangentAccel:
		return variant("TangentAccel", m)
	case RadialAccel:
		return variant("RadialAccel", m)
	case Spin:
		return variant("Spin", m)
	case UvScroll:
		return variant("UvScroll", m)
	case Scale3dByLife:
		return variant("Scale3dByLife", m)
	case OffsetByLife:
		return variant("OffsetByLife", m)
	case EmissiveOverLife:
		return variant("EmissiveOverLife", m.Gradient)
	}
	return nil, fmt.Errorf("%w: update modifier %T", ErrUnknownVariant, m)
}

func decodeUpdate(n *yaml.Node) (UpdateModifier, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Gravity":
		var m Gravity
		err = decodePayload(name, body, &m.Accel)
		return m, err
	case "ConstantForce":
		var m ConstantForce
		err = decodePayload(name, body, &m.Accel)
		return m, err
	case "Drag":
		var m Drag
		err = decodePayload(name, body, &m.Coefficient)
		return m, err
	case "Noise":
		var m Noise
		err = decodePayload(name, body, &m)
		return m, err
	case "OrbitAround":
		var m OrbitAround
		err = decodePayload(name, body, &m)
		return m, err
	case "Attract":
		var m Attract
		err = decodePayload(name, body, &m)
		return m, err
	case "KillZone":
		var d killZoneDoc
		if err := decodePayload(name, body, &d); err != nil {
			return nil, err
		}
		shape, err := decodeKillShape(&d.Shape)
		return KillZone{Shape: shape, Invert: d.Invert}, err
	case "SizeByLife":
		var m SizeByLife
		err = decodePayload(name, body, &m.Curve)
		return m, err
	case "ColorByLife":
		var m ColorByLife
		err = decodePayload(name, body, &m.Gradient)
		return m, err
	case "SizeBySpeed":
		var m SizeBySpeed
		err = decodePayload(name, body, &m)
		return m, err
	case "RotateByVelocity":
		return RotateByVelocity{}, nil
	case "TangentAccel":
		var m TangentAccel
		err = decodePayload(name, body, &m)
		return m, err
	case "RadialAccel":
		var m RadialAccel
		err = decodePayload(name, body, &m)
		return m, err
	case "Spin":
		var m Spin
		err = decodePayload(name, body, &m)
		return m, err
	case "UvScroll":
		var m UvScroll
		err = decodePayload(name, body, &m)
		return m, err
	case "Scale3dByLife":
		var m Scale3dByLife
		err = decodePayload(name, body, &m)
		return m, err
	case "OffsetByLife":
		var m OffsetByLife
		err = decodePayload(name, body, &m)
		return m, err
	case "EmissiveOverLife":
		var m EmissiveOverLife
		err = decodePayload(name, body, &m.Gradient)
		return m, err
	}
	return nil, unknownVariant("update modifier", name)
}

func encodeKillShape(s KillShape) (*yaml.Node, error) {
	switch s := s.(type) {
	case KillSphere:
		return variant("Sphere", s)
	case KillBox:
		return variant("Box", s)
	}
	return nil, fmt.Errorf("%w: kill shape %T", ErrUnknownVariant, s)
}

func decodeKillShape(n *yaml.Node) (KillShape, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Sphere":
		var s KillSphere
		err = decodePayload(name, body, &s)
		return s, err
	case "Box":
		var s KillBox
		err = decodePayload(name, body, &s)
		return s, err
	}
	return nil, unknownVariant("kill shape", name)
}

// Render modes.

func encodeRender(r RenderMode) (*yaml.Node, error) {
	switch r := r.(type) {
	case Billboard:
		return variant("Billboard", r)
	case Ribbon:
		return variant("Ribbon", r)
	case Mesh:
		return variant("Mesh", r)
	}
	return nil, fmt.Errorf("%w: render mode %T", ErrUnknownVariant, r)
}

func decodeRender(n *yaml.Node) (RenderMode, error) {
	name, body, err := splitVariant(n)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Billboard":
		r := DefaultBillboard()
		if body == nil {
			return r, nil
		}
		err = decodePayload(name, body, &r)
		return r, err
	case "Ribbon":
		r := DefaultRibbon()
		if body == nil {
			return r, nil
		}
		err = decodePayload(name, body, &r)
		return r, err
	case "Mesh":
		r := DefaultMesh()
		if body == nil {
			return r, nil
		}
		err = decodePayload(name, body, &r)
		return r, err
	}
	return nil, unknownVariant("render mode", name)
}
