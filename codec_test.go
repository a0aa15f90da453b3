package vfx

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func roundTrip(t *testing.T, e Effect) Effect {
	t.Helper()
	data, err := MarshalEffect(&e)
	if err != nil {
		t.Fatalf("MarshalEffect(%q): %v", e.Name, err)
	}
	got, err := UnmarshalEffect(data)
	if err != nil {
		t.Fatalf("UnmarshalEffect(%q): %v\n%s", e.Name, err, data)
	}
	return got
}

func TestPresetsRoundTrip(t *testing.T) {
	for _, e := range Presets() {
		t.Run(e.Name, func(t *testing.T) {
			got := roundTrip(t, e)
			if !reflect.DeepEqual(got, e) {
				t.Errorf("round trip changed effect\ngot  %+v\nwant %+v", got, e)
			}
		})
	}
}

// everyVariant builds an effect that uses every modifier, shape, policy and
// render mode at least once.
func everyVariant() Effect {
	tex := "textures/trail.png"
	mat := "materials/rock.mat"

	billboard := DefaultEmitter()
	billboard.Name = "billboard"
	billboard.Spawn = Burst{Count: 4, Interval: 0.2, MaxCycles: Cycles(3), Offset: 0.1}
	billboard.Init = []InitModifier{
		SetLifetime{Random(1, 2)},
		SetPosition{SphereShape{Center: mgl32.Vec3{0, 1, 0}, Radius: Random(0.1, 0.2)}},
		SetVelocity{RadialVelocity{Speed: Constant(2)}},
		SetColor{ConstantColor{Color{1, 0.5, 0.25, 0.75}}},
		SetSize{Constant(0.3)},
		SetRotation{Random(-1, 1)},
		SetOrientation{OrientRandomY},
		SetScale3d{X: Constant(1), Y: Random(1, 2), Z: Constant(0.5)},
		SetUvScale{Scale: [2]float32{2, 1}},
		InheritVelocity{Ratio: 0.5},
	}
	billboard.Update = []UpdateModifier{
		Gravity{mgl32.Vec3{0, -9.8, 0}},
		ConstantForce{mgl32.Vec3{1, 0, 0}},
		Drag{0.5},
		Noise{Strength: 1, Frequency: 2, Scroll: mgl32.Vec3{0, 1, 0}},
		OrbitAround{Axis: axisY, Speed: 3, RadiusDecay: 0.1},
		Attract{Target: mgl32.Vec3{0, 2, 0}, Strength: 4, Falloff: 2},
		KillZone{Shape: KillSphere{Center: mgl32.Vec3{0, -5, 0}, Radius: 1}},
		KillZone{Shape: KillBox{HalfExtents: mgl32.Vec3{10, 10, 10}}, Invert: true},
		SizeByLife{FadeOutCurve()},
		ColorByLife{FadeOutGradient(ColorWhite)},
		SizeBySpeed{MinSpeed: 0, MaxSpeed: 5, MinSize: 0.1, MaxSize: 0.4},
		RotateByVelocity{},
		TangentAccel{Axis: axisY, Accel: 1},
		RadialAccel{Origin: mgl32.Vec3{0, 1, 0}, Accel: -2},
		Spin{Axis: axisZ, Speed: 1.5},
		UvScroll{Speed: [2]float32{0.1, 0}},
		Scale3dByLife{X: LinearCurve(1, 2), Y: ConstantCurve(1), Z: LinearCurve(1, 0)},
		OffsetByLife{X: ConstantCurve(0), Y: LinearCurve(0, 1), Z: ConstantCurve(0)},
		EmissiveOverLife{TwoColorGradient(Color{4, 2, 1, 1}, Color{})},
	}
	billboard.Render = Billboard{
		Orient:               BillboardAlongVelocity,
		Texture:              &tex,
		Flipbook:             &Flipbook{Rows: 4, Columns: 4, FPS: 24},
		SoftParticleDistance: 0.2,
	}
	billboard.SimSpace = SimWorld
	billboard.AlphaMode = AlphaPremultiply

	ribbon := DefaultEmitter()
	ribbon.Name = "ribbon"
	ribbon.Enabled = false
	ribbon.Capacity = 32
	ribbon.Spawn = Distance{Spacing: 0.25}
	ribbon.Init = []InitModifier{
		SetPosition{BoxShape{HalfExtents: mgl32.Vec3{1, 0, 1}}},
		SetVelocity{DirectionalVelocity{Direction: axisX, Speed: Random(1, 2)}},
		SetColor{RandomFromGradient{TwoColorGradient(ColorWhite, Color{0, 0, 1, 1})}},
		SetOrientation{OrientAlignVelocity},
	}
	ribbon.Update = nil
	ribbon.Render = Ribbon{
		WidthCurve:          LinearCurve(0.2, 0),
		TextureMode:         RibbonTile,
		FaceCamera:          false,
		SegmentsPerParticle: 8,
		Texture:             &tex,
	}
	ribbon.AlphaMode = AlphaMultiply

	mesh := DefaultEmitter()
	mesh.Name = "mesh"
	mesh.Spawn = Once{Count: 12, Offset: 0.5}
	mesh.Init = []InitModifier{
		SetPosition{ConeShape{Angle: 0.5, Radius: 1, Height: 2}},
		SetVelocity{TangentVelocity{Axis: axisY, Speed: Constant(1)}},
		SetOrientation{OrientRandomFull},
	}
	mesh.Render = Mesh{
		Shape:        MeshShape{Kind: MeshCustom, Path: "meshes/shard.glb"},
		MaterialPath: &mat,
		BaseColor:    Color{0.2, 0.2, 0.2, 1},
		Collide:      true,
		Restitution:  0.6,
		CastShadows:  true,
	}
	mesh.AlphaMode = AlphaOpaque

	shapes := DefaultEmitter()
	shapes.Name = "shapes"
	shapes.Spawn = Rate{PerSecond: 12.5}
	shapes.Init = []InitModifier{
		SetPosition{CircleShape{Axis: axisZ, Radius: Random(0.5, 1)}},
		SetPosition{EdgeShape{Start: mgl32.Vec3{-1, 0, 0}, End: mgl32.Vec3{1, 0, 0}}},
		SetPosition{PointShape{Position: mgl32.Vec3{0, 3, 0}}},
		SetVelocity{ConeVelocity{Direction: axisY, Angle: 0.3, Speed: Random(2, 4)}},
		SetVelocity{RandomVelocity{Speed: Constant(1)}},
		SetOrientation{OrientFaceCamera},
		SetOrientation{OrientIdentity},
	}
	shapes.Render = Mesh{Shape: MeshShape{Kind: MeshSphere}, BaseColor: ColorWhite}

	e := NewEffect("Everything", billboard, ribbon, mesh, shapes)
	e.Duration = 4
	e.Params = []Parameter{
		{Name: "intensity", Value: FloatParam(1.5)},
		{Name: "wind", Value: Vec3Param{1, 0, -0.5}},
		{Name: "tint", Value: ColorParam{1, 0.8, 0.6, 1}},
		{Name: "falloff", Value: CurveParam(LinearCurve(1, 0))},
	}
	return e
}

func TestEveryVariantRoundTrip(t *testing.T) {
	e := everyVariant()
	if err := e.Validate(); err != nil {
		t.Fatal(err)
	}
	got := roundTrip(t, e)
	if !reflect.DeepEqual(got, e) {
		for i := range e.Emitters {
			if !reflect.DeepEqual(got.Emitters[i], e.Emitters[i]) {
				t.Errorf("emitter %q changed\ngot  %+v\nwant %+v", e.Emitters[i].Name, got.Emitters[i], e.Emitters[i])
			}
		}
		if !reflect.DeepEqual(got.Params, e.Params) {
			t.Errorf("params changed\ngot  %+v\nwant %+v", got.Params, e.Params)
		}
		t.Error("round trip changed effect")
	}
}

func TestEmptyContainersRoundTrip(t *testing.T) {
	empty := DefaultEmitter()
	empty.Name = "empty"
	empty.Init = []InitModifier{}
	empty.Update = []UpdateModifier{
		SizeByLife{Curve{Keys: []CurveKey{}}},
		ColorByLife{Gradient{Keys: []GradientKey{}}},
	}
	ribbon := DefaultEmitter()
	ribbon.Name = "ribbon"
	r := DefaultRibbon()
	r.WidthCurve = Curve{Keys: []CurveKey{}}
	ribbon.Render = r

	nilled := DefaultEmitter()
	nilled.Name = "nil"
	nilled.Init = nil
	nilled.Update = []UpdateModifier{SizeByLife{}, ColorByLife{}}

	tests := []struct {
		name   string
		params []Parameter
	}{
		{"empty params", []Parameter{}},
		{"nil params", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEffect("containers", empty, ribbon, nilled)
			e.Params = tt.params
			got := roundTrip(t, e)
			if !reflect.DeepEqual(got, e) {
				t.Errorf("round trip changed effect\ngot  %#v\nwant %#v", got, e)
			}
		})
	}
}

func TestDecodeShorthand(t *testing.T) {
	doc := `
name: Short
duration: 0
looping: true
emitters:
  - name: puff
    spawn: {Rate: 20}
    init:
      - SetLifetime: {Random: [1, 2]}
      - SetSize: {Constant: 0.5}
      - SetColor: {Constant: [1, 0, 0]}
    update:
      - RotateByVelocity
    render: Ribbon
    sim_space: World
    alpha_mode: Additive
`
	e, err := UnmarshalEffect([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}
	em := e.Emitters[0]
	if !em.Enabled || em.Capacity != DefaultCapacity {
		t.Errorf("defaults: enabled %v capacity %d", em.Enabled, em.Capacity)
	}
	if em.Spawn != (Rate{PerSecond: 20}) {
		t.Errorf("Spawn = %+v", em.Spawn)
	}
	if got := em.Init[0]; got != (SetLifetime{Random(1, 2)}) {
		t.Errorf("Init[0] = %+v", got)
	}
	if got := em.Init[1]; got != (SetSize{Constant(0.5)}) {
		t.Errorf("Init[1] = %+v", got)
	}
	if got := em.Init[2]; got != (SetColor{ConstantColor{Color{1, 0, 0, 1}}}) {
		t.Errorf("Init[2] = %+v, want alpha defaulted to 1", got)
	}
	if em.Update[0] != (RotateByVelocity{}) {
		t.Errorf("Update[0] = %+v", em.Update[0])
	}
	if !reflect.DeepEqual(em.Render, DefaultRibbon()) {
		t.Errorf("Render = %+v, want DefaultRibbon", em.Render)
	}
	if em.SimSpace != SimWorld || em.AlphaMode != AlphaAdditive {
		t.Errorf("SimSpace/AlphaMode = %v/%v", em.SimSpace, em.AlphaMode)
	}
}

func TestDecodeErrors(t *testing.T) {
	base := func(spawn, init, update, render string) string {
		return "name: x\nemitters:\n  - name: e\n    spawn: " + spawn +
			"\n    init: " + init + "\n    update: " + update + "\n    render: " + render + "\n"
	}
	tests := []struct {
		name    string
		doc     string
		unknown bool
	}{
		{"unknown spawn", base("{Sputter: 3}", "[]", "[]", "Billboard"), true},
		{"unknown init", base("{Rate: 1}", "[{SetMood: 1}]", "[]", "Billboard"), true},
		{"unknown shape", base("{Rate: 1}", "[{SetPosition: {Torus: {}}}]", "[]", "Billboard"), true},
		{"unknown velocity", base("{Rate: 1}", "[{SetVelocity: {Warp: {}}}]", "[]", "Billboard"), true},
		{"unknown update", base("{Rate: 1}", "[]", "[Teleport]", "Billboard"), true},
		{"unknown kill shape", base("{Rate: 1}", "[]", "[{KillZone: {shape: {Cone: {}}}}]", "Billboard"), true},
		{"unknown render", base("{Rate: 1}", "[]", "[]", "Hologram"), true},
		{"unknown enum", base("{Rate: 1}", "[{SetOrientation: Sideways}]", "[]", "Billboard"), true},
		{"unknown mesh", base("{Rate: 1}", "[]", "[]", "{Mesh: {shape: Teapot}}"), true},
		{"missing payload", base("Burst", "[]", "[]", "Billboard"), false},
		{"two keys", base("{Rate: 1, Once: {count: 1}}", "[]", "[]", "Billboard"), false},
		{"bad color", base("{Rate: 1}", "[{SetColor: {Constant: [1, 0]}}]", "[]", "Billboard"), false},
		{"bad range", base("{Rate: 1}", "[{SetSize: [1, 2, 3]}]", "[]", "Billboard"), false},
		{"no emitters", "name: x\nemitters: []\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalEffect([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.Is(err, ErrUnknownVariant); got != tt.unknown {
				t.Errorf("errors.Is(ErrUnknownVariant) = %v, want %v (err %v)", got, tt.unknown, err)
			}
		})
	}
}

func TestEncodeUnknownVariant(t *testing.T) {
	em := DefaultEmitter()
	em.Update = []UpdateModifier{unknownModifier{}}
	e := NewEffect("bad", em)
	if _, err := MarshalEffect(&e); !errors.Is(err, ErrUnknownVariant) {
		t.Errorf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestEncodedForm(t *testing.T) {
	em := DefaultEmitter()
	em.Name = "form"
	e := NewEffect("Form", em)
	data, err := MarshalEffect(&e)
	if err != nil {
		t.Fatal(err)
	}
	s := string(data)
	for _, want := range []string{
		"Rate: 50",
		"SetLifetime: 5",
		"Gravity: [0, -9.8, 0]",
		"sim_space: Local",
		"alpha_mode: Blend",
		"orient: FaceCamera",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded effect missing %q:\n%s", want, s)
		}
	}
}
