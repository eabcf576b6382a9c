package level

import (
	"github.com/bloodmagesoftware/motoed/geom"
)

type (
	// Level is the in-memory form of one playable level.
	// It is replaced wholesale on import, mutated through the editor store,
	// and read wholesale on export.
	Level struct {
		Name string `yaml:"name" json:"name"`
		// Polygons are terrain rings (ground or sky depending on nesting) and
		// decorative grass strips.
		Polygons []Polygon `yaml:"polygons" json:"polygons"`
		Apples   []Apple   `yaml:"apples" json:"apples"`
		Killers  []Killer  `yaml:"killers" json:"killers"`
		Flowers  []Flower  `yaml:"flowers" json:"flowers"`
		// Start is where the rider spawns. There is always exactly one.
		Start    Position  `yaml:"start" json:"start"`
		Pictures []Picture `yaml:"pictures" json:"pictures"`

		// File metadata carried through import/export unchanged.
		LinkID uint32 `yaml:"link_id" json:"link_id"`
		LGR    string `yaml:"lgr" json:"lgr"`
		Ground string `yaml:"ground" json:"ground"`
		Sky    string `yaml:"sky" json:"sky"`
		// TopTen is the encrypted best-times block, kept verbatim.
		TopTen []byte `yaml:"top_ten,omitempty" json:"-"`

		// Seq is the last id handed out by NextID.
		Seq uint64 `yaml:"seq" json:"-"`
	}

	// Position is a world-space coordinate in level units.
	Position = geom.Vec

	// PolygonID is a stable polygon identity that survives reordering.
	PolygonID uint64

	// ObjectID is a stable identity of an apple, killer, flower or picture.
	ObjectID uint64

	Polygon struct {
		ID PolygonID `yaml:"id" json:"id"`
		// Vertices form an open ring; the closing edge is implicit.
		Vertices []Position `yaml:"vertices" json:"vertices"`
		// Grass marks a decorative strip that takes no part in ground/sky
		// classification.
		Grass bool `yaml:"grass" json:"grass"`
	}

	Apple struct {
		ID       ObjectID `yaml:"id" json:"id"`
		Position Position `yaml:"position" json:"position"`
		// Animation is 1 or 2.
		Animation int     `yaml:"animation" json:"animation"`
		Gravity   Gravity `yaml:"gravity" json:"gravity"`
	}

	Killer struct {
		ID       ObjectID `yaml:"id" json:"id"`
		Position Position `yaml:"position" json:"position"`
	}

	Flower struct {
		ID       ObjectID `yaml:"id" json:"id"`
		Position Position `yaml:"position" json:"position"`
	}

	// Picture is a decorative sprite with no physics.
	Picture struct {
		ID       ObjectID `yaml:"id" json:"id"`
		Name     string   `yaml:"name" json:"name"`
		Position Position `yaml:"position" json:"position"`
		Texture  string   `yaml:"texture,omitempty" json:"texture,omitempty"`
		Mask     string   `yaml:"mask,omitempty" json:"mask,omitempty"`
		// Distance orders pictures against each other; lower is nearer.
		Distance int      `yaml:"distance" json:"distance"`
		Clipping Clipping `yaml:"clipping" json:"clipping"`
	}
)

// Gravity is the gravity change an apple applies when eaten.
type Gravity int

const (
	GravityNone Gravity = iota
	GravityUp
	GravityDown
	GravityLeft
	GravityRight
)

var gravityNames = [...]string{"none", "up", "down", "left", "right"}

func (g Gravity) String() string {
	if g < 0 || int(g) >= len(gravityNames) {
		return "unknown"
	}
	return gravityNames[g]
}

// ParseGravity accepts the names produced by Gravity.String.
func ParseGravity(s string) (Gravity, bool) {
	for i, name := range gravityNames {
		if name == s {
			return Gravity(i), true
		}
	}
	return GravityNone, false
}

// Clipping decides which terrain a picture is drawn over.
type Clipping int

const (
	ClipUnclipped Clipping = iota
	ClipGround
	ClipSky
)

const (
	// DefaultPictureDistance is used for pictures placed in the editor.
	DefaultPictureDistance = 600
	// ObjectRadius is the physical radius of apples, killers, flowers and the start.
	ObjectRadius = 0.4
	// DefaultWidth and DefaultHeight size the built-in level.
	DefaultWidth  = 50.0
	DefaultHeight = 30.0
)

// ObjectKind tells object collections apart.
type ObjectKind int

const (
	KindStart ObjectKind = iota
	KindApple
	KindKiller
	KindFlower
	KindPicture
)

var kindNames = [...]string{"start", "apple", "killer", "flower", "picture"}

func (k ObjectKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ObjectRef names a single object. The start object has ID 0.
type ObjectRef struct {
	Kind ObjectKind `yaml:"kind" json:"kind"`
	ID   ObjectID   `yaml:"id" json:"id"`
}

// StartRef refers to the start object.
var StartRef = ObjectRef{Kind: KindStart}

// VertexRef names one vertex of one polygon.
type VertexRef struct {
	Polygon PolygonID `yaml:"polygon" json:"polygon"`
	Index   int       `yaml:"index" json:"index"`
}
