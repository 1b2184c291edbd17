package box

import "github.com/Faultbox/bouncebox/pkg/math"

// Face identifies one of the six inner walls of the box.
type Face int

const (
	FaceFront Face = iota // +Z
	FaceBack              // -Z
	FaceLeft              // -X
	FaceRight             // +X
	FaceTop               // +Y
	FaceBottom            // -Y
)

// NumFaces is the number of faces on the box.
const NumFaces = 6

// String returns the face name.
func (f Face) String() string {
	switch f {
	case FaceFront:
		return "front"
	case FaceBack:
		return "back"
	case FaceLeft:
		return "left"
	case FaceRight:
		return "right"
	case FaceTop:
		return "top"
	case FaceBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// facePlacement returns the matrix that moves a face grid (lying in the XY plane
// with its corner at the origin) onto its wall of a box centered at the origin.
//
// Grid columns and rows map to world axes so that RecordHit's cell lookup lands on
// the drawn vertices: front/back use (x, y), left/right use (z, y), top/bottom use (x, z).
func facePlacement(f Face, side float32) math.Mat4 {
	h := side / 2
	quarter := math.Radians(90)

	switch f {
	case FaceFront:
		return math.Translate(-h, -h, h)
	case FaceBack:
		return math.Translate(-h, -h, -h)
	case FaceLeft:
		return math.RotateY(-quarter).Mul(math.Translate(-h, -h, h))
	case FaceRight:
		return math.RotateY(-quarter).Mul(math.Translate(-h, -h, -h))
	case FaceTop:
		return math.RotateX(quarter).Mul(math.Translate(-h, -h, -h))
	case FaceBottom:
		return math.RotateX(quarter).Mul(math.Translate(-h, -h, h))
	default:
		return math.Identity()
	}
}
