// Package geom implements the spatiotemporal bounding box used to index
// and query metadata: four axes (x, y, z, t), each with an independent
// min/max bound.
package geom

import (
	"fmt"

	"github.com/Neumenon/elucidator/errs"
)

// Point is a location in the 4-D space the store indexes over.
type Point struct {
	X, Y, Z, T float64
}

// BoundingBox is an axis-aligned box over x, y, z, t. It is always
// constructed with Min <= Max on every axis; NewBoundingBox is the only
// constructor and enforces this.
type BoundingBox struct {
	Min Point
	Max Point
}

// NewBoundingBox validates min <= max on every axis and returns
// InvalidBoundingBox otherwise. An inverted box is rejected outright
// rather than silently normalized — a caller that swapped min/max meant
// something specific, and auto-correcting it would silently change query
// results.
func NewBoundingBox(min, max Point) (BoundingBox, error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z || min.T > max.T {
		return BoundingBox{}, errs.New(errs.InvalidBoundingBox,
			"bounding box min %s exceeds max %s on at least one axis", min, max)
	}
	return BoundingBox{Min: min, Max: max}, nil
}

// Intersects reports whether bb and other share at least one point on
// every axis. Used by index backends to enumerate candidates before the
// exact containment filter is applied.
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	return bb.Min.X <= other.Max.X && bb.Max.X >= other.Min.X &&
		bb.Min.Y <= other.Max.Y && bb.Max.Y >= other.Min.Y &&
		bb.Min.Z <= other.Max.Z && bb.Max.Z >= other.Min.Z &&
		bb.Min.T <= other.Max.T && bb.Max.T >= other.Min.T
}

// Expanded returns bb grown outward by eps on every axis and side. Used to
// build an over-inclusive candidate box for an index backend (the R-tree)
// whose native query only supports intersection, not the epsilon-tolerant
// containment this store actually needs; ContainedIn is then applied as
// the exact filter.
func (bb BoundingBox) Expanded(eps float64) BoundingBox {
	return BoundingBox{
		Min: Point{X: bb.Min.X - eps, Y: bb.Min.Y - eps, Z: bb.Min.Z - eps, T: bb.Min.T - eps},
		Max: Point{X: bb.Max.X + eps, Y: bb.Max.Y + eps, Z: bb.Max.Z + eps, T: bb.Max.T + eps},
	}
}

// ContainedIn reports whether bb is contained within query, tolerating up
// to eps of slack on every bound: query.Min - eps <= bb.Min and
// bb.Max <= query.Max + eps, independently on every axis. This is the
// store's containment predicate — it compares box-in-box, not
// point-in-box: a stored entry's bbox must fit within the (epsilon-grown)
// query box. eps is assumed non-negative; callers validate that
// separately (InvalidEpsilon) before reaching here.
func (bb BoundingBox) ContainedIn(query BoundingBox, eps float64) bool {
	return query.Min.X-eps <= bb.Min.X && bb.Max.X <= query.Max.X+eps &&
		query.Min.Y-eps <= bb.Min.Y && bb.Max.Y <= query.Max.Y+eps &&
		query.Min.Z-eps <= bb.Min.Z && bb.Max.Z <= query.Max.Z+eps &&
		query.Min.T-eps <= bb.Min.T && bb.Max.T <= query.Max.T+eps
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", p.X, p.Y, p.Z, p.T)
}

func (bb BoundingBox) String() string {
	return fmt.Sprintf("[%s .. %s]", bb.Min, bb.Max)
}
