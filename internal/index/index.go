// Package index keeps many envelopes in an R-tree so that the ones touching a
// query box can be found without comparing against all of them.
//
// An Index is not safe for concurrent writes.
package index

import (
	"math"
	"slices"

	"github.com/dhconnelly/rtreego"
	"github.com/pkg/errors"

	"geoenvelope/internal/envelope"
)

const (
	minChildren = 25
	maxChildren = 50
)

type item struct {
	id   int
	env  envelope.Envelope
	rect rtreego.Rect
}

func (it *item) Bounds() rtreego.Rect { return it.rect }

// Index maps integer ids to envelopes.
type Index struct {
	tree *rtreego.Rtree
}

func New() *Index {
	return &Index{tree: rtreego.NewTree(2, minChildren, maxChildren)}
}

// Insert adds id with envelope e. Empty envelopes intersect nothing and are
// not stored.
func (ix *Index) Insert(id int, e envelope.Envelope) error {
	if e.IsEmpty() {
		return nil
	}
	r, err := rect(e)
	if err != nil {
		return errors.Wrapf(err, "index: insert %d", id)
	}
	ix.tree.Insert(&item{id: id, env: e, rect: r})
	return nil
}

func (ix *Index) Len() int { return ix.tree.Size() }

// Search returns, in ascending order, the ids whose envelopes intersect q.
// Bounds the tree cannot hold, such as infinities, fail with
// envelope.ErrInvalidArgument instead of reporting no hits.
func (ix *Index) Search(q envelope.Envelope) ([]int, error) {
	if q.IsEmpty() {
		return nil, nil
	}
	r, err := rect(q)
	if err != nil {
		return nil, errors.Wrap(err, "index: search")
	}
	if ix.tree.Size() == 0 {
		return nil, nil
	}
	var ids []int
	for _, s := range ix.tree.SearchIntersect(r) {
		it := s.(*item)
		// the tree pads every box, so candidates are refined exactly
		if it.env.IntersectsEnvelope(q) {
			ids = append(ids, it.id)
		}
	}
	slices.Sort(ids)
	return ids, nil
}

// Containing returns, in ascending order, the ids whose envelopes contain p.
func (ix *Index) Containing(p envelope.Point) ([]int, error) {
	if err := envelope.CheckPoint(p); err != nil {
		return nil, err
	}
	return ix.Search(envelope.Empty().ExpandPoint(p))
}

// rect converts e to a tree rectangle. rtreego rejects zero-length sides and
// treats touching rectangles as disjoint, so every side is padded slightly.
func rect(e envelope.Envelope) (rtreego.Rect, error) {
	minX, minY, maxX, maxY, _ := e.Bounds()
	for _, v := range []float64{minX, minY, maxX, maxY} {
		if math.IsInf(v, 0) {
			return rtreego.Rect{}, errors.Wrapf(envelope.ErrInvalidArgument, "unbounded envelope %s", e)
		}
	}
	scale := math.Max(math.Max(math.Abs(minX), math.Abs(maxX)), math.Max(math.Abs(minY), math.Abs(maxY)))
	pad := math.Max(1e-9, scale*1e-12)
	return rtreego.NewRect(
		rtreego.Point{minX - pad, minY - pad},
		[]float64{maxX - minX + 2*pad, maxY - minY + 2*pad},
	)
}
