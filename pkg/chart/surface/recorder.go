package surface

import (
	"fmt"

	"github.com/matzehuels/stackbar/pkg/chart/geom"
	"github.com/matzehuels/stackbar/pkg/chart/paint"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpSetPaint OpKind = iota
	OpSetStroke
	OpFill
	OpDraw
	OpDrawText
)

func (k OpKind) String() string {
	switch k {
	case OpSetPaint:
		return "set-paint"
	case OpSetStroke:
		return "set-stroke"
	case OpFill:
		return "fill"
	case OpDraw:
		return "draw"
	case OpDrawText:
		return "text"
	}
	return fmt.Sprintf("OpKind(%d)", int(k))
}

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind   OpKind
	Paint  paint.Paint
	Stroke paint.Stroke
	Rect   geom.Rect
	Text   string
	At     geom.Point
	AX, AY float64
}

// Recorder is a Surface that records calls instead of drawing.
type Recorder struct {
	Ops []Op
}

func (r *Recorder) SetPaint(p paint.Paint) { r.Ops = append(r.Ops, Op{Kind: OpSetPaint, Paint: p}) }

func (r *Recorder) SetStroke(s paint.Stroke) {
	r.Ops = append(r.Ops, Op{Kind: OpSetStroke, Stroke: s})
}

func (r *Recorder) Fill(rect geom.Rect) { r.Ops = append(r.Ops, Op{Kind: OpFill, Rect: rect}) }

func (r *Recorder) Draw(rect geom.Rect) { r.Ops = append(r.Ops, Op{Kind: OpDraw, Rect: rect}) }

func (r *Recorder) DrawText(text string, at geom.Point, ax, ay float64) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawText, Text: text, At: at, AX: ax, AY: ay})
}

// Reset discards every recorded call.
func (r *Recorder) Reset() { r.Ops = r.Ops[:0] }

// Filled returns the rectangles passed to Fill, in call order.
func (r *Recorder) Filled() []geom.Rect { return r.rects(OpFill) }

// Outlined returns the rectangles passed to Draw, in call order.
func (r *Recorder) Outlined() []geom.Rect { return r.rects(OpDraw) }

// Count returns how many calls of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) rects(k OpKind) []geom.Rect {
	var out []geom.Rect
	for _, op := range r.Ops {
		if op.Kind == k {
			out = append(out, op.Rect)
		}
	}
	return out
}
