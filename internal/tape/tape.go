// Package tape implements a small recorded reverse-mode automatic
// differentiation graph. It exists because the reaction-network engine
// needs to record dY/dt and the specific energy rate once as a function of
// (Y, T9, rho), then replay that recording at arbitrary input values to get
// either the outputs (zero-order) or the full Jacobian (first-order,
// reverse sweep) without re-deriving anything symbolically.
//
// The tape records every arithmetic operation performed while tracing a
// Go function once with placeholder input values; replaying it at new
// input values never changes the node list, only the numbers flowing
// through it - including across the branch-free CondGE select node, which
// always evaluates (and keeps as parents in the graph) both of its
// candidate branches.
package tape

import (
	"fmt"
	"math"

	"github.com/tboudreaux/GridFire-sub000/internal/num"
)

type opKind uint8

const (
	opInput opKind = iota
	opConst
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opRecip
	opPow
	opExp
	opLog
	opSelect
)

type node struct {
	kind opKind
	a, b int     // operand node indices (meaning depends on kind)
	cmp  int     // for opSelect: index of the compared scalar
	p    float64 // pow exponent / const value / select threshold
}

// Tape is a recorded computation graph: a function f: R^n -> R^m traced
// once and replayable at arbitrary inputs.
type Tape struct {
	nodes   []node
	vals    []float64
	nInputs int
	outputs []int
}

// NewTape allocates a tape with nInputs independent input nodes and returns
// it together with handles to those inputs, ready to be fed into the
// function being recorded.
func NewTape(nInputs int) (*Tape, []*Var) {
	t := &Tape{nInputs: nInputs}
	vars := make([]*Var, nInputs)
	for i := 0; i < nInputs; i++ {
		t.nodes = append(t.nodes, node{kind: opInput})
		vars[i] = &Var{tape: t, idx: i}
	}
	return t, vars
}

// SetOutputs records which traced Vars are the dependent outputs of the
// tape, in order. Must be called exactly once after tracing.
func (t *Tape) SetOutputs(outs ...*Var) {
	t.outputs = make([]int, len(outs))
	for i, v := range outs {
		if v.tape != t {
			panic("tape: output var does not belong to this tape")
		}
		t.outputs[i] = v.idx
	}
}

// NumOutputs reports how many dependent outputs the tape was recorded with.
func (t *Tape) NumOutputs() int { return len(t.outputs) }

// NumInputs reports the independent-variable count the tape was recorded with.
func (t *Tape) NumInputs() int { return t.nInputs }

func (t *Tape) push(n node) *Var {
	t.nodes = append(t.nodes, n)
	return &Var{tape: t, idx: len(t.nodes) - 1}
}

// Const records a literal constant node bound to this tape.
func (t *Tape) Const(v float64) *Var {
	return t.push(node{kind: opConst, p: v})
}

// Forward replays the tape at the given input values (zero-order: values
// only, no derivatives) and returns the recorded outputs in order.
func (t *Tape) Forward(inputs []float64) []float64 {
	if len(inputs) != t.nInputs {
		panic(fmt.Sprintf("tape: expected %d inputs, got %d", t.nInputs, len(inputs)))
	}
	if len(t.vals) != len(t.nodes) {
		t.vals = make([]float64, len(t.nodes))
	}
	for i, n := range t.nodes {
		switch n.kind {
		case opInput:
			t.vals[i] = inputs[i]
		case opConst:
			t.vals[i] = n.p
		case opAdd:
			t.vals[i] = t.vals[n.a] + t.vals[n.b]
		case opSub:
			t.vals[i] = t.vals[n.a] - t.vals[n.b]
		case opMul:
			t.vals[i] = t.vals[n.a] * t.vals[n.b]
		case opDiv:
			t.vals[i] = t.vals[n.a] / t.vals[n.b]
		case opNeg:
			t.vals[i] = -t.vals[n.a]
		case opRecip:
			t.vals[i] = 1.0 / t.vals[n.a]
		case opPow:
			t.vals[i] = math.Pow(t.vals[n.a], n.p)
		case opExp:
			t.vals[i] = math.Exp(t.vals[n.a])
		case opLog:
			t.vals[i] = math.Log(t.vals[n.a])
		case opSelect:
			if t.vals[n.cmp] >= n.p {
				t.vals[i] = t.vals[n.a]
			} else {
				t.vals[i] = t.vals[n.b]
			}
		}
	}
	outs := make([]float64, len(t.outputs))
	for k, idx := range t.outputs {
		outs[k] = t.vals[idx]
	}
	return outs
}

// reverse runs one backward sweep seeded at output node outIdx, returning
// the gradient of that output with respect to every input. Must be called
// after Forward has populated t.vals for the same input point.
func (t *Tape) reverse(outIdx int) []float64 {
	adj := make([]float64, len(t.nodes))
	adj[outIdx] = 1.0
	for i := len(t.nodes) - 1; i >= 0; i-- {
		a := adj[i]
		if a == 0 {
			continue
		}
		n := t.nodes[i]
		switch n.kind {
		case opAdd:
			adj[n.a] += a
			adj[n.b] += a
		case opSub:
			adj[n.a] += a
			adj[n.b] -= a
		case opMul:
			adj[n.a] += a * t.vals[n.b]
			adj[n.b] += a * t.vals[n.a]
		case opDiv:
			adj[n.a] += a / t.vals[n.b]
			adj[n.b] -= a * t.vals[n.a] / (t.vals[n.b] * t.vals[n.b])
		case opNeg:
			adj[n.a] -= a
		case opRecip:
			adj[n.a] -= a / (t.vals[n.a] * t.vals[n.a])
		case opPow:
			adj[n.a] += a * n.p * math.Pow(t.vals[n.a], n.p-1)
		case opExp:
			adj[n.a] += a * t.vals[i]
		case opLog:
			adj[n.a] += a / t.vals[n.a]
		case opSelect:
			if t.vals[n.cmp] >= n.p {
				adj[n.a] += a
			} else {
				adj[n.b] += a
			}
		}
	}
	grad := make([]float64, t.nInputs)
	copy(grad, adj[:t.nInputs])
	return grad
}

// Jacobian replays the tape at inputs and returns both the outputs and the
// full (NumOutputs x NumInputs) Jacobian, one reverse sweep per output row.
func (t *Tape) Jacobian(inputs []float64) (outs []float64, jac [][]float64) {
	outs = t.Forward(inputs)
	jac = make([][]float64, len(t.outputs))
	for k, idx := range t.outputs {
		jac[k] = t.reverse(idx)
	}
	return outs, jac
}

// Var is a handle to one node on a Tape. It implements num.Scalar so that
// ordinary formula code written against num.Scalar can be traced simply by
// calling it once with Vars in place of num.F64 values.
type Var struct {
	tape *Tape
	idx  int
}

var _ num.Scalar = (*Var)(nil)

func (v *Var) Add(o num.Scalar) num.Scalar { return v.tape.push(node{kind: opAdd, a: v.idx, b: o.(*Var).idx}) }
func (v *Var) Sub(o num.Scalar) num.Scalar { return v.tape.push(node{kind: opSub, a: v.idx, b: o.(*Var).idx}) }
func (v *Var) Mul(o num.Scalar) num.Scalar { return v.tape.push(node{kind: opMul, a: v.idx, b: o.(*Var).idx}) }
func (v *Var) Div(o num.Scalar) num.Scalar { return v.tape.push(node{kind: opDiv, a: v.idx, b: o.(*Var).idx}) }
func (v *Var) Neg() num.Scalar             { return v.tape.push(node{kind: opNeg, a: v.idx}) }
func (v *Var) Recip() num.Scalar           { return v.tape.push(node{kind: opRecip, a: v.idx}) }
func (v *Var) Pow(p float64) num.Scalar    { return v.tape.push(node{kind: opPow, a: v.idx, p: p}) }
func (v *Var) Exp() num.Scalar             { return v.tape.push(node{kind: opExp, a: v.idx}) }
func (v *Var) Log() num.Scalar             { return v.tape.push(node{kind: opLog, a: v.idx}) }

func (v *Var) Value() float64 {
	if v.idx < len(v.tape.vals) {
		return v.tape.vals[v.idx]
	}
	return 0
}

func (v *Var) Const(x float64) num.Scalar { return v.tape.Const(x) }

func (v *Var) CondGE(threshold float64, ifTrue, ifFalse num.Scalar) num.Scalar {
	tv, fv := ifTrue.(*Var), ifFalse.(*Var)
	return v.tape.push(node{kind: opSelect, a: tv.idx, b: fv.idx, cmp: v.idx, p: threshold})
}

// Idx exposes the node index, used by callers that need to bind a Var as an
// output without routing through num.Scalar.
func (v *Var) Idx() int { return v.idx }
