package domain

// Faces is the number of sides on the die.
const Faces = 6

// DeathFace is the roll that ends the turn with zero points.
const DeathFace = 1

// StateSpace describes the Markov chain states for a "hold at Target" turn.
//
// States 0..Target-1 are transient (still rolling), Target..Target+5 are
// scored absorbing states whose value is their index, and Target+6 is the
// single unscored absorbing state reached by rolling a one.
type StateSpace struct {
	Target int
}

// Size is the number of states, Target+7.
func (s StateSpace) Size() int { return s.Target + Faces + 1 }

// Death is the index of the unscored absorbing state. It is always last.
func (s StateSpace) Death() int { return s.Target + Faces }

// IsTransient reports whether the strategy keeps rolling in state i.
func (s StateSpace) IsTransient(i int) bool { return i >= 0 && i < s.Target }

// IsScored reports whether i is an absorbing state that keeps its points.
func (s StateSpace) IsScored(i int) bool { return i >= s.Target && i < s.Death() }

// Values returns the value vector: V[i] = i, except the death state which is 0.
func (s StateSpace) Values() []float64 {
	v := make([]float64, s.Size())
	for i, death := 0, s.Death(); i < death; i++ {
		v[i] = float64(i)
	}
	return v
}

// Outcome is the absorption distribution from state 0 and its expectation.
type Outcome struct {
	Target       int
	Steps        int
	Distribution []float64
	Death        float64
	Expected     float64
}

// Point is one sample of the expected-score curve.
type Point struct {
	Target   int     `json:"target"`
	Expected float64 `json:"expected_score"`
}

// Curve is an ordered series of samples, one per consecutive target.
type Curve struct {
	Points []Point
}

// Best returns the point with the highest expected score. The earliest
// point wins ties. ok is false for an empty curve.
func (c Curve) Best() (best Point, ok bool) {
	for i, p := range c.Points {
		if i == 0 || p.Expected > best.Expected {
			best = p
			ok = true
		}
	}
	return best, ok
}
