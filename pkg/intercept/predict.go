package intercept

// Trajectory returns where a turret shot aimed at destination is at the start
// and end of tick n (n >= 1).
type Trajectory func(n int, destination Vec2) (from, to Vec2)

// Linear is a shot flying straight from origin at speed cells per tick.
func Linear(origin Vec2, speed float64) Trajectory {
	return func(n int, destination Vec2) (Vec2, Vec2) {
		dir := destination.Sub(origin)
		l := dir.Len()
		if l == 0 || speed <= 0 {
			return origin, origin
		}
		step := dir.Scale(speed / l)
		return origin.Add(step.Scale(float64(n - 1))), origin.Add(step.Scale(float64(n)))
	}
}

// Turret describes the intercepting weapon.
type Turret struct {
	Origin             Vec2
	Shot               Trajectory
	Instant            bool // Hitscan weapons hit where the target is when they fire
	WarmupTicks        int  // Ticks before the shot leaves the barrel
	MaxPredictionTicks int
}

// Solution is where and when the turret's shot meets the target.
type Solution struct {
	Point Vec2
	Ticks int
}

// Predict finds the first tick at which the turret's shot crosses the target's
// path. current is the target's position now and next its positions for the
// following ticks. Ticks spent warming up are skipped.
func (t Turret) Predict(current Vec2, next []Vec2) (Solution, bool) {
	skip := max(t.WarmupTicks, 0)
	if skip >= len(next) {
		return Solution{}, false
	}
	upcoming := next[skip:]

	if t.Instant {
		return Solution{Point: upcoming[0]}, true
	}
	if t.Shot == nil {
		return Solution{}, false
	}

	prev := current
	for i, pos := range upcoming {
		n := i + 1
		if n > t.MaxPredictionTicks {
			break
		}
		from, to := t.Shot(n, pos)
		if from.Equal(to) {
			// The shot is not moving, it will never get there
			return Solution{}, false
		}
		if point, ok := TryFindIntersectionPoint(from, to, prev, pos); ok {
			return Solution{Point: point, Ticks: n}, true
		}
		prev = pos
	}
	return Solution{}, false
}
