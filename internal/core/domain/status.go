package domain

// transitions maps a status to the statuses reachable from it.
// Re-applying the current status is always accepted.
type transitions[S ~string] map[S][]S

func (t transitions[S]) allows(from, to S) bool {
	if from == to {
		return true
	}
	for _, allowed := range t[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// sources lists every status from which to may be entered, to itself included.
func (t transitions[S]) sources(to S) []S {
	out := []S{to}
	for from, next := range t {
		if from == to {
			continue
		}
		for _, n := range next {
			if n == to {
				out = append(out, from)
				break
			}
		}
	}
	return out
}

func (t transitions[S]) known(s S) bool {
	if _, ok := t[s]; ok {
		return true
	}
	for _, next := range t {
		for _, n := range next {
			if n == s {
				return true
			}
		}
	}
	return false
}
