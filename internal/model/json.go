package model

// refTracker records the entities currently being encoded. An entity that is
// reached again while it is still on the stack is a cycle member and is
// dropped from the output instead of being encoded again.
type refTracker map[any]struct{}

func (r refTracker) enter(ref any) bool {
	if _, ok := r[ref]; ok {
		return false
	}
	r[ref] = struct{}{}
	return true
}

func (r refTracker) leave(ref any) {
	delete(r, ref)
}

func usersToJSON(users []*User, seen refTracker) []*userJSON {
	out := make([]*userJSON, 0, len(users))
	for _, u := range users {
		if u == nil {
			out = append(out, nil)
			continue
		}
		if w := u.wire(seen); w != nil {
			out = append(out, w)
		}
	}
	return out
}

func shiftsToJSON(shifts []*Shift, seen refTracker) []*shiftJSON {
	if len(shifts) == 0 {
		return nil
	}
	out := make([]*shiftJSON, 0, len(shifts))
	for _, s := range shifts {
		if s == nil {
			out = append(out, nil)
			continue
		}
		if w := s.wire(seen); w != nil {
			out = append(out, w)
		}
	}
	return out
}

// usersFromJSON and shiftsFromJSON map an empty list to nil, the canonical
// empty relation.
func usersFromJSON(in []*userJSON) []*User {
	if len(in) == 0 {
		return nil
	}
	out := make([]*User, 0, len(in))
	for _, w := range in {
		out = append(out, w.user())
	}
	return out
}

func shiftsFromJSON(in []*shiftJSON) []*Shift {
	if len(in) == 0 {
		return nil
	}
	out := make([]*Shift, 0, len(in))
	for _, w := range in {
		out = append(out, w.shift())
	}
	return out
}
