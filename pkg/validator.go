package pkg

// Validator runs the two-phase semester-ordered propagation over a
// built Graph. A Validator holds no mutable state of its own — each
// call to Validate allocates fresh scratch state, so one Validator (or
// just the Graph it wraps) can be shared across concurrent requests.
type Validator struct {
	g *Graph
}

// NewValidator wraps a built, read-only Graph.
func NewValidator(g *Graph) *Validator {
	return &Validator{g: g}
}

// tag records how a requirement node was reached: Prereq-tagged
// requirements never fire course children themselves, they only lower
// the children's indegree; Coreq-tagged requirements may also fire
// course children in the current semester; and Neither is used for
// course nodes themselves.
type tag int

const (
	tagNeither tag = iota
	tagPrereq
	tagCoreq
)

type queueItem struct {
	node int
	t    tag
}

// state is the per-call scratch the validator mutates while walking a
// single Validate invocation. It is discarded when Validate returns.
type state struct {
	indegree  []int
	fulfilled []bool
	queue     []queueItem
}

func newState(g *Graph) *state {
	indegree := make([]int, g.NumNodes())
	for i := range indegree {
		indegree[i] = g.InitIndegree(i)
	}
	return &state{
		indegree:  indegree,
		fulfilled: make([]bool, g.NumNodes()),
	}
}

func (s *state) decrement(node int) {
	if s.indegree[node] > 0 {
		s.indegree[node]--
	}
}

func (s *state) push(node int, t tag) {
	s.queue = append(s.queue, queueItem{node: node, t: t})
}

func (s *state) pop() (queueItem, bool) {
	if len(s.queue) == 0 {
		return queueItem{}, false
	}
	item := s.queue[0]
	s.queue = s.queue[1:]
	return item, true
}

func setOf(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// drain runs the propagation step until the queue empties, against the
// course set that defines "current semester" for corequisite firing.
func (v *Validator) drain(s *state, currentSet map[string]bool) {
	for {
		item, ok := s.pop()
		if !ok {
			return
		}
		if v.g.NodeKind(item.node) == NodeCourse {
			v.fireCourse(s, item.node)
			continue
		}
		v.fireRequirement(s, item.node, item.t, currentSet)
	}
}

// fireCourse handles a dequeued course node: every outgoing edge goes
// to a requirement node (spec.md §3 edge-type invariant), so it always
// decrements a requirement's indegree and, if that newly satisfies the
// requirement, enqueues it tagged by the edge that led to it.
func (v *Validator) fireCourse(s *state, node int) {
	for _, e := range v.g.OutEdges(node) {
		r := e.To
		s.decrement(r)
		if s.fulfilled[r] {
			continue
		}
		if !v.g.RequirementSatisfied(r, s.indegree[r]) {
			continue
		}
		s.fulfilled[r] = true
		s.indegree[r] = 0
		if e.Type == EdgeCorequisite {
			s.push(r, tagCoreq)
		} else {
			s.push(r, tagPrereq)
		}
	}
}

// fireRequirement handles a dequeued requirement node. A course child
// only fires within this propagation when reached via a Coreq tag —
// Prereq-tagged requirements only lower a course child's indegree.
// Such a course is opened by Validate instead: by the scan of the
// semester it is scheduled in, or, if it is scheduled in the current
// semester and its indegree has reached zero, by the post-drain check.
// A requirement child always fires as soon as its own gate is
// satisfied, carrying the same tag forward.
func (v *Validator) fireRequirement(s *state, node int, t tag, currentSet map[string]bool) {
	for _, e := range v.g.OutEdges(node) {
		n := e.To
		if s.fulfilled[n] {
			continue
		}
		s.decrement(n)

		if v.g.NodeKind(n) == NodeCourse {
			if t == tagCoreq && v.g.CourseGroupSatisfied(n, currentSet) && s.indegree[n] == 0 {
				s.fulfilled[n] = true
				s.indegree[n] = 0
				s.push(n, tagNeither)
			}
			continue
		}

		if v.g.RequirementSatisfied(n, s.indegree[n]) {
			s.fulfilled[n] = true
			s.indegree[n] = 0
			s.push(n, t)
		}
	}
}

// Validate checks whether the given semester sequence, given the listed
// bypasses, satisfies every scheduled course's prerequisite,
// corequisite, and co-or-prerequisite requirements. Phase A opens
// reachability from bypasses; phase B walks semesters in order,
// verifying at each step that every scheduled course is reachable.
func (v *Validator) Validate(semesters [][]string, bypasses []string) error {
	s := newState(v.g)

	bypassSet := setOf(bypasses)
	for _, name := range bypasses {
		node, ok := v.g.FindCourseByName(name)
		if !ok {
			return errInvalidCourse(name)
		}
		s.fulfilled[node] = true
		s.indegree[node] = 0
		s.push(node, tagNeither)
	}
	v.drain(s, bypassSet)

	for _, semester := range semesters {
		semesterSet := setOf(semester)

		for _, name := range semester {
			node, ok := v.g.FindCourseByName(name)
			if !ok {
				return errInvalidCourse(name)
			}
			if !s.fulfilled[node] && v.g.CourseGroupSatisfied(node, semesterSet) && s.indegree[node] == 0 {
				s.fulfilled[node] = true
				s.push(node, tagNeither)
			}
		}

		for {
			v.drain(s, semesterSet)

			progressed := false
			for _, name := range semester {
				node, _ := v.g.FindCourseByName(name)
				if !v.g.CourseGroupSatisfied(node, semesterSet) {
					return errGroupUnsatisfied(name)
				}
				if s.indegree[node] > 0 {
					return errUnfulfilledRequirement(name, s.indegree[node])
				}
				if !s.fulfilled[node] {
					s.fulfilled[node] = true
					s.push(node, tagNeither)
					progressed = true
				}
			}
			if !progressed {
				break
			}
		}
	}

	return nil
}
