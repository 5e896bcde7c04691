package pkg

import "fmt"

// NodeKind tags a graph node as either a Course or a Requirement. The
// graph is bipartite: course children of a requirement, and
// requirement children of a course, are always of the opposite kind —
// the builder guarantees this by construction.
type NodeKind int

const (
	NodeCourse NodeKind = iota
	NodeRequirement
)

// EdgeType tags the role an edge plays. Prerequisite and Corequisite
// edges run from a requirement node to a course node; Subrequirement
// edges run between requirement nodes (a leaf course feeding a parent
// requirement is also tagged Subrequirement).
type EdgeType int

const (
	EdgePrerequisite EdgeType = iota
	EdgeCorequisite
	EdgeSubrequirement
)

// Edge is one outgoing edge from a node: "when the source fires, it
// contributes one unit toward To's satisfaction."
type Edge struct {
	To   int
	Type EdgeType
}

// Graph is the immutable bipartite DAG produced by Build. Nodes live in
// a contiguous arena addressed by integer index; indegree/fulfilled
// scratch state used by the validator is a plain []int/[]bool sized to
// NumNodes(). Once built, a Graph is read-only and safe for concurrent
// use by arbitrarily many validate calls.
type Graph struct {
	kinds        []NodeKind
	courses      []Course         // meaningful where kinds[i] == NodeCourse
	requirements []requirementNode // meaningful where kinds[i] == NodeRequirement
	out          [][]Edge
	initIndegree []int

	nameToNode   map[string]int
	groupToNodes map[string][]int
	idToNode     map[CourseID]int
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int { return len(g.kinds) }

// FindCourseByName looks up a course node by its "PREFIX NUMBER" name.
func (g *Graph) FindCourseByName(name string) (int, bool) {
	i, ok := g.nameToNode[name]
	return i, ok
}

// NodeKind reports whether node i is a Course or a Requirement.
func (g *Graph) NodeKind(i int) NodeKind { return g.kinds[i] }

// OutEdges returns node i's outgoing edges.
func (g *Graph) OutEdges(i int) []Edge { return g.out[i] }

// InitIndegree returns node i's static indegree as computed at build
// time — the seed value a validator copies into its per-call scratch
// state.
func (g *Graph) InitIndegree(i int) int { return g.initIndegree[i] }

// CourseByNode returns the Course backing node i. Only valid when
// NodeKind(i) == NodeCourse.
func (g *Graph) CourseByNode(i int) Course { return g.courses[i] }

// RequirementSatisfied delegates to the requirement node's k-of-n gate
// using its static initial indegree and the caller's current remaining
// indegree.
func (g *Graph) RequirementSatisfied(node, remainingIndegree int) bool {
	return g.requirements[node].isSatisfied(g.initIndegree[node], remainingIndegree)
}

// CourseGroupSatisfied reports whether node's course group has a
// legitimate satisfier in courseSet: either the group has exactly one
// member (the course itself), or some *other* member of the group
// appears by name in courseSet.
func (g *Graph) CourseGroupSatisfied(node int, courseSet map[string]bool) bool {
	key := g.courses[node].GroupKey()
	members := g.groupToNodes[key]
	if len(members) == 1 {
		return true
	}
	for _, member := range members {
		if member == node {
			continue
		}
		if courseSet[g.courses[member].Name()] {
			return true
		}
	}
	return false
}

// graphBuilder accumulates nodes and edges into the arena before the
// finished Graph is handed out. It is discarded once Build returns.
type graphBuilder struct {
	kinds        []NodeKind
	courses      []Course
	requirements []requirementNode
	out          [][]Edge
	indegree     []int

	nameToNode   map[string]int
	groupToNodes map[string][]int
	idToNode     map[CourseID]int
}

func newGraphBuilder() *graphBuilder {
	return &graphBuilder{
		nameToNode:   map[string]int{},
		groupToNodes: map[string][]int{},
		idToNode:     map[CourseID]int{},
	}
}

func (b *graphBuilder) addNode(kind NodeKind) int {
	idx := len(b.kinds)
	b.kinds = append(b.kinds, kind)
	b.courses = append(b.courses, Course{})
	b.requirements = append(b.requirements, requirementNode{})
	b.out = append(b.out, nil)
	b.indegree = append(b.indegree, 0)
	return idx
}

func (b *graphBuilder) addCourseNode(c Course) int {
	idx := b.addNode(NodeCourse)
	b.courses[idx] = c
	b.nameToNode[c.Name()] = idx
	key := c.GroupKey()
	b.groupToNodes[key] = append(b.groupToNodes[key], idx)
	b.idToNode[c.ID] = idx
	return idx
}

func (b *graphBuilder) addRequirementNode(required int) int {
	idx := b.addNode(NodeRequirement)
	b.requirements[idx] = requirementNode{required: required}
	return idx
}

func (b *graphBuilder) addEdge(from, to int, typ EdgeType) {
	b.out[from] = append(b.out[from], Edge{To: to, Type: typ})
	b.indegree[to]++
}

// parseRequirement recursively translates a RequirementCollection tree
// into a single requirement-or-course node, or reports "no node" for an
// empty collection, an unknown course reference, or a self-referencing
// course reference (spec.md §4.4).
func (b *graphBuilder) parseRequirement(tree RequirementCollection, rootGroupKey string) (int, bool) {
	switch tree.Type {
	case KindCollection:
		var children []int
		for _, option := range tree.Options {
			if idx, ok := b.parseRequirement(option, rootGroupKey); ok {
				children = append(children, idx)
			}
		}
		if len(children) == 0 {
			return 0, false
		}
		required := 0
		if tree.Required != nil {
			required = *tree.Required
		}
		if required < 0 {
			required = 0
		}
		if required > len(children) {
			required = len(children)
		}
		node := b.addRequirementNode(required)
		for _, child := range children {
			b.addEdge(child, node, EdgeSubrequirement)
		}
		return node, true

	case KindCourse:
		if tree.ClassReference == nil {
			return 0, false
		}
		idx, ok := b.idToNode[*tree.ClassReference]
		if !ok {
			return 0, false // unknown referenced id: silently elided
		}
		if b.courses[idx].GroupKey() == rootGroupKey {
			return 0, false // self-exclusion: never require a cross-listing of yourself
		}
		return idx, true

	default:
		return 0, false // unrecognized tag: no constraint
	}
}

// ensureRequirementNode guarantees node idx is Requirement-kind before
// it is wired up as the source of a Prerequisite/Corequisite edge:
// those edge types may only originate from a requirement node (spec.md
// §3 edge-type invariant). A catalog tree whose top level is a bare
// course reference (not wrapped in a collection) gets wrapped here in
// a synthetic 1-of-1 requirement, preserving the bipartite invariant
// without changing what the reference means.
func (b *graphBuilder) ensureRequirementNode(idx int) int {
	if b.kinds[idx] == NodeCourse {
		wrapper := b.addRequirementNode(1)
		b.addEdge(idx, wrapper, EdgeSubrequirement)
		return wrapper
	}
	return idx
}

func (b *graphBuilder) build() *Graph {
	return &Graph{
		kinds:        b.kinds,
		courses:      b.courses,
		requirements: b.requirements,
		out:          b.out,
		initIndegree: b.indegree,
		nameToNode:   b.nameToNode,
		groupToNodes: b.groupToNodes,
		idToNode:     b.idToNode,
	}
}

// Build consumes a catalog and emits the bipartite requirement DAG: one
// Course pass to populate the name/id/group indices, then one
// Requirement pass per course translating its three requirement trees.
func Build(courses []CatalogCourse) (*Graph, error) {
	b := newGraphBuilder()
	for _, c := range courses {
		b.addCourseNode(c.Course)
	}
	for _, c := range courses {
		courseIdx, ok := b.idToNode[c.ID]
		if !ok {
			continue
		}
		rootKey := c.GroupKey()

		if idx, ok := b.parseRequirement(c.Prerequisites, rootKey); ok {
			b.addEdge(b.ensureRequirementNode(idx), courseIdx, EdgePrerequisite)
		}
		if idx, ok := b.parseRequirement(c.Corequisites, rootKey); ok {
			b.addEdge(b.ensureRequirementNode(idx), courseIdx, EdgeCorequisite)
		}
		// Co-or-prerequisite trees are encoded as corequisites — strictly
		// weaker, and a deliberate policy rather than an oversight.
		if idx, ok := b.parseRequirement(c.CoOrPrerequisites, rootKey); ok {
			b.addEdge(b.ensureRequirementNode(idx), courseIdx, EdgeCorequisite)
		}
	}

	g := b.build()
	if cycle, ok := g.findCycle(); ok {
		return nil, fmt.Errorf("catalog produces a cyclic requirement graph at node %d", cycle)
	}
	return g, nil
}

// findCycle runs an explicit build-time cycle check over the whole
// node arena. The self-exclusion rule in parseRequirement only breaks
// trivial self-cycles; deeper cycles can still arise from mutual
// co-or-prerequisites between distinct course groups, which the
// propagation algorithm would otherwise silently fail to resolve
// (spec.md §9 design note).
func (g *Graph) findCycle() (int, bool) {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make([]int, g.NumNodes())

	var visit func(int) (int, bool)
	visit = func(node int) (int, bool) {
		color[node] = gray
		for _, e := range g.out[node] {
			switch color[e.To] {
			case gray:
				return e.To, true
			case white:
				if cyc, found := visit(e.To); found {
					return cyc, true
				}
			}
		}
		color[node] = black
		return 0, false
	}

	for i := range g.kinds {
		if color[i] == white {
			if cyc, found := visit(i); found {
				return cyc, true
			}
		}
	}
	return 0, false
}
