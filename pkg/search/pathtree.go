package search

// noParent marks a root record.
const noParent = -1

// Ref is a handle to a record of a [PathTree]. It is only meaningful for the
// tree that issued it. ID and Depth are copies of the record fields so the
// hot loop of a search does not need to look the record up.
type Ref[N comparable] struct {
	ID    N
	Depth int
	idx   int
}

type pathRecord[N comparable] struct {
	id     N
	parent int
	depth  int
}

// PathTree is an append-only forest of visited nodes. Each record points to
// its parent by index, so sibling branches share their common prefix and
// pushing a new branch costs O(1).
//
// Records are never modified or removed; handles stay valid when the backing
// slice grows. The zero value is ready to use.
type PathTree[N comparable] struct {
	records []pathRecord[N]
}

// NewPathTree creates an empty tree with room for capacity records.
func NewPathTree[N comparable](capacity int) *PathTree[N] {
	return &PathTree[N]{records: make([]pathRecord[N], 0, capacity)}
}

// Len returns the number of records in the tree.
func (t *PathTree[N]) Len() int { return len(t.records) }

// PushRoot adds a depth-0 record for node.
func (t *PathTree[N]) PushRoot(node N) Ref[N] {
	return t.push(pathRecord[N]{id: node, parent: noParent})
}

// Push adds a record for node below parent.
func (t *PathTree[N]) Push(parent Ref[N], node N) Ref[N] {
	t.check(parent)
	return t.push(pathRecord[N]{id: node, parent: parent.idx, depth: parent.Depth + 1})
}

// PathIncludes reports whether node appears on the chain from ref up to its
// root, ref itself included.
func (t *PathTree[N]) PathIncludes(ref Ref[N], node N) bool {
	t.check(ref)
	for i := ref.idx; i != noParent; i = t.records[i].parent {
		if t.records[i].id == node {
			return true
		}
	}
	return false
}

// RecreatePath returns the node ids from the root down to ref.
func (t *PathTree[N]) RecreatePath(ref Ref[N]) []N {
	t.check(ref)
	path := make([]N, ref.Depth+1)
	for i := ref.idx; i != noParent; i = t.records[i].parent {
		r := t.records[i]
		path[r.depth] = r.id
	}
	return path
}

func (t *PathTree[N]) push(r pathRecord[N]) Ref[N] {
	t.records = append(t.records, r)
	return Ref[N]{ID: r.id, Depth: r.depth, idx: len(t.records) - 1}
}

// check panics on handles this tree cannot have issued.
func (t *PathTree[N]) check(ref Ref[N]) {
	if ref.idx < 0 || ref.idx >= len(t.records) {
		panic("search: path tree reference out of range")
	}
	if r := t.records[ref.idx]; r.depth != ref.Depth || r.id != ref.ID {
		panic("search: path tree reference does not belong to this tree")
	}
}
