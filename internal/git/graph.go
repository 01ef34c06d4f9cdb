package git

import (
	"container/heap"
	"errors"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type side uint8

const (
	fromA side = 1 << iota
	fromB
	fromBoth = fromA | fromB
)

// aheadBehind returns |anc(a) \ anc(b)| and |anc(b) \ anc(a)| where anc(x)
// includes x itself.
//
// Both tips are walked together newest first, each commit painted with the
// sides it is reachable from. The walk ends once every queued commit is
// reachable from both sides and is older than every commit painted by one
// side only, so history below the merge base is not visited. Like git, this
// trusts committer dates; a parent dated after its child may be miscounted.
func aheadBehind(repo *gogit.Repository, a, b plumbing.Hash) (int, int, error) {
	if a == b {
		return 0, 0, nil
	}

	w := &paintWalk{repo: repo, paint: map[plumbing.Hash]side{}}
	if err := w.push(a, fromA, true); err != nil {
		return 0, 0, err
	}
	if err := w.push(b, fromB, true); err != nil {
		return 0, 0, err
	}
	if err := w.run(); err != nil {
		return 0, 0, err
	}

	ahead, behind := 0, 0
	for _, s := range w.paint {
		switch s {
		case fromA:
			ahead++
		case fromB:
			behind++
		}
	}
	return ahead, behind, nil
}

type paintWalk struct {
	repo  *gogit.Repository
	paint map[plumbing.Hash]side
	queue commitQueue
}

// push adds s to the paint of h and queues h when its paint changed.
// Parents missing from the object store (shallow clones) are painted but
// end the walk along that edge.
func (w *paintWalk) push(h plumbing.Hash, s side, tip bool) error {
	old := w.paint[h]
	if old|s == old {
		return nil
	}
	w.paint[h] = old | s

	c, err := w.repo.CommitObject(h)
	if err != nil {
		if !tip && errors.Is(err, plumbing.ErrObjectNotFound) {
			return nil
		}
		return err
	}
	heap.Push(&w.queue, c)
	return nil
}

func (w *paintWalk) run() error {
	var (
		oldestSingle time.Time
		stalePhase   bool
	)
	for w.queue.Len() > 0 {
		if !stalePhase && w.allStale() {
			stalePhase = true
			var ok bool
			if oldestSingle, ok = w.oldestSingle(); !ok {
				return nil
			}
		}
		// once only both-sided commits are queued no new one-sided paint
		// appears; keep going while a queued commit may still be a
		// descendant of a one-sided commit
		if stalePhase && w.queue[0].Committer.When.Before(oldestSingle) {
			return nil
		}

		c := heap.Pop(&w.queue).(*object.Commit)
		s := w.paint[c.Hash]
		for _, p := range c.ParentHashes {
			if err := w.push(p, s, false); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *paintWalk) allStale() bool {
	for _, c := range w.queue {
		if w.paint[c.Hash] != fromBoth {
			return false
		}
	}
	return true
}

func (w *paintWalk) oldestSingle() (time.Time, bool) {
	var (
		oldest time.Time
		found  bool
	)
	for h, s := range w.paint {
		if s == fromBoth {
			continue
		}
		c, err := w.repo.CommitObject(h)
		if err != nil {
			continue
		}
		if when := c.Committer.When; !found || when.Before(oldest) {
			oldest, found = when, true
		}
	}
	return oldest, found
}

// commitQueue is a max-heap on committer time.
type commitQueue []*object.Commit

func (q commitQueue) Len() int { return len(q) }
func (q commitQueue) Less(i, j int) bool {
	return q[i].Committer.When.After(q[j].Committer.When)
}
func (q commitQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *commitQueue) Push(x any)   { *q = append(*q, x.(*object.Commit)) }
func (q *commitQueue) Pop() any {
	old := *q
	c := old[len(old)-1]
	*q = old[:len(old)-1]
	return c
}
