package fpgrowth

import (
	"fmt"
	"sync"

	"github.com/JosephHardy91/itemSets/fptree"
	"github.com/JosephHardy91/itemSets/itemset"
)

// task is a conditional tree to be mined for the itemsets ending in
// suffix.
type task struct {
	tree   *fptree.Tree
	suffix itemset.Itemset
}

func (t task) String() string {
	return fmt.Sprintf("{Task %v}", t.suffix)
}

/*
queue is the work-list conditional trees are pushed to and pulled from.
Tasks are pulled last-in first-out, so mining goes depth first and only
the trees along the current branches are alive at a time.

A task counts as pending from its push until it is pulled, and as
running until it is completed. Pull blocks while nothing is pending but
some task is running, since it may push new tasks; it reports the queue
is drained once nothing is pending or running.
*/
type queue struct {
	lock    *sync.Mutex
	cond    *sync.Cond
	pending []task
	running int
}

func newQueue() *queue {
	lock := &sync.Mutex{}
	return &queue{lock: lock, cond: sync.NewCond(lock)}
}

func (q *queue) push(tasks ...task) {
	if len(tasks) == 0 {
		return
	}
	q.lock.Lock()
	defer q.lock.Unlock()
	q.pending = append(q.pending, tasks...)
	q.cond.Broadcast()
}

func (q *queue) pull() (task, bool) {
	q.lock.Lock()
	defer q.lock.Unlock()
	for len(q.pending) == 0 {
		if q.running == 0 {
			return task{}, false
		}
		q.cond.Wait()
	}
	last := len(q.pending) - 1
	t := q.pending[last]
	q.pending[last] = task{}
	q.pending = q.pending[:last]
	q.running++
	return t, true
}

func (q *queue) complete() {
	q.lock.Lock()
	defer q.lock.Unlock()
	q.running--
	if q.running == 0 && len(q.pending) == 0 {
		q.cond.Broadcast()
	}
}

// count returns the number of pending and running tasks.
func (q *queue) count() (int, int) {
	q.lock.Lock()
	defer q.lock.Unlock()
	return len(q.pending), q.running
}
