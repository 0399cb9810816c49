package fpgrowth

import (
	"sync"
	"testing"
	"time"

	"github.com/JosephHardy91/itemSets/itemset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueIsLastInFirstOut(t *testing.T) {
	q := newQueue()
	q.push(task{suffix: itemset.Of("a")}, task{suffix: itemset.Of("b")})
	q.push(task{suffix: itemset.Of("c")})

	pending, running := q.count()
	assert.Equal(t, 3, pending)
	assert.Equal(t, 0, running)

	var pulled []string
	for {
		tk, ok := q.pull()
		if !ok {
			break
		}
		pulled = append(pulled, tk.String())
		q.complete()
	}
	assert.Equal(t, []string{"{Task {c}}", "{Task {b}}", "{Task {a}}"}, pulled)
}

func TestQueueWaitsForRunningTasks(t *testing.T) {
	q := newQueue()
	q.push(task{suffix: itemset.Of("a")})
	_, ok := q.pull()
	require.True(t, ok)

	pending, running := q.count()
	assert.Equal(t, 0, pending)
	assert.Equal(t, 1, running)

	var wg sync.WaitGroup
	var got task
	var gotOK bool
	wg.Add(1)
	go func() {
		defer wg.Done()
		got, gotOK = q.pull()
		if gotOK {
			q.complete()
		}
	}()

	time.Sleep(10 * time.Millisecond)
	q.push(task{suffix: itemset.Of("a", "b")})
	q.complete()
	wg.Wait()

	assert.True(t, gotOK)
	assert.Equal(t, "{a, b}", got.suffix.String())
	_, ok = q.pull()
	assert.False(t, ok)
}
