package intern_test

import (
	"fmt"
	"sync"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sufield/identifiers/pkg/intern"
)

type recordingObserver struct {
	mu       sync.Mutex
	hits     int
	misses   int
	distinct int
}

func (o *recordingObserver) Interned(hit bool, distinct int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if hit {
		o.hits++
	} else {
		o.misses++
	}
	o.distinct = distinct
}

func TestTable_InternDeduplicates(t *testing.T) {
	table := intern.NewTable()

	a := table.Intern("RiskEngine")
	b := table.Intern("Risk" + "Engine")
	c := table.Intern("ExecEngine")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2, table.Len())
}

func TestTable_Resolve(t *testing.T) {
	table := intern.NewTable()

	h := table.Intern("DataEngine")
	assert.Equal(t, "DataEngine", table.Resolve(h))
	assert.Equal(t, "DataEngine", h.String())
	assert.Equal(t, "DataEngine", intern.Resolve(h))
	assert.False(t, h.IsZero())
}

func TestHandle_ZeroValue(t *testing.T) {
	var h intern.Handle
	assert.True(t, h.IsZero())
	assert.Equal(t, "", h.String())
}

func TestTable_EmptyStringIsInternable(t *testing.T) {
	table := intern.NewTable()

	h := table.Intern("")
	assert.False(t, h.IsZero())
	assert.Equal(t, "", h.String())
	assert.Equal(t, h, table.Intern(""))
}

func TestTable_Lookup(t *testing.T) {
	table := intern.NewTable()

	_, ok := table.Lookup("Portfolio")
	assert.False(t, ok)
	assert.Equal(t, 0, table.Len())

	want := table.Intern("Portfolio")
	got, ok := table.Lookup("Portfolio")
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestTable_OwnsCopy(t *testing.T) {
	table := intern.NewTable()

	buf := []byte("Cache")
	h := table.Intern(string(buf))
	buf[0] = 'X'

	assert.Equal(t, "Cache", h.String())
}

func TestTable_StatsAndObserver(t *testing.T) {
	obs := &recordingObserver{}
	table := intern.NewTable(intern.WithObserver(obs))

	table.Intern("A")
	table.Intern("B")
	table.Intern("A")

	stats := table.Stats()
	assert.Equal(t, intern.Stats{Distinct: 2, Hits: 1, Misses: 2}, stats)
	assert.Equal(t, 1, obs.hits)
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, 2, obs.distinct)

	table.SetObserver(nil)
	table.Intern("C")
	assert.Equal(t, 2, obs.misses)
	assert.Equal(t, uint64(3), table.Stats().Misses)
}

func TestDefault_IsSingleton(t *testing.T) {
	assert.Same(t, intern.Default(), intern.Default())
	assert.Equal(t, intern.Intern("Trader-001"), intern.Default().Intern("Trader-001"))
}

func TestHandle_IsPointerSized(t *testing.T) {
	var h intern.Handle
	var p *string
	assert.Equal(t, unsafe.Sizeof(p), unsafe.Sizeof(h))
	assert.Equal(t, unsafe.Alignof(p), unsafe.Alignof(h))
}

func TestTable_ConcurrentIntern(t *testing.T) {
	table := intern.NewTable()

	const workers = 32
	const names = 50

	results := make([][]intern.Handle, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			handles := make([]intern.Handle, names)
			for i := 0; i < names; i++ {
				handles[i] = table.Intern(fmt.Sprintf("Component-%d", i))
			}
			results[w] = handles
		}(w)
	}
	wg.Wait()

	assert.Equal(t, names, table.Len())
	for w := 1; w < workers; w++ {
		assert.Equal(t, results[0], results[w])
	}

	stats := table.Stats()
	assert.Equal(t, uint64(names), stats.Misses)
	assert.Equal(t, uint64(workers*names-names), stats.Hits)
}
