package neuro

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildSession returns a block with one segment holding two spike
// trains, an event, an epoch and a signal, plus a group/unit that holds
// a second path to the first spike train.
func buildSession() (*Block, *Segment, *SpikeTrain, *SpikeTrain) {
	block := NewBlock("session-1")

	seg := NewSegment("trial-0")
	block.AddSegment(seg)

	st1 := NewSpikeTrain("st-1", NewQuantity([]float64{0.1, 0.5, 0.9}, "s"), 0, 1)
	st2 := NewSpikeTrain("st-2", NewQuantity([]float64{0.2, 0.4}, "s"), 0, 1)
	seg.AddSpikeTrain(st1)
	seg.AddSpikeTrain(st2)

	seg.AddEvent(NewEvent("stimulus", NewQuantity([]float64{0.25, 0.75}, "s"), []string{"on", "off"}))
	seg.AddEpoch(NewEpoch("baseline",
		NewQuantity([]float64{0}, "s"),
		NewQuantity([]float64{0.1}, "s"),
		[]string{"rest"}))
	seg.AddAnalogSignal(NewAnalogSignal("lfp",
		NewQuantity([]float64{1, 2, 3, 4}, "uV"),
		NewScalar(1000, "Hz"), 0))

	grp := NewGroup("tetrode-1")
	block.AddGroup(grp)
	unit := NewUnit("unit-1")
	grp.AddUnit(unit)
	unit.AddSpikeTrain(st1) // st1 now reachable via segment and unit

	return block, seg, st1, st2
}

func TestCollectAllFromBlock(t *testing.T) {
	block, seg, st1, st2 := buildSession()

	objs, err := Collect(block, "")
	require.NoError(t, err)

	// block, segment, 2 spike trains, event, epoch, signal, group, unit
	assert.Len(t, objs, 9)
	assert.Same(t, block, objs[0].(*Block))
	assert.Contains(t, objs, DomainObject(seg))
	assert.Contains(t, objs, DomainObject(st1))
	assert.Contains(t, objs, DomainObject(st2))
}

func TestCollectDedupAcrossPaths(t *testing.T) {
	block, _, st1, _ := buildSession()

	objs, err := Collect(block, "")
	require.NoError(t, err)

	count := 0
	for _, obj := range objs {
		if obj == DomainObject(st1) {
			count++
		}
	}
	assert.Equal(t, 1, count, "object reachable via segment and unit must appear once")
}

func TestCollectTypeFilter(t *testing.T) {
	block, _, st1, st2 := buildSession()

	objs, err := Collect(block, "SpikeTrain")
	require.NoError(t, err)

	require.Len(t, objs, 2)
	assert.Same(t, st1, objs[0].(*SpikeTrain))
	assert.Same(t, st2, objs[1].(*SpikeTrain))
	for _, obj := range objs {
		assert.Equal(t, "SpikeTrain", obj.TypeName())
	}
}

func TestCollectFlatChildren(t *testing.T) {
	_, seg, st1, st2 := buildSession()

	objs, err := Collect(seg, "SpikeTrain")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	assert.Same(t, st1, objs[0].(*SpikeTrain))
	assert.Same(t, st2, objs[1].(*SpikeTrain))
}

func TestCollectNestedContainers(t *testing.T) {
	block1, _, _, _ := buildSession()
	block2, _, _, _ := buildSession()

	tests := []struct {
		name      string
		container any
		wantLen   int
	}{
		{"slice of blocks", []any{block1, block2}, 18},
		{"nested slice", []any{[]any{block1}, block2}, 18},
		{"map of blocks", map[string]any{"a": block1}, 9},
		{"duplicate entries dedup", []any{block1, block1}, 9},
		{"typed slice", []*Block{block1, block2}, 18},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objs, err := Collect(tt.container, "")
			require.NoError(t, err)
			assert.Len(t, objs, tt.wantLen)
		})
	}
}

func TestCollectLeafObject(t *testing.T) {
	_, _, st1, _ := buildSession()

	// A data object with no children concept collects as itself.
	objs, err := Collect(st1, "")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Same(t, st1, objs[0].(*SpikeTrain))

	// Exact type match short-circuits.
	objs, err = Collect(st1, "SpikeTrain")
	require.NoError(t, err)
	require.Len(t, objs, 1)
	assert.Same(t, st1, objs[0].(*SpikeTrain))
}

func TestCollectUnsupported(t *testing.T) {
	_, _, st1, _ := buildSession()

	tests := []struct {
		name      string
		container any
		typeName  string
	}{
		{"bare int", 42, ""},
		{"bare string", "spikes", ""},
		{"int inside slice", []any{42}, ""},
		{"leaf object asked for another type", st1, "Event"},
		{"array-like value", NewQuantity([]float64{1, 2}, "s"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Collect(tt.container, tt.typeName)
			require.Error(t, err)

			var ucErr *UnsupportedContainerError
			assert.True(t, errors.As(err, &ucErr), "want *UnsupportedContainerError, got %v", err)
		})
	}
}

func TestCollectTypeNameIsExact(t *testing.T) {
	block, _, _, _ := buildSession()

	objs, err := Collect(block, "Spiketrain")
	require.NoError(t, err)
	assert.Empty(t, objs, "type names match exactly, including capitalization")
}

func TestTypedCollectors(t *testing.T) {
	block, seg, st1, st2 := buildSession()

	sts, err := SpikeTrainsIn(block)
	require.NoError(t, err)
	assert.Equal(t, []*SpikeTrain{st1, st2}, sts)

	evs, err := EventsIn([]any{block})
	require.NoError(t, err)
	require.Len(t, evs, 1)
	assert.Equal(t, "stimulus", evs[0].Name())

	eps, err := EpochsIn(seg)
	require.NoError(t, err)
	require.Len(t, eps, 1)

	sigs, err := AnalogSignalsIn(block)
	require.NoError(t, err)
	require.Len(t, sigs, 1)
}
