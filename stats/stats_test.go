package stats_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/stats"
)

func TestRegistrySnapshot(t *testing.T) {
	r := stats.New("adiar_test")

	r.AddNodesEmitted(3)
	r.AddRule1Removed(1)
	r.AddRule2Removed(2)
	r.ObserveMax1LevelCut(10)
	r.ObserveMax1LevelCut(4) // must not decrease the high-water mark
	r.IncOperations()

	snap := r.Snapshot()
	require.Equal(t, int64(3), snap.NodesEmitted)
	require.Equal(t, int64(1), snap.Rule1Removed)
	require.Equal(t, int64(2), snap.Rule2Removed)
	require.Equal(t, int64(10), snap.Max1LevelCut)
	require.Equal(t, int64(1), snap.Operations)
}

func TestRegistryMaxCutMonotonic(t *testing.T) {
	r := stats.New("adiar_test2")
	r.ObserveMax1LevelCut(5)
	r.ObserveMax1LevelCut(20)
	r.ObserveMax1LevelCut(1)
	require.Equal(t, int64(20), r.Snapshot().Max1LevelCut)
}
