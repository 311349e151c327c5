package bdd_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adiar-go/adiar/bdd"
)

func TestToGraphRendersOneVertexPerNodeAndSink(t *testing.T) {
	ctx := context.Background()
	x0, x1 := bdd.Variable(0), bdd.Variable(1)
	and, err := x0.And(ctx, x1)
	require.NoError(t, err)

	g := and.ToGraph()
	require.True(t, g.HasVertex("sink(true)"))
	require.True(t, g.HasVertex("sink(false)"))
	require.Len(t, g.Vertices(), and.NodeCount()+2)
}
