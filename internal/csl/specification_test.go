package csl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/specialistvlad/cslgen/internal/ctxlog"
	"github.com/stretchr/testify/require"
)

func mustConstraint(t *testing.T, name string, refs ...Reference) *Constraint {
	t.Helper()
	c, err := NewConstraint(name, "p", NewReferenceSet(refs...), nil)
	require.NoError(t, err)
	return c
}

func TestNewConstraint(t *testing.T) {
	_, err := NewConstraint("", "p", nil, nil)
	require.Error(t, err)

	args := NewReferenceSet(ParamRef("z"), ParamRef("x"))
	c, err := NewConstraint("cone", "simple", args, nil)
	require.NoError(t, err)
	require.Equal(t, "cone", c.Name())
	require.Equal(t, "simple", c.ProblemName())
	require.Equal(t, []Reference{ParamRef("z"), ParamRef("x")}, c.Arguments())

	// The constraint owns a copy of its arguments.
	_, _ = args.Add(ParamRef("y"))
	require.Len(t, c.Arguments(), 2)
}

func TestSpecification_ArgumentsAreTheOrderedUnion(t *testing.T) {
	cone := mustConstraint(t, "cone", ParamRef("z"), ParamRef("x"))
	ctwo := mustConstraint(t, "ctwo", ParamRef("z"), ParamRef("y"))

	spec := NewSpecification(context.Background(), "simple", []*Constraint{cone, ctwo}, nil)

	require.Equal(t, "simple", spec.ProblemName())
	require.Equal(t, []string{"z", "x", "y"}, spec.ArgumentSet().Keys())

	union := NewReferenceSet()
	union.Union(cone.ArgumentSet())
	union.Union(ctwo.ArgumentSet())
	require.Equal(t, union.Keys(), spec.ArgumentSet().Keys())

	// Reading twice, in any order, gives the same answer.
	require.Equal(t, spec.Arguments(), spec.Arguments())
}

func TestSpecification_IsImmutable(t *testing.T) {
	cone := mustConstraint(t, "cone", ParamRef("x"))
	constraints := []*Constraint{cone}

	spec := NewSpecification(context.Background(), "p", constraints, nil)
	constraints[0] = mustConstraint(t, "other", ParamRef("y"))
	spec.Constraints()[0] = nil

	require.Equal(t, "cone", spec.Constraints()[0].Name())
	require.Equal(t, []string{"x"}, spec.ArgumentSet().Keys())
}

func TestSpecification_EmptyHasNoArguments(t *testing.T) {
	spec := NewSpecification(context.Background(), "p", nil, nil)
	require.Empty(t, spec.Arguments())
	require.Empty(t, spec.Constraints())
	require.Nil(t, spec.Body())
}

func TestSpecification_LogsIdentityCollisions(t *testing.T) {
	var buf bytes.Buffer
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(&buf, nil)))

	a := mustConstraint(t, "a", ParamRef("x_r1"))
	b := mustConstraint(t, "b", RegionRef("x", "r1"), ParamRef("y"))

	spec := NewSpecification(ctx, "p", []*Constraint{a, b}, nil)

	require.Equal(t, []string{"x_r1", "y"}, spec.ArgumentSet().Keys())
	require.Len(t, spec.Collisions(), 1)
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "key=x_r1")
}
