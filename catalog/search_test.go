package catalog

import (
	"testing"

	"github.com/cmdforge/cmdforge/argsource"
	"github.com/stretchr/testify/require"
)

func TestSearch_RecursesIntoMatchedGroupAndYieldsCommand(t *testing.T) {
	c := newTestCatalog()
	math := NewGroup("math", []string{"math"}, "")
	require.NoError(t, c.Register(nil, math))
	sum := NewCommand("sum", []string{"sum"}, "", "", 0)
	require.NoError(t, c.Register(math, sum))

	src := argsource.NewFromTokens([]string{"math", "sum", "1", "2"}, argsource.OrdinalIgnoreCase)
	candidates := c.Search(src)

	require.Len(t, candidates, 1)
	require.Same(t, sum, candidates[0].Command)
	require.Equal(t, 2, candidates[0].SearchHeight)
}

func TestSearch_YieldsDefaultCommandAtEveryVisitedLevel(t *testing.T) {
	c := newTestCatalog()
	admin := NewGroup("admin", []string{"admin"}, "")
	require.NoError(t, c.Register(nil, admin))
	status := NewCommand("status", nil, "", "", 0)
	require.NoError(t, c.Register(admin, status))

	src := argsource.NewFromTokens([]string{"admin"}, argsource.OrdinalIgnoreCase)
	candidates := c.Search(src)

	require.Len(t, candidates, 1)
	require.Same(t, status, candidates[0].Command)
	require.Equal(t, 1, candidates[0].SearchHeight, "default command yields at the group's own depth")
}

func TestSearch_YieldsBothOverloadsAsSeparateCandidates(t *testing.T) {
	c := newTestCatalog()
	boolVersion := NewCommand("multi-bool", []string{"multi"}, "", "", 0)
	boolVersion.Parameters = []*Parameter{{Name: "a"}, {Name: "b"}}
	require.NoError(t, c.Register(nil, boolVersion))

	intVersion := NewCommand("multi-int", []string{"multi"}, "", "", 0)
	intVersion.Parameters = []*Parameter{{Name: "a"}, {Name: "b"}}
	require.NoError(t, c.Register(nil, intVersion))

	src := argsource.NewFromTokens([]string{"multi", "1", "2"}, argsource.OrdinalIgnoreCase)
	candidates := c.Search(src)

	require.Len(t, candidates, 2)
	// equal score and priority -> stable registration order tie-break
	require.Same(t, boolVersion, candidates[0].Command)
	require.Same(t, intVersion, candidates[1].Command)
}

func TestSearch_OverloadFamilyOrdersByPriorityBeforeRegistrationOrder(t *testing.T) {
	c := newTestCatalog()

	registeredFirst := NewCommand("go-low", []string{"go"}, "", "", 0)
	require.NoError(t, c.Register(nil, registeredFirst))

	higherPriority := NewCommand("go-high", []string{"go"}, "", "", 5)
	require.NoError(t, c.Register(nil, higherPriority))

	src := argsource.NewFromTokens([]string{"go"}, argsource.OrdinalIgnoreCase)
	candidates := c.Search(src)
	require.Len(t, candidates, 2)
	require.Same(t, higherPriority, candidates[0].Command, "higher priority wins over registration order")
}

func TestSearch_NoMatchYieldsNoCandidates(t *testing.T) {
	c := newTestCatalog()
	require.NoError(t, c.Register(nil, NewCommand("sum", []string{"sum"}, "", "", 0)))

	src := argsource.NewFromTokens([]string{"nope"}, argsource.OrdinalIgnoreCase)
	require.Empty(t, c.Search(src))
}

func TestSuggestSiblings_ReturnsClosestAliasesByEditDistance(t *testing.T) {
	c := newTestCatalog()
	require.NoError(t, c.Register(nil, NewCommand("sum", []string{"sum"}, "", "", 0)))
	require.NoError(t, c.Register(nil, NewCommand("summary", []string{"summary"}, "", "", 0)))
	require.NoError(t, c.Register(nil, NewCommand("echo", []string{"echo"}, "", "", 0)))

	suggestions := SuggestSiblings("sumn", c.Root(), 2)
	require.NotEmpty(t, suggestions)
	require.Equal(t, "sum", suggestions[0])
}

func TestCollectAliases_WalksEntireTree(t *testing.T) {
	c := newTestCatalog()
	math := NewGroup("math", []string{"math"}, "")
	require.NoError(t, c.Register(nil, math))
	require.NoError(t, c.Register(math, NewCommand("sum", []string{"sum"}, "", "", 0)))

	names := CollectAliases(c.Root(), "")
	require.Contains(t, names, "math")
	require.Contains(t, names, "math sum")
}
