package typesys_test

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoval/internal/testutil"
	"github.com/toyz/autoval/internal/typesys"
)

const shopPath = "example.com/shop"

func shop() testutil.Source {
	return testutil.Source{
		Path: shopPath,
		Files: map[string]string{
			"shop.go": `package shop

import "github.com/toyz/autoval/pkg/order"

type Price interface {
	order.Comparable[Price]
	Amount() order.Float64
}

type Ordered interface {
	order.Comparable[Money]
}

type Money interface {
	Ordered
	Cents() int64
}

type Cents int64

func (c Cents) CompareTo(other Cents) int { return int(c - other) }

type Tag struct{ Name string }

func (t *Tag) CompareTo(other *Tag) int { return 0 }

type Label = Cents

var _ order.Comparable[Cents] = Cents(0)
var _ order.Comparable[*Tag] = (*Tag)(nil)
var _ order.Comparable[Cents] = Label(1)

type Plain int
`,
		},
	}
}

func TestNewUniverse_ResolvesCanonical(t *testing.T) {
	prog := testutil.Load(t, testutil.Order(), shop())
	u := prog.Universe(t)

	require.NotNil(t, u.Canonical())
	assert.Equal(t, "Comparable", u.Canonical().Obj().Name())
	assert.Equal(t, testutil.OrderPath, u.Canonical().Obj().Pkg().Path())
	assert.Equal(t, typesys.DefaultCanonical, u.CanonicalName())
}

func TestNewUniverse_MissingCanonicalPackage(t *testing.T) {
	prog := testutil.Load(t, testutil.Source{
		Path:  "example.com/empty",
		Files: map[string]string{"e.go": "package empty\n"},
	})

	u, err := typesys.NewUniverse("", prog.Packages()...)
	require.NoError(t, err)
	assert.Nil(t, u.Canonical())
	assert.False(t, u.IsCanonical(types.Typ[types.Int]))
}

func TestNewUniverse_RejectsBadCanonical(t *testing.T) {
	prog := testutil.Load(t, testutil.Order(), shop())

	_, err := typesys.NewUniverse("example.com/shop.Plain", prog.Packages()...)
	assert.ErrorContains(t, err, "not an interface")

	_, err = typesys.NewUniverse("example.com/shop.Ordered", prog.Packages()...)
	assert.ErrorContains(t, err, "exactly one type parameter")

	_, err = typesys.NewUniverse("Comparable", prog.Packages()...)
	assert.ErrorContains(t, err, "expected import/path.Name")
}

func TestSplitQualified(t *testing.T) {
	path, name, err := typesys.SplitQualified("github.com/toyz/autoval/pkg/order.Comparable")
	require.NoError(t, err)
	assert.Equal(t, "github.com/toyz/autoval/pkg/order", path)
	assert.Equal(t, "Comparable", name)

	for _, bad := range []string{"", "order.", ".Comparable", "github.com/x/.Comparable", "order.1x"} {
		_, _, err := typesys.SplitQualified(bad)
		assert.Error(t, err, bad)
	}
}

func TestDirectSupertypes(t *testing.T) {
	prog := testutil.Load(t, testutil.Order(), shop())
	u := prog.Universe(t)

	price := prog.Named(t, shopPath, "Price")
	supers := u.DirectSupertypes(price)
	require.Len(t, supers, 1)
	assert.True(t, u.IsCanonical(supers[0]))
	assert.True(t, u.SameType(u.TypeArgs(supers[0])[0], price))

	money := prog.Named(t, shopPath, "Money")
	supers = u.DirectSupertypes(money)
	require.Len(t, supers, 1)
	assert.Equal(t, "Ordered", supers[0].(*types.Named).Obj().Name())
	assert.False(t, u.IsCanonical(supers[0]), "ancestors of supertypes are not direct supertypes")

	cents := prog.Named(t, shopPath, "Cents")
	supers = u.DirectSupertypes(cents)
	require.Len(t, supers, 1, "assertions through an alias are deduplicated")
	assert.True(t, u.IsCanonical(supers[0]))

	tag := prog.Named(t, shopPath, "Tag")
	assert.Empty(t, u.DirectSupertypes(tag), "a pointer assertion does not cover the value type")
	supers = u.DirectSupertypes(types.NewPointer(tag))
	require.Len(t, supers, 1)
	assert.True(t, u.IsCanonical(supers[0]))
	assert.Empty(t, u.DirectSupertypes(types.NewPointer(cents)), "a value assertion does not cover the pointer type")

	assert.Empty(t, u.DirectSupertypes(prog.Named(t, shopPath, "Plain")))
	assert.Empty(t, u.DirectSupertypes(types.Typ[types.Float64]))

	wrapper := prog.Named(t, testutil.OrderPath, "Float64")
	supers = u.DirectSupertypes(wrapper)
	require.Len(t, supers, 1)
	assert.True(t, u.IsCanonical(supers[0]))
}

func TestDeclaredInterfaces(t *testing.T) {
	prog := testutil.Load(t, testutil.Order(), shop())
	u := prog.Universe(t)

	declared := u.DeclaredInterfaces(prog.Named(t, shopPath, "Price"))
	require.Len(t, declared, 1)
	assert.True(t, u.IsCanonical(declared[0]))
}

func TestErasureAndAssignability(t *testing.T) {
	prog := testutil.Load(t, testutil.Order(), shop())
	u := prog.Universe(t)

	price := prog.Named(t, shopPath, "Price")
	inst := u.DirectSupertypes(price)[0]

	assert.True(t, u.SameType(u.Erasure(inst), u.Canonical()))
	assert.True(t, u.IsAssignable(u.Erasure(inst), u.Canonical()))
	assert.False(t, u.IsAssignable(inst, u.Canonical()), "an instantiation is not its generic origin")
	assert.False(t, u.IsAssignable(u.Erasure(prog.Named(t, shopPath, "Plain")), u.Canonical()))

	plain := prog.Named(t, shopPath, "Plain")
	assert.Same(t, plain, u.Erasure(plain))
	assert.Empty(t, u.TypeArgs(plain))
	assert.Empty(t, u.TypeArgs(types.Typ[types.Int]))
	assert.True(t, u.IsAssignable(types.Typ[types.Int], types.Typ[types.Int]))
}
