package generator

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/autoval/internal/diag"
	"github.com/toyz/autoval/internal/extension"
	"github.com/toyz/autoval/internal/models"
	"github.com/toyz/autoval/internal/parser"
	"github.com/toyz/autoval/internal/registry"
	"github.com/toyz/autoval/internal/testutil"
)

const shopPath = "example.com/shop"

const shopSource = `package shop

import "github.com/toyz/autoval/pkg/order"

//autoval::value
type Price interface {
	order.Comparable[Price]

	//autoval::compareby
	Amount() order.Float64
	Currency() string
}

//autoval::value -Constructor=MakeProduct
type Product interface {
	order.Comparable[Product]

	//autoval::compareby
	Name() order.String
	Price() Price
}

//autoval::value
type Point interface {
	X() int
	Y() int
}

//autoval::value
type Unmarked interface {
	order.Comparable[Unmarked]
	Amount() order.Float64
}

//autoval::value
type Resettable interface {
	ID() string
	Reset()
}
`

type run struct {
	prog     *testutil.Program
	metadata *models.PackageMetadata
	out      *models.GeneratedPackage
	sink     *diag.Collector
}

func generate(t *testing.T, gen *Generator, source string) run {
	t.Helper()
	prog := testutil.Load(t, testutil.Order(), testutil.Source{
		Path:  shopPath,
		Files: map[string]string{"shop.go": source},
	})

	sink := diag.NewCollector()
	metadata := parser.NewParser().ParsePackage(prog.Package(shopPath), sink)
	require.False(t, sink.HasErrors(), "parse diagnostics: %v", sink.All())

	out, err := gen.GeneratePackage(metadata, prog.Universe(t), sink)
	require.NoError(t, err)
	return run{prog: prog, metadata: metadata, out: out, sink: sink}
}

func files(out *models.GeneratedPackage) map[string]string {
	m := make(map[string]string, len(out.Files))
	for _, f := range out.Files {
		m[filepath.Base(f.Path)] = string(f.Content)
	}
	return m
}

func TestGeneratePackage_Files(t *testing.T) {
	r := generate(t, NewGenerator(), shopSource)

	got := files(r.out)
	names := make([]string, 0, len(got))
	for name := range got {
		names = append(names, name)
	}
	assert.ElementsMatch(t, []string{
		"autogen_values.go",
		"autogen_price_comparable.go",
		"autogen_product_comparable.go",
	}, names)
	assert.Equal(t, []string{"Unmarked", "Resettable"}, r.out.Skipped)

	for name, content := range got {
		assert.True(t, strings.HasPrefix(content, "// "+extension.GeneratedHeader), name)
	}
}

func TestGeneratePackage_Compiles(t *testing.T) {
	r := generate(t, NewGenerator(), shopSource)

	sources := files(r.out)
	sources["shop.go"] = shopSource

	// Load fails the test when the generated code does not type-check.
	prog := testutil.Load(t, testutil.Order(), testutil.Source{Path: shopPath, Files: sources})

	scope := prog.Package(shopPath).Types.Scope()
	for _, name := range []string{"autoValPriceBase", "autoValPrice", "autoValProduct", "autoValPoint", "newPrice", "MakeProduct", "newPoint"} {
		assert.NotNil(t, scope.Lookup(name), name)
	}
	assert.Nil(t, scope.Lookup("autoValPointBase"))
	assert.Nil(t, scope.Lookup("autoValUnmarked"))
}

func TestGeneratePackage_BaseClass(t *testing.T) {
	r := generate(t, NewGenerator(), shopSource)
	base := files(r.out)["autogen_values.go"]

	for _, fragment := range []string{
		"type autoValPriceBase struct {",
		"func newAutoValPriceBase(amount order.Float64, currency string) autoValPriceBase {",
		"func (v autoValPriceBase) Amount() order.Float64 {",
		"return v.amount",
		"// newPrice creates a Price",
		"func newPrice(amount order.Float64, currency string) Price {",
		"return newAutoValPrice(amount, currency)",
		"var _ Price = autoValPrice{}",
		"func MakeProduct(name order.String, price Price) Product {",
		"type autoValPoint struct {",
		"func newPoint(x int, y int) Point {",
		"return newAutoValPoint(x, y)",
		"var _ Point = autoValPoint{}",
	} {
		assert.Contains(t, base, fragment)
	}
	assert.NotContains(t, base, "Unmarked")
	assert.NotContains(t, base, "Resettable")
}

func TestGeneratePackage_ExtensionClass(t *testing.T) {
	r := generate(t, NewGenerator(), shopSource)
	price := files(r.out)["autogen_price_comparable.go"]

	for _, fragment := range []string{
		"package shop",
		"type autoValPrice struct {\n\tautoValPriceBase\n}",
		"func newAutoValPrice(amount order.Float64, currency string) autoValPrice {",
		"return autoValPrice{newAutoValPriceBase(amount, currency)}",
		"func (v autoValPrice) CompareTo(other Price) int {",
		"return v.Amount().CompareTo(other.Amount())",
	} {
		assert.Contains(t, price, fragment)
	}
}

func TestGeneratePackage_Diagnostics(t *testing.T) {
	r := generate(t, NewGenerator(), shopSource)

	missing := r.sink.ByCode(diag.CodeMissingDesignation)
	require.Len(t, missing, 1)
	assert.Equal(t, "shop.Unmarked", missing[0].Subject)

	unimplemented := r.sink.ByCode(diag.CodeUnimplementedMethod)
	require.Len(t, unimplemented, 1)
	assert.Equal(t, "shop.Resettable", unimplemented[0].Subject)
	assert.Equal(t, "Resettable.Reset() is not an accessor and no extension implements it", unimplemented[0].Message)
}

func TestGeneratePackage_Deterministic(t *testing.T) {
	first := files(generate(t, NewGenerator(), shopSource).out)
	second := files(generate(t, NewGenerator(), shopSource).out)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("output differs between runs (-first +second):\n%s", diff)
	}
}

func TestGeneratePackage_NothingToGenerate(t *testing.T) {
	r := generate(t, NewGenerator(), `package shop

//autoval::value
type Resettable interface {
	Reset()
}
`)
	assert.Empty(t, r.out.Files)
	assert.Equal(t, []string{"Resettable"}, r.out.Skipped)
	assert.Equal(t, shopPath, r.out.PackagePath)
}

func TestGeneratePackage_UnimplementedMethodSkipsExtensions(t *testing.T) {
	r := generate(t, NewGenerator(), `package shop

import "github.com/toyz/autoval/pkg/order"

//autoval::value
type Counter interface {
	order.Comparable[Counter]

	//autoval::compareby
	Count() order.String
	Reset()
}
`)
	assert.Empty(t, r.out.Files)
	assert.Equal(t, []string{"Counter"}, r.out.Skipped)
	require.Len(t, r.sink.ByCode(diag.CodeUnimplementedMethod), 1)
}

func TestGeneratePackage_OutputFile(t *testing.T) {
	gen := NewGeneratorWithRegistry(registry.NewDefaultRegistry(), "autogen_shop.go")
	r := generate(t, gen, shopSource)
	assert.Contains(t, files(r.out), "autogen_shop.go")
	assert.NotContains(t, files(r.out), "autogen_values.go")
}

func TestGeneratePackage_NilMetadata(t *testing.T) {
	_, err := NewGenerator().GeneratePackage(nil, nil, diag.Discard)
	assert.Error(t, err)
}

func TestGeneratePackage_FieldNamesAvoidMethods(t *testing.T) {
	source := `package shop

import "github.com/toyz/autoval/pkg/order"

//autoval::value
type Pair interface {
	order.Comparable[Pair]

	//autoval::compareby
	Key() order.String
	key() string
}
`
	r := generate(t, NewGenerator(), source)

	sources := files(r.out)
	sources["shop.go"] = source
	testutil.Load(t, testutil.Order(), testutil.Source{Path: shopPath, Files: sources})

	assert.Contains(t, sources["autogen_values.go"], "func newAutoValPairBase(key_ order.String, key__ string) autoValPairBase")
	assert.Contains(t, sources["autogen_pair_comparable.go"], "func newAutoValPair(key_ order.String, key__ string) autoValPair")
}

// stubExtension records what the host passes to GenerateClass
type stubExtension struct {
	name     string
	final    bool
	consume  []string
	extended *[]string
}

func (s *stubExtension) Name() string                               { return s.name }
func (s *stubExtension) Applicable(*extension.Context) bool         { return true }
func (s *stubExtension) ConsumeMethods(*extension.Context) []string { return s.consume }
func (s *stubExtension) MustBeFinal(*extension.Context) bool        { return s.final }

func (s *stubExtension) GenerateClass(ctx *extension.Context, className, classToExtend string, isFinal bool) (string, error) {
	*s.extended = append(*s.extended, className+"<"+classToExtend)
	return "package " + ctx.PackageName + "\n\ntype " + className + " struct{ " + classToExtend + " }\n", nil
}

func TestGeneratePackage_ExtensionChain(t *testing.T) {
	var chain []string
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register("Last", func() extension.Extension {
		return &stubExtension{name: "Last", final: true, extended: &chain}
	}))
	require.NoError(t, reg.Register("First", func() extension.Extension {
		return &stubExtension{name: "First", extended: &chain}
	}))

	r := generate(t, NewGeneratorWithRegistry(reg, ""), `package shop

//autoval::value
type Point interface {
	X() int
}
`)
	assert.Equal(t, []string{
		"autoValPointFirst<autoValPointBase",
		"autoValPoint<autoValPointFirst",
	}, chain)
	assert.Contains(t, files(r.out), "autogen_point_first.go")
	assert.Contains(t, files(r.out), "autogen_point_last.go")
}

func TestGeneratePackage_FinalConflict(t *testing.T) {
	var chain []string
	reg := registry.NewRegistry()
	for _, name := range []string{"A", "B"} {
		require.NoError(t, reg.Register(name, func() extension.Extension {
			return &stubExtension{name: name, final: true, extended: &chain}
		}))
	}

	r := generate(t, NewGeneratorWithRegistry(reg, ""), `package shop

//autoval::value
type Point interface {
	X() int
}
`)
	conflicts := r.sink.ByCode(diag.CodeExtensionConflict)
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0].Message, "A and B")
	assert.Empty(t, chain)
	assert.Equal(t, []string{"Point"}, r.out.Skipped)
}

func TestGeneratePackage_ConsumedMethods(t *testing.T) {
	var chain []string
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register("Resetter", func() extension.Extension {
		return &stubExtension{name: "Resetter", consume: []string{"Reset"}, extended: &chain}
	}))

	r := generate(t, NewGeneratorWithRegistry(reg, ""), `package shop

//autoval::value
type Resettable interface {
	ID() string
	Reset()
}
`)
	assert.Empty(t, r.sink.ByCode(diag.CodeUnimplementedMethod))
	assert.Empty(t, r.out.Skipped)
	assert.Equal(t, []string{"autoValResettable<autoValResettableBase"}, chain)
}

func TestClassNames(t *testing.T) {
	assert.Equal(t, []string{"autoValPrice"}, classNames("Price", nil))
	assert.Equal(t, []string{"autoValPriceBase", "autoValPriceA", "autoValPrice"}, classNames("Price", []extension.Extension{
		&stubExtension{name: "A"},
		&stubExtension{name: "B"},
	}))
}

func TestExtensionFile(t *testing.T) {
	assert.Equal(t, "autogen_price_comparable.go", extensionFile("Price", "Comparable"))
}
