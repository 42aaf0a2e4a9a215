package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/catgen/schema"
	"github.com/syssam/catgen/schema/field"
)

func tableColumnModel() []*schema.Class {
	return []*schema.Class{
		{
			Name:    "Table",
			Comment: "A table in the catalog",
			Fields: []*schema.Field{
				{Name: "name", RawType: "string"},
				{Name: "isreplicated", RawType: "bool"},
				{Name: "partitioncolumn", RawType: "Column?"},
				{Name: "estimatedtuplecount", RawType: "int"},
				{Name: "columns", RawType: "Column*"},
				{Name: "indexes", RawType: "Index*"},
			},
		},
		{
			Name: "Column",
			Fields: []*schema.Field{
				{Name: "name", RawType: "string"},
				{Name: "index", RawType: "int"},
			},
		},
		{
			Name: "Index",
			Fields: []*schema.Field{
				{Name: "name", RawType: "string"},
				{Name: "unique", RawType: "bool"},
			},
		},
	}
}

func TestNewGraph(t *testing.T) {
	require := require.New(t)
	g, err := NewGraph(tableColumnModel())
	require.NoError(err)
	require.Len(g.Nodes, 3)

	table := g.Type("Table")
	require.NotNil(table)
	require.Equal("Table", table.Name)
	require.Equal("table", table.FileBase())
	require.True(table.HasComment())

	// Non-collection fields keep descriptor order.
	var names []string
	for _, f := range table.ValueFields() {
		names = append(names, f.Name)
	}
	require.Equal([]string{"name", "isreplicated", "partitioncolumn", "estimatedtuplecount"}, names)

	names = names[:0]
	for _, f := range table.Collections() {
		names = append(names, f.Name)
	}
	require.Equal([]string{"columns", "indexes"}, names)
	require.True(table.HasCollections())
	require.False(g.Type("Column").HasCollections())
}

func TestGraphResolvesReferences(t *testing.T) {
	require := require.New(t)
	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	table := g.Type("Table")
	require.Equal([]string{"Column", "Index"}, table.RefClasses)
	require.Equal([]string{"Column", "Index"}, table.ForwardDecls)
	require.Empty(g.Type("Column").RefClasses)
}

func TestGraphSelfReference(t *testing.T) {
	require := require.New(t)
	g, err := NewGraph([]*schema.Class{
		{
			Name: "Node",
			Fields: []*schema.Field{
				{Name: "parent", RawType: "Node?"},
				{Name: "children", RawType: "Node*"},
				{Name: "peer", RawType: "Peer?"},
			},
		},
		{
			Name:   "Peer",
			Fields: []*schema.Field{{Name: "name", RawType: "string"}},
		},
	})
	require.NoError(err)

	node := g.Type("Node")
	// Self-reference is valid and recorded, but never forward-declared.
	require.Equal([]string{"Node", "Peer"}, node.RefClasses)
	require.Equal([]string{"Peer"}, node.ForwardDecls)
}

func TestGraphUnresolvedTarget(t *testing.T) {
	_, err := NewGraph([]*schema.Class{
		{
			Name:   "Table",
			Fields: []*schema.Field{{Name: "columns", RawType: "Column*"}},
		},
	})
	require.Error(t, err)
	assert.True(t, IsResolveError(err))
	assert.ErrorIs(t, err, ErrUnresolvedTarget)
	assert.Contains(t, err.Error(), `target "Column"`)
}

func TestGraphClassificationFailure(t *testing.T) {
	_, err := NewGraph([]*schema.Class{
		{
			Name: "Table",
			Fields: []*schema.Field{
				{Name: "name", RawType: "string"},
				{Name: "weight", RawType: "float"},
			},
		},
	})
	require.Error(t, err)
	assert.True(t, IsClassifyError(err))
	assert.ErrorIs(t, err, ErrClassification)
	assert.Contains(t, err.Error(), "Table")
	assert.Contains(t, err.Error(), "weight")
}

func TestGraphDuplicateField(t *testing.T) {
	_, err := NewGraph([]*schema.Class{
		{
			Name: "Table",
			Fields: []*schema.Field{
				{Name: "name", RawType: "string"},
				{Name: "name", RawType: "int"},
			},
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field redeclared")
}

func TestGraphDuplicateClass(t *testing.T) {
	_, err := NewGraph([]*schema.Class{
		{Name: "Table", Fields: []*schema.Field{{Name: "name", RawType: "string"}}},
		{Name: "Table", Fields: []*schema.Field{{Name: "name", RawType: "string"}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "class redeclared")
}

func TestFieldHelpers(t *testing.T) {
	require := require.New(t)
	g, err := NewGraph(tableColumnModel())
	require.NoError(err)

	table := g.Type("Table")
	f := table.Fields[0]
	require.Equal("Name", f.Accessor())
	require.Equal("m_name", f.StorageName())
	require.True(f.IsScalar())
	require.Equal(field.ScalarString, f.Scalar())

	ref := table.Fields[2]
	require.True(ref.IsReference())
	require.Equal("Column", ref.Target())
	require.Equal("Partitioncolumn", ref.Accessor())
}
