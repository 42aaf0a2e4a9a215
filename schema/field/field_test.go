package field_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/catgen/schema/field"
)

func TestClassifyScalars(t *testing.T) {
	tests := []struct {
		token string
		want  field.ScalarKind
	}{
		{"string", field.ScalarString},
		{"int", field.ScalarInt},
		{"bool", field.ScalarBool},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			info, err := field.Classify(tt.token)
			require.NoError(t, err)
			assert.Equal(t, field.KindScalar, info.Kind)
			assert.Equal(t, tt.want, info.Scalar)
			assert.Empty(t, info.Target)
		})
	}
}

func TestClassifyCollection(t *testing.T) {
	info, err := field.Classify("Column*")
	require.NoError(t, err)
	assert.Equal(t, field.KindCollection, info.Kind)
	assert.Equal(t, "Column", info.Target)
	assert.True(t, info.IsCollection())
}

func TestClassifyReference(t *testing.T) {
	info, err := field.Classify("Table?")
	require.NoError(t, err)
	assert.Equal(t, field.KindReference, info.Kind)
	assert.Equal(t, "Table", info.Target)
	assert.True(t, info.IsReference())
}

func TestClassifyRejectsUnknownTokens(t *testing.T) {
	for _, token := range []string{"", "float", "String", "int64", "*", "?", "Column"} {
		t.Run(token, func(t *testing.T) {
			_, err := field.Classify(token)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "unrecognized type token")
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "scalar", field.KindScalar.String())
	assert.Equal(t, "reference", field.KindReference.String())
	assert.Equal(t, "collection", field.KindCollection.String())
	assert.Equal(t, "int", field.ScalarInt.String())
}
