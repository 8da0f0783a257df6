package transport

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CollectsAllIssues(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	issues := v.Check(CreateProductRequest{
		Name:  "ab",
		Price: decimal.Zero,
	})

	require.Len(t, issues, 3)

	paths := make(map[string]string, len(issues))
	for _, issue := range issues {
		paths[issue.Path] = issue.Message
	}
	assert.Contains(t, paths, "name")
	assert.Contains(t, paths, "price")
	assert.Contains(t, paths, "cover")
}

func TestValidator_ValidRequestHasNoIssues(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	issues := v.Check(CreateProductRequest{
		Name:  "Kind of Blue",
		Price: decimal.RequireFromString("55.00"),
		Cover: "/covers/kind-of-blue.jpg",
	})
	assert.Nil(t, issues)
}

func TestValidator_NestedPathUsesJSONNames(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	issues := v.Check(CreateOrderRequest{
		Lines: []OrderLineRequest{{ProductID: 1}, {ProductID: 0}},
	})

	require.Len(t, issues, 1)
	assert.Equal(t, "lines[1].product_id", issues[0].Path)
	assert.Equal(t, "is required", issues[0].Message)
}

func TestValidator_EmptyOrderIsRejected(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	issues := v.Check(CreateOrderRequest{})
	require.Len(t, issues, 1)
	assert.Equal(t, "lines", issues[0].Path)
}

func TestValidator_PatchValidatesOnlyPresentFields(t *testing.T) {
	t.Parallel()

	v := NewValidator()
	assert.Nil(t, v.Check(PatchProductRequest{}), "an empty patch has no schema violations")

	bad := "ab"
	issues := v.Check(PatchProductRequest{Name: &bad})
	require.Len(t, issues, 1)
	assert.Equal(t, "name", issues[0].Path)
}
