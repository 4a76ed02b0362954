package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"lotdesk/pkg/contextx"
)

func TestOperator(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testOperatorEmpty contextx.Operator

	testOperatorNotEmpty := contextx.Operator("test-operator")

	operator, err := contextx.OperatorFromContext(ctx)
	rq.Equal(testOperatorEmpty, operator)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "operator: no value in context")

	ctx = contextx.WithOperator(ctx, testOperatorNotEmpty)

	operator, err = contextx.OperatorFromContext(ctx)
	rq.Equal(testOperatorNotEmpty, operator)
	rq.NoError(err)
}
