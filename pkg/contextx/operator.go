package contextx

import (
	"context"
	"fmt"
)

// Operator is the display name of the person driving the dashboard. It is
// carried for logging only; the engine itself is operator-agnostic.
type Operator string

type contextKeyOperator struct{}

func (o Operator) String() string {
	return string(o)
}

func WithOperator(ctx context.Context, operator Operator) context.Context {
	return context.WithValue(ctx, contextKeyOperator{}, operator)
}

func OperatorFromContext(ctx context.Context) (Operator, error) {
	operator, ok := ctx.Value(contextKeyOperator{}).(Operator)
	if !ok {
		return "", fmt.Errorf("operator: %w", ErrNoValue)
	}

	return operator, nil
}
