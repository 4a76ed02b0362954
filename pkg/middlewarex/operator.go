package middlewarex

import (
	"net/http"

	"lotdesk/pkg/contextx"
	"lotdesk/pkg/logx"
)

const headerNameOperator = "X-Operator"

// Operator picks up the optional operator name header so action logs can
// be attributed when several people share one desk.
func Operator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operator := r.Header.Get(headerNameOperator)
		if operator == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := contextx.WithOperator(r.Context(), contextx.Operator(operator))
		ctx = contextx.WithLogger(
			ctx,
			logger(ctx).With(logx.Stringer(logx.FieldOperator, contextx.Operator(operator))),
		)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
