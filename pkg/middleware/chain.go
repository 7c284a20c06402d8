package middleware

// Chain composes handler decorators right to left, so the first middleware
// in the list is the outermost wrapper.
func Chain[H any](middlewares ...func(H) H) func(H) H {
	return func(handler H) H {
		for i := len(middlewares) - 1; i >= 0; i-- {
			handler = middlewares[i](handler)
		}
		return handler
	}
}
