package csl

// builtins are the functions a constraint body may call. Front ends reject
// every other name, and renderers and evaluators map each of these.
var builtins = []string{"abs", "ceil", "floor", "log", "max", "min", "pow"}

// Builtins returns the callable function names in sorted order.
func Builtins() []string {
	return append([]string(nil), builtins...)
}

// IsBuiltin reports whether name is a callable function.
func IsBuiltin(name string) bool {
	for _, b := range builtins {
		if b == name {
			return true
		}
	}
	return false
}
