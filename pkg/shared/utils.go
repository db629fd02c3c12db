package shared

import "github.com/spf13/pflag"

// HasFlags reports whether any flag in the set was changed by the user.
func HasFlags(flags *pflag.FlagSet) bool {
	hasFlags := false
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			hasFlags = true
		}
	})
	return hasFlags
}
