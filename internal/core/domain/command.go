package domain

import "strings"

// Command is an external process invocation.
type Command struct {
	Name string
	Args []string
	// Env overrides the inherited environment. PATH is prepended, not replaced.
	Env map[string]string
	// Dir is the working directory. Empty means the current directory.
	Dir string
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
