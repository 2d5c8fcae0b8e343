package main

import (
	"testing"

	"github.com/nvannier/folio/cmd"
)

func TestCompletionCoversAllCommands(t *testing.T) {
	for _, c := range cmd.Commands {
		if _, ok := completion.Sub[c.Name()]; !ok {
			t.Errorf("command %q has no completion entry", c.Name())
		}
	}
	for name := range completion.Sub {
		found := false
		for _, c := range cmd.Commands {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("completion entry %q has no matching command", name)
		}
	}
}
