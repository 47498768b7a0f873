package commands_test

import (
	"errors"
	"testing"

	"taskpad/internal/commands"
)

// stubCmd is a named command with no behavior, for registry tests.
type stubCmd struct {
	commands.HelpCmd
	name    string
	aliases []string
}

func (c *stubCmd) Name() string      { return c.name }
func (c *stubCmd) Aliases() []string { return c.aliases }

func TestRegistry_FindByNameAndAlias(t *testing.T) {
	r := commands.NewRegistry()
	list := &stubCmd{name: "list", aliases: []string{"ls"}}
	if err := r.Register(list); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, word := range []string{"list", "ls"} {
		got, ok := r.Find(word)
		if !ok || got != list {
			t.Errorf("Find(%q) = %v, %v", word, got, ok)
		}
	}
	if _, ok := r.Find("lst"); ok {
		t.Error("unknown word should not resolve")
	}
	if all := r.All(); len(all) != 1 {
		t.Errorf("aliases must not duplicate commands, got %d", len(all))
	}
}

func TestRegistry_RejectsCollisions(t *testing.T) {
	r := commands.NewRegistry()
	if err := r.Register(&stubCmd{name: "rm", aliases: []string{"delete"}}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for _, c := range []*stubCmd{
		{name: "rm"},
		{name: "delete"},
		{name: "remove", aliases: []string{"rm"}},
		{name: "erase", aliases: []string{"delete"}},
		{name: "drop", aliases: []string{"x", "x"}},
	} {
		err := r.Register(c)
		if !errors.Is(err, commands.ErrDuplicateCommand) {
			t.Errorf("Register(%s %v) = %v, want ErrDuplicateCommand", c.name, c.aliases, err)
		}
	}

	// a rejected command leaves none of its words behind
	for _, word := range []string{"remove", "erase", "drop", "x"} {
		if _, ok := r.Find(word); ok {
			t.Errorf("%q registered despite the collision", word)
		}
	}
	if err := r.Register(&stubCmd{}); err == nil {
		t.Error("a command without a name must be rejected")
	}
}

func TestRegistry_AllSorted(t *testing.T) {
	r := commands.NewRegistry()
	for _, name := range []string{"theme", "add", "list"} {
		if err := r.Register(&stubCmd{name: name}); err != nil {
			t.Fatalf("register %s: %v", name, err)
		}
	}

	var got []string
	for _, c := range r.All() {
		got = append(got, c.Name())
	}
	if len(got) != 3 || got[0] != "add" || got[1] != "list" || got[2] != "theme" {
		t.Errorf("All() = %v", got)
	}
}
