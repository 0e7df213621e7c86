package cmd

import (
	"flag"
	"slices"
	"testing"

	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	top := flag.NewFlagSet("cartera", flag.ContinueOnError)
	top.String("data", "", "")
	commander := subcommands.NewCommander(top, "cartera")
	Register(commander)

	c := Completion(commander, top)

	for _, name := range []string{"holdings", "ticker", "movements", "compare", "analysis", "publish", "check", "fetch-index", "serve", "topic"} {
		if _, ok := c.Sub[name]; !ok {
			t.Errorf("Completion() has no %q command", name)
		}
	}
	if _, ok := c.Flags["data"]; !ok {
		t.Errorf("Completion() has no -data flag")
	}

	movements := c.Sub["movements"]
	if movements == nil {
		t.Fatal("Completion() has no movements command")
	}
	if got := movements.Flags["range"].Predict(""); !slices.Contains(got, "ytd") {
		t.Errorf("movements -range predicts %v, want ytd among them", got)
	}
	if got := movements.Flags["type"].Predict(""); !slices.Equal(got, []string{"buy", "sell", "dividend"}) {
		t.Errorf("movements -type predicts %v, want buy, sell, dividend", got)
	}

	topic := c.Sub["topic"]
	if topic == nil || topic.Args == nil {
		t.Fatal("Completion() has no topic arguments")
	}
	if got := topic.Args.Predict(""); !slices.Contains(got, "movements") {
		t.Errorf("topic predicts %v, want movements among them", got)
	}
}
