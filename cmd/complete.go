package cmd

import (
	"flag"

	"github.com/etnz/cartera"
	"github.com/etnz/cartera/date"
	"github.com/etnz/cartera/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors are the values of the flags that have a known set of values.
var flagPredictors = map[string]complete.Predictor{
	"range":       predict.Set(date.Presets),
	"type":        predict.Set{string(cartera.Buy), string(cartera.Sell), string(cartera.Dividend)},
	"sort":        predict.Set{string(cartera.ByDate), string(cartera.ByTicker), string(cartera.ByType), string(cartera.ByQuantity), string(cartera.ByPrice), string(cartera.ByAmount)},
	"dir":         predict.Set{"asc", "desc"},
	"data":        predict.Dirs("*"),
	"config":      predict.Files("*.yaml"),
	"o":           predict.Dirs("*"),
	"frontmatter": predict.Files("*"),
}

// predictFlags returns the predictors of every flag of fs.
func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		if p, ok := flagPredictors[f.Name]; ok {
			flags[f.Name] = p
			return
		}
		flags[f.Name] = predict.Something
	})
	return flags
}

// Completion returns the shell completion of the commands registered in c.
func Completion(c *subcommands.Commander, top *flag.FlagSet) *complete.Command {
	cmd := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(top),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, sub subcommands.Command) {
		fs := flag.NewFlagSet(sub.Name(), flag.ContinueOnError)
		sub.SetFlags(fs)
		cc := &complete.Command{Flags: predictFlags(fs)}
		if sub.Name() == "topic" {
			if topics, err := docs.GetAllTopics(); err == nil {
				cc.Args = predict.Set(append(topics, docs.All))
			}
		}
		cmd.Sub[sub.Name()] = cc
	})
	return cmd
}
