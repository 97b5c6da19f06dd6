// Command variant renders the example values, parses JSON into values and keeps named
// values in a badger store under the data directory.
package main

import (
	"io"
	"os"
	"os/signal"

	"github.com/alexflint/go-arg"

	"variant.mleku.dev"
	"variant.mleku.dev/chk"
	"variant.mleku.dev/config"
	"variant.mleku.dev/context"
	"variant.mleku.dev/log"
	"variant.mleku.dev/lol"
)

type demoCmd struct{}

type parseCmd struct {
	Files  []string `arg:"positional" help:"files holding JSON values, standard input when none"`
	Indent string   `arg:"-i,--indent" help:"indent JSON output with this string, overrides INDENT"`
	YAML   bool     `arg:"-y,--yaml" help:"also render each value as YAML"`
	Strict bool     `arg:"-s,--strict" help:"reject objects that repeat a key"`
}

type putCmd struct {
	Name string `arg:"positional,required" help:"name to store the value under"`
	File string `arg:"positional" help:"file holding one value, standard input when empty"`
	YAML bool   `arg:"-y,--yaml" help:"the input is YAML rather than JSON"`
}

type getCmd struct {
	Name string `arg:"positional,required" help:"name of the stored value"`
	YAML bool   `arg:"-y,--yaml" help:"print YAML rather than JSON"`
}

type listCmd struct{}

type delCmd struct {
	Name string `arg:"positional,required" help:"name of the stored value"`
}

type envCmd struct {
	Usage bool `arg:"-u,--usage" help:"describe the variables instead of printing them"`
}

type versionCmd struct{}

type runArgs struct {
	Demo    *demoCmd    `arg:"subcommand:demo" help:"print the example values as text and JSON"`
	Parse   *parseCmd   `arg:"subcommand:parse" help:"parse JSON values and print their renderings"`
	Put     *putCmd     `arg:"subcommand:put" help:"store a value under a name"`
	Get     *getCmd     `arg:"subcommand:get" help:"print a stored value"`
	List    *listCmd    `arg:"subcommand:list" help:"print the names of stored values"`
	Del     *delCmd     `arg:"subcommand:del" help:"delete a stored value"`
	Env     *envCmd     `arg:"subcommand:env" help:"print the configuration as a shell script"`
	Version *versionCmd `arg:"subcommand:version" help:"print the version"`
}

func (runArgs) Description() string { return "variant: " + variant.Description }

var args runArgs

func main() {
	p := arg.MustParse(&args)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}
	os.Exit(start())
}

func start() (code int) {
	cfg, err := config.New()
	if chk.E(err) {
		return 1
	}
	lol.SetLogLevel(cfg.LogLevel)
	defer cfg.StartProfile()()
	ctx, cancel := signal.NotifyContext(context.Bg(), os.Interrupt)
	defer cancel()
	if err = run(ctx, args, cfg, os.Stdin, os.Stdout); err != nil {
		log.E.Ln(err)
		return 1
	}
	return 0
}

// run executes the selected subcommand.
func run(c context.T, a runArgs, cfg *config.C, in io.Reader, out io.Writer) (err error) {
	switch {
	case a.Demo != nil:
		return demo(out)
	case a.Parse != nil:
		return parse(c, a.Parse, cfg, in, out)
	case a.Put != nil:
		return put(a.Put, cfg, in)
	case a.Get != nil:
		return get(a.Get, cfg, out)
	case a.List != nil:
		return list(c, cfg, out)
	case a.Del != nil:
		return del(a.Del, cfg)
	case a.Env != nil:
		if a.Env.Usage {
			cfg.PrintHelp(out)
		} else {
			cfg.PrintEnv(out)
		}
	case a.Version != nil:
		_, err = io.WriteString(out, variant.Version+"\n")
	default:
		err = log.E.Err("no subcommand given")
	}
	return
}
