// Package main is the main entrypoint to the semc application
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lestrrat-go/strftime"

	"github.com/tanema/semc/src/ast"
	"github.com/tanema/semc/src/check"
	"github.com/tanema/semc/src/conf"
	"github.com/tanema/semc/src/parse"
)

var (
	cfg          *conf.Config
	listDecls    bool
	listBuiltins bool
	dumpTree     bool
	parseOnly    bool
	showVersion  bool
	executeStat  string
	interactive  bool
	configPath   string
	timestamp    bool
)

func init() {
	flag.BoolVar(&listDecls, "l", false, "list global declarations")
	flag.BoolVar(&listBuiltins, "b", false, "include built-ins when listing declarations")
	flag.BoolVar(&dumpTree, "a", false, "print the syntax tree with types and bindings")
	flag.BoolVar(&parseOnly, "p", false, "parse only")
	flag.BoolVar(&showVersion, "v", false, "show version information")
	flag.StringVar(&executeStat, "e", "", "check string 'stat'")
	flag.BoolVar(&interactive, "i", false, "enter interactive mode after checking a program")
	flag.StringVar(&configPath, "c", "", "path to a semc.yml configuration")
	flag.BoolVar(&timestamp, "t", false, "print a timestamped header before each report")
}

func main() {
	flag.Usage = printUsage
	flag.Parse()

	var err error
	cfg, err = conf.Load(configPath)
	checkErr(err)

	args := flag.Args()
	if showVersion {
		printVersion()
	}
	if stat, _ := os.Stdin.Stat(); (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		checkErr(err)
		checkSrc("<stdin>", string(data))
	} else if executeStat != "" {
		checkSrc("<string>", executeStat)
		if interactive {
			runREPL(executeStat)
		}
	} else if len(args) == 0 && !showVersion {
		runREPL("")
	} else if len(args) > 0 {
		for _, path := range args {
			checkFile(path)
		}
		if interactive {
			data, err := os.ReadFile(args[len(args)-1])
			checkErr(err)
			runREPL(string(data))
		}
	} else if !showVersion {
		printUsage()
	}
}

func printVersion() {
	fmt.Fprintf(os.Stderr, "%v\n", conf.FullVersion())
}

func printUsage() {
	printVersion()
	fmt.Fprint(os.Stderr, "\nUsage: semc [options] [files]\n")
	flag.PrintDefaults()
}

func checkErr(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func printHeader(name string) {
	if !timestamp {
		return
	}
	strf, err := strftime.New(cfg.TimeFormat)
	checkErr(err)
	fmt.Fprintf(os.Stderr, "[%s] %s\n", strf.FormatString(time.Now()), name)
}

func checkSrc(path, src string) {
	printHeader(path)
	if parseOnly {
		prog, err := parse.Source(path, src)
		checkErr(err)
		report(prog, nil)
		return
	}
	checker, err := check.New(cfg)
	checkErr(err)
	res, err := checker.Source(path, src)
	checkErr(err)
	report(res.Program, res)
}

func checkFile(path string) {
	printHeader(path)
	if parseOnly {
		prog, err := parse.File(path)
		checkErr(err)
		report(prog, nil)
		return
	}
	checker, err := check.New(cfg)
	checkErr(err)
	res, err := checker.File(path)
	checkErr(err)
	report(res.Program, res)
}

// report prints the requested listings. res is nil in parse only mode.
func report(prog *ast.Program, res *check.Result) {
	if dumpTree {
		checkErr(ast.Fprint(os.Stderr, prog))
	}
	if res == nil {
		return
	}
	if listDecls && listBuiltins {
		fmt.Fprint(os.Stderr, res.Verbose())
	} else if listDecls {
		fmt.Fprint(os.Stderr, res.String())
	}
}

func runREPL(seed string) {
	printVersion()
	fmt.Fprint(os.Stderr, "Press ctrl-c to quit or clear current buffer.\n")
	checkErr(repl(seed))
}
