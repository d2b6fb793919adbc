/*
Command mdq is an interactive tool for exploring markdown documents.

It loads a markdown file, shows its element tree and plain text, and lets the
user search the plain text and step through the hits. Elements may be queried
with XPath expressions, the HTML rendering of a document with CSS selectors.

	mdq -file README.md -config mdq.yaml -trace Debug

Search parameters may be set in a YAML configuration file:

	search:
	  language: de
	  ignorecase: true
	  wholewords: false
	  suggestions: 10
	trace:
	  marktext.search: Debug

Type "help" at the prompt for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/core/parameters"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'marktext.cli'
func tracer() tracing.Trace {
	return tracing.Select("marktext.cli")
}

var tracingKeys = []string{
	"marktext.cli",
	"marktext.config",
	"marktext.markdown",
	"marktext.search",
	"marktext.blocks",
	"marktext.html",
}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	confname := flag.String("config", "", "YAML configuration file")
	filename := flag.String("file", "", "Markdown file to load")
	flag.Parse()

	// read configuration and set up logging
	conf, err := loadConfig(*confname)
	if err != nil {
		core.UserError(err)
		os.Exit(1)
	}
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	traceconf := testconfig.Conf{"tracing.adapter": "go"}
	for _, key := range tracingKeys {
		traceconf["trace."+key] = *tlevel
	}
	for key, value := range conf {
		if strings.HasPrefix(key, "trace.") {
			traceconf[key] = value
		}
	}
	if err := trace2go.ConfigureRoot(traceconf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(2)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	pterm.Info.Println("Welcome to the markdown query tool") // colored welcome message
	tracer().Infof("Trace level is %s", *tlevel)
	//
	// set up REPL
	repl, err := readline.NewEx(&readline.Config{
		Prompt:       "md > ",
		AutoComplete: completer(),
	})
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	defer repl.Close()
	intp := NewIntp(parameters.FromConfiguration(conf))
	intp.repl = repl
	//
	// load document provided by flag
	if *filename != "" {
		if err := intp.load(*filename); err != nil {
			core.UserError(err)
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()                             // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func loadConfig(name string) (testconfig.Conf, error) {
	if name == "" {
		return testconfig.Conf{}, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot open configuration %s", name)
	}
	defer f.Close()
	return parameters.LoadYAML(f)
}

func completer() *readline.PrefixCompleter {
	params := []readline.PrefixCompleterInterface{}
	for _, p := range []string{"language", "ignorecase", "diacritics", "wholewords", "suggestions"} {
		params = append(params, readline.PcItem(p))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("load"),
		readline.PcItem("tree"),
		readline.PcItem("clear"),
		readline.PcItem("blocks"),
		readline.PcItem("runs"),
		readline.PcItem("find"),
		readline.PcItem("find:exact"),
		readline.PcItem("find:word"),
		readline.PcItem("next"),
		readline.PcItem("prev"),
		readline.PcItem("focus"),
		readline.PcItem("select"),
		readline.PcItem("css"),
		readline.PcItem("html"),
		readline.PcItem("suggest"),
		readline.PcItem("set", params...),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		quit, err := intp.execute(cmd)
		if err != nil {
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}
