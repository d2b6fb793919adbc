package main

import (
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/dustin/go-humanize"
	"github.com/npillmayer/marktext/backend/mdhtml"
	"github.com/npillmayer/marktext/core"
	"github.com/npillmayer/marktext/core/parameters"
	"github.com/npillmayer/marktext/engine/blocks"
	"github.com/npillmayer/marktext/engine/search"
	"github.com/npillmayer/marktext/input/markdown"
	"github.com/npillmayer/marktext/input/markdown/xpathadapter"
	"github.com/pterm/pterm"
	"golang.org/x/net/html"
)

// Intp is our interpreter object
type Intp struct {
	repl    *readline.Instance
	regs    *parameters.Registers
	name    string
	source  []byte
	doc     *blocks.Document
	session *search.Session
	vocab   *search.Vocabulary
	root    *html.Node // HTML rendering, created on demand
}

// NewIntp creates an interpreter without a document.
func NewIntp(regs *parameters.Registers) *Intp {
	if regs == nil {
		regs = parameters.NewRegisters()
	}
	return &Intp{regs: regs}
}

// Op codes of commands.
const (
	QUIT int = iota
	HELP
	LOAD
	TREE
	CLEAR
	BLOCKS
	RUNS
	FIND
	NEXT
	PREV
	FOCUS
	SELECT
	CSS
	HTML
	SUGGEST
	SET
)

var commands = map[string]int{
	"quit":    QUIT,
	"exit":    QUIT,
	"help":    HELP,
	"load":    LOAD,
	"tree":    TREE,
	"clear":   CLEAR,
	"plain":   CLEAR,
	"blocks":  BLOCKS,
	"runs":    RUNS,
	"find":    FIND,
	"next":    NEXT,
	"prev":    PREV,
	"focus":   FOCUS,
	"select":  SELECT,
	"xpath":   SELECT,
	"css":     CSS,
	"html":    HTML,
	"suggest": SUGGEST,
	"set":     SET,
}

// Command is a parsed input line: "name[:format] [argument]".
type Command struct {
	code   int
	name   string
	format string
	arg    string
}

func parseCommand(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	head, arg := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		head, arg = line[:i], strings.TrimSpace(line[i+1:])
	}
	c := strings.SplitN(head, ":", 2) // e.g.  "find:word" or "runs:3"
	cmd := &Command{name: strings.ToLower(c[0]), arg: arg}
	if len(c) > 1 {
		cmd.format = strings.ToLower(c[1])
	}
	code, ok := commands[cmd.name]
	if !ok {
		return nil, core.Error(core.EINVALID, "unknown command %q, try 'help'", cmd.name)
	}
	cmd.code = code
	switch code {
	case FIND:
		switch cmd.format {
		case "", "exact", "word":
		default:
			return nil, core.Error(core.EINVALID, "unknown search mode %q", cmd.format)
		}
		if cmd.arg == "" {
			return nil, core.Error(core.EMISSING, "find needs a query")
		}
	case LOAD, SELECT, CSS, SUGGEST:
		if cmd.arg == "" {
			return nil, core.Error(core.EMISSING, "%s needs an argument", cmd.name)
		}
	}
	tracer().Debugf("parse command = %v", *cmd)
	return cmd, nil
}

func (intp *Intp) execute(cmd *Command) (bool, error) {
	switch cmd.code {
	case QUIT:
		return true, nil
	case HELP:
		help(cmd.arg)
		return false, nil
	case LOAD:
		return false, intp.load(cmd.arg)
	case SET:
		return false, intp.set(cmd.arg)
	}
	if intp.doc == nil {
		return false, core.Error(core.EMISSING, "no document loaded, use 'load <file>'")
	}
	switch cmd.code {
	case TREE:
		return false, intp.tree()
	case CLEAR:
		pterm.Println(intp.doc.Plain())
	case BLOCKS:
		return false, intp.blocks()
	case RUNS:
		return false, intp.runs(cmd.format)
	case FIND:
		intp.find(cmd.arg, cmd.format)
	case NEXT:
		if _, ok := intp.session.Next(); !ok {
			pterm.Info.Println("no hits")
			break
		}
		intp.focus()
	case PREV:
		if _, ok := intp.session.Prev(); !ok {
			pterm.Info.Println("no hits")
			break
		}
		intp.focus()
	case FOCUS:
		intp.focus()
	case SELECT:
		return false, intp.xpath(cmd.arg)
	case CSS:
		return false, intp.css(cmd.arg)
	case HTML:
		if err := mdhtml.Write(os.Stdout, intp.doc.Source()); err != nil {
			return false, err
		}
		pterm.Println()
	case SUGGEST:
		return false, intp.suggest(cmd.arg)
	}
	return false, nil
}

// --- Commands --------------------------------------------------------------

func (intp *Intp) load(name string) error {
	source, err := os.ReadFile(name)
	if err != nil {
		return core.WrapError(err, core.EMISSING, "cannot read %s", name)
	}
	intp.name, intp.source = name, source
	md := markdown.Parse(string(source))
	intp.doc = blocks.Partition(md)
	intp.session = search.NewSession(intp.doc.Plain(), intp.doc.Spans(), search.NewFinder(intp.regs))
	intp.vocab = search.NewVocabulary(intp.doc.Plain())
	intp.root = nil
	tracer().Infof("loaded %s", name)
	pterm.Info.Printfln("%s: %s, %d elements, %d blocks, %s words",
		name, humanize.Bytes(uint64(len(source))), len(md.Elements),
		len(intp.doc.Blocks), humanize.Comma(int64(intp.vocab.Size())))
	return nil
}

func (intp *Intp) tree() error {
	md := intp.doc.Source()
	root := pterm.TreeNode{Text: intp.name}
	for i := range md.Elements {
		root.Children = append(root.Children, treeNode(&md.Elements[i]))
	}
	return pterm.DefaultTree.WithRoot(root).Render()
}

func treeNode(e *markdown.Element) pterm.TreeNode {
	n := pterm.TreeNode{Text: e.String()}
	for i := range e.Children {
		n.Children = append(n.Children, treeNode(&e.Children[i]))
	}
	return n
}

func (intp *Intp) blocks() error {
	data := pterm.TableData{{"#", "Kind", "Bounds", "Size", "Text"}}
	for i, b := range intp.doc.Blocks {
		data = append(data, []string{
			strconv.Itoa(i),
			b.Kind.String(),
			b.Bounds.String(),
			humanize.Bytes(uint64(len(b.Plain))),
			excerpt(b.Plain, 40),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// runs lists the style runs of a block, or of the block in focus.
func (intp *Intp) runs(arg string) error {
	n := -1
	if arg != "" {
		i, err := strconv.Atoi(arg)
		if err != nil {
			return core.WrapError(err, core.EINVALID, "block number expected, got %q", arg)
		}
		n = i
	} else if b, _, ok := intp.session.Focus(); ok {
		n = b
	}
	if n < 0 || n >= len(intp.doc.Blocks) {
		return core.Error(core.EOUTOFRANGE, "no block #%d", n)
	}
	data := pterm.TableData{{"Position", "Markup", "Text"}}
	err := intp.doc.Blocks[n].ForEachStyleRun(func(run blocks.Run) error {
		data = append(data, []string{
			strconv.Itoa(run.Position),
			run.Markup.String(),
			excerpt(run.Text, 40),
		})
		return nil
	})
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot iterate style runs")
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) find(query, mode string) {
	intp.regs.Begingroup()
	switch mode {
	case "exact":
		intp.regs.Push(parameters.P_IGNORECASE, false)
	case "word":
		intp.regs.Push(parameters.P_WHOLEWORDS, true)
	}
	intp.session = search.NewSession(intp.doc.Plain(), intp.doc.Spans(), search.NewFinder(intp.regs))
	intp.regs.Endgroup()
	n := intp.session.Search(query)
	pterm.Info.Printfln("%s hits for %q", humanize.Comma(int64(n)), query)
	if n > 0 {
		intp.focus()
	}
}

// focus prints the block of the focused hit, with the hit highlighted.
func (intp *Intp) focus() {
	i, hit, ok := intp.session.Current()
	if !ok {
		pterm.Info.Println("no hit in focus")
		return
	}
	b, local, ok := intp.session.Focus()
	if !ok {
		pterm.Info.Printfln("hit %d/%d at %s crosses a block boundary", i+1, intp.session.Count(), hit)
		return
	}
	plain := intp.doc.Blocks[b].Plain
	kinds := []string{}
	for _, e := range intp.doc.ElementsIn(hit) {
		kinds = append(kinds, e.Kind.String())
	}
	pterm.Info.Printfln("hit %d/%d in block #%d at %s, elements %v",
		i+1, intp.session.Count(), b, local, kinds)
	pterm.Println(plain[:local.Start] +
		pterm.NewStyle(pterm.BgYellow, pterm.FgBlack).Sprint(plain[local.Start:local.End]) +
		plain[local.End:])
}

func (intp *Intp) xpath(expr string) error {
	md := intp.doc.Source()
	elems, err := xpathadapter.Select(&md, expr)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Kind", "Element", "Plain"}}
	for _, e := range elems {
		data = append(data, []string{e.Kind.String(), excerpt(e.Markup(), 30), excerpt(e.Plain(), 30)})
	}
	pterm.Info.Printfln("%d elements selected", len(elems))
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) css(selector string) error {
	if intp.root == nil {
		intp.root = mdhtml.Render(intp.doc.Source())
	}
	nodes, err := mdhtml.Select(intp.root, selector)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"Tag", "Text"}}
	for _, n := range nodes {
		data = append(data, []string{n.Data, excerpt(mdhtml.InnerText(n), 40)})
	}
	pterm.Info.Printfln("%d nodes selected", len(nodes))
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func (intp *Intp) suggest(prefix string) error {
	suggestions := intp.vocab.Suggest(prefix, intp.regs.N(parameters.P_SUGGESTIONS))
	if len(suggestions) == 0 {
		pterm.Info.Printfln("no words starting with %q", prefix)
		return nil
	}
	data := pterm.TableData{{"Word", "Count"}}
	for _, s := range suggestions {
		data = append(data, []string{s.Word, humanize.Comma(int64(s.Count))})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// set sets a search parameter, or lists all of them if arg is empty.
// The new value is in effect for the next search.
func (intp *Intp) set(arg string) error {
	fields := strings.Fields(arg)
	if len(fields) == 0 {
		data := pterm.TableData{{"Parameter", "Value"}}
		for p := parameters.P_SEARCHLANGUAGE; p < parameters.P_STOPPER; p++ {
			data = append(data, []string{p.String(), valueString(intp.regs.Get(p))})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
	if len(fields) != 2 {
		return core.Error(core.EINVALID, "usage: set <parameter> <value>")
	}
	key, err := parameters.Lookup(fields[0])
	if err != nil {
		return err
	}
	if err = intp.regs.Set(key, fields[1]); err != nil {
		return err
	}
	tracer().Infof("%s = %v", key, intp.regs.Get(key))
	return nil
}

func valueString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	}
	return "?"
}

// excerpt shortens s to at most n runes and makes line breaks visible.
func excerpt(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", "⏎")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	switch strings.ToLower(topic) {
	case "find", "search":
		pterm.Info.Println("Searching")
		pterm.Println(`
	find <query>         search the plain text, using the current parameters
	find:exact <query>   search case-sensitively
	find:word <query>    search for whole words only
	next, prev           move the focus to the next/previous hit
	focus                show the hit in focus
	suggest <prefix>     list words of the document starting with prefix
	set                  list the search parameters
	set <param> <value>  set a search parameter (language, ignorecase,
	                     diacritics, wholewords, suggestions)
	`)
	case "select", "xpath", "css":
		pterm.Info.Println("Queries")
		pterm.Println(`
	select <xpath>       select elements, e.g. "//header[@level='2']" or "//bold/italic".
	                     Element names are text, ul, header, quote, italic, bold,
	                     strike, rule, code, link, ol, blockcode and image.
	css <selector>       select nodes of the HTML rendering, e.g. "blockquote a[href]"
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	load <file>          load a markdown document
	tree                 show the element tree
	clear                show the plain text
	blocks               list the blocks of the document
	runs[:<n>]           list the style runs of block n or of the block in focus
	find, next, prev, focus, suggest, set     see 'help find'
	select, css          see 'help select'
	html                 show the HTML rendering
	quit                 leave
	`)
	}
}
