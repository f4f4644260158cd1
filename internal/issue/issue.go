// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	CompilerNotFoundId Id = iota + 1
	CompilerVersionParseId
	UnsupportedCompilerVersionId
	CompilationFailedId
	ReplFailedId
	GraphDecodeFailedId
	DependencyCycleId
	ConfigLoadFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // pursctl and compiler documentation
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

// Render renders the issue as terminal Markdown. An empty stylePath picks
// the "auto" glamour style.
func (i *Issue) Render(stylePath string) (string, error) {
	var md strings.Builder
	md.WriteString(string(i.mdMsg))
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		md.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
		for _, link := range i.extLinks {
			md.WriteString("- <" + string(link) + ">\n")
		}
	}
	if stylePath == "" {
		stylePath = "auto"
	}
	return render(md.String(), stylePath)
}

var (
	render = glamour.Render

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# PureScript compiler not found!

None of the candidate commands answered ` + "`--version`" + `.
On Windows pursctl tries ` + "`purs.cmd`" + ` first and then ` + "`purs`" + `;
everywhere else it only tries ` + "`purs`" + `.

## Things you can try:
- Install the compiler, for example through npm:
~~~
$ npm install --global purescript
~~~

- Make sure the directory holding ` + "`purs`" + ` is on your PATH
- Point pursctl at a specific binary:
~~~
$ pursctl --purs /opt/purescript/bin/purs compile
~~~

- Or set it once in your config file:
~~~cue
compiler: command: "/opt/purescript/bin/purs"
~~~`,
		extLinks: []HttpLink{"https://github.com/purescript/documentation/blob/master/guides/Getting-Started.md"},
	}

	compilerVersionParseIssue = &Issue{
		id: CompilerVersionParseId,
		mdMsg: `
# Could not read the compiler version!

The compiler ran, but ` + "`purs --version`" + ` did not print a version of the form
MAJOR.MINOR.PATCH. pursctl does not try other candidates in this case.

## Things you can try:
- Run the command yourself and check its output:
~~~
$ purs --version
~~~

- Check that ` + "`purs`" + ` on your PATH is the PureScript compiler and not a
  different tool or a broken wrapper script
- Run with verbose mode to see which command was probed:
~~~
$ pursctl --verbose compile
~~~`,
	}

	unsupportedCompilerVersionIssue = &Issue{
		id: UnsupportedCompilerVersionId,
		mdMsg: `
# Unsupported compiler version!

pursctl requires a compiler whose minor version is at least 15 and whose
patch version is at least 4 (for example 0.15.4 or 0.15.15).

## Things you can try:
- Upgrade the compiler:
~~~
$ npm install --global purescript@0.15
~~~

- If several compilers are installed, select the right one:
~~~
$ pursctl --purs ./node_modules/.bin/purs compile
~~~`,
		extLinks: []HttpLink{"https://github.com/purescript/purescript/releases"},
	}

	compilationFailedIssue = &Issue{
		id: CompilationFailedId,
		mdMsg: `
# Compilation failed!

The compiler exited with a non-zero status. Its diagnostics are shown above.

## Things you can try:
- Fix the reported errors and run the build again
- Check that your source globs cover every module you import:
~~~
$ pursctl config show
~~~

- Pass extra flags straight to the compiler after ` + "`--`" + `:
~~~
$ pursctl compile -- --json-errors
~~~`,
	}

	replFailedIssue = &Issue{
		id: ReplFailedId,
		mdMsg: `
# The REPL exited with an error!

## Things you can try:
- Make sure the project compiles first:
~~~
$ pursctl compile
~~~

- Check that your source globs include the modules you want to load`,
	}

	graphDecodeFailedIssue = &Issue{
		id: GraphDecodeFailedId,
		mdMsg: `
# Could not read the module graph!

Either ` + "`purs graph`" + ` failed, or it printed JSON that does not match the
expected shape: an object mapping module names to
` + "`{\"path\": string, \"depends\": [string]}`" + `.

## Things you can try:
- Make sure the sources compile:
~~~
$ pursctl compile
~~~

- Run the graph command directly and inspect its output:
~~~
$ purs graph 'src/**/*.purs'
~~~`,
	}

	dependencyCycleIssue = &Issue{
		id: DependencyCycleId,
		mdMsg: `
# Dependency cycle detected!

The modules listed above import each other, so they have no build order.

## Things you can try:
- Move the shared definitions into a new module that both can import
- Print the raw graph to find the offending imports:
~~~
$ pursctl graph --format json
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where pursctl looks for its config file:
~~~
$ pursctl config path
~~~

- Write a fresh default config:
~~~
$ pursctl config init
~~~

- Check the file for CUE syntax errors and unknown fields. A valid file
  looks like:
~~~cue
compiler: {
	command: ""
	extra_args: []
}
sources: globs: ["src/**/*.purs", "test/**/*.purs"]
ui: {
	verbose: false
	color_scheme: "auto"
}
~~~`,
		extLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	issues = map[Id]*Issue{
		compilerNotFoundIssue.Id():           compilerNotFoundIssue,
		compilerVersionParseIssue.Id():       compilerVersionParseIssue,
		unsupportedCompilerVersionIssue.Id(): unsupportedCompilerVersionIssue,
		compilationFailedIssue.Id():          compilationFailedIssue,
		replFailedIssue.Id():                 replFailedIssue,
		graphDecodeFailedIssue.Id():          graphDecodeFailedIssue,
		dependencyCycleIssue.Id():            dependencyCycleIssue,
		configLoadFailedIssue.Id():           configLoadFailedIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int {
		return int(a.id) - int(b.id)
	})
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
