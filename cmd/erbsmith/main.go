// Command erbsmith lints HTML+ERB templates and auto-fixes a subset
// of what it finds.
package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"

	flag "github.com/spf13/pflag"

	"erbsmith/internal/config"
	"erbsmith/internal/engine"
	fixpkg "erbsmith/internal/fix"
	"erbsmith/internal/lint"
	"erbsmith/internal/log"
	"erbsmith/internal/output"
	"erbsmith/internal/rules"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: erbsmith <command> [flags] [files...]

Commands:
  check     Lint ERB templates (reads stdin when piped)
  fix       Auto-fix lint issues in place
  rules     List known rules and their metadata
  init      Generate a default .erbsmith.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'erbsmith <command> --help' for more information on a command.
`

func run() int {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "fix":
		return runFix(os.Args[2:])
	case "rules":
		return runRules(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "erbsmith: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("erbsmith %s\n", version)
}

// checkFlags holds the flags shared by check and fix.
type checkFlags struct {
	configPath  string
	format      string
	noColor     bool
	quiet       bool
	noGitignore bool
	verbose     bool
	failLevel   string
}

func (cf *checkFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&cf.configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&cf.format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&cf.noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&cf.quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVar(&cf.noGitignore, "no-gitignore", false, "Disable .gitignore filtering when walking directories")
	fs.BoolVarP(&cf.verbose, "verbose", "v", false, "Verbose progress output on stderr")
	fs.StringVar(&cf.failLevel, "fail-level", "", "Minimum severity for a failing exit code (hint, info, warning, error)")
}

// runCheck implements the "check" subcommand.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var cf checkFlags
	cf.register(fs)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: erbsmith check [flags] [files...]\n\n"+
			"Lint ERB templates.\n\n"+
			"Files can be paths, directories (walked recursively for *.erb), or glob patterns.\n"+
			"With no file arguments, reads from stdin if piped.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	linter, err := buildLinter(&cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", err)
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		if !isStdinPipe() {
			return 0
		}
		return checkStdin(linter, &cf)
	}
	return checkFiles(linter, files, &cf)
}

// runFix implements the "fix" subcommand.
func runFix(args []string) int {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	var cf checkFlags
	var (
		unsafe bool
		diff   bool
		dryRun bool
	)
	cf.register(fs)
	fs.BoolVar(&unsafe, "unsafe", false, "Apply unsafe fixes as well")
	fs.BoolVar(&diff, "diff", false, "Print a unified diff instead of writing files")
	fs.BoolVar(&dryRun, "dry-run", false, "Compute fixes without writing files")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: erbsmith fix [flags] [files...]\n\n"+
			"Auto-fix lint issues in ERB templates.\n\n"+
			"Only fixes tagged safe are applied unless --unsafe is given.\n"+
			"Stdin is not supported (files must be writable).\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	files := fs.Args()
	if len(files) == 0 {
		if isStdinPipe() {
			fmt.Fprintf(os.Stderr, "erbsmith: cannot fix stdin in place\n")
			return 2
		}
		return 0
	}

	linter, err := buildLinter(&cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", err)
		return 2
	}

	return fixFiles(linter, files, &cf, unsafe, diff, dryRun)
}

// runRules implements the "rules" subcommand.
func runRules(args []string) int {
	fs := flag.NewFlagSet("rules", flag.ContinueOnError)
	var configPath string
	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cf := checkFlags{configPath: configPath}
	linter, err := buildLinter(&cf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", err)
		return 2
	}

	for _, r := range linter.Catalog.All() {
		fixable := "no"
		switch {
		case r.SafeAutofixable():
			fixable = "safe"
		case r.UnsafeAutofixable():
			fixable = "unsafe"
		}
		enabled := "off"
		if linter.Config.Enabled(r) {
			enabled = "on"
		}
		fmt.Printf("%-26s %-8s %-4s fix=%-7s %s\n",
			r.Name(), r.DefaultSeverity(), enabled, fixable, r.Description())
	}
	return 0
}

// runInit implements the "init" subcommand.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: erbsmith init\n\n"+
			"Generate a default .erbsmith.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "erbsmith: init takes no arguments\n")
		return 2
	}

	const configFile = ".erbsmith.yml"
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %s already exists\n", configFile)
		return 2
	}

	data, err := config.DumpDefaults(rules.NewCatalog())
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: marshalling config: %v\n", err)
		return 2
	}
	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "erbsmith: created %s\n", configFile)
	return 0
}

// buildLinter loads configuration, builds the catalog, and loads any
// configured extensions. Extension loading happens here, before any
// concurrent use of the catalog.
func buildLinter(cf *checkFlags) (*engine.Linter, error) {
	cfg, err := loadConfig(cf.configPath)
	if err != nil {
		return nil, err
	}
	if cf.failLevel != "" {
		sev, err := lint.ParseSeverity(cf.failLevel)
		if err != nil {
			return nil, err
		}
		cfg.FailLevel = &sev
	}

	logger := &log.Logger{Enabled: cf.verbose, W: os.Stderr}

	catalog := rules.NewCatalog()
	if len(cfg.Extensions) > 0 {
		logger.Printf("loading %d extension(s)", len(cfg.Extensions))
		if err := catalog.LoadExtensions(cfg.Extensions); err != nil {
			return nil, err
		}
	}
	logger.Printf("catalog has %d rules", catalog.Len())

	return &engine.Linter{Catalog: catalog, Config: cfg}, nil
}

// loadConfig loads the named config file, or discovers one from the
// working directory. A missing config means all defaults.
func loadConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return &config.Config{}, nil
	}
	discovered, err := config.Discover(cwd)
	if err != nil || discovered == "" {
		return &config.Config{}, nil
	}
	return config.Load(discovered)
}

func checkFiles(linter *engine.Linter, fileArgs []string, cf *checkFlags) int {
	useGitignore := !cf.noGitignore
	files, err := engine.ResolveFiles(fileArgs, engine.ResolveOpts{UseGitignore: &useGitignore})
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		return 0
	}

	runner := &engine.Runner{Linter: linter}
	result := runner.Run(files)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", e)
	}

	if !cf.quiet {
		if err := formatterFor(cf).Format(os.Stdout, result.Results); err != nil {
			fmt.Fprintf(os.Stderr, "erbsmith: error writing output: %v\n", err)
			return 2
		}
	}

	if len(result.Errors) > 0 {
		return 2
	}
	return exitCode(linter, result.Results)
}

func checkStdin(linter *engine.Linter, cf *checkFlags) int {
	source, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: reading stdin: %v\n", err)
		return 2
	}

	res := linter.Lint("<stdin>", source)
	results := []*engine.Result{res}

	if !cf.quiet {
		if err := formatterFor(cf).Format(os.Stdout, results); err != nil {
			fmt.Fprintf(os.Stderr, "erbsmith: error writing output: %v\n", err)
			return 2
		}
	}
	return exitCode(linter, results)
}

func fixFiles(linter *engine.Linter, fileArgs []string, cf *checkFlags, unsafe, diff, dryRun bool) int {
	useGitignore := !cf.noGitignore
	files, err := engine.ResolveFiles(fileArgs, engine.ResolveOpts{UseGitignore: &useGitignore})
	if err != nil {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", err)
		return 2
	}
	if len(files) == 0 {
		return 0
	}

	mode := fixpkg.SafeOnly
	if unsafe {
		mode = fixpkg.IncludeUnsafe
	}
	fixer := &fixpkg.Fixer{
		Linter: linter,
		Mode:   mode,
		DryRun: diff || dryRun,
	}
	result := fixer.Fix(files)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "erbsmith: %v\n", e)
	}

	if diff {
		if err := (&output.DiffFormatter{}).Format(os.Stdout, result.Files); err != nil {
			fmt.Fprintf(os.Stderr, "erbsmith: error writing output: %v\n", err)
			return 2
		}
	} else if !cf.quiet {
		applied, skipped := 0, 0
		for _, ff := range result.Files {
			applied += ff.Applied
			skipped += len(ff.Skipped)
		}
		fmt.Fprintf(os.Stderr, "erbsmith: %d fix(es) applied, %d skipped, %d file(s) modified\n",
			applied, skipped, len(result.Modified))
	}

	if len(result.Errors) > 0 {
		return 2
	}
	return 0
}

// exitCode applies the fail-level policy to kept offenses.
func exitCode(linter *engine.Linter, results []*engine.Result) int {
	threshold := linter.Config.FailSeverity()
	for _, res := range results {
		if res.CountAtOrAbove(threshold) > 0 {
			return 1
		}
	}
	return 0
}

// formatterFor picks an output formatter from the flags.
func formatterFor(cf *checkFlags) output.Formatter {
	switch cf.format {
	case "json":
		return &output.JSONFormatter{}
	default:
		return &output.TextFormatter{Color: !cf.noColor}
	}
}

// isStdinPipe returns true if stdin is a pipe (not a terminal).
func isStdinPipe() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}
