package flags

import (
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/hq-cli/hq/exchange"
	"github.com/hq-cli/hq/input"
	"github.com/hq-cli/hq/output"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"
	"github.com/pkg/errors"
)

var reNumber = regexp.MustCompile(`^[0-9.]+$`)

// noFlagValue marks a string flag the user did not specify; the defaults of
// --print and --pretty depend on whether stdout is a terminal.
const noFlagValue = "\000"

type Usage func(w io.Writer)

type OptionSet struct {
	InputOptions    input.Options
	ExchangeOptions exchange.Options
	OutputOptions   output.Options
	Offline         bool
	PrintVersion    bool
	PrintLicenses   bool
}

type terminalInfo struct {
	stdinIsTerminal  bool
	stdoutIsTerminal bool
}

// Parse reads the command line. The returned args are the remaining
// positional arguments: [METHOD] URL [REQUEST_ITEM ...].
func Parse(args []string) ([]string, Usage, *OptionSet, error) {
	return parse(args, terminalInfo{
		stdinIsTerminal:  isatty.IsTerminal(os.Stdin.Fd()),
		stdoutIsTerminal: isatty.IsTerminal(os.Stdout.Fd()),
	})
}

func parse(args []string, terminal terminalInfo) ([]string, Usage, *OptionSet, error) {
	inputOptions := input.Options{}
	exchangeOptions := exchange.Options{}
	outputOptions := output.Options{}
	var ignoreStdin bool
	var verbose bool
	var offline bool
	var printVersion bool
	var printLicenses bool
	var auth string
	authType := "basic"
	printFlag := noFlagValue
	prettyFlag := noFlagValue
	theme := "default"
	timeout := "30s"
	verify := "yes"
	defaultScheme := "http"

	flagSet := getopt.New()
	flagSet.SetParameters("[METHOD] URL [REQUEST_ITEM [REQUEST_ITEM ...]]")
	flagSet.BoolVarLong(&inputOptions.JSON, "json", 'j', "(default) serialize body in application/json")
	flagSet.BoolVarLong(&inputOptions.Form, "form", 'f', "serialize body in application/x-www-form-urlencoded")
	flagSet.BoolVarLong(&inputOptions.Multipart, "multipart", 0, "serialize body in multipart/form-data")
	flagSet.StringVarLong(&auth, "auth", 'a', "credentials: USERNAME[:PASSWORD] or TOKEN")
	flagSet.StringVarLong(&authType, "auth-type", 'A', "authentication type: basic or bearer (default: basic)")
	flagSet.BoolVarLong(&ignoreStdin, "ignore-stdin", 0, "do not attempt to read stdin")
	flagSet.BoolVarLong(&offline, "offline", 0, "build the request but do not send it")
	flagSet.BoolVarLong(&outputOptions.Download, "download", 'd', "save response body to a file instead of printing it")
	flagSet.StringVarLong(&outputOptions.OutputFile, "output", 'o', "download destination file")
	flagSet.BoolVarLong(&outputOptions.Overwrite, "overwrite", 0, "overwrite the download destination if it exists")
	flagSet.BoolVarLong(&verbose, "verbose", 'v', "print the whole request as well as the response")
	flagSet.StringVarLong(&printFlag, "print", 'p', "specifies what the output should contain (HBhb)")
	flagSet.StringVarLong(&prettyFlag, "pretty", 0, "output processing: all, colors, format or none")
	flagSet.StringVarLong(&theme, "theme", 0, "color theme: default or solarized")
	flagSet.StringVarLong(&defaultScheme, "default-scheme", 0, "scheme assumed when the URL omits one (default: http)")
	flagSet.StringVarLong(&timeout, "timeout", 0, "timeout seconds that you allow the whole operation to take")
	flagSet.BoolVarLong(&exchangeOptions.FollowRedirects, "follow", 'F', "follow redirects")
	flagSet.StringVarLong(&verify, "verify", 0, "verify TLS certificates: yes or no (default: yes)")
	flagSet.BoolVarLong(&exchangeOptions.ForceHTTP1, "http1", 0, "force HTTP/1.1 protocol")
	flagSet.BoolVarLong(&printVersion, "version", 0, "print version and exit")
	flagSet.BoolVarLong(&printLicenses, "license", 0, "print license information and exit")
	flagSet.Parse(append([]string{"hq"}, args...))

	// Check stdin
	if !ignoreStdin && !terminal.stdinIsTerminal {
		inputOptions.ReadStdin = true
	}
	inputOptions.DefaultScheme = defaultScheme

	if err := parsePrintFlag(printFlag, verbose, terminal.stdoutIsTerminal, &outputOptions); err != nil {
		return nil, nil, nil, err
	}
	if err := parsePrettyFlag(prettyFlag, terminal.stdoutIsTerminal, &outputOptions); err != nil {
		return nil, nil, nil, err
	}
	if err := parseTheme(theme, &outputOptions); err != nil {
		return nil, nil, nil, err
	}

	// Parse --timeout
	d, err := parseDurationOrSeconds(timeout)
	if err != nil {
		return nil, nil, nil, err
	}
	exchangeOptions.Timeout = d

	// Parse --verify
	switch verify {
	case "yes":
		exchangeOptions.SkipVerify = false
	case "no":
		exchangeOptions.SkipVerify = true
	default:
		return nil, nil, nil, errors.Errorf("Value of --verify must be yes or no: %v", verify)
	}

	if err := resolveAuthFlags(auth, authType, terminal, &exchangeOptions); err != nil {
		return nil, nil, nil, err
	}

	optionSet := &OptionSet{
		InputOptions:    inputOptions,
		ExchangeOptions: exchangeOptions,
		OutputOptions:   outputOptions,
		Offline:         offline,
		PrintVersion:    printVersion,
		PrintLicenses:   printLicenses,
	}
	return flagSet.Args(), flagSet.PrintUsage, optionSet, nil
}

// parsePrintFlag computes the print policy. An explicit --print wins
// outright; --verbose turns everything on; otherwise an interactive stdout
// gets the response headers and body while a redirected one gets the body
// only.
func parsePrintFlag(printFlag string, verbose bool, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if printFlag == noFlagValue {
		if verbose {
			outputOptions.PrintRequestHeader = true
			outputOptions.PrintRequestBody = true
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else if stdoutIsTerminal {
			outputOptions.PrintResponseHeader = true
			outputOptions.PrintResponseBody = true
		} else {
			outputOptions.PrintResponseBody = true
		}
		return nil
	}
	for _, c := range printFlag {
		switch c {
		case 'H':
			outputOptions.PrintRequestHeader = true
		case 'B':
			outputOptions.PrintRequestBody = true
		case 'h':
			outputOptions.PrintResponseHeader = true
		case 'b':
			outputOptions.PrintResponseBody = true
		default:
			return errors.Errorf("Invalid char in --print value (must be consist of HBhb): %c", c)
		}
	}
	return nil
}

func parsePrettyFlag(prettyFlag string, stdoutIsTerminal bool, outputOptions *output.Options) error {
	if prettyFlag == noFlagValue {
		if stdoutIsTerminal {
			prettyFlag = "all"
		} else {
			prettyFlag = "none"
		}
	}
	switch prettyFlag {
	case "all":
		outputOptions.EnableFormat = true
		outputOptions.EnableColor = true
	case "colors":
		outputOptions.EnableColor = true
	case "format":
		outputOptions.EnableFormat = true
	case "none":
		// Nothing to enable
	default:
		return errors.Errorf("Value of --pretty must be all, colors, format or none: %v", prettyFlag)
	}
	return nil
}

func parseTheme(theme string, outputOptions *output.Options) error {
	switch theme {
	case "default", "solarized":
		outputOptions.Theme = theme
	default:
		return errors.Errorf("Value of --theme must be default or solarized: %v", theme)
	}
	return nil
}

func parseDurationOrSeconds(timeout string) (time.Duration, error) {
	if reNumber.MatchString(timeout) {
		timeout += "s"
	}
	d, err := time.ParseDuration(timeout)
	if err != nil {
		return time.Duration(0), errors.Errorf("Value of --timeout must be a number or duration string: %v", timeout)
	}
	return d, nil
}

// resolveAuthFlags fills the auth options. When basic credentials come
// without a password and stdin is interactive, the password is prompted on
// the terminal before anything else happens.
func resolveAuthFlags(auth string, authType string, terminal terminalInfo, exchangeOptions *exchange.Options) error {
	if auth == "" {
		return nil
	}
	switch authType {
	case "basic", "bearer":
		// Valid
	default:
		return errors.Errorf("Value of --auth-type must be basic or bearer: %v", authType)
	}
	if authType == "basic" && !strings.Contains(auth, ":") && terminal.stdinIsTerminal {
		password, err := askPassword()
		if err != nil {
			return err
		}
		auth = auth + ":" + password
	}
	exchangeOptions.Auth = exchange.AuthOptions{
		Enabled:     true,
		Credentials: auth,
		Type:        exchange.AuthType(authType),
	}
	return nil
}
