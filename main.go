package hq

import (
	"bufio"
	"fmt"
	"os"

	"github.com/hq-cli/hq/exchange"
	"github.com/hq-cli/hq/flags"
	"github.com/hq-cli/hq/input"
	"github.com/hq-cli/hq/output"
	"github.com/hq-cli/hq/version"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
)

// Main runs one whole invocation: parse the flags and request items,
// assemble the request, print it per the print policy, send it unless
// --offline, and render or download the response. Any returned error is
// terminal; nothing is retried.
func Main() error {
	args, usage, optionSet, err := flags.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	if optionSet.PrintVersion {
		fmt.Println(version.Current())
		return nil
	}
	if optionSet.PrintLicenses {
		version.PrintLicenses(os.Stdout)
		return nil
	}

	in, err := input.ParseArgs(args, os.Stdin, &optionSet.InputOptions)
	if _, ok := errors.Cause(err).(*input.UsageError); ok {
		usage(os.Stderr)
		return err
	}
	if err != nil {
		return err
	}

	req, err := exchange.BuildHTTPRequest(in, &optionSet.ExchangeOptions)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(os.Stdout)
	defer writer.Flush()
	printer := output.NewPrinter(writer, &optionSet.OutputOptions)

	if optionSet.OutputOptions.PrintRequestHeader {
		if err := printer.PrintRequestLine(req); err != nil {
			return err
		}
		if err := printer.PrintHeader(req.Header); err != nil {
			return err
		}
	}
	if optionSet.OutputOptions.PrintRequestBody && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return err
		}
		if err := printer.PrintBody(body, req.Header.Get("Content-Type")); err != nil {
			return err
		}
		fmt.Fprintln(writer)
	}

	if optionSet.Offline {
		return nil
	}

	client, err := exchange.BuildHTTPClient(&optionSet.ExchangeOptions)
	if err != nil {
		return err
	}
	resp, err := exchange.SendRequest(client, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := exchange.DecodeBody(resp); err != nil {
		return err
	}

	if optionSet.OutputOptions.PrintResponseHeader {
		if err := printer.PrintStatusLine(resp.Proto, resp.Status, resp.StatusCode); err != nil {
			return err
		}
		if err := printer.PrintHeader(resp.Header); err != nil {
			return err
		}
		writer.Flush()
	}

	if optionSet.OutputOptions.Download {
		fileWriter := output.NewFileWriter(req.URL, resp.Header, &optionSet.OutputOptions,
			os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
		return fileWriter.Download(resp)
	}
	if optionSet.OutputOptions.PrintResponseBody {
		return printer.PrintBody(resp.Body, resp.Header.Get("Content-Type"))
	}
	return nil
}
