// Copyright (C) 2025 SAGE-X Project
//
// This file is part of inbenta-signature-go.
//
// inbenta-signature-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// inbenta-signature-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with inbenta-signature-go.  If not, see <https://www.gnu.org/licenses/>.

// Command inbenta-sign signs Inbenta API requests and checks response
// signatures from the command line.
//
// Usage:
//
//	inbenta-sign headers     --base-url URL --key KEY --url PATH [--method M] [--body B]
//	inbenta-sign base-string --base-url URL --key KEY --url PATH [--method M] [--body B]
//	inbenta-sign validate    --base-url URL --key KEY --timestamp TS --signature SIG [--body B]
//	inbenta-sign version
//
// Every setting can also come from config.yaml or INBENTA_* environment
// variables, e.g. INBENTA_SIGNATURE_KEY.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

var errInvalidSignature = errors.New("signature is not valid")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "inbenta-sign:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	err := dispatch(args, stdout, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func dispatch(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errors.New("missing command")
	}

	switch args[0] {
	case "headers":
		return runHeaders(args[1:], stdout)
	case "base-string":
		return runBaseString(args[1:], stdout)
	case "validate":
		return runValidate(args[1:], stdout)
	case "version":
		return runVersion(stdout)
	case "help", "-h", "--help":
		usage(stdout)
		return nil
	default:
		usage(stderr)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Usage: inbenta-sign <command> [flags]

Commands:
  headers      print the signature headers of a request
  base-string  print the base string a request signature covers
  validate     check a response signature
  version      print version information

Run "inbenta-sign <command> --help" for the flags of a command.
`)
}
