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

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/sage-x-project/inbenta-signature-go/pkg/client"
	"github.com/sage-x-project/inbenta-signature-go/pkg/config"
	"github.com/sage-x-project/inbenta-signature-go/pkg/headers"
	"github.com/sage-x-project/inbenta-signature-go/pkg/logging"
	"github.com/sage-x-project/inbenta-signature-go/pkg/version"
)

// commonFlags are shared by every signing command and bound into the
// configuration.
type commonFlags struct {
	fs          *pflag.FlagSet
	configPaths []string
	body        string
	bodyFile    string
}

func newCommonFlags(name string) *commonFlags {
	f := &commonFlags{fs: pflag.NewFlagSet(name, pflag.ContinueOnError)}
	f.fs.StringSliceVar(&f.configPaths, "config-path", []string{"."}, "directories searched for config.yaml")
	f.fs.String("base-url", "", "API base URL; its path is stripped from signed URLs")
	f.fs.String("key", "", "signature key")
	f.fs.String("signature-version", "", "signature protocol version")
	f.fs.Int64("timestamp", 0, "UNIX timestamp to sign with or to validate against")
	f.fs.String("log-level", "", "log level (debug, info, warn, error)")
	f.fs.StringVar(&f.body, "body", "", "message body")
	f.fs.StringVar(&f.bodyFile, "body-file", "", "read the message body from a file, - for stdin")
	return f
}

var flagBindings = map[string]string{
	"signature.base_url":  "base-url",
	"signature.key":       "key",
	"signature.version":   "signature-version",
	"signature.timestamp": "timestamp",
	"log.level":           "log-level",
}

// load reads the configuration and builds the signature client
func (f *commonFlags) load() (*config.Config, *client.Client, *zap.Logger, error) {
	cfg, err := config.Load(f.configPaths, config.WithFlags(f.fs, flagBindings))
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Signature.Validate(); err != nil {
		return nil, nil, nil, err
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, nil, nil, err
	}

	c, err := client.NewFromConfig(cfg.Signature, client.WithLogger(logger))
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "failed to create signature client")
	}
	return cfg, c, logger, nil
}

func (f *commonFlags) readBody() ([]byte, error) {
	switch {
	case f.bodyFile == "":
		return []byte(f.body), nil
	case f.body != "":
		return nil, errors.New("--body and --body-file are mutually exclusive")
	case f.bodyFile == "-":
		return io.ReadAll(os.Stdin)
	default:
		body, err := os.ReadFile(f.bodyFile)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", f.bodyFile)
		}
		return body, nil
	}
}

// requestFlags adds the request description to the common flags
type requestFlags struct {
	*commonFlags
	url    string
	method string
}

func newRequestFlags(name string) *requestFlags {
	f := &requestFlags{commonFlags: newCommonFlags(name)}
	f.fs.StringVar(&f.url, "url", "", "request URL, absolute or relative to the API base URL")
	f.fs.StringVar(&f.method, "method", "GET", "request method")
	return f
}

func (f *requestFlags) parse(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	if f.url == "" {
		return errors.New("--url is required")
	}
	f.method = strings.ToUpper(f.method)
	return nil
}

func runHeaders(args []string, stdout io.Writer) error {
	f := newRequestFlags("headers")
	asJSON := f.fs.Bool("json", false, "print the headers as a JSON object")
	if err := f.parse(args); err != nil {
		return err
	}

	_, c, logger, err := f.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	body, err := f.readBody()
	if err != nil {
		return err
	}

	signed, err := c.GetHeadersForSignature(f.url, body, f.method, 0)
	if err != nil {
		return err
	}
	logger.Debug("signed request",
		zap.String(logging.SLMethod, f.method),
		zap.String(logging.SLPath, f.url),
		zap.String(logging.SLSignatureVersion, c.SignatureVersion()))

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(signed)
	}

	for _, k := range []headers.HeaderKey{headers.HeaderSignatureVersion, headers.HeaderTimestamp, headers.HeaderSignature} {
		fmt.Fprintf(stdout, "%s: %s\n", k, signed[k.String()])
	}
	return nil
}

func runBaseString(args []string, stdout io.Writer) error {
	f := newRequestFlags("base-string")
	if err := f.parse(args); err != nil {
		return err
	}

	_, c, logger, err := f.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	body, err := f.readBody()
	if err != nil {
		return err
	}

	base, err := c.RequestBaseString(f.url, body, f.method, 0)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, base)
	return nil
}

func runValidate(args []string, stdout io.Writer) error {
	f := newCommonFlags("validate")
	signature := f.fs.String("signature", "", "response x-inbenta-signature value")
	if err := f.fs.Parse(args); err != nil {
		return err
	}
	if *signature == "" {
		return errors.New("--signature is required")
	}

	cfg, c, logger, err := f.load()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Signature.Timestamp == 0 {
		return errors.New("--timestamp is required: use the timestamp of the request")
	}

	body, err := f.readBody()
	if err != nil {
		return err
	}

	valid, err := c.ValidateResponseSignatureAt(*signature, body, cfg.Signature.Timestamp)
	if err != nil {
		return err
	}
	if !valid {
		fmt.Fprintln(stdout, "invalid")
		return errInvalidSignature
	}
	fmt.Fprintln(stdout, "valid")
	return nil
}

func runVersion(stdout io.Writer) error {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(version.Get()); err != nil {
		return fmt.Errorf("failed to print version: %w", err)
	}
	return nil
}
