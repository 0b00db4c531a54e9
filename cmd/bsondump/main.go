// Copyright (C) bsonkit authors 2014-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Command bsondump renders a file of back-to-back BSON documents as
// either one JSON object per line (the default) or a verbose, indented
// per-field debug trace (--type=debug).
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"

	"github.com/bsonkit/bson"
	"github.com/bsonkit/bson/bsonlog"
	"github.com/bsonkit/bson/bsonutil"
)

var usage = `<options> <file.bson>

View and debug .bson files.`

type outputOptions struct {
	// Format to display the BSON data file
	Type string `long:"type" value-name:"<type>" default:"json" default-mask:"-" description:"type of output: debug, json (default 'json')"`

	// Path to input BSON file
	BSONFileName string `long:"bsonFile" description:"path to BSON file to dump; default is the positional argument"`

	Verbose []bool `short:"v" long:"verbose" description:"more detailed log output (include multiple times for more verbosity)"`
}

func parseOptions(rawArgs []string) (*outputOptions, error) {
	opts := &outputOptions{}
	parser := flags.NewNamedParser("bsondump", flags.HelpFlag|flags.PassDoubleDash)
	parser.Usage = usage
	if _, err := parser.AddGroup("output options", "", opts); err != nil {
		return nil, err
	}

	args, err := parser.ParseArgs(rawArgs)
	if err != nil {
		return nil, fmt.Errorf("error parsing command line options: %v", err)
	}

	bsonlog.SetVerbosity(len(opts.Verbose))

	if len(args) > 1 {
		return nil, fmt.Errorf("too many positional arguments: %v", args)
	}
	if len(args) == 1 {
		if opts.BSONFileName != "" {
			return nil, fmt.Errorf("cannot specify both a positional argument and --bsonFile")
		}
		opts.BSONFileName = args[0]
	}
	if opts.BSONFileName == "" {
		return nil, fmt.Errorf("a BSON file argument (or --bsonFile) is required")
	}

	if opts.Type != "debug" && opts.Type != "json" {
		return nil, fmt.Errorf("unsupported output type '%v'. Must be either 'debug' or 'json'", opts.Type)
	}

	return opts, nil
}

func main() {
	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := run(opts.BSONFileName, opts.Type == "debug", os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(path string, debug bool, out io.Writer) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("couldn't open BSON file: %w", err)
	}
	offset := 0
	for offset < len(data) {
		doc, consumed, err := readOneDocument(data[offset:])
		if err != nil {
			return err
		}
		if debug {
			debugDocument(doc, 0, out)
		} else {
			if err := dumpDocumentJSON(doc, out); err != nil {
				return err
			}
		}
		offset += consumed
	}
	return nil
}

// readOneDocument decodes one document from the front of data and
// reports how many bytes it consumed, reading the int32 length prefix
// first so the stream position stays exact.
func readOneDocument(data []byte) (*bson.Document, int, error) {
	if len(data) < 4 {
		return nil, 0, fmt.Errorf("truncated BSON stream: %d bytes remaining", len(data))
	}
	size := int(data[0]) | int(data[1])<<8 | int(data[2])<<16 | int(data[3])<<24
	if size < 5 || size > len(data) {
		return nil, 0, fmt.Errorf("invalid document size %d", size)
	}
	doc, err := bson.Unmarshal(data[:size])
	if err != nil {
		return nil, 0, err
	}
	return doc, size, nil
}

func dumpDocumentJSON(doc *bson.Document, out io.Writer) error {
	jsonBytes, err := bsonutil.MarshalOrdered(doc)
	if err != nil {
		return fmt.Errorf("error converting doc to JSON: %w", err)
	}
	if _, err := out.Write(jsonBytes); err != nil {
		return err
	}
	_, err = out.Write([]byte("\n"))
	return err
}

func debugDocument(doc *bson.Document, indentLevel int, out io.Writer) {
	indent := strings.Repeat("\t", indentLevel)
	fmt.Fprintf(out, "%s--- new object ---\n", indent)
	fmt.Fprintf(out, "%s\tsize : %d\n", indent, doc.ByteSize())
	for _, e := range doc.Elements() {
		fmt.Fprintf(out, "%s\t\t%s\n", indent, e.Name)
		fmt.Fprintf(out, "%s\t\t\ttype: %-4v size: %d\n", indent, e.Value.BSONType(), e.Value.ByteSize())
		switch nested := e.Value.(type) {
		case *bson.Document:
			debugDocument(nested, indentLevel+3, out)
		case *bson.Array:
			elements := make([]bson.Element, nested.Len())
			for i, v := range nested.Values() {
				elements[i] = bson.Element{Name: fmt.Sprintf("%d", i), Value: v}
			}
			debugDocument(bson.NewDocument(elements...), indentLevel+3, out)
		}
	}
}
