// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// javaproperties performs basic manipulation of Java .properties files.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yourbase/properties"
	"github.com/yourbase/properties/internal/envvar"
	"zombiezen.com/go/log"
)

func main() {
	ctx := context.Background()
	root := &cobra.Command{
		Use:           "javaproperties",
		Short:         "Basic manipulation of Java .properties files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newGetCommand(ctx),
		newSelectCommand(ctx),
		newSetCommand(),
		newDeleteCommand(),
		newFormatCommand(),
	)
	if err := root.Execute(); err != nil {
		if !errors.Is(err, errKeyNotFound) {
			log.Errorf(ctx, "javaproperties: %v", err)
		}
		os.Exit(1)
	}
}

// errKeyNotFound signals a nonzero exit after the missing keys have already
// been reported individually.
var errKeyNotFound = errors.New("key not found")

func defaultEncoding() string {
	return envvar.Get("JAVAPROPERTIES_ENCODING", properties.DefaultCharset)
}

func defaultSeparator() string {
	return envvar.Get("JAVAPROPERTIES_SEPARATOR", "=")
}

type commonFlags struct {
	escaped  bool
	encoding string
}

func (c *commonFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&c.escaped, "escaped", "e", false, "parse command-line keys & values for escapes")
	cmd.Flags().StringVarP(&c.encoding, "encoding", "E", defaultEncoding(), "encoding of the .properties file")
}

func (c *commonFlags) key(raw string) (string, error) {
	if !c.escaped {
		return raw, nil
	}
	return properties.Unescape(raw)
}

func newGetCommand(ctx context.Context) *cobra.Command {
	c := new(commonFlags)
	var (
		defaultValue string
		defaultsFile string
	)
	cmd := &cobra.Command{
		Use:   "get [flags] FILE KEY [KEY ...]",
		Short: "Query values from a Java .properties file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fset, err := loadWithDefaults(args[0], defaultsFile, c.encoding)
			if err != nil {
				return err
			}
			ok := true
			for _, rawKey := range args[1:] {
				k, err := c.key(rawKey)
				if err != nil {
					return err
				}
				v, found := fset.Lookup(k)
				if !found {
					if !cmd.Flags().Changed("default-value") {
						log.Errorf(ctx, "javaproperties: %s: key not found", rawKey)
						ok = false
						continue
					}
					v = defaultValue
					if c.escaped {
						if v, err = properties.Unescape(v); err != nil {
							return err
						}
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			if !ok {
				return errKeyNotFound
			}
			return nil
		},
	}
	c.register(cmd)
	cmd.Flags().StringVarP(&defaultValue, "default-value", "d", "", "default value for undefined keys")
	cmd.Flags().StringVarP(&defaultsFile, "defaults", "D", "", ".properties file of default values")
	return cmd
}

func newSelectCommand(ctx context.Context) *cobra.Command {
	c := new(commonFlags)
	var (
		defaultValue string
		defaultsFile string
		outfile      string
		separator    string
	)
	cmd := &cobra.Command{
		Use:   "select [flags] FILE KEY [KEY ...]",
		Short: "Extract key-value pairs from a Java .properties file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			fset, err := loadWithDefaults(args[0], defaultsFile, c.encoding)
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(outfile, c.encoding)
			if err != nil {
				return err
			}
			defer closeOut()
			header := properties.ToComment(properties.Timestamp(time.Now())) + "\n"
			if _, err := io.WriteString(out, header); err != nil {
				return err
			}
			ok := true
			for _, rawKey := range args[1:] {
				k, err := c.key(rawKey)
				if err != nil {
					return err
				}
				v, found := fset.Lookup(k)
				if !found {
					if !cmd.Flags().Changed("default-value") {
						log.Errorf(ctx, "javaproperties: %s: key not found", rawKey)
						ok = false
						continue
					}
					v = defaultValue
					if c.escaped {
						if v, err = properties.Unescape(v); err != nil {
							return err
						}
					}
				}
				line := properties.JoinKeyValue(k, v, separator) + "\n"
				if _, err := io.WriteString(out, line); err != nil {
					return err
				}
			}
			if err := closeOut(); err != nil {
				return err
			}
			if !ok {
				return errKeyNotFound
			}
			return nil
		},
	}
	c.register(cmd)
	cmd.Flags().StringVarP(&defaultValue, "default-value", "d", "", "default value for undefined keys")
	cmd.Flags().StringVarP(&defaultsFile, "defaults", "D", "", ".properties file of default values")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "-", "write output to this file")
	cmd.Flags().StringVarP(&separator, "separator", "s", defaultSeparator(), "key-value separator to use in output")
	return cmd
}

func newSetCommand() *cobra.Command {
	c := new(commonFlags)
	var (
		outfile           string
		separator         string
		preserveTimestamp bool
	)
	cmd := &cobra.Command{
		Use:   "set [flags] FILE KEY VALUE",
		Short: "Set values in a Java .properties file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := c.key(args[1])
			if err != nil {
				return err
			}
			v := args[2]
			if c.escaped {
				if v, err = properties.Unescape(v); err != nil {
					return err
				}
			}
			src, err := readInput(args[0], c.encoding)
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(outfile, c.encoding)
			if err != nil {
				return err
			}
			defer closeOut()
			opts := &properties.RewriteOptions{
				Separator:         separator,
				PreserveTimestamp: preserveTimestamp,
			}
			if err := properties.SetValues(out, bytes.NewReader(src), map[string]string{k: v}, opts); err != nil {
				return err
			}
			return closeOut()
		},
	}
	c.register(cmd)
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "-", "write output to this file")
	cmd.Flags().StringVarP(&separator, "separator", "s", defaultSeparator(), "key-value separator to use in output")
	cmd.Flags().BoolVarP(&preserveTimestamp, "preserve-timestamp", "T", envvar.Bool("JAVAPROPERTIES_PRESERVE_TIMESTAMP"), "keep the timestamp from the input file")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	c := new(commonFlags)
	var (
		outfile           string
		preserveTimestamp bool
	)
	cmd := &cobra.Command{
		Use:   "delete [flags] FILE KEY [KEY ...]",
		Short: "Remove values from a Java .properties file",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys := make([]string, 0, len(args)-1)
			for _, rawKey := range args[1:] {
				k, err := c.key(rawKey)
				if err != nil {
					return err
				}
				keys = append(keys, k)
			}
			src, err := readInput(args[0], c.encoding)
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(outfile, c.encoding)
			if err != nil {
				return err
			}
			defer closeOut()
			opts := &properties.RewriteOptions{PreserveTimestamp: preserveTimestamp}
			if err := properties.DeleteKeys(out, bytes.NewReader(src), keys, opts); err != nil {
				return err
			}
			return closeOut()
		},
	}
	c.register(cmd)
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "-", "write output to this file")
	cmd.Flags().BoolVarP(&preserveTimestamp, "preserve-timestamp", "T", envvar.Bool("JAVAPROPERTIES_PRESERVE_TIMESTAMP"), "keep the timestamp from the input file")
	return cmd
}

func newFormatCommand() *cobra.Command {
	var (
		encoding  string
		outfile   string
		separator string
	)
	cmd := &cobra.Command{
		Use:   "format [flags] [FILE]",
		Short: "Format/\"canonicalize\" a Java .properties file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "-"
			if len(args) > 0 {
				path = args[0]
			}
			src, err := readInput(path, encoding)
			if err != nil {
				return err
			}
			f, err := properties.Load(bytes.NewReader(src))
			if err != nil {
				return err
			}
			out, closeOut, err := openOutput(outfile, encoding)
			if err != nil {
				return err
			}
			defer closeOut()
			opts := &properties.DumpOptions{Separator: separator, SortKeys: true}
			if err := f.Dump(out, opts); err != nil {
				return err
			}
			return closeOut()
		},
	}
	cmd.Flags().StringVarP(&encoding, "encoding", "E", defaultEncoding(), "encoding of the .properties file")
	cmd.Flags().StringVarP(&outfile, "outfile", "o", "-", "write output to this file")
	cmd.Flags().StringVarP(&separator, "separator", "s", defaultSeparator(), "key-value separator to use in output")
	return cmd
}

// loadWithDefaults builds the lookup chain for get/select: the named file
// first, then an optional defaults file.
func loadWithDefaults(path, defaultsPath, encoding string) (properties.FileSet, error) {
	src, err := readInput(path, encoding)
	if err != nil {
		return nil, err
	}
	f, err := properties.Load(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	fset := properties.FileSet{f}
	if defaultsPath != "" {
		src, err := readInput(defaultsPath, encoding)
		if err != nil {
			return nil, err
		}
		defaults, err := properties.Load(bytes.NewReader(src))
		if err != nil {
			return nil, err
		}
		fset = append(fset, defaults)
	}
	return fset, nil
}

// readInput reads the whole named file ("-" for stdin) decoded from the given
// charset into UTF-8. Reading eagerly lets -o name the input file safely.
func readInput(path, encoding string) ([]byte, error) {
	var in io.Reader
	if path == "-" {
		in = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}
	decoded, err := properties.CharsetReader(encoding, in)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadAll(decoded)
	if err != nil {
		if path != "-" {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return nil, err
	}
	return data, nil
}

// openOutput opens path ("-" for stdout) for writing through a charset
// encoder. The returned close function is idempotent and must be called to
// flush the encoder.
func openOutput(path, encoding string) (io.Writer, func() error, error) {
	var (
		dst     io.Writer
		dstFile *os.File
	)
	if path == "-" {
		dst = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return nil, nil, err
		}
		dst = f
		dstFile = f
	}
	encoded, err := properties.CharsetWriter(encoding, dst)
	if err != nil {
		if dstFile != nil {
			dstFile.Close()
		}
		return nil, nil, err
	}
	closed := false
	closeOut := func() error {
		if closed {
			return nil
		}
		closed = true
		err := encoded.Close()
		if dstFile != nil {
			if cerr := dstFile.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return encoded, closeOut, nil
}
