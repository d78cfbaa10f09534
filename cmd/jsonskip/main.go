// Command jsonskip locates the top level values of JSON and NDJSON files.
//
//	jsonskip [-width 16|64] [-v] <command> files...
//
// Commands:
//
//	spans       print "start end" for every top level value
//	count       stream the input and print the number of values per file
//	index       write a serialized span index (-o file, -compress mode)
//	dump-index  print the spans stored in an index file
//
// Inputs ending in .zst, .s2, .sz or .lz4 are decompressed. "-" reads stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/jsonskip"
	"github.com/pierrec/lz4/v4"
)

func main() {
	log.SetPrefix("jsonskip: ")
	log.SetFlags(0)
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("jsonskip", flag.ContinueOnError)
	width := fs.Int("width", int(jsonskip.DefaultWidth()), "classification window, 16 or 64")
	verbose := fs.Bool("v", false, "log progress")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: jsonskip [-width 16|64] [-v] spans|count|index|dump-index files...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("no command given")
	}
	opts := []jsonskip.Option{jsonskip.WithWidth(jsonskip.Width(*width))}
	if *verbose {
		log.Printf("cpu: %s, window: %d bytes", jsonskip.CPU(), *width)
	}

	out := bufio.NewWriter(stdout)
	defer out.Flush()

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "spans":
		return eachFile(rest, func(name string, data []byte) error {
			spans, err := jsonskip.SplitND(data, opts...)
			if err != nil {
				return err
			}
			for _, sp := range spans {
				fmt.Fprintln(out, sp.Start, sp.End)
			}
			if *verbose {
				log.Printf("%s: %d values", name, len(spans))
			}
			return nil
		})
	case "count":
		if len(rest) == 0 {
			rest = []string{"-"}
		}
		for _, name := range rest {
			n, err := countFile(name, opts)
			if err != nil {
				return errors.Wrap(err, name)
			}
			fmt.Fprintf(out, "%s: %d\n", name, n)
		}
		return nil
	case "index":
		return indexCmd(rest, opts, *verbose)
	case "dump-index":
		for _, name := range rest {
			if err := dumpIndex(name, out); err != nil {
				return errors.Wrap(err, name)
			}
		}
		return nil
	}
	fs.Usage()
	return errors.Newf("unknown command %q", cmd)
}

func indexCmd(args []string, opts []jsonskip.Option, verbose bool) error {
	fs := flag.NewFlagSet("index", flag.ContinueOnError)
	output := fs.String("o", "", "output file")
	compress := fs.String("compress", "default", "compression: none, fast, default or best")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *output == "" || fs.NArg() != 1 {
		return errors.New("usage: index -o output [-compress mode] input")
	}
	mode, err := jsonskip.ParseCompressMode(*compress)
	if err != nil {
		return err
	}
	return eachFile(fs.Args(), func(name string, data []byte) error {
		spans, err := jsonskip.SplitND(data, opts...)
		if err != nil {
			return err
		}
		ser := jsonskip.NewIndexSerializer()
		ser.CompressMode(mode)
		b := ser.Serialize(nil, spans)
		if verbose {
			log.Printf("%s: %d values, index %d bytes (%s)", name, len(spans), len(b), mode)
		}
		return os.WriteFile(*output, b, 0o644)
	})
}

func dumpIndex(name string, out io.Writer) error {
	b, err := os.ReadFile(name)
	if err != nil {
		return err
	}
	spans, err := jsonskip.NewIndexSerializer().Deserialize(b, nil)
	if err != nil {
		return err
	}
	for _, sp := range spans {
		fmt.Fprintln(out, sp.Start, sp.End)
	}
	return nil
}

func countFile(name string, opts []jsonskip.Option) (int, error) {
	r, err := openInput(name)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	res := make(chan jsonskip.Stream, 2)
	reuse := make(chan *jsonskip.Chunk, 2)
	jsonskip.SplitNDStream(r, res, reuse, opts...)
	n := 0
	for got := range res {
		if got.Error != nil {
			if got.Error == io.EOF {
				break
			}
			return n, got.Error
		}
		n += len(got.Value.Spans)
		select {
		case reuse <- got.Value:
		default:
		}
	}
	return n, nil
}

// eachFile calls fn with the decompressed content of each named file.
func eachFile(names []string, fn func(name string, data []byte) error) error {
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		r, err := openInput(name)
		if err != nil {
			return err
		}
		data, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			return errors.Wrap(err, name)
		}
		if err := fn(name, data); err != nil {
			return errors.Wrap(err, name)
		}
	}
	return nil
}

// openInput opens name, decompressing by extension.
func openInput(name string) (io.ReadCloser, error) {
	var f io.ReadCloser = os.Stdin
	if name != "-" {
		var err error
		f, err = os.Open(name)
		if err != nil {
			return nil, err
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		return readCloser{Reader: dec, close: func() error {
			dec.Close()
			return f.Close()
		}}, nil
	case ".s2", ".sz":
		return readCloser{Reader: s2.NewReader(f), close: f.Close}, nil
	case ".lz4":
		return readCloser{Reader: lz4.NewReader(f), close: f.Close}, nil
	}
	return f, nil
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	return r.close()
}
