// Command pimgen lowers a matrix multiply into a pPIM instruction stream.
//
// Without -ir or -src it lowers the built-in 3x4 by 4x2 product. With -ir it
// reads the operand shapes from the allocas in an LLVM IR file; with -src it
// cleans a C++ source, compiles it with clang++ and opt -O3, and reads the
// shapes from the result.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/comalice/matmul"
	"github.com/comalice/matmul/internal/matrix"
	"github.com/comalice/matmul/internal/pim"
	"github.com/comalice/matmul/internal/store"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (err error) {
	fs := flag.NewFlagSet("pimgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	irPath := fs.String("ir", "", "LLVM IR file to read matrix shapes from")
	srcPath := fs.String("src", "", "C++ source to clean, compile and read matrix shapes from")
	outPath := fs.String("o", "", "output file for the instruction stream (default stdout)")
	saveDir := fs.String("save", "", "directory to persist the built-in product record in")
	format := fs.String("format", "yaml", "record format: yaml or json")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a, b, c, err := layouts(ctx, *irPath, *srcPath, pim.DefaultToolchain)
	if err != nil {
		return err
	}
	fmt.Fprintf(stderr, "Detected Matrix Sizes - A: %dx%d, B: %dx%d, C: %dx%d\n",
		a.Rows, a.Cols, b.Rows, b.Cols, c.Rows, c.Cols)

	prog := pim.Program(a, b, c)

	out := stdout
	if *outPath != "" {
		f, cerr := os.Create(*outPath)
		if cerr != nil {
			return fmt.Errorf("create %s: %w", *outPath, cerr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close %s: %w", *outPath, cerr)
			}
		}()
		out = f
	}
	if err := pim.WriteStream(out, prog); err != nil {
		return fmt.Errorf("write stream: %w", err)
	}
	fmt.Fprintf(stderr, "Successfully generated %d instructions\n", len(prog))

	if *saveDir != "" {
		if err := save(ctx, *saveDir, *format); err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Saved product record to %s\n", *saveDir)
	}
	return nil
}

func layouts(ctx context.Context, irPath, srcPath string, tc pim.Toolchain) (a, b, c pim.Layout, err error) {
	switch {
	case irPath != "" && srcPath != "":
		return a, b, c, errors.New("-ir and -src are mutually exclusive")
	case srcPath != "":
		ir, err := tc.Compile(ctx, srcPath)
		if err != nil {
			return a, b, c, fmt.Errorf("compile %s: %w", srcPath, err)
		}
		return pim.DetectSizes(ir)
	case irPath != "":
		data, err := os.ReadFile(irPath)
		if err != nil {
			return a, b, c, fmt.Errorf("read %s: %w", irPath, err)
		}
		return pim.DetectSizes(string(data))
	}
	return pim.Layouts(matmul.M, matmul.N, matmul.N, matmul.P)
}

func save(ctx context.Context, dir, format string) error {
	s, err := store.New(dir, format)
	if err != nil {
		return err
	}
	a, err := matrix.FromRows(matmul.InputA.Rows())
	if err != nil {
		return err
	}
	b, err := matrix.FromRows(matmul.InputB.Rows())
	if err != nil {
		return err
	}
	rec, err := store.NewRecord(recordID, a, b)
	if err != nil {
		return err
	}
	if err := s.Save(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

const recordID = "matmul"
