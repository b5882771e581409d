package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/comalice/matmul/internal/matrix"
	"github.com/comalice/matmul/internal/pim"
	"github.com/comalice/matmul/internal/store"
)

const shapesIR = `
  %1 = alloca [2 x [5 x i32]], align 16
  %2 = alloca [5 x [3 x i32]], align 16
`

func TestLayouts(t *testing.T) {
	dir := t.TempDir()
	irFile := filepath.Join(dir, "mat.ll")
	if err := os.WriteFile(irFile, []byte(shapesIR), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		ir, src string
		want    [3]pim.Layout
		wantErr error
	}{
		{
			name: "built-in product",
			want: [3]pim.Layout{{Rows: 3, Cols: 4, Base: 0x100}, {Rows: 4, Cols: 2, Base: 0x130}, {Rows: 3, Cols: 2, Base: 0x150}},
		},
		{
			name: "ir file",
			ir:   irFile,
			want: [3]pim.Layout{{Rows: 2, Cols: 5, Base: 0x100}, {Rows: 5, Cols: 3, Base: 0x128}, {Rows: 2, Cols: 3, Base: 0x164}},
		},
		{name: "missing ir file", ir: filepath.Join(dir, "none.ll"), wantErr: os.ErrNotExist},
		{name: "missing source file", src: filepath.Join(dir, "none.cpp"), wantErr: os.ErrNotExist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b, c, err := layouts(context.Background(), tt.ir, tt.src, pim.DefaultToolchain)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("layouts failed: %v", err)
			}
			if got := [3]pim.Layout{a, b, c}; got != tt.want {
				t.Errorf("layouts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayouts_IRAndSource(t *testing.T) {
	if _, _, _, err := layouts(context.Background(), "a.ll", "a.cpp", pim.DefaultToolchain); err == nil {
		t.Error("expected error when both -ir and -src are set")
	}
}

func TestRun_SaveRecord(t *testing.T) {
	want, err := matrix.FromRows([][]int{{18, 34}, {17, 35}, {20, 32}})
	if err != nil {
		t.Fatal(err)
	}

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), []string{"-save", dir, "-format", format}, &stdout, &stderr); err != nil {
				t.Fatalf("run failed: %v\n%s", err, stderr.String())
			}

			s, err := store.New(dir, format)
			if err != nil {
				t.Fatal(err)
			}
			rec, err := s.Load(context.Background(), recordID)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !rec.C.Equal(want) {
				t.Errorf("C = %v, want %v", rec.C.Data, want.Data)
			}
		})
	}
}

func TestRun_StreamToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), nil, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(stdout.String(), "\n"), "\n")
	if got, want := len(lines), 2+pim.ProgramLen(3, 4, 2); got != want {
		t.Errorf("stream has %d lines, want %d", got, want)
	}
	if !strings.HasPrefix(lines[0], "// pPIM Instruction Stream") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(stderr.String(), "A: 3x4, B: 4x2, C: 3x2") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRun_OutputFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pPIM.bin")
	var stdout, stderr bytes.Buffer
	if err := run(context.Background(), []string{"-o", out}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout not empty: %q", stdout.String())
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), "110000000000000000000000  // END\n") {
		t.Errorf("stream does not end with END: %q", data[len(data)-40:])
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-nope"}},
		{"unknown format", []string{"-save", t.TempDir(), "-format", "toml"}},
		{"missing ir", []string{"-ir", filepath.Join(t.TempDir(), "none.ll")}},
		{"bad output dir", []string{"-o", filepath.Join(t.TempDir(), "missing", "out.bin")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if err := run(context.Background(), tt.args, &stdout, &stderr); err == nil {
				t.Error("run succeeded, want error")
			}
		})
	}
}
