package pim

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	includeRe   = regexp.MustCompile(`#\s*include\s*["<][^">]+[">]`)
	namespaceRe = regexp.MustCompile(`using\s+namespace\s+std\s*;`)
	streamRe    = regexp.MustCompile(`\b(std::)?(cout|cin)\b`)
)

// CleanSource strips what clang cannot lower without the standard library:
// includes and the std namespace import are removed, and every cout/cin use
// is turned into a line comment.
func CleanSource(src string) string {
	src = includeRe.ReplaceAllString(src, "")
	src = namespaceRe.ReplaceAllString(src, "")
	return streamRe.ReplaceAllString(src, "//")
}

// Toolchain names the compiler and optimizer used by Compile.
type Toolchain struct {
	Clang string
	Opt   string
}

// DefaultToolchain resolves clang++ and opt from PATH.
var DefaultToolchain = Toolchain{Clang: "clang++", Opt: "opt"}

// Compile cleans the C++ file at path, writes it next to the original as
// <name>_cleaned.cpp, lowers it to LLVM IR and runs opt -O3 over it. It
// returns the optimized IR.
func (tc Toolchain) Compile(ctx context.Context, path string) (string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	cleaned := base + "_cleaned" + filepath.Ext(path)
	if err := os.WriteFile(cleaned, []byte(CleanSource(string(src))), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", cleaned, err)
	}

	cleanedBase := strings.TrimSuffix(cleaned, filepath.Ext(cleaned))
	ll := cleanedBase + ".ll"
	optimized := cleanedBase + "_optimized.ll"

	if err := run(ctx, tc.Clang, "-S", "-emit-llvm", cleaned, "-o", ll); err != nil {
		return "", err
	}
	if err := run(ctx, tc.Opt, "-O3", "-S", ll, "-o", optimized); err != nil {
		return "", err
	}

	ir, err := os.ReadFile(optimized)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", optimized, err)
	}
	return string(ir), nil
}

func run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(out)))
	}
	return nil
}
