package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/you-not-fish/kaleido/internal/codegen"
	"github.com/you-not-fish/kaleido/internal/ir"
	"github.com/you-not-fish/kaleido/internal/repl"
)

// TestE2E runs end-to-end tests for all .kal files in testdata/.
// Each test:
//  1. Runs the read-eval loop with evaluation on, diagnostics and
//     results written to one stream
//  2. Compares that stream against the .golden file
//  3. For error-free inputs, lowers the file again and checks the LLVM
//     IR with llvm-as when it is installed
func TestE2E(t *testing.T) {
	testFiles, err := filepath.Glob("testdata/*.kal")
	if err != nil {
		t.Fatal(err)
	}
	if len(testFiles) == 0 {
		t.Fatal("no .kal test files found in testdata/")
	}

	for _, testFile := range testFiles {
		name := strings.TrimSuffix(filepath.Base(testFile), ".kal")
		t.Run(name, func(t *testing.T) {
			runE2ETest(t, testFile)
		})
	}
}

// runE2ETest runs a single end-to-end test.
func runE2ETest(t *testing.T, kalFile string) {
	t.Helper()

	goldenFile := strings.TrimSuffix(kalFile, ".kal") + ".golden"
	expected, err := os.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("reading golden file: %v", err)
	}

	var out bytes.Buffer
	stats := runSession(t, kalFile, &out, repl.Options{Eval: true})

	if got, want := out.String(), string(expected); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}

	if stats.Errors > 0 {
		return
	}
	llvmAs, err := exec.LookPath("llvm-as")
	if err != nil {
		t.Log("llvm-as not found, skipping IR assembly")
		return
	}

	llFile := filepath.Join(t.TempDir(), "output.ll")
	compileTo(t, kalFile, llFile)

	cmd := exec.Command(llvmAs, llFile, "-o", os.DevNull)
	if msg, err := cmd.CombinedOutput(); err != nil {
		src, _ := os.ReadFile(llFile)
		t.Fatalf("llvm-as rejected the module:\n%s\n%v\n%s", msg, err, src)
	}
}

// runSession runs the loop over kalFile, writing results and
// diagnostics to w.
func runSession(t *testing.T, kalFile string, w *bytes.Buffer, opts repl.Options) repl.Stats {
	t.Helper()

	f, err := os.Open(kalFile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	opts.Filename = filepath.Base(kalFile)
	opts.Color = "never"
	stats, err := repl.New(f, w, w, ir.NewModule(opts.Filename), opts).Run()
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	return stats
}

// compileTo lowers kalFile without evaluating it and writes the module as
// LLVM IR to llFile.
func compileTo(t *testing.T, kalFile, llFile string) {
	t.Helper()

	f, err := os.Open(kalFile)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	var diag bytes.Buffer
	m := ir.NewModule(filepath.Base(kalFile))
	s := repl.New(f, &diag, &diag, m, repl.Options{Filename: kalFile, Color: "never"})
	if _, err := s.Run(); err != nil {
		t.Fatalf("run: %v", err)
	}
	if diag.Len() > 0 {
		t.Fatalf("unexpected diagnostics:\n%s", diag.String())
	}
	if err := ir.VerifyModule(m); err != nil {
		t.Fatal(err)
	}

	out, err := os.Create(llFile)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer out.Close()

	if err := codegen.EmitLLVM(out, m); err != nil {
		t.Fatalf("codegen: %v", err)
	}
}

// TestLLVMAssembles checks that modules left behind by failed or
// unusual input still assemble.
func TestLLVMAssembles(t *testing.T) {
	llvmAs, err := exec.LookPath("llvm-as")
	if err != nil {
		t.Skip("llvm-as not found")
	}

	tests := []struct {
		name   string
		module string
		src    string
		eval   bool
	}{
		{"failed_anonymous", "test", "x; 1 + 2", false},
		{"evaluated_anonymous", "test", "def f(a) a * 2; f(1); f(2); 3", true},
		{"param_named_entry", "test", "def f(entry) entry + 1", false},
		{"failed_definition_of_extern", "test", "extern f(a); def f(b) c; def f(d) d", false},
		{"quoted_module_name", "my \"module\" é", "def f(x) x", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ir.NewModule(tt.module)
			opts := repl.Options{Filename: "test.kal", Color: "never", Eval: tt.eval}
			var out bytes.Buffer
			if _, err := repl.New(strings.NewReader(tt.src), &out, &out, m, opts).Run(); err != nil {
				t.Fatalf("run: %v", err)
			}
			if err := ir.VerifyModule(m); err != nil {
				t.Fatal(err)
			}

			llFile := filepath.Join(t.TempDir(), "output.ll")
			f, err := os.Create(llFile)
			if err != nil {
				t.Fatal(err)
			}
			if err := codegen.EmitLLVM(f, m); err != nil {
				t.Fatalf("codegen: %v", err)
			}
			f.Close()

			cmd := exec.Command(llvmAs, llFile, "-o", os.DevNull)
			if msg, err := cmd.CombinedOutput(); err != nil {
				src, _ := os.ReadFile(llFile)
				t.Fatalf("llvm-as rejected the module:\n%s\n%v\n%s", msg, err, src)
			}
		})
	}
}
