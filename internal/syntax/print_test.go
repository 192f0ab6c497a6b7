package syntax

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		x    Expr
		want string
	}{
		{"nil", nil, "<nil>"},
		{"integer", num(42), "42"},
		{"fraction", num(0.25), "0.25"},
		{"large", num(1e21), "1e+21"},
		{"inf", num(math.Inf(1)), "+Inf"},
		{"variable", ref("x"), "x"},
		{"binary", bin('+', ref("x"), bin('*', ref("y"), num(2))), "+(x,*(y,2))"},
		{"call", call("f", num(1), ref("x")), "f(1,x)"},
		{"empty_call", call("now"), "now()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.x); got != tt.want {
				t.Errorf("Describe = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribeIsStable(t *testing.T) {
	x := parseExpr(t, "f(a, b * (c - 1)) < 2")
	first := Describe(x)
	if second := Describe(x); second != first {
		t.Errorf("second Describe = %q, first = %q", second, first)
	}
	if x.String() != first {
		t.Errorf("String() = %q, Describe = %q", x.String(), first)
	}
}

func TestPrototypeString(t *testing.T) {
	tests := []struct {
		proto *Prototype
		want  string
	}{
		{NewPrototype(Pos{}, "f", []string{}), "f()"},
		{NewPrototype(Pos{}, "add", []string{"x", "y"}), "add(x y)"},
		{NewPrototype(Pos{}, "", nil), "()"},
	}
	for _, tt := range tests {
		if got := tt.proto.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestDefinitionString(t *testing.T) {
	body := NewBinaryOp('+', NewVariableRef(Pos{}, "x"), NewNumberLit(Pos{}, 1))
	tests := []struct {
		def  *Definition
		want string
	}{
		{NewDefinition(NewPrototype(Pos{}, "f", []string{"x"}), body), "def f(x) +(x,1)"},
		{NewDefinition(NewPrototype(Pos{}, "", nil), body), "+(x,1)"},
	}
	for _, tt := range tests {
		if got := tt.def.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFprint(t *testing.T) {
	p, _ := newTestParser("def f(x) x + 1")
	d, err := p.ParseDefinition()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	Fprint(&buf, d)

	want := `Definition test.kal:1:5
  Prototype test.kal:1:5 f
    Params: x
  Body:
    BinaryOp test.kal:1:10 +
      X:
        VariableRef test.kal:1:10 "x"
      Y:
        NumberLit test.kal:1:14 1
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFprintAnonymousCall(t *testing.T) {
	p, _ := newTestParser("g(2)")
	d, err := p.ParseTopLevelExpr()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	Fprint(&buf, d)

	want := `Definition test.kal:1:1
  Prototype test.kal:1:1 <anonymous>
  Body:
    Call test.kal:1:1 "g"
      Args:
        NumberLit test.kal:1:3 2
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFprintJSON(t *testing.T) {
	p, _ := newTestParser("def sq(x) x * x")
	d, err := p.ParseDefinition()
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := FprintJSON(&buf, d); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}

	var got struct {
		Type  string `json:"type"`
		Proto struct {
			Name   string   `json:"name"`
			Params []string `json:"params"`
		} `json:"proto"`
		Body struct {
			Type string `json:"type"`
			Op   string `json:"op"`
			X    struct {
				Name string `json:"name"`
				Pos  string `json:"pos"`
			} `json:"x"`
		} `json:"body"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if got.Type != "Definition" || got.Proto.Name != "sq" {
		t.Errorf("got %s %q", got.Type, got.Proto.Name)
	}
	if strings.Join(got.Proto.Params, ",") != "x" {
		t.Errorf("params = %v", got.Proto.Params)
	}
	if got.Body.Type != "BinaryOp" || got.Body.Op != "*" {
		t.Errorf("body = %s %q", got.Body.Type, got.Body.Op)
	}
	if got.Body.X.Name != "x" || got.Body.X.Pos != "test.kal:1:11" {
		t.Errorf("body.x = %+v", got.Body.X)
	}
}

func TestWalkOrder(t *testing.T) {
	p, _ := newTestParser("def f(a b) g(a, 1) - b")
	d, err := p.ParseDefinition()
	if err != nil {
		t.Fatal(err)
	}

	var kinds []string
	Inspect(d, func(n Node) bool {
		switch n := n.(type) {
		case *Definition:
			kinds = append(kinds, "def")
		case *Prototype:
			kinds = append(kinds, "proto")
		case Expr:
			kinds = append(kinds, Describe(n))
		}
		return true
	})

	want := "def|proto|-(g(a,1),b)|g(a,1)|a|1|b"
	if got := strings.Join(kinds, "|"); got != want {
		t.Errorf("walk order = %s, want %s", got, want)
	}
	if n := CountNodes(d); n != 7 {
		t.Errorf("CountNodes = %d, want 7", n)
	}
}

func TestWalkPrune(t *testing.T) {
	x := parseExpr(t, "f(1, 2) + 3")
	var seen int
	Walk(x, func(n Node) bool {
		seen++
		_, isCall := n.(*Call)
		return !isCall
	})
	// BinaryOp, Call (children skipped), NumberLit 3.
	if seen != 3 {
		t.Errorf("visited %d nodes, want 3", seen)
	}
}

func TestFprintJSONProgram(t *testing.T) {
	p, _ := newTestParser("extern sin(x); 1 + 2")
	decls := p.ParseProgram()

	var buf bytes.Buffer
	if err := FprintJSONProgram(&buf, decls); err != nil {
		t.Fatalf("FprintJSONProgram: %v", err)
	}

	var got []struct {
		Type string `json:"type"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if len(got) != 2 || got[0].Type != "Prototype" || got[0].Name != "sin" || got[1].Type != "Definition" {
		t.Errorf("decoded = %+v", got)
	}

	buf.Reset()
	if err := FprintJSONProgram(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "[]\n" {
		t.Errorf("empty program = %q, want %q", buf.String(), "[]\n")
	}
}
