package irfixture

import (
	"path/filepath"
	"testing"

	"github.com/ZenVoich/motoko/internal/ir"
	"github.com/ZenVoich/motoko/internal/irtypes"
)

func samplePoorly(types *irtypes.Interner) *ir.Program {
	bi := types.Builtins()
	xName := types.Strings.Intern("x")
	letDecl := ir.Decl{Kind: ir.DLet, Data: ir.LetDeclData{
		Pattern: ir.Pattern{Kind: ir.PVar, Type: bi.Nat, Data: ir.VarPatData{Name: xName}},
		Init:    &ir.Expr{Kind: ir.KLit, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.LitData{Value: ir.LitNat(7)}},
	}}
	xVar := &ir.Expr{Kind: ir.KVar, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.VarData{Name: xName}}
	block := &ir.Expr{Kind: ir.KBlock, Type: bi.Nat, Effect: irtypes.Triv, Data: ir.BlockData{Decls: []ir.Decl{letDecl}, Result: xVar}}
	return &ir.Program{DeclGroups: [][]ir.Decl{{letDecl}}, ActorFields: []ir.ActorField{{Label: xName, Value: block}}, Flavor: ir.DefaultFlavor()}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	types := irtypes.NewInterner(nil)
	prog := samplePoorly(types)

	b, err := Encode(prog)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(b)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.DeclGroups) != 1 || len(got.DeclGroups[0]) != 1 {
		t.Fatalf("expected one decl group with one decl, got %#v", got.DeclGroups)
	}
	letData, ok := got.DeclGroups[0][0].Data.(ir.LetDeclData)
	if !ok {
		t.Fatalf("expected LetDeclData, got %T", got.DeclGroups[0][0].Data)
	}
	lit, ok := letData.Init.Data.(ir.LitData)
	if !ok || lit.Value.Uint != 7 {
		t.Fatalf("expected literal 7, got %#v", letData.Init.Data)
	}
	if !got.Flavor.HasAwait {
		t.Fatalf("expected flavor to round-trip with HasAwait set")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	types := irtypes.NewInterner(nil)
	prog := samplePoorly(types)

	path := filepath.Join(t.TempDir(), "sample.mp")
	if err := Save(path, prog); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.ActorFields) != 1 {
		t.Fatalf("expected one actor field, got %d", len(got.ActorFields))
	}
}
