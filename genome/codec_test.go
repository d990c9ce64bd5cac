package genome

import (
	"encoding/base64"
	"errors"
	"math/rand"
	"testing"
)

// ---------- round trip ----------

func TestCodec_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	for i := 0; i < 20; i++ {
		g := NewRandom(Params{Size: 1 + rng.Intn(60), StopChance: 0.4, SporeChance: 0.1, SporeDelay: rng.Intn(200)}, rng)
		decoded, err := Decode(g.Encode())
		if err != nil {
			t.Fatalf("decode of freshly encoded genome: %v", err)
		}
		if !genesEqual(g.genes, decoded.genes) {
			t.Fatal("round trip changed the gene table")
		}
		if g.Color() != decoded.Color() {
			t.Fatalf("round trip changed the color: %v vs %v", g.Color(), decoded.Color())
		}
	}
}

func TestCodec_RoundTripHandWritten(t *testing.T) {
	genes := []Gene{
		{Action{Kind: GrowBody, Next: 2}, Action{Kind: NoGrowth}, Action{Kind: GrowSpore, Delay: 0}},
		{Action{Kind: GrowSpore, Delay: 300}, Action{Kind: GrowBody, Next: 0}, Action{Kind: NoGrowth}},
		{Action{Kind: NoGrowth}, Action{Kind: NoGrowth}, Action{Kind: NoGrowth}},
	}
	g, err := New(genes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	decoded, err := Decode(g.Encode())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !genesEqual(g.genes, decoded.genes) {
		t.Error("round trip changed the gene table")
	}
}

// ---------- malformed input ----------

func TestDecode_Malformed(t *testing.T) {
	valid := mustGenome(t, []Gene{
		{Action{Kind: GrowBody, Next: 0}, Action{Kind: NoGrowth}, Action{Kind: NoGrowth}},
	}).Encode()

	cases := []struct {
		name string
		in   string
	}{
		{"not base64", "??!!"},
		{"empty", ""},
		{"empty payload", base64.RawURLEncoding.EncodeToString(nil)},
		{"unknown version", base64.RawURLEncoding.EncodeToString([]byte{99, 1, 0, 0, 0})},
		{"zero gene count", base64.RawURLEncoding.EncodeToString([]byte{1, 0})},
		{"count exceeds payload", base64.RawURLEncoding.EncodeToString([]byte{1, 200, 1, 0, 0, 0})},
		{"unknown kind", base64.RawURLEncoding.EncodeToString([]byte{1, 1, 7, 0, 0})},
		{"target out of range", base64.RawURLEncoding.EncodeToString([]byte{1, 1, 1, 5, 0, 0})},
		{"truncated", valid[:len(valid)-2]},
		{"trailing bytes", base64.RawURLEncoding.EncodeToString(append(decodeB64(t, valid), 0, 0, 0))},
	}
	for _, c := range cases {
		_, err := Decode(c.in)
		if err == nil {
			t.Errorf("%s: expected error", c.name)
			continue
		}
		if !errors.Is(err, ErrMalformedEncoding) {
			t.Errorf("%s: error %v does not wrap ErrMalformedEncoding", c.name, err)
		}
	}
}

func TestDecode_ValidInputNoError(t *testing.T) {
	// version 1, one gene: forward GrowBody->0, left NoGrowth, right GrowSpore delay 9.
	raw := []byte{1, 1, 1, 0, 0, 2, 9}
	g, err := Decode(base64.RawURLEncoding.EncodeToString(raw))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g.Len() != 1 {
		t.Fatalf("expected 1 gene, got %d", g.Len())
	}
	want := Gene{
		Action{Kind: GrowBody, Next: 0},
		Action{Kind: NoGrowth},
		Action{Kind: GrowSpore, Delay: 9},
	}
	if g.genes[0] != want {
		t.Errorf("decoded gene %+v, want %+v", g.genes[0], want)
	}
}

func mustGenome(t *testing.T, genes []Gene) *Genome {
	t.Helper()
	g, err := New(genes)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func decodeB64(t *testing.T, s string) []byte {
	t.Helper()
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		t.Fatalf("decode base64: %v", err)
	}
	return raw
}
