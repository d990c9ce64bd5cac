package genome

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrMalformedEncoding is wrapped by every Decode failure.
var ErrMalformedEncoding = errors.New("genome: malformed encoding")

// codecVersion is the first payload byte; bumped on layout changes.
const codecVersion = 1

// maxDelay bounds decoded spore delays to something a simulation could
// plausibly wait out.
const maxDelay = 1 << 30

// Encode serializes the gene table to a compact URL-safe string. The
// encoding is lossless: Decode returns an equal genome, color included,
// since the color is derived from the table.
func (g *Genome) Encode() string {
	buf := make([]byte, 1, 1+len(g.genes)*NumSlots*2)
	buf[0] = codecVersion
	buf = appendGenes(buf, g.genes)
	return base64.RawURLEncoding.EncodeToString(buf)
}

// appendGenes appends the canonical byte form of a gene table: a uvarint
// gene count followed by one tag byte per slot with a uvarint payload for
// the kinds that carry one. Also the input of the display-color hash.
func appendGenes(buf []byte, genes []Gene) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(genes)))
	for _, gene := range genes {
		for _, a := range gene {
			buf = append(buf, byte(a.Kind))
			switch a.Kind {
			case GrowBody:
				buf = binary.AppendUvarint(buf, uint64(a.Next))
			case GrowSpore:
				buf = binary.AppendUvarint(buf, uint64(a.Delay))
			}
		}
	}
	return buf
}

// Decode parses a string produced by Encode. Any deviation from the layout
// reports ErrMalformedEncoding.
func Decode(s string) (*Genome, error) {
	raw, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrMalformedEncoding)
	}
	if raw[0] != codecVersion {
		return nil, fmt.Errorf("%w: unknown version %d", ErrMalformedEncoding, raw[0])
	}
	buf := raw[1:]
	count, n := binary.Uvarint(buf)
	if n <= 0 {
		return nil, fmt.Errorf("%w: unreadable gene count", ErrMalformedEncoding)
	}
	buf = buf[n:]
	if count == 0 {
		return nil, fmt.Errorf("%w: empty gene table", ErrMalformedEncoding)
	}
	// Every gene takes at least one byte per slot, which bounds the count a
	// well-formed payload of this length can declare.
	if count > uint64(len(buf)/NumSlots) {
		return nil, fmt.Errorf("%w: gene count %d exceeds payload", ErrMalformedEncoding, count)
	}
	genes := make([]Gene, count)
	for i := range genes {
		for s := range genes[i] {
			if len(buf) == 0 {
				return nil, fmt.Errorf("%w: truncated at gene %d", ErrMalformedEncoding, i)
			}
			kind := Kind(buf[0])
			buf = buf[1:]
			switch kind {
			case NoGrowth:
				genes[i][s] = Action{Kind: NoGrowth}
			case GrowBody:
				next, n := binary.Uvarint(buf)
				if n <= 0 {
					return nil, fmt.Errorf("%w: unreadable target at gene %d", ErrMalformedEncoding, i)
				}
				buf = buf[n:]
				if next >= count {
					return nil, fmt.Errorf("%w: gene %d targets index %d of %d", ErrMalformedEncoding, i, next, count)
				}
				genes[i][s] = Action{Kind: GrowBody, Next: int(next)}
			case GrowSpore:
				delay, n := binary.Uvarint(buf)
				if n <= 0 {
					return nil, fmt.Errorf("%w: unreadable delay at gene %d", ErrMalformedEncoding, i)
				}
				buf = buf[n:]
				if delay > maxDelay {
					return nil, fmt.Errorf("%w: gene %d delay %d out of range", ErrMalformedEncoding, i, delay)
				}
				genes[i][s] = Action{Kind: GrowSpore, Delay: int(delay)}
			default:
				return nil, fmt.Errorf("%w: gene %d has unknown kind %d", ErrMalformedEncoding, i, kind)
			}
		}
	}
	if len(buf) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformedEncoding, len(buf))
	}
	return &Genome{genes: genes, color: deriveColor(genes)}, nil
}
