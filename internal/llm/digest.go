package llm

import (
	"fmt"
	"strings"

	"github.com/somya-ban/genoview/internal/motif"
	"github.com/somya-ban/genoview/internal/orf"
)

// BuildDigest renders the locally computed findings as a compact text block
// for the model. Only ORF and motif results go in: the digest is built
// before the domain lookup returns so the two external calls stay
// independent of each other.
func BuildDigest(seqID string, seqLen int, orfs []orf.ORF, motifs []motif.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analysis results for sequence %s (%d bp)\n", seqID, seqLen)
	fmt.Fprintf(&b, "ORFs found: %d\n", len(orfs))
	if longest := longestORF(orfs); longest != nil {
		fmt.Fprintf(&b, "Longest ORF: %d residues on the %s strand (frame %d, positions %d-%d)\n",
			len(longest.Translation), longest.Strand, longest.Frame, longest.Start, longest.End)
	}
	withStop := 0
	for _, o := range orfs {
		if o.HasStop {
			withStop++
		}
	}
	if len(orfs) > 0 {
		fmt.Fprintf(&b, "ORFs with a stop codon: %d of %d\n", withStop, len(orfs))
	}

	fmt.Fprintf(&b, "Motif matches: %d\n", len(motifs))
	if len(motifs) > 0 {
		counts := map[string]int{}
		var order []string
		for _, m := range motifs {
			if counts[m.Name] == 0 {
				order = append(order, m.Name)
			}
			counts[m.Name]++
		}
		for _, name := range order {
			fmt.Fprintf(&b, "  %s: %d occurrence(s)\n", name, counts[name])
		}
	}
	return b.String()
}

func longestORF(orfs []orf.ORF) *orf.ORF {
	var best *orf.ORF
	for i := range orfs {
		if best == nil || len(orfs[i].Translation) > len(best.Translation) {
			best = &orfs[i]
		}
	}
	return best
}
