package orf

// Standard genetic code (NCBI table 1), DNA alphabet. Stop codons translate
// to '*' here; the scanner never emits '*' in an ORF translation.
var geneticCode = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// iupacBases expands each IUPAC code to the unambiguous bases it stands for.
var iupacBases = map[byte]string{
	'A': "A", 'C': "C", 'G': "G", 'T': "T",
	'R': "AG", 'Y': "CT", 'S': "CG", 'W': "AT",
	'K': "GT", 'M': "AC",
	'B': "CGT", 'D': "AGT", 'H': "ACT", 'V': "ACG",
	'N': "ACGT",
}

// translateCodon maps one codon to its amino acid. A codon containing
// ambiguity codes is translated only when every expansion agrees on the same
// residue (e.g. GCN is always Ala); otherwise it yields the placeholder 'X'.
func translateCodon(codon string) byte {
	if aa, ok := geneticCode[codon]; ok {
		return aa
	}
	var residue byte
	for _, a := range iupacBases[codon[0]] {
		for _, b := range iupacBases[codon[1]] {
			for _, c := range iupacBases[codon[2]] {
				aa := geneticCode[string([]byte{byte(a), byte(b), byte(c)})]
				if residue == 0 {
					residue = aa
				} else if aa != residue {
					return 'X'
				}
			}
		}
	}
	if residue == 0 {
		return 'X'
	}
	return residue
}
