package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somya-ban/genoview/internal/interpro"
	"github.com/somya-ban/genoview/internal/motif"
	"github.com/somya-ban/genoview/internal/orf"
	"github.com/somya-ban/genoview/internal/seq"
)

func TestFinalizeRequiresAllSections(t *testing.T) {
	a := NewAssembler(SequenceInfo{ID: "seq1", Length: 9})
	require.NoError(t, a.SetORFs(nil))
	require.NoError(t, a.SetMotifs(nil))

	_, err := a.Finalize()
	assert.ErrorIs(t, err, ErrIncomplete)

	_, err = a.MarshalJSON()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestPartialResultsStillSerialize(t *testing.T) {
	a := NewAssembler(SequenceInfo{ID: "seq1", Length: 9, StrandInfo: "double-stranded"})
	require.NoError(t, a.SetORFs([]orf.ORF{{ID: "orf_1", Start: 0, End: 9, Strand: seq.Forward, Translation: "MK", HasStop: true}}))
	require.NoError(t, a.SetMotifs([]motif.Match{{Name: "TATA_BOX_LIKE", Strand: seq.Forward, Start: 1, End: 8, Match: "TATAAAA"}}))
	require.NoError(t, a.MarkFailed(SectionDomains))
	require.NoError(t, a.SetSummary("Coding region found."))

	data, err := a.MarshalJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	status := decoded["status"].(map[string]any)
	assert.Equal(t, "failed", status["domains"])
	assert.Equal(t, "ok", status["summary"])
	assert.Equal(t, "ok", status["orfs"])
	sequence := decoded["sequence"].(map[string]any)
	assert.Equal(t, float64(9), sequence["length"])
}

func TestSkippedSection(t *testing.T) {
	a := NewAssembler(SequenceInfo{Length: 3})
	require.NoError(t, a.SetORFs(nil))
	require.NoError(t, a.SetMotifs(nil))
	require.NoError(t, a.MarkSkipped(SectionDomains))
	require.NoError(t, a.MarkSkipped(SectionSummary))

	rep, err := a.Finalize()
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, rep.Status.Domains)
	assert.Equal(t, StatusSkipped, rep.Status.Summary)
	assert.False(t, rep.GeneratedAt.IsZero())
}

func TestFinalizedReportIsFrozen(t *testing.T) {
	a := NewAssembler(SequenceInfo{Length: 3})
	require.NoError(t, a.SetORFs(nil))
	require.NoError(t, a.SetMotifs(nil))
	require.NoError(t, a.MarkSkipped(SectionDomains))
	require.NoError(t, a.MarkSkipped(SectionSummary))

	_, err := a.Finalize()
	require.NoError(t, err)

	assert.Error(t, a.SetSummary("late"))
	assert.Error(t, a.SetDomains([]interpro.Domain{{ORFID: "orf_1"}}))
	assert.Error(t, a.MarkFailed(SectionDomains))
}

func TestUnknownSectionRejected(t *testing.T) {
	a := NewAssembler(SequenceInfo{})
	assert.Error(t, a.MarkFailed("proteins"))
}

func TestEmptyCollectionsEncodeAsArrays(t *testing.T) {
	a := NewAssembler(SequenceInfo{Length: 1})
	require.NoError(t, a.SetORFs(nil))
	require.NoError(t, a.SetMotifs(nil))
	require.NoError(t, a.MarkSkipped(SectionDomains))
	require.NoError(t, a.MarkSkipped(SectionSummary))

	data, err := a.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"orfs": []`)
	assert.Contains(t, string(data), `"domains": []`)

	var roundtrip Report
	require.NoError(t, json.Unmarshal(data, &roundtrip))
	assert.Equal(t, 1, roundtrip.Sequence.Length)
}
