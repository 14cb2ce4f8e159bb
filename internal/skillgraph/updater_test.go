package skillgraph

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/abhisek/socratiq/internal/learner"
)

func adultProfile() learner.Profile {
	return learner.Profile{LearnerID: "l-1", AgeBand: learner.AgeBandAdult}
}

func youngMinorProfile() learner.Profile {
	return learner.Profile{
		LearnerID: "l-2",
		AgeBand:   learner.AgeBand6To9,
		Safety:    learner.SafetyFlags{Minor: true},
	}
}

func obs(t ObservationType, strength float64) Observation {
	return Observation{
		Type:      t,
		Timestamp: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Strength:  strength,
		SessionID: "s-1",
	}
}

func TestApplyEmptyIsIdentity(t *testing.T) {
	g := NewGraph()
	out, audit := Apply(g, adultProfile(), nil)
	if out != g {
		t.Error("expected the same graph reference for empty observations")
	}
	if len(audit) != 0 {
		t.Errorf("got %d audit entries, want 0", len(audit))
	}
}

func TestApplyUnknownHintIsIdentity(t *testing.T) {
	g := NewGraph()
	o := obs(ObsStatedUncertainty, 0.8)
	o.SkillHint = SkillID("charisma")
	out, audit := Apply(g, adultProfile(), []Observation{o})
	if out != g {
		t.Error("expected the same graph reference when no observation maps")
	}
	if len(audit) != 0 {
		t.Errorf("got %d audit entries, want 0", len(audit))
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	g := NewGraph()
	out, _ := Apply(g, adultProfile(), []Observation{obs(ObsStatedUncertainty, 0.8)})
	if out == g {
		t.Fatal("expected a new graph")
	}
	if g.State(SkillUncertaintyHandling) != nil {
		t.Error("input graph was mutated")
	}
	if out.State(SkillUncertaintyHandling) == nil {
		t.Error("output graph missing folded skill")
	}
}

func TestFiveUncertaintyObservationsReachMedium(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	for i := 0; i < 5; i++ {
		g, _ = Apply(g, profile, []Observation{obs(ObsStatedUncertainty, 0.8)})
	}
	st := g.State(SkillUncertaintyHandling)
	if st == nil {
		t.Fatal("missing uncertainty-handling state")
	}
	if st.Exposures != 5 {
		t.Errorf("exposures = %d, want 5", st.Exposures)
	}
	if st.Band != BandMedium {
		t.Errorf("band = %s, want Medium", st.Band.Label())
	}
}

func TestHighBandRequiresTenExposures(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	for i := 0; i < 9; i++ {
		g, _ = Apply(g, profile, []Observation{obs(ObsProvidedEvidence, 0.9)})
	}
	if got := g.State(SkillEvidenceUse).Band; got != BandMedium {
		t.Fatalf("band after 9 = %s, want Medium", got.Label())
	}
	g, _ = Apply(g, profile, []Observation{obs(ObsProvidedEvidence, 0.9)})
	if got := g.State(SkillEvidenceUse).Band; got != BandHigh {
		t.Errorf("band after 10 = %s, want High", got.Label())
	}
}

func TestBandMonotonicWithinOneCall(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	// Reach Medium first.
	for i := 0; i < 3; i++ {
		g, _ = Apply(g, profile, []Observation{obs(ObsCorrectedSelf, 0.9)})
	}
	if got := g.State(SkillErrorCorrection).Band; got != BandMedium {
		t.Fatalf("setup band = %s, want Medium", got.Label())
	}

	// A batch of weak signals dilutes the mean below the Medium bar but
	// must not downgrade the band inside this call.
	weak := []Observation{
		obs(ObsCorrectedSelf, 0.1),
		obs(ObsCorrectedSelf, 0.1),
		obs(ObsCorrectedSelf, 0.1),
		obs(ObsCorrectedSelf, 0.1),
	}
	g, _ = Apply(g, profile, weak)
	if got := g.State(SkillErrorCorrection).Band; got != BandMedium {
		t.Errorf("band after weak batch = %s, want Medium (no downgrade)", got.Label())
	}
}

func TestBandRecomputedAcrossCalls(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	// Reach Medium in one call: 3 exposures, mean 0.8.
	g, _ = Apply(g, profile, []Observation{
		obs(ObsCorrectedSelf, 0.8),
		obs(ObsCorrectedSelf, 0.8),
		obs(ObsCorrectedSelf, 0.8),
	})
	if got := g.State(SkillErrorCorrection).Band; got != BandMedium {
		t.Fatalf("setup band = %s, want Medium", got.Label())
	}

	// One weak signal per call. Mean 2.4/4 = 0.6 keeps Medium; 2.4/5 =
	// 0.48 drops below the bar, and a later call may downgrade.
	g, _ = Apply(g, profile, []Observation{obs(ObsCorrectedSelf, 0.0)})
	if got := g.State(SkillErrorCorrection).Band; got != BandMedium {
		t.Fatalf("band after one weak call = %s, want Medium", got.Label())
	}
	g, audit := Apply(g, profile, []Observation{obs(ObsCorrectedSelf, 0.0)})
	st := g.State(SkillErrorCorrection)
	if st.Band != BandLow {
		t.Errorf("band after dilution = %s, want Low", st.Band.Label())
	}

	var downgrades int
	for _, e := range audit {
		if e.Action == "Updated confidence band" {
			downgrades++
		}
	}
	if downgrades != 1 {
		t.Errorf("band-change entries = %d, want 1", downgrades)
	}

	// The in-process band must agree with a JSON round trip, which
	// recomputes the band from exposures and signals alone.
	data, err := json.Marshal(g)
	if err != nil {
		t.Fatal(err)
	}
	restored := NewGraph()
	if err := json.Unmarshal(data, restored); err != nil {
		t.Fatal(err)
	}
	if got := restored.State(SkillErrorCorrection).Band; got != st.Band {
		t.Errorf("round-trip band = %s, in-process band = %s", got.Label(), st.Band.Label())
	}
}

func TestYoungMinorWeakSignalsSuppressed(t *testing.T) {
	g := NewGraph()
	g, _ = Apply(g, youngMinorProfile(), []Observation{
		obs(ObsStatedUncertainty, 0.3),
		obs(ObsStatedUncertainty, 0.7),
	})
	st := g.State(SkillUncertaintyHandling)
	if st.Exposures != 2 {
		t.Errorf("exposures = %d, want 2 (exposures count regardless of admission)", st.Exposures)
	}
	if got := len(st.RecentSignals()); got != 1 {
		t.Errorf("admitted signals = %d, want 1", got)
	}
}

func TestAdultWeakSignalsAdmitted(t *testing.T) {
	g := NewGraph()
	g, _ = Apply(g, adultProfile(), []Observation{obs(ObsStatedUncertainty, 0.3)})
	if got := len(g.State(SkillUncertaintyHandling).RecentSignals()); got != 1 {
		t.Errorf("admitted signals = %d, want 1", got)
	}
}

func TestSignalWindowBounded(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	for i := 0; i < 50; i++ {
		g, _ = Apply(g, profile, []Observation{obs(ObsProvidedEvidence, 0.6)})
	}
	st := g.State(SkillEvidenceUse)
	if got := len(st.RecentSignals()); got != MaxRecentSignals {
		t.Errorf("signal window = %d, want %d", got, MaxRecentSignals)
	}
	if st.Exposures != 50 {
		t.Errorf("exposures = %d, want 50", st.Exposures)
	}
}

func TestStrengthClamped(t *testing.T) {
	g := NewGraph()
	g, _ = Apply(g, adultProfile(), []Observation{obs(ObsProvidedEvidence, 1.7)})
	sig := g.State(SkillEvidenceUse).RecentSignals()
	if len(sig) != 1 || sig[0] != 1.0 {
		t.Errorf("signals = %v, want [1.0]", sig)
	}
}

func TestAuditEntriesRecorded(t *testing.T) {
	g := NewGraph()
	_, audit := Apply(g, adultProfile(), []Observation{obs(ObsCorrectedSelf, 0.8)})
	if len(audit) != 1 {
		t.Fatalf("got %d audit entries, want 1", len(audit))
	}
	e := audit[0]
	if e.Skill != SkillErrorCorrection {
		t.Errorf("skill = %s, want %s", e.Skill, SkillErrorCorrection)
	}
	if e.Action != "Added signal" {
		t.Errorf("action = %q, want %q", e.Action, "Added signal")
	}
	if e.Previous.Exposures != 0 || e.New.Exposures != 1 {
		t.Errorf("exposures %d -> %d, want 0 -> 1", e.Previous.Exposures, e.New.Exposures)
	}
}

func TestAuditBandChangeEntry(t *testing.T) {
	g := NewGraph()
	profile := adultProfile()
	batch := []Observation{
		obs(ObsAskedClarifyingQuestion, 0.9),
		obs(ObsAskedClarifyingQuestion, 0.9),
		obs(ObsAskedClarifyingQuestion, 0.9),
	}
	_, audit := Apply(g, profile, batch)

	var bandEntries int
	for _, e := range audit {
		if e.Action == "Updated confidence band" {
			bandEntries++
		}
	}
	if bandEntries != 1 {
		t.Errorf("band-change entries = %d, want 1", bandEntries)
	}
}

func TestExplicitSkillHintOverridesDefault(t *testing.T) {
	g := NewGraph()
	o := obs(ObsStatedUncertainty, 0.8)
	o.SkillHint = SkillMetacognition
	g, _ = Apply(g, adultProfile(), []Observation{o})
	if g.State(SkillMetacognition) == nil {
		t.Error("hinted skill not folded")
	}
	if g.State(SkillUncertaintyHandling) != nil {
		t.Error("default mapping applied despite explicit hint")
	}
}
