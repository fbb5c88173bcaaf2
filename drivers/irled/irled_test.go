package irled

import (
	"testing"

	"camtrigger-go/x/mathx"
)

// -----------------------------------------------------------------------------
// Fakes: a recording pin plus a virtual-time delay hook. Every wait is
// attributed to the pin level current at that moment, which is enough
// to reconstruct the full waveform without real sleeping.
// -----------------------------------------------------------------------------

type op struct {
	level bool
	us    int32
}

type fakeGate struct {
	enters, exits, depth int
}

func (g *fakeGate) Enter() { g.enters++; g.depth++ }
func (g *fakeGate) Exit()  { g.exits++; g.depth-- }

type fakePin struct {
	level      bool
	ops        []op
	gate       *fakeGate
	ungatedOps int
}

func (f *fakePin) Set(level bool) { f.level = level }

func (f *fakePin) wait(us int32) {
	if f.gate != nil && f.gate.depth == 0 {
		f.ungatedOps++
	}
	f.ops = append(f.ops, op{level: f.level, us: us})
}

func newFakeEmitter() (*Emitter, *fakePin, *fakeGate) {
	g := &fakeGate{}
	p := &fakePin{gate: g}
	e := &Emitter{pin: p, gate: g, delay: p.wait}
	return e, p, g
}

// -----------------------------------------------------------------------------
// Waveform decoding: collapse the op stream back into carrier bursts,
// direct marks, and spaces.
// -----------------------------------------------------------------------------

type tok struct {
	kind   string // "burst" | "mark" | "space"
	cycles int    // carrier cycles for "burst"
	us     int32  // duration for "mark"/"space"
}

func decode(ops []op) []tok {
	var out []tok
	for i := 0; i < len(ops); i++ {
		o := ops[i]
		if o.level && o.us == carrierHighUS && i+1 < len(ops) &&
			!ops[i+1].level && ops[i+1].us == carrierLowUS {
			// One carrier cycle; coalesce a run of them.
			n := 0
			for i+1 < len(ops) && ops[i].level && ops[i].us == carrierHighUS &&
				!ops[i+1].level && ops[i+1].us == carrierLowUS {
				n++
				i += 2
			}
			i--
			out = append(out, tok{kind: "burst", cycles: n})
			continue
		}
		if o.level {
			out = append(out, tok{kind: "mark", us: o.us})
			continue
		}
		out = append(out, tok{kind: "space", us: o.us})
	}
	return out
}

func cyclesFor(us int32) int {
	return int(mathx.CeilDiv(uint32(us), uint32(carrierPeriodUS)))
}

func wantBurst(t *testing.T, tk tok, pulseUS int32) {
	t.Helper()
	if tk.kind != "burst" {
		t.Fatalf("token = %+v, want carrier burst", tk)
	}
	if tk.cycles != cyclesFor(pulseUS) {
		t.Fatalf("burst cycles = %d, want %d (for %dµs)", tk.cycles, cyclesFor(pulseUS), pulseUS)
	}
}

func wantSpace(t *testing.T, tk tok, us int32) {
	t.Helper()
	if tk.kind != "space" || tk.us != us {
		t.Fatalf("token = %+v, want space %dµs", tk, us)
	}
}

// -----------------------------------------------------------------------------
// Carrier primitive
// -----------------------------------------------------------------------------

func TestCarrierConsumesBudgetInFixedSteps(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.carrier(624)

	toks := decode(p.ops)
	if len(toks) != 1 {
		t.Fatalf("tokens = %+v, want one burst", toks)
	}
	wantBurst(t, toks[0], 624)
	if !p.ops[0].level || p.ops[len(p.ops)-1].level {
		t.Fatal("burst must start high and end low")
	}
}

func TestCarrierZeroBudgetEmitsNothing(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.carrier(0)
	if len(p.ops) != 0 {
		t.Fatalf("ops = %+v, want none", p.ops)
	}
}

// -----------------------------------------------------------------------------
// Protocol frames
// -----------------------------------------------------------------------------

func TestNikonFrame(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Nikon)

	toks := decode(p.ops)
	if len(toks) != 7 {
		t.Fatalf("got %d tokens: %+v", len(toks), toks)
	}
	wantBurst(t, toks[0], 2000)
	wantSpace(t, toks[1], 27830)
	wantBurst(t, toks[2], 390)
	wantSpace(t, toks[3], 1580)
	wantBurst(t, toks[4], 410)
	wantSpace(t, toks[5], 3580)
	wantBurst(t, toks[6], 400)
}

func TestCanonDirectPulses(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Canon)

	toks := decode(p.ops)
	// 16 (mark,space) pairs, the frame gap, then 16 more pairs.
	if len(toks) != 65 {
		t.Fatalf("got %d tokens", len(toks))
	}
	for i := 0; i < 16; i++ {
		if toks[2*i].kind != "mark" || toks[2*i].us != canonMarkUS {
			t.Fatalf("token %d = %+v, want 11µs mark", 2*i, toks[2*i])
		}
		wantSpace(t, toks[2*i+1], canonSpaceUS)
	}
	wantSpace(t, toks[32], canonFrameGapUS)
	for i := 0; i < 16; i++ {
		if toks[33+2*i].kind != "mark" || toks[33+2*i].us != canonMarkUS {
			t.Fatalf("token %d = %+v, want 11µs mark", 33+2*i, toks[33+2*i])
		}
	}
}

func TestPentaxFrame(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Pentax)

	toks := decode(p.ops)
	if len(toks) != 2+2*pentaxBursts {
		t.Fatalf("got %d tokens", len(toks))
	}
	wantBurst(t, toks[0], 13000)
	wantSpace(t, toks[1], 3000)
	for i := 0; i < pentaxBursts; i++ {
		wantBurst(t, toks[2+2*i], 1000)
		wantSpace(t, toks[3+2*i], 1000)
	}
}

// Round-trip property: each bit of a bit-sequence protocol must select
// exactly the timing pair for its value, in sequence order.

func TestOlympusBitSequenceRoundTrip(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Olympus)

	toks := decode(p.ops)
	wantBurst(t, toks[0], olympusHeader.pulseUS)
	wantSpace(t, toks[1], olympusHeader.spaceUS)
	wantBurst(t, toks[2], olympusLeadUS)

	rest := toks[3:]
	if len(rest) != 2*len(olympusBitSeq) {
		t.Fatalf("bit tokens = %d, want %d", len(rest), 2*len(olympusBitSeq))
	}
	for i, bit := range olympusBitSeq {
		wantSpace(t, rest[2*i], olympusBitSpace[bit])
		wantBurst(t, rest[2*i+1], olympusBitUS)
	}
}

func TestMinoltaBitSequenceRoundTrip(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Minolta)

	toks := decode(p.ops)
	wantBurst(t, toks[0], minoltaHeader.pulseUS)
	wantSpace(t, toks[1], minoltaHeader.spaceUS)

	rest := toks[2:]
	if len(rest) != 2*len(minoltaBitSeq) {
		t.Fatalf("bit tokens = %d, want %d", len(rest), 2*len(minoltaBitSeq))
	}
	for i, bit := range minoltaBitSeq {
		wantBurst(t, rest[2*i], minoltaBit[bit].pulseUS)
		wantSpace(t, rest[2*i+1], minoltaBit[bit].spaceUS)
	}
}

func TestCanonWLDC100FrameShape(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(CanonWLDC100)

	toks := decode(p.ops)
	wantBurst(t, toks[0], wldc100Header.pulseUS)
	wantSpace(t, toks[1], wldc100Header.spaceUS)
	body := toks[2:]
	if len(body) != 2*len(wldc100BitSeq)+1 {
		t.Fatalf("body tokens = %d", len(body))
	}
	for i, bit := range wldc100BitSeq {
		wantBurst(t, body[2*i], wldc100Bit[bit].pulseUS)
		wantSpace(t, body[2*i+1], wldc100Bit[bit].spaceUS)
	}
	wantBurst(t, body[len(body)-1], wldc100Trailer)
}

func TestSonySendsThreeRepeats(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Send(Sony)

	toks := decode(p.ops)
	perRepeat := 2 + 2*len(sonyBitSeq) + 1 // header pair + bits + gap
	if len(toks) != sonyRepeats*perRepeat {
		t.Fatalf("got %d tokens, want %d", len(toks), sonyRepeats*perRepeat)
	}
	for r := 0; r < sonyRepeats; r++ {
		rep := toks[r*perRepeat : (r+1)*perRepeat]
		wantBurst(t, rep[0], sonyHeader.pulseUS)
		wantSpace(t, rep[1], sonyHeader.spaceUS)
		for i, bit := range sonyBitSeq {
			wantBurst(t, rep[2+2*i], sonyBitUS[bit])
			wantSpace(t, rep[3+2*i], sonySpaceUS)
		}
		wantSpace(t, rep[perRepeat-1], sonyGapUS)
	}
}

// -----------------------------------------------------------------------------
// Blast sequencing and gating
// -----------------------------------------------------------------------------

func TestBlastIsConcatenationWithSettles(t *testing.T) {
	e, p, _ := newFakeEmitter()
	e.Blast()
	got := decode(p.ops)

	// Expected: each frame in fixed order, one settle space between
	// consecutive frames (6 gaps for 7 sends).
	var want []tok
	for i, proto := range Protocols {
		if i > 0 {
			want = append(want, tok{kind: "space", us: SettleUS})
		}
		fe, fp, _ := newFakeEmitter()
		fe.Send(proto)
		want = append(want, decode(fp.ops)...)
	}

	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d", len(got), len(want))
	}
	settles := 0
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %+v, want %+v", i, got[i], want[i])
		}
		if got[i].kind == "space" && got[i].us == SettleUS {
			settles++
		}
	}
	if settles != len(Protocols)-1 {
		t.Fatalf("settle gaps = %d, want %d", settles, len(Protocols)-1)
	}
}

func TestBlastHoldsGateForWholeSequence(t *testing.T) {
	e, p, g := newFakeEmitter()
	e.Blast()

	if g.enters != 1 || g.exits != 1 {
		t.Fatalf("gate enters/exits = %d/%d, want 1/1", g.enters, g.exits)
	}
	if g.depth != 0 {
		t.Fatalf("gate depth after Blast = %d", g.depth)
	}
	if p.ungatedOps != 0 {
		t.Fatalf("%d waveform ops ran outside the gate", p.ungatedOps)
	}
}

func TestSendGateAlwaysReleased(t *testing.T) {
	e, p, g := newFakeEmitter()
	for _, proto := range Protocols {
		e.Send(proto)
	}
	if g.enters != len(Protocols) || g.exits != len(Protocols) || g.depth != 0 {
		t.Fatalf("gate enters/exits/depth = %d/%d/%d", g.enters, g.exits, g.depth)
	}
	if p.ungatedOps != 0 {
		t.Fatalf("%d waveform ops ran outside the gate", p.ungatedOps)
	}
}
