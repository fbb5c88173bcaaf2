package irled

// Protocol identifies one supported camera brand code. The set is
// closed: six brands, seven codes (Canon ships two generations).
type Protocol uint8

const (
	Nikon Protocol = iota
	Canon
	CanonWLDC100
	Pentax
	Olympus
	Minolta
	Sony
)

// Protocols is the fixed emission order used by Blast.
var Protocols = [...]Protocol{Nikon, Canon, CanonWLDC100, Pentax, Olympus, Minolta, Sony}

func (p Protocol) String() string {
	switch p {
	case Nikon:
		return "nikon"
	case Canon:
		return "canon"
	case CanonWLDC100:
		return "canon_wldc100"
	case Pentax:
		return "pentax"
	case Olympus:
		return "olympus"
	case Minolta:
		return "minolta"
	case Sony:
		return "sony"
	}
	return "unknown"
}

// -----------------------------------------------------------------------------
// Timing tables. All values are microseconds, reproduced from the
// published/observed remote codes for each brand. Immutable.
// -----------------------------------------------------------------------------

// segment is one carrier burst followed by a quiet space.
type segment struct {
	pulseUS int32
	spaceUS int32
}

// Nikon ML-L3: four carrier bursts with long fixed spaces.
var nikonFrame = [...]segment{
	{2000, 27830},
	{390, 1580},
	{410, 3580},
	{400, 0},
}

// Canon RC-1 drives its own ~33kHz period directly: two runs of 16
// bare 11µs/11µs pulses separated by one long gap.
const (
	canonPulses    = 16
	canonMarkUS    = 11
	canonSpaceUS   = 11
	canonFrameGapUS = 7330
)

// Canon WL-DC100: NEC-style header, 32 data bits (pulse then a space
// picked by the bit value), one trailing pulse.
var (
	wldc100Header  = segment{9042, 4379}
	wldc100BitSeq  = [...]uint8{0, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0, 0, 1, 1, 1, 0, 1}
	wldc100Bit     = [2]segment{{612, 512}, {612, 1621}}
	wldc100Trailer = int32(599)
)

// Pentax: long header then seven 1ms/1ms bursts.
var (
	pentaxHeader = segment{13000, 3000}
	pentaxBurst  = segment{1000, 1000}
)

const pentaxBursts = 7

// Olympus RM-1 (code 0x61DC807F, MSB first): header, lead-in burst,
// then per bit a space picked by the bit value followed by a burst.
var (
	olympusHeader = segment{8972, 4384}
	olympusLeadUS = int32(624)
	olympusBitSeq = [...]uint8{0, 1, 1, 0, 0, 0, 0, 1, 1, 1, 0, 1, 1, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1}
	// space before the 600µs burst: [bit] -> µs
	olympusBitSpace = [2]int32{488, 1600}
	olympusBitUS    = int32(600)
)

// Minolta RC-3: header then 32 bits, each a fixed burst with a space
// picked by the bit value.
var (
	minoltaHeader = segment{3750, 1890}
	minoltaBitSeq = [...]uint8{0, 0, 1, 1, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 1, 1, 0, 0, 0, 1, 1, 0, 0, 1, 1, 0, 0, 0}
	minoltaBit    = [2]segment{{456, 487}, {456, 1430}}
)

// Sony RMT-DSLR1 shutter (20-bit code 0xB4B8F, MSB first), sent three
// times with a 10ms gap: header burst, then per bit a burst whose
// width encodes the value, each followed by the same space.
var (
	sonyHeader  = segment{2320, 650}
	sonyBitSeq  = [...]uint8{1, 0, 1, 1, 0, 1, 0, 0, 1, 0, 1, 1, 1, 0, 0, 0, 1, 1, 1, 1}
	sonyBitUS   = [2]int32{575, 1175}
	sonySpaceUS = int32(650)
	sonyGapUS   = int32(10000)
)

const sonyRepeats = 3

// -----------------------------------------------------------------------------
// Per-protocol emission
// -----------------------------------------------------------------------------

func (e *Emitter) send(p Protocol) {
	switch p {
	case Nikon:
		e.sendNikon()
	case Canon:
		e.sendCanon()
	case CanonWLDC100:
		e.sendCanonWLDC100()
	case Pentax:
		e.sendPentax()
	case Olympus:
		e.sendOlympus()
	case Minolta:
		e.sendMinolta()
	case Sony:
		e.sendSony()
	}
}

func (e *Emitter) sendNikon() {
	for _, s := range nikonFrame {
		e.carrier(s.pulseUS)
		if s.spaceUS > 0 {
			e.space(s.spaceUS)
		}
	}
}

func (e *Emitter) sendCanon() {
	for i := 0; i < canonPulses; i++ {
		e.mark(canonMarkUS)
		e.space(canonSpaceUS)
	}
	e.space(canonFrameGapUS)
	for i := 0; i < canonPulses; i++ {
		e.mark(canonMarkUS)
		e.space(canonSpaceUS)
	}
}

func (e *Emitter) sendCanonWLDC100() {
	e.carrier(wldc100Header.pulseUS)
	e.space(wldc100Header.spaceUS)
	for _, bit := range wldc100BitSeq {
		s := wldc100Bit[bit]
		e.carrier(s.pulseUS)
		e.space(s.spaceUS)
	}
	e.carrier(wldc100Trailer)
}

func (e *Emitter) sendPentax() {
	e.carrier(pentaxHeader.pulseUS)
	e.space(pentaxHeader.spaceUS)
	for i := 0; i < pentaxBursts; i++ {
		e.carrier(pentaxBurst.pulseUS)
		e.space(pentaxBurst.spaceUS)
	}
}

func (e *Emitter) sendOlympus() {
	e.carrier(olympusHeader.pulseUS)
	e.space(olympusHeader.spaceUS)
	e.carrier(olympusLeadUS)
	for _, bit := range olympusBitSeq {
		e.space(olympusBitSpace[bit])
		e.carrier(olympusBitUS)
	}
}

func (e *Emitter) sendMinolta() {
	e.carrier(minoltaHeader.pulseUS)
	e.space(minoltaHeader.spaceUS)
	for _, bit := range minoltaBitSeq {
		s := minoltaBit[bit]
		e.carrier(s.pulseUS)
		e.space(s.spaceUS)
	}
}

func (e *Emitter) sendSony() {
	for r := 0; r < sonyRepeats; r++ {
		e.carrier(sonyHeader.pulseUS)
		e.space(sonyHeader.spaceUS)
		for _, bit := range sonyBitSeq {
			e.carrier(sonyBitUS[bit])
			e.space(sonySpaceUS)
		}
		e.space(sonyGapUS)
	}
}
