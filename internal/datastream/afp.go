package datastream

// AnalyzeAFP walks the window as a chain of AFP structured fields:
//
//	5A LL LL <LL-2 bytes: identifier, flags, sequence, data>
//
// LL counts itself and everything after it, not the introducer. Every field
// must start exactly where the previous one ended. A single field is never
// enough: at least two introducers are required for a Positive verdict.
func AnalyzeAFP(buf []byte, offset, length int) (Verdict, error) {
	w, err := newWindow(buf, offset, length)
	if err != nil {
		return Negative, err
	}
	return scanAFP(w), nil
}

// IsAFP reports whether the window is a well-formed AFP stream. Invalid
// windows report false.
func IsAFP(buf []byte, offset, length int) bool {
	v, err := AnalyzeAFP(buf, offset, length)
	return err == nil && v == Positive
}

func scanAFP(w *window) Verdict {
	fields := 0
	for !w.empty() {
		if w.byteAt(0) != AFPIntroducer {
			return Negative
		}
		fields++
		if w.remaining() < afpHeaderSize {
			return Inconclusive
		}
		size := w.uint16At(1)
		if size < AFPMinFieldSize {
			return Negative
		}
		if !w.advance(1 + size) {
			return Inconclusive
		}
	}
	if fields < 2 {
		return Inconclusive
	}
	return Positive
}
