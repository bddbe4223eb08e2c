package datastream

// AnalyzeSCS walks the window as SCS: EBCDIC text (bytes >= 0x40) mixed
// with the control sequences in the command table. Single-byte controls are
// accepted but prove nothing; the verdict is Positive only when at least one
// multi-byte command matched and the walk reached the end of the window.
func AnalyzeSCS(buf []byte, offset, length int) (Verdict, error) {
	w, err := newWindow(buf, offset, length)
	if err != nil {
		return Negative, err
	}
	return scanSCS(w), nil
}

// IsSCS reports whether the window is an SCS stream. Invalid windows report
// false.
func IsSCS(buf []byte, offset, length int) bool {
	v, err := AnalyzeSCS(buf, offset, length)
	return err == nil && v == Positive
}

func scanSCS(w *window) Verdict {
	matched := false
	for !w.empty() {
		code := w.byteAt(0)
		if code >= SCSControlLimit {
			w.advance(1)
			continue
		}
		kind, ok := table.leaders[code]
		if !ok {
			return Negative
		}
		if kind == KindControl {
			w.advance(1)
			continue
		}

		size, v := commandSize(w, code, kind)
		if v != Positive {
			return v
		}
		w.advance(size)
		matched = true
	}
	if !matched {
		return Inconclusive
	}
	return Positive
}

// commandSize validates the multi-byte command at the cursor and returns
// its total length. The verdict is Positive when the command is complete
// and recognized.
func commandSize(w *window, code byte, kind CommandKind) (int, Verdict) {
	switch kind {
	case KindPresentationPosition, KindSetAttribute:
		if w.remaining() < ppSize {
			return 0, Inconclusive
		}
		if _, ok := table.functions[[2]byte{code, w.byteAt(1)}]; !ok {
			return 0, Negative
		}
		return ppSize, Positive

	case KindCSP:
		return cspSize(w)

	case KindTransparency:
		if w.remaining() < trnMinSize {
			return 0, Inconclusive
		}
		size := int(w.byteAt(1)) + trnMinSize
		if size > w.remaining() {
			return 0, Inconclusive
		}
		return size, Positive
	}
	return 0, Negative
}

// cspSize handles 2B class count [subtype] ..., where the whole command is
// count+2 bytes long.
func cspSize(w *window) (int, Verdict) {
	if w.remaining() < cspMinSize {
		return 0, Inconclusive
	}
	class := w.byteAt(1)
	size := int(w.byteAt(2)) + 2

	if _, ok := table.cspDirect[class]; ok {
		if size < cspMinSize {
			return 0, Negative
		}
		if size > w.remaining() {
			return 0, Inconclusive
		}
		return size, Positive
	}

	subs, ok := table.cspExtended[class]
	if !ok {
		return 0, Negative
	}
	if size < cspExtSize {
		return 0, Negative
	}
	if size > w.remaining() {
		return 0, Inconclusive
	}
	if _, ok := subs[w.byteAt(3)]; !ok {
		return 0, Negative
	}
	return size, Positive
}
