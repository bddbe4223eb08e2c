// Package datastream recognizes print data streams. It decides whether a
// byte window holds AFP structured fields, SCS control sequences, or
// neither, by structural validation only. Nothing is rendered or converted.
//
// Every function is pure and safe for concurrent use.
package datastream

// Classify returns AFP when the window is a valid AFP stream, otherwise SCS
// when it is a valid SCS stream, otherwise UserASCII. Malformed or truncated
// data falls back to UserASCII; the only error is a WindowError for an
// offset/length that does not fit buf.
func Classify(buf []byte, offset, length int) (DataType, error) {
	w, err := newWindow(buf, offset, length)
	if err != nil {
		return 0, err
	}
	if scanAFP(w) == Positive {
		return AFP, nil
	}
	w.pos = offset
	if scanSCS(w) == Positive {
		return SCS, nil
	}
	return UserASCII, nil
}

// Detect classifies all of buf.
func Detect(buf []byte) DataType {
	t, _ := Classify(buf, 0, len(buf))
	return t
}

// Analyze runs both validators and reports their verdicts along with the
// resulting type. Unlike Classify it does not stop after an AFP match.
func Analyze(buf []byte, offset, length int) (Report, error) {
	w, err := newWindow(buf, offset, length)
	if err != nil {
		return Report{}, err
	}
	r := Report{Length: length}
	r.AFP = scanAFP(w)
	w.pos = offset
	r.SCS = scanSCS(w)

	switch {
	case r.AFP == Positive:
		r.Type = AFP
	case r.SCS == Positive:
		r.Type = SCS
	default:
		r.Type = UserASCII
	}
	return r, nil
}
