package ansi

import "strings"

// IsSGR reports whether seq is a Select Graphic Rendition sequence (ESC [ ... m).
func IsSGR(seq string) bool {
	if len(seq) < 3 || !strings.HasPrefix(seq, CSI) || seq[len(seq)-1] != 'm' {
		return false
	}
	for i := 2; i < len(seq)-1; i++ {
		c := seq[i]
		if (c < '0' || c > '9') && c != ';' {
			return false
		}
	}
	return true
}

// isResetSGR reports whether an SGR sequence clears all attributes.
func isResetSGR(seq string) bool {
	params := seq[2 : len(seq)-1]
	for _, p := range strings.Split(params, ";") {
		if strings.Trim(p, "0") != "" {
			return false
		}
	}
	return true
}

// SGRState accumulates the SGR sequences in effect at some point of a scan.
// A reset clears it. The zero value is the terminal default.
type SGRState struct {
	seqs []string
}

// Apply folds an escape sequence into the state. Non-SGR sequences are ignored.
func (st *SGRState) Apply(seq string) {
	if !IsSGR(seq) {
		return
	}
	if isResetSGR(seq) {
		st.seqs = st.seqs[:0]
		return
	}
	st.seqs = append(st.seqs, seq)
}

// ApplyAll folds every SGR sequence found in s.
func (st *SGRState) ApplyAll(s string) error {
	segs, err := Segments(s)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		if seg.Kind == Escape {
			st.Apply(seg.Value)
		}
	}
	return nil
}

// Active reports whether any non-default attribute is in effect.
func (st *SGRState) Active() bool {
	return len(st.seqs) > 0
}

// Open returns the sequences that re-establish the state from the terminal default.
func (st *SGRState) Open() string {
	return strings.Join(st.seqs, "")
}

// Clone returns an independent copy.
func (st *SGRState) Clone() SGRState {
	return SGRState{seqs: append([]string(nil), st.seqs...)}
}
