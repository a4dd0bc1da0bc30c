package transform

import (
	"fmt"
	"strings"
)

// Strategy decides which Mode applies to each fragment slot. The variants
// are Single and Dual; Apply switches over them.
type Strategy interface {
	isStrategy()
	String() string
}

// Single applies one mode to every fragment.
type Single struct {
	Mode Mode
}

// Dual applies Front to the first fragment and Back to the rest.
type Dual struct {
	Front Mode
	Back  Mode
}

func (Single) isStrategy() {}
func (Dual) isStrategy()   {}

func (s Single) String() string { return s.Mode.String() }

func (d Dual) String() string {
	switch {
	case d.Front == PinyinFull && d.Back == PinyinInit:
		return "dual"
	case d.Front == PinyinInit && d.Back == PinyinFull:
		return "dual-reverse"
	default:
		return fmt.Sprintf("dual(%s/%s)", d.Front, d.Back)
	}
}

// Default is full Pinyin for every slot.
func Default() Strategy {
	return Single{Mode: PinyinFull}
}

// ParseStrategy accepts every ParseMode name plus "dual" (full then
// initials) and "dual-reverse" (initials then full).
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "dual":
		return Dual{Front: PinyinFull, Back: PinyinInit}, nil
	case "dual-reverse":
		return Dual{Front: PinyinInit, Back: PinyinFull}, nil
	}
	m, err := ParseMode(name)
	if err != nil {
		return nil, err
	}
	return Single{Mode: m}, nil
}

// Apply transforms parts slot by slot. A nil strategy means Default.
func Apply(parts []string, s Strategy) []string {
	if s == nil {
		s = Default()
	}
	out := make([]string, len(parts))
	switch st := s.(type) {
	case Single:
		for i, text := range parts {
			out[i] = Transform(text, st.Mode)
		}
	case Dual:
		for i, text := range parts {
			mode := st.Back
			if i == 0 {
				mode = st.Front
			}
			out[i] = Transform(text, mode)
		}
	default:
		panic(fmt.Sprintf("transform: unknown strategy %T", s))
	}
	return out
}
