package engine

// kwPrefix marks string literals that stood for :keywords in the script.
const kwPrefix = "__kw_"

// preprocessSource rewrites a transform script into something zygomys
// reads:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords
//     need no global registration and never clash with user variables.
//  2. Hyphens inside identifiers become underscores (rotate-about ->
//     rotate_about); zygomys reads a bare hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	s := &scanner{src: []byte(source), out: make([]byte, 0, len(source)+len(source)/4)}
	for s.i < len(s.src) {
		c := s.src[s.i]
		switch {
		case c == '"':
			s.copyQuoted('"', true)
		case c == '`':
			s.copyQuoted('`', false)
		case c == ';':
			s.comment()
		case c == ':' && s.peek() == '=':
			s.emit(2)
		case c == ':' && isLetter(s.peek()):
			s.keyword()
		case c == '-' && s.i > 0 && isIdentChar(s.src[s.i-1]) && isLetter(s.peek()):
			s.out = append(s.out, '_')
			s.i++
		default:
			s.emit(1)
		}
	}
	return string(s.out)
}

type scanner struct {
	src []byte
	out []byte
	i   int
}

func (s *scanner) peek() byte {
	if s.i+1 < len(s.src) {
		return s.src[s.i+1]
	}
	return 0
}

// emit copies n bytes from the input.
func (s *scanner) emit(n int) {
	s.out = append(s.out, s.src[s.i:s.i+n]...)
	s.i += n
}

func (s *scanner) copyQuoted(q byte, escapes bool) {
	s.emit(1)
	for s.i < len(s.src) && s.src[s.i] != q {
		if escapes && s.src[s.i] == '\\' && s.i+1 < len(s.src) {
			s.emit(2)
			continue
		}
		s.emit(1)
	}
	if s.i < len(s.src) {
		s.emit(1)
	}
}

func (s *scanner) comment() {
	s.out = append(s.out, '/', '/')
	for s.i < len(s.src) && s.src[s.i] == ';' {
		s.i++
	}
	for s.i < len(s.src) && s.src[s.i] != '\n' {
		s.emit(1)
	}
}

func (s *scanner) keyword() {
	j := s.i + 1
	for j < len(s.src) && isKWChar(s.src[j]) {
		j++
	}
	s.out = append(s.out, '"')
	s.out = append(s.out, kwPrefix...)
	s.out = append(s.out, s.src[s.i+1:j]...)
	s.out = append(s.out, '"')
	s.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
