package spec

import (
	"github.com/Neumenon/elucidator/errs"
)

// Parse parses full specification text:
//
//	designation '(' members ')' ( '(' context ')' )? ';'?
//
// It is total: every input yields exactly one of a valid *Specification or
// a single *errs.Error carrying a byte offset and offending lexeme.
func Parse(input string) (*Specification, error) {
	p := &parser{stream: Tokenize(input)}

	designation, err := p.expectIdent()
	if err != nil {
		return nil, err
	}

	if err := p.expect(TokenLParen); err != nil {
		return nil, err
	}

	members, err := p.parseMemberList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokenRParen); err != nil {
		return nil, err
	}

	spec := &Specification{Designation: designation, Members: members}

	if p.stream.Peek().Type == TokenLParen {
		p.stream.Advance()
		tok := p.stream.Peek()
		if tok.Type != TokenString {
			return nil, p.unexpected(tok, "expected quoted context string")
		}
		p.stream.Advance()
		spec.HasContext = true
		spec.Context = tok.Value
		if err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
	}

	if p.stream.Peek().Type == TokenSemi {
		p.stream.Advance()
	}

	if err := p.expectEnd(); err != nil {
		return nil, err
	}

	return spec, nil
}

// ParseMembers parses the reduced form — a bare member list with no
// surrounding designation clause, e.g. "hits: u64, misses: u64" — used
// when the caller supplies the designation separately (see
// NewSpecification).
func ParseMembers(input string) ([]MemberSpec, error) {
	p := &parser{stream: Tokenize(input)}

	members, err := p.parseMemberList()
	if err != nil {
		return nil, err
	}
	if err := p.expectEnd(); err != nil {
		return nil, err
	}
	return members, nil
}

type parser struct {
	stream *TokenStream
}

// parseMemberList parses "member (',' member)*": at least one member, and a
// comma is always followed by another member. The token after the last
// member is left unconsumed.
func (p *parser) parseMemberList() ([]MemberSpec, error) {
	var members []MemberSpec
	seen := make(map[string]bool)

	for {
		tok := p.stream.Peek()
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		if seen[m.Identifier] {
			return nil, p.errAt(errs.DuplicateMember, tok.Offset, m.Identifier,
				"member %q is declared more than once", m.Identifier)
		}
		seen[m.Identifier] = true
		members = append(members, m)

		if p.stream.Peek().Type == TokenComma {
			p.stream.Advance()
			continue
		}
		break
	}

	return members, nil
}

func (p *parser) parseMember() (MemberSpec, error) {
	name, err := p.expectIdent()
	if err != nil {
		return MemberSpec{}, err
	}
	if err := p.expect(TokenColon); err != nil {
		return MemberSpec{}, err
	}

	dtype, err := p.parseDType()
	if err != nil {
		return MemberSpec{}, err
	}

	return MemberSpec{Identifier: name, DType: dtype.dtype, Array: dtype.array}, nil
}

type dtypeResult struct {
	dtype DataType
	array ArrayForm
}

func (p *parser) parseDType() (dtypeResult, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenWord {
		return dtypeResult{}, p.unexpected(tok, "expected a type name")
	}
	p.stream.Advance()

	dtype, ok := dtypeByName(tok.Value)
	if !ok {
		return dtypeResult{}, p.errAt(errs.UnknownDtype, tok.Offset, tok.Value,
			"unknown data type %q", tok.Value)
	}

	if p.stream.Peek().Type != TokenLBracket {
		return dtypeResult{dtype: dtype, array: ArrayForm{Kind: Scalar}}, nil
	}

	lbracket := p.stream.Advance()
	if dtype == StringType {
		return dtypeResult{}, p.errAt(errs.StringAsArray, lbracket.Offset, "[",
			"string cannot be declared as an array")
	}

	if p.stream.Peek().Type == TokenRBracket {
		p.stream.Advance()
		return dtypeResult{dtype: dtype, array: ArrayForm{Kind: Dynamic}}, nil
	}

	numTok := p.stream.Peek()
	if numTok.Type != TokenNumber {
		return dtypeResult{}, p.unexpected(numTok, "expected array length or ']'")
	}
	p.stream.Advance()

	n := parseUint(numTok.Value)
	if n <= 0 {
		return dtypeResult{}, p.errAt(errs.ZeroOrNegativeArrayLen, numTok.Offset, numTok.Value,
			"fixed array length must be greater than zero, got %q", numTok.Value)
	}

	if err := p.expect(TokenRBracket); err != nil {
		return dtypeResult{}, err
	}

	return dtypeResult{dtype: dtype, array: ArrayForm{Kind: Fixed, Len: n}}, nil
}

// expectIdent consumes a TokenWord and validates it as an identifier.
func (p *parser) expectIdent() (string, error) {
	tok := p.stream.Peek()
	if tok.Type != TokenWord {
		return "", p.unexpected(tok, "expected an identifier")
	}
	p.stream.Advance()
	if !ValidIdentifier(tok.Value) {
		return "", p.errAt(errs.InvalidIdent, tok.Offset, tok.Value,
			"%q is not a valid identifier", tok.Value)
	}
	return tok.Value, nil
}

func (p *parser) expect(typ TokenType) error {
	tok := p.stream.Peek()
	if tok.Type != typ {
		return p.unexpected(tok, "expected "+typ.String())
	}
	p.stream.Advance()
	return nil
}

// expectEnd reports TrailingGarbage if input remains after a structurally
// complete parse.
func (p *parser) expectEnd() error {
	tok := p.stream.Peek()
	if tok.Type == TokenEOF {
		return nil
	}
	return p.errAt(errs.TrailingGarbage, tok.Offset, tok.Value,
		"unexpected trailing input after a complete specification")
}

// unexpected classifies a token that didn't match what the grammar needed
// into UnexpectedEof / UnexpectedChar, per spec.md §4.1.
func (p *parser) unexpected(tok Token, want string) error {
	switch tok.Type {
	case TokenEOF:
		return p.errAt(errs.UnexpectedEof, tok.Offset, "", "unexpected end of input: %s", want)
	case TokenError:
		return p.errAt(errs.UnexpectedChar, tok.Offset, tok.Value, "unexpected character %q: %s", tok.Value, want)
	default:
		return p.errAt(errs.UnexpectedChar, tok.Offset, tok.Value, "unexpected %s: %s", tok.Type, want)
	}
}

func (p *parser) errAt(kind errs.Kind, offset int, lexeme, format string, args ...interface{}) error {
	return errs.At(kind, offset, lexeme, format, args...)
}

// parseUint parses an all-digit token into an int, saturating rather than
// overflowing for implausibly long digit runs (the grammar itself puts no
// upper bound on a fixed-array length).
func parseUint(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		d := int(s[i] - '0')
		if n > (1<<62)/10 {
			return 1 << 62
		}
		n = n*10 + d
	}
	return n
}
