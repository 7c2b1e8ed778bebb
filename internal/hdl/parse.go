// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	hwsim "github.com/kvory/nandsim"
)

// Parser consumes HDL source, one token of lookahead.
type Parser struct {
	lex *lexer
	tok token
}

// NewParser returns a Parser over src.
func NewParser(src string) *Parser {
	p := &Parser{lex: newLexer(src)}
	p.advance()
	return p
}

func (p *Parser) advance() { p.tok = p.lex.next() }

func (p *Parser) errf(format string, args ...interface{}) error {
	return errors.Errorf("hdl: line %d: %s", p.tok.line, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(k tokenKind, what string) (token, error) {
	if p.tok.kind != k {
		return token{}, p.errf("expected %s, got %q", what, p.tok.text)
	}
	t := p.tok
	p.advance()
	return t, nil
}

// ParseFile parses a sequence of zero or more "CHIP Name { ... }"
// definitions and returns their AST, in source order.
func (p *Parser) ParseFile() ([]*hwsim.ChipDef, error) {
	var defs []*hwsim.ChipDef
	for p.tok.kind != tokEOF {
		id, err := p.expect(tokIdent, "CHIP")
		if err != nil {
			return nil, err
		}
		if !strings.EqualFold(id.text, "CHIP") {
			return nil, p.errf("expected CHIP, got %q", id.text)
		}
		def, err := p.parseChip()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	return defs, nil
}

func (p *Parser) parseChip() (*hwsim.ChipDef, error) {
	name, err := p.expect(tokIdent, "chip name")
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokLBrace, "{"); err != nil {
		return nil, err
	}
	def := &hwsim.ChipDef{Name: name.text}
	for p.tok.kind == tokIdent {
		switch strings.ToUpper(p.tok.text) {
		case "IN":
			p.advance()
			decls, err := p.parsePinDecls()
			if err != nil {
				return nil, err
			}
			def.Inputs = decls
		case "OUT":
			p.advance()
			decls, err := p.parsePinDecls()
			if err != nil {
				return nil, err
			}
			def.Outputs = decls
		case "BUILTIN":
			p.advance()
			def.IsBuiltin = true
			if _, err := p.expect(tokSemi, ";"); err != nil {
				return nil, err
			}
		case "PARTS":
			p.advance()
			if _, err := p.expect(tokColon, ":"); err != nil {
				return nil, err
			}
			parts, err := p.parseParts()
			if err != nil {
				return nil, err
			}
			def.Parts = parts
		default:
			return nil, p.errf("unexpected section %q", p.tok.text)
		}
	}
	if _, err := p.expect(tokRBrace, "}"); err != nil {
		return nil, err
	}
	return def, nil
}

func (p *Parser) parsePinDecls() ([]hwsim.ASTPinDecl, error) {
	var decls []hwsim.ASTPinDecl
	for {
		id, err := p.expect(tokIdent, "pin name")
		if err != nil {
			return nil, err
		}
		width := 1
		if p.tok.kind == tokLBracket {
			p.advance()
			n, err := p.expect(tokInt, "pin width")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRBracket, "]"); err != nil {
				return nil, err
			}
			width = n.ival
		}
		decls = append(decls, hwsim.ASTPinDecl{Name: id.text, Width: width})
		if p.tok.kind == tokComma {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(tokSemi, ";"); err != nil {
		return nil, err
	}
	return decls, nil
}

func (p *Parser) parseParts() ([]hwsim.ASTPart, error) {
	var parts []hwsim.ASTPart
	for p.tok.kind == tokIdent {
		name, err := p.expect(tokIdent, "part name")
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokLParen, "("); err != nil {
			return nil, err
		}
		var conns []hwsim.ASTWire
		if p.tok.kind != tokRParen {
			for {
				w, err := p.parseWire()
				if err != nil {
					return nil, err
				}
				conns = append(conns, w)
				if p.tok.kind == tokComma {
					p.advance()
					continue
				}
				break
			}
		}
		if _, err := p.expect(tokRParen, ")"); err != nil {
			return nil, err
		}
		if _, err := p.expect(tokSemi, ";"); err != nil {
			return nil, err
		}
		parts = append(parts, hwsim.ASTPart{Name: name.text, Conns: conns})
	}
	return parts, nil
}

// parseWire parses "partPin[range]=hostRef[range]" into an ASTWire whose
// From is the part-side reference and To the host-side reference.
func (p *Parser) parseWire() (hwsim.ASTWire, error) {
	from, err := p.parseWireSide()
	if err != nil {
		return hwsim.ASTWire{}, err
	}
	if _, err := p.expect(tokEqual, "="); err != nil {
		return hwsim.ASTWire{}, err
	}
	to, err := p.parseWireSide()
	if err != nil {
		return hwsim.ASTWire{}, err
	}
	return hwsim.ASTWire{From: from, To: to}, nil
}

func (p *Parser) parseWireSide() (hwsim.ASTWireSide, error) {
	if p.tok.kind == tokIdent && (strings.EqualFold(p.tok.text, "true") || strings.EqualFold(p.tok.text, "false")) {
		v := strings.EqualFold(p.tok.text, "true")
		p.advance()
		return hwsim.ASTWireSide{IsConst: true, Const: v}, nil
	}
	id, err := p.expect(tokIdent, "pin reference")
	if err != nil {
		return hwsim.ASTWireSide{}, err
	}
	side := hwsim.ASTWireSide{Pin: id.text}
	if p.tok.kind == tokLBracket {
		p.advance()
		lo, err := p.expect(tokInt, "bit index")
		if err != nil {
			return hwsim.ASTWireSide{}, err
		}
		hi := lo.ival
		if p.tok.kind == tokRange {
			p.advance()
			hiTok, err := p.expect(tokInt, "range end")
			if err != nil {
				return hwsim.ASTWireSide{}, err
			}
			hi = hiTok.ival
		}
		if _, err := p.expect(tokRBracket, "]"); err != nil {
			return hwsim.ASTWireSide{}, err
		}
		side.HasRange = true
		side.Range = hwsim.ASTRange{Start: lo.ival, End: hi}
	}
	return side, nil
}
