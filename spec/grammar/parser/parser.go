package parser

import (
	"io"

	verr "github.com/nihei9/cyk/error"
	spec "github.com/nihei9/cyk/spec/grammar"
)

func raiseSyntaxError(row, col int, synErr *SyntaxError) {
	panic(&verr.SpecError{
		Cause: synErr,
		Row:   row,
		Col:   col,
	})
}

// Parse parses a grammar description.
//
//	#name g1;
//	#axiom S;
//
//	S : A B | a ;
//	A : S B | b ;
//	B : b ;
func Parse(src io.Reader) (*spec.RootNode, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}

	return p.parse()
}

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
	errs      verr.SpecErrors

	// A token position that the parser read at last.
	// It is used as additional information in error messages.
	pos spec.Position
}

func newParser(src io.Reader) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex: lex,
	}, nil
}

func (p *parser) parse() (root *spec.RootNode, retErr error) {
	defer func() {
		err := recover()
		if err == nil {
			return
		}
		specErr, ok := err.(*verr.SpecError)
		if !ok {
			panic(err)
		}
		p.errs = append(p.errs, specErr)
		root = nil
		retErr = p.errs
	}()

	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *spec.RootNode {
	var dirs []*spec.DirectiveNode
	var prods []*spec.ProductionNode
	for {
		if p.consume(tokenKindEOF) {
			break
		}

		if dir := p.parseDirective(); dir != nil {
			dirs = append(dirs, dir)
			continue
		}

		prods = append(prods, p.parseProduction())
	}
	if len(prods) == 0 {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrNoProduction)
	}

	return &spec.RootNode{
		Directives:  dirs,
		Productions: prods,
	}
}

func (p *parser) parseDirective() *spec.DirectiveNode {
	if !p.consume(tokenKindDirectiveMarker) {
		return nil
	}
	dirPos := p.lastTok.pos

	if !p.consume(tokenKindID) {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrNoDirectiveName)
	}
	name := p.lastTok.text

	var params []*spec.ParameterNode
	for {
		if !p.consume(tokenKindID) && !p.consume(tokenKindQuoted) {
			break
		}
		params = append(params, &spec.ParameterNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		})
	}

	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrDirNoSemicolon)
	}

	return &spec.DirectiveNode{
		Name:       name,
		Parameters: params,
		Pos:        dirPos,
	}
}

func (p *parser) parseProduction() *spec.ProductionNode {
	if !p.consume(tokenKindID) && !p.consume(tokenKindQuoted) {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrNoProductionName)
	}
	lhs := p.lastTok.text
	lhsPos := p.lastTok.pos

	if !p.consume(tokenKindColon) {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrNoColon)
	}

	alt := p.parseAlternative()
	rhs := []*spec.AlternativeNode{alt}
	for {
		if !p.consume(tokenKindOr) {
			break
		}
		alt := p.parseAlternative()
		rhs = append(rhs, alt)
	}

	if !p.consume(tokenKindSemicolon) {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrNoSemicolon)
	}

	return &spec.ProductionNode{
		LHS: lhs,
		RHS: rhs,
		Pos: lhsPos,
	}
}

func (p *parser) parseAlternative() *spec.AlternativeNode {
	// An empty alternative is located at the token preceding it (`:` or `|`).
	altPos := p.pos

	var elems []*spec.ElementNode
	for {
		elem := p.parseElement()
		if elem == nil {
			break
		}
		elems = append(elems, elem)
	}
	if len(elems) > 0 {
		altPos = elems[0].Pos
	}

	return &spec.AlternativeNode{
		Elements: elems,
		Pos:      altPos,
	}
}

func (p *parser) parseElement() *spec.ElementNode {
	switch {
	case p.consume(tokenKindID):
		return &spec.ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		}
	case p.consume(tokenKindQuoted):
		return &spec.ElementNode{
			ID:     p.lastTok.text,
			Quoted: true,
			Pos:    p.lastTok.pos,
		}
	}
	return nil
}

func (p *parser) consume(expected tokenKind) bool {
	var tok *token
	var err error
	if p.peekedTok != nil {
		tok = p.peekedTok
		p.peekedTok = nil
	} else {
		tok, err = p.lex.next()
		if err != nil {
			if specErr, ok := err.(*verr.SpecError); ok {
				panic(specErr)
			}
			panic(&verr.SpecError{
				Cause: err,
				Row:   p.pos.Row,
				Col:   p.pos.Col,
			})
		}
	}
	if tok.kind != tokenKindEOF {
		p.pos = tok.pos
	}
	p.lastTok = tok
	if tok.kind == tokenKindInvalid {
		raiseSyntaxError(p.pos.Row, p.pos.Col, synErrInvalidToken)
	}
	if tok.kind == expected {
		return true
	}
	p.peekedTok = tok
	p.lastTok = nil

	return false
}
