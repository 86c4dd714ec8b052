// Package parser groups lexical tokens into shallow structural nodes:
// class, function, variable and enum declarations, include lists and
// switch blocks. It tracks brace depth instead of a full grammar and is
// deliberately best-effort: anything it cannot classify becomes an Opaque
// node that no rule inspects.
package parser

import (
	"strings"

	m "conform.dev/pkg/conform/internal/model"
)

type parser struct {
	file *m.SourceFile
	toks []m.Token // structural tokens, comments stripped
	pos  int
}

// Parse builds the node tree for a tokenized file. It never fails: the
// worst outcome for a construct is an Opaque node. The root node has kind
// NodeFile and spans the whole file.
func Parse(file *m.SourceFile) *m.Node {
	p := &parser{file: file}

	for _, tok := range file.Tokens {
		if tok.Kind != m.TokenComment {
			p.toks = append(p.toks, tok)
		}
	}

	root := &m.Node{
		Kind:    m.NodeFile,
		Line:    1,
		Column:  1,
		EndLine: len(file.Lines),
	}

	var includeNode *m.Node

	for !p.eof() {
		tok := p.cur()

		switch {
		case tok.IsKeyword("#include"):
			directive, ok := p.parseInclude()
			if !ok {
				continue
			}

			if includeNode == nil {
				includeNode = &m.Node{
					Kind:     m.NodeIncludeList,
					Line:     directive.Line,
					Column:   1,
					EndLine:  directive.Line,
					Includes: &m.IncludeList{},
				}
				root.Children = append(root.Children, includeNode)
			}

			includeNode.Includes.Directives = append(includeNode.Includes.Directives, directive)
			includeNode.EndLine = directive.Line

		case tok.Kind == m.TokenKeyword && strings.HasPrefix(tok.Text, "#"):
			p.skipDirectiveLine()

		case tok.IsKeyword("template"):
			root.Children = append(root.Children, p.parseTemplate())

		case tok.IsKeyword("class") || tok.IsKeyword("struct"):
			root.Children = append(root.Children, p.parseClass(false))

		case tok.IsKeyword("enum"):
			root.Children = append(root.Children, p.parseEnum())

		case tok.IsKeyword("using") || tok.IsKeyword("namespace") || tok.IsKeyword("typedef") || tok.IsKeyword("extern"):
			root.Children = append(root.Children, p.parseOpaque())

		default:
			if node, ok := p.tryParseFunction(); ok {
				root.Children = append(root.Children, node)

				break
			}

			if node, ok := p.tryParseVariable(); ok {
				root.Children = append(root.Children, node)

				break
			}

			root.Children = append(root.Children, p.parseOpaque())
		}
	}

	return root
}

// --- cursor helpers ---

func (p *parser) eof() bool {
	return p.pos >= len(p.toks)
}

func (p *parser) cur() m.Token {
	return p.at(p.pos)
}

func (p *parser) peek(n int) m.Token {
	return p.at(p.pos + n)
}

func (p *parser) at(i int) m.Token {
	if i < 0 || i >= len(p.toks) {
		return m.Token{Kind: m.TokenPunct}
	}

	return p.toks[i]
}

func (p *parser) next() m.Token {
	tok := p.cur()
	if !p.eof() {
		p.pos++
	}

	return tok
}

// accept consumes the current token when it has the given text.
func (p *parser) accept(text string) bool {
	if !p.eof() && p.cur().Is(text) {
		p.pos++

		return true
	}

	return false
}

// skipBalanced consumes from the current open token through its matching
// close token. Tolerant of EOF: it simply stops.
func (p *parser) skipBalanced(open, close string) {
	depth := 0

	for !p.eof() {
		tok := p.next()
		if tok.Is(open) {
			depth++
		} else if tok.Is(close) {
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// skipTemplateArgs consumes a <...> run, counting '>' inside '>>' twice.
func (p *parser) skipTemplateArgs() {
	depth := 0

	for !p.eof() {
		tok := p.next()

		switch tok.Text {
		case "<":
			depth++
		case ">":
			depth--
		case ">>":
			depth -= 2
		case ";", "{":
			// Runaway template argument list; back off.
			p.pos--
			return
		}

		if depth <= 0 {
			return
		}
	}
}

func (p *parser) skipDirectiveLine() {
	line := p.cur().Line

	for !p.eof() && p.cur().Line == line {
		p.pos++
	}
}

// --- declarations ---

func (p *parser) parseInclude() (m.IncludeDirective, bool) {
	keyword := p.next() // #include

	tok := p.cur()
	if tok.Kind != m.TokenString || tok.Line != keyword.Line {
		return m.IncludeDirective{}, false
	}

	p.pos++

	text := tok.Text
	angle := strings.HasPrefix(text, "<")
	target := strings.Trim(text, "\"<>")

	return m.IncludeDirective{Target: target, Angle: angle, Line: tok.Line}, true
}

func (p *parser) parseTemplate() *m.Node {
	p.next() // template

	if p.cur().Is("<") {
		p.skipTemplateArgs()
	}

	tok := p.cur()

	switch {
	case tok.IsKeyword("class") || tok.IsKeyword("struct"):
		return p.parseClass(true)
	case tok.IsKeyword("enum"):
		return p.parseEnum()
	default:
		if node, ok := p.tryParseFunction(); ok {
			return node
		}

		return p.parseOpaque()
	}
}

// parseClass handles class and struct declarations, including the base
// clause and the member list grouped by visibility. Forward declarations
// come back as Opaque so naming rules do not fire twice per class.
func (p *parser) parseClass(isTemplate bool) *m.Node {
	start := p.next() // class or struct
	isStruct := start.Is("struct")

	decl := &m.ClassDecl{IsStruct: isStruct, IsTemplate: isTemplate}
	node := &m.Node{Kind: m.NodeClass, Class: decl}

	// The class name is the last identifier before the base clause or
	// body; engine API export macros may sit in between.
	var nameTok m.Token

	for !p.eof() {
		tok := p.cur()
		if tok.Is(":") || tok.Is("{") || tok.Is(";") {
			break
		}

		if tok.Kind == m.TokenIdentifier {
			nameTok = tok
		}

		if tok.Is("<") {
			p.skipTemplateArgs()

			continue
		}

		p.pos++
	}

	decl.Name = nameTok.Text
	node.Line = nameTok.Line
	node.Column = nameTok.Column

	if node.Line == 0 {
		node.Line = start.Line
		node.Column = start.Column
	}

	if p.cur().Is(";") {
		// Forward declaration.
		p.pos++

		return &m.Node{Kind: m.NodeOpaque, Line: start.Line, Column: start.Column, EndLine: start.Line}
	}

	if p.accept(":") {
		decl.Base = p.parseBaseClause()
	}

	if !p.cur().Is("{") {
		node.EndLine = p.cur().Line

		return node
	}

	brace := p.next()
	decl.BraceLine = brace.Line
	decl.BraceColumn = brace.Column

	p.parseClassBody(node, decl)

	p.accept(";")

	return node
}

// parseBaseClause consumes the inheritance list up to the opening brace and
// returns the first base-class name.
func (p *parser) parseBaseClause() string {
	base := ""
	first := true

	for !p.eof() {
		tok := p.cur()
		if tok.Is("{") || tok.Is(";") {
			break
		}

		if tok.Is(",") {
			first = false
			p.pos++

			continue
		}

		if tok.Is("<") {
			p.skipTemplateArgs()

			continue
		}

		if first && tok.Kind == m.TokenIdentifier {
			base = tok.Text
		}

		p.pos++
	}

	return base
}

func (p *parser) parseClassBody(node *m.Node, decl *m.ClassDecl) {
	visibility := "private"
	if decl.IsStruct {
		visibility = "public"
	}

	for !p.eof() {
		tok := p.cur()

		if tok.Is("}") {
			p.pos++
			node.EndLine = tok.Line

			return
		}

		// Visibility label.
		if (tok.IsKeyword("public") || tok.IsKeyword("protected") || tok.IsKeyword("private")) && p.peek(1).Is(":") {
			visibility = tok.Text
			p.pos += 2

			continue
		}

		if tok.Is(";") {
			p.pos++

			continue
		}

		// Reflection/API macro invocations: GENERATED_BODY(), UPROPERTY(...).
		if tok.Kind == m.TokenIdentifier && isMacroName(tok.Text) && p.peek(1).Is("(") {
			p.pos++
			p.skipBalanced("(", ")")
			p.accept(";")

			continue
		}

		if tok.Kind == m.TokenKeyword && strings.HasPrefix(tok.Text, "#") {
			p.skipDirectiveLine()

			continue
		}

		if !p.parseMember(node, decl, visibility) {
			// Could not classify; skip a token to guarantee progress.
			p.pos++
		}
	}
}

// parseMember classifies one member declaration and appends both a Member
// entry and, for functions and variables, a child node.
func (p *parser) parseMember(node *m.Node, decl *m.ClassDecl, visibility string) bool {
	isVirtual := false

	// Leading specifiers.
	for !p.eof() {
		tok := p.cur()
		if tok.IsKeyword("virtual") {
			isVirtual = true
			p.pos++

			continue
		}

		if tok.IsKeyword("explicit") || tok.IsKeyword("static") || tok.IsKeyword("inline") ||
			tok.IsKeyword("constexpr") || tok.IsKeyword("mutable") || tok.IsKeyword("friend") {
			p.pos++

			continue
		}

		break
	}

	tok := p.cur()

	// Destructor.
	if tok.Is("~") {
		p.pos++
		name := p.next()

		if p.cur().Is("(") {
			p.skipBalanced("(", ")")
		}

		p.finishFunctionTail()

		decl.HasDestructor = true
		if isVirtual {
			decl.HasVirtualDestructor = true
		}

		decl.Members = append(decl.Members, m.Member{
			Kind:       m.MemberDestructor,
			Name:       "~" + name.Text,
			Visibility: visibility,
			Line:       name.Line,
			Column:     name.Column,
		})

		return true
	}

	// Constructor.
	if tok.Kind == m.TokenIdentifier && tok.Text == decl.Name && p.peek(1).Is("(") {
		p.pos++
		p.skipBalanced("(", ")")
		p.finishFunctionTail()

		decl.Members = append(decl.Members, m.Member{
			Kind:       m.MemberConstructor,
			Name:       tok.Text,
			Visibility: visibility,
			Line:       tok.Line,
			Column:     tok.Column,
		})

		return true
	}

	// Method: type tokens, then identifier immediately followed by '('.
	if nameIdx, ok := p.findFunctionName(); ok {
		fn, fnNode := p.parseFunctionAt(nameIdx, isVirtual)

		if isVirtual || fn.IsOverride {
			decl.HasVirtualMethod = true
		}

		kind := m.MemberFunction
		if fn.IsOverride {
			kind = m.MemberOverride
		}

		decl.Members = append(decl.Members, m.Member{
			Kind:       kind,
			Name:       fn.Name,
			Visibility: visibility,
			Line:       fnNode.Line,
			Column:     fnNode.Column,
		})
		node.Children = append(node.Children, fnNode)

		return true
	}

	// Variable member.
	if varNode, ok := p.tryParseVariable(); ok {
		decl.Members = append(decl.Members, m.Member{
			Kind:       m.MemberVariable,
			Name:       varNode.Variable.Name,
			Visibility: visibility,
			Line:       varNode.Line,
			Column:     varNode.Column,
		})
		node.Children = append(node.Children, varNode)

		return true
	}

	return false
}

// finishFunctionTail consumes everything after a parameter list: const,
// override, initializer lists, '= 0', and either the terminating ';' or a
// balanced body.
func (p *parser) finishFunctionTail() (isOverride, hasBody bool, brace m.Token) {
	for !p.eof() {
		tok := p.cur()

		switch {
		case tok.Is(";"):
			p.pos++

			return isOverride, false, m.Token{}

		case tok.Is("{"):
			brace = tok
			p.skipBalanced("{", "}")

			return isOverride, true, brace

		case tok.IsKeyword("override"):
			isOverride = true
			p.pos++

		case tok.Is("}"):
			// Malformed; leave the brace for the class body loop.
			return isOverride, false, m.Token{}

		default:
			p.pos++
		}
	}

	return isOverride, hasBody, brace
}

// findFunctionName looks ahead from the cursor for the declarator pattern
// "type ... Name (" before any terminator. Returns the index of the name
// token. A name at the very start of the declaration is a macro or call,
// not a function definition.
func (p *parser) findFunctionName() (int, bool) {
	depth := 0

	for i := p.pos; i < len(p.toks); i++ {
		tok := p.toks[i]

		switch tok.Text {
		case ";", "{", "}", "=":
			return 0, false
		case "<":
			depth++

			continue
		case ">":
			depth--

			continue
		}

		if depth > 0 {
			continue
		}

		if tok.Is("(") {
			prev := p.at(i - 1)
			if prev.Kind != m.TokenIdentifier && !prev.IsKeyword("operator") {
				return 0, false
			}

			if i-1 == p.pos {
				// No return type before the name: macro invocation.
				return 0, false
			}

			return i - 1, true
		}
	}

	return 0, false
}

// parseFunctionAt consumes a function declaration whose name token index is
// already known, producing the node and declaration.
func (p *parser) parseFunctionAt(nameIdx int, isVirtual bool) (*m.FunctionDecl, *m.Node) {
	var typeParts []string

	for i := p.pos; i < nameIdx; i++ {
		typeParts = append(typeParts, p.toks[i].Text)
	}

	nameTok := p.at(nameIdx)
	p.pos = nameIdx + 1

	decl := &m.FunctionDecl{
		Name:       nameTok.Text,
		ReturnType: strings.Join(typeParts, " "),
		IsVirtual:  isVirtual,
	}

	node := &m.Node{
		Kind:     m.NodeFunction,
		Line:     nameTok.Line,
		Column:   nameTok.Column,
		Function: decl,
	}

	if p.cur().Is("(") {
		p.parseParams(node)
	}

	isOverride, hasBody, brace := p.finishFunctionTail()

	decl.IsOverride = isOverride
	decl.HasBody = hasBody
	decl.BraceLine = brace.Line
	decl.BraceColumn = brace.Column
	node.EndLine = p.at(p.pos - 1).Line

	return decl, node
}

// parseParams walks a parameter list, lifting each parameter declaration
// into a Variable child so naming and spacing rules see parameters too.
func (p *parser) parseParams(node *m.Node) {
	p.next() // (
	depth := 1

	for !p.eof() {
		tok := p.cur()

		if tok.Is("(") {
			depth++
			p.pos++

			continue
		}

		if tok.Is(")") {
			depth--
			p.pos++

			if depth == 0 {
				return
			}

			continue
		}

		if depth == 1 {
			if varNode, ok := p.tryParseVariable(); ok {
				node.Children = append(node.Children, varNode)

				continue
			}
		}

		p.pos++
	}
}

// tryParseFunction recognizes free functions at file scope. Bodies are
// scanned for switch statements and local variable declarations, which
// become children of the function node.
func (p *parser) tryParseFunction() (*m.Node, bool) {
	mark := p.pos

	isVirtual := false

	for p.cur().IsKeyword("static") || p.cur().IsKeyword("inline") || p.cur().IsKeyword("constexpr") || p.cur().IsKeyword("extern") {
		p.pos++
	}

	nameIdx, ok := p.findFunctionName()
	if !ok {
		p.pos = mark

		return nil, false
	}

	var typeParts []string
	for i := p.pos; i < nameIdx; i++ {
		typeParts = append(typeParts, p.toks[i].Text)
	}

	nameTok := p.at(nameIdx)
	p.pos = nameIdx + 1

	decl := &m.FunctionDecl{
		Name:       nameTok.Text,
		ReturnType: strings.Join(typeParts, " "),
		IsVirtual:  isVirtual,
	}

	node := &m.Node{
		Kind:     m.NodeFunction,
		Line:     nameTok.Line,
		Column:   nameTok.Column,
		Function: decl,
	}

	if p.cur().Is("(") {
		p.parseParams(node)
	}

	// Trailing specifiers before the body or ';'.
	for !p.eof() && !p.cur().Is("{") && !p.cur().Is(";") {
		if p.cur().IsKeyword("override") {
			decl.IsOverride = true
		}

		p.pos++
	}

	if p.accept(";") {
		node.EndLine = nameTok.Line

		return node, true
	}

	if !p.cur().Is("{") {
		node.EndLine = nameTok.Line

		return node, true
	}

	brace := p.cur()
	decl.HasBody = true
	decl.BraceLine = brace.Line
	decl.BraceColumn = brace.Column

	p.parseFunctionBody(node)

	node.EndLine = p.at(p.pos - 1).Line

	return node, true
}

// parseFunctionBody walks a balanced { ... } body, lifting switch
// statements and local variable declarations into child nodes.
func (p *parser) parseFunctionBody(node *m.Node) {
	depth := 0
	stmtStart := true

	for !p.eof() {
		tok := p.cur()

		switch {
		case tok.Is("{"):
			depth++
			p.pos++
			stmtStart = true

			continue

		case tok.Is("}"):
			depth--
			p.pos++
			stmtStart = true

			if depth == 0 {
				return
			}

			continue

		case tok.Is(";") || tok.Is(":"):
			p.pos++
			stmtStart = true

			continue

		case tok.IsKeyword("switch"):
			node.Children = append(node.Children, p.parseSwitch())
			stmtStart = true

			continue
		}

		if stmtStart {
			if varNode, ok := p.tryParseVariable(); ok {
				node.Children = append(node.Children, varNode)

				// tryParseVariable stops before '=' or ';'; the
				// initializer is consumed by the main loop.
				stmtStart = false

				continue
			}
		}

		stmtStart = false
		p.pos++
	}
}

// tryParseVariable recognizes the declarator subset the rules care about:
// [const/static/...] Type [*|&...] Name followed by ';', '=', ',' or '{'.
// Multi-token types (Foo::Bar, TArray<T>) keep the last type token as the
// spacing anchor. Returns false without consuming anything on mismatch.
func (p *parser) tryParseVariable() (*m.Node, bool) {
	mark := p.pos

	for p.cur().IsKeyword("const") || p.cur().IsKeyword("static") || p.cur().IsKeyword("mutable") || p.cur().IsKeyword("constexpr") {
		p.pos++
	}

	typeTok := p.cur()
	if typeTok.Kind != m.TokenIdentifier && !isTypeKeyword(typeTok) {
		p.pos = mark

		return nil, false
	}

	p.pos++

	// Qualified names and template arguments extend the type; the anchor
	// for spacing checks is the last plain type token.
	for {
		if p.cur().Is("::") && p.peek(1).Kind == m.TokenIdentifier {
			p.pos++
			typeTok = p.next()

			continue
		}

		if p.cur().Is("<") {
			p.skipTemplateArgs()
			// Template close bracket becomes the anchor edge.
			typeTok = p.at(p.pos - 1)

			continue
		}

		break
	}

	// Pointer/reference run.
	ptr := ""
	ptrTok := m.Token{}

	for p.cur().Is("*") || p.cur().Is("&") {
		if ptr == "" {
			ptrTok = p.cur()
		}

		ptr += p.cur().Text
		p.pos++
	}

	nameTok := p.cur()
	if nameTok.Kind != m.TokenIdentifier {
		p.pos = mark

		return nil, false
	}

	terminator := p.peek(1)
	if !terminator.Is(";") && !terminator.Is("=") && !terminator.Is(",") && !terminator.Is("{") && !terminator.Is("[") && !terminator.Is(")") {
		p.pos = mark

		return nil, false
	}

	p.pos++

	decl := &m.VariableDecl{
		Type:   typeTok.Text,
		Name:   nameTok.Text,
		IsBool: typeTok.IsKeyword("bool"),
	}

	// Spacing positions are only meaningful on a single line.
	if ptr != "" && typeTok.Line == nameTok.Line && ptrTok.Line == nameTok.Line {
		decl.Ptr = ptr
		decl.TypeEndColumn = typeTok.End()
		decl.PtrColumn = ptrTok.Column
		decl.NameColumn = nameTok.Column
	}

	node := &m.Node{
		Kind:     m.NodeVariable,
		Line:     nameTok.Line,
		Column:   nameTok.Column,
		EndLine:  nameTok.Line,
		Variable: decl,
	}

	return node, true
}

// parseEnum handles enum and enum class declarations.
func (p *parser) parseEnum() *m.Node {
	start := p.next() // enum

	isEnumClass := false
	if p.cur().IsKeyword("class") || p.cur().IsKeyword("struct") {
		isEnumClass = true
		p.pos++
	}

	nameTok := p.cur()
	name := ""

	if nameTok.Kind == m.TokenIdentifier {
		name = nameTok.Text
		p.pos++
	}

	// Underlying type.
	if p.accept(":") {
		for !p.eof() && !p.cur().Is("{") && !p.cur().Is(";") {
			p.pos++
		}
	}

	endLine := nameTok.Line

	if p.cur().Is("{") {
		brace := p.cur()
		p.skipBalanced("{", "}")
		endLine = brace.Line
	}

	p.accept(";")

	line, col := nameTok.Line, nameTok.Column
	if name == "" {
		line, col = start.Line, start.Column
	}

	return &m.Node{
		Kind:    m.NodeEnum,
		Line:    line,
		Column:  col,
		EndLine: endLine,
		Enum:    &m.EnumDecl{Name: name, IsEnumClass: isEnumClass},
	}
}

// parseSwitch consumes a switch statement and records its case blocks with
// the facts the fallthrough rule needs: statement counts, terminating
// statements and fallthrough comments.
func (p *parser) parseSwitch() *m.Node {
	start := p.next() // switch

	if p.cur().Is("(") {
		p.skipBalanced("(", ")")
	}

	decl := &m.SwitchBlock{}
	node := &m.Node{
		Kind:   m.NodeSwitch,
		Line:   start.Line,
		Column: start.Column,
		Switch: decl,
	}

	if !p.cur().Is("{") {
		node.EndLine = start.Line

		return node
	}

	brace := p.next()
	decl.BraceLine = brace.Line
	decl.BraceColumn = brace.Column

	var (
		current    *m.CaseBlock
		stmtFirst  = true
		terminated = false
	)

	finish := func(endLine int) {
		if current == nil {
			return
		}

		current.Terminated = terminated
		current.FallthroughComment = p.hasFallthroughComment(current.Line, endLine)
		decl.Cases = append(decl.Cases, *current)
		current = nil
	}

	depth := 1

	for !p.eof() {
		tok := p.cur()

		switch {
		case tok.Is("{"):
			// Compound statement: one statement; a terminator anywhere
			// inside counts as terminating the block.
			if current != nil {
				current.StatementCount++
				terminated = p.compoundTerminates()
			} else {
				p.skipBalanced("{", "}")
			}

			stmtFirst = true

			continue

		case tok.Is("}"):
			depth--
			p.pos++

			if depth == 0 {
				finish(tok.Line)
				node.EndLine = tok.Line

				return node
			}

			continue

		case depth == 1 && tok.IsKeyword("case"):
			finish(tok.Line)
			current = p.parseCaseLabel(tok, false)
			stmtFirst = true
			terminated = false

			continue

		case depth == 1 && tok.IsKeyword("default") && p.peek(1).Is(":"):
			finish(tok.Line)
			current = p.parseCaseLabel(tok, true)
			decl.HasDefault = true
			stmtFirst = true
			terminated = false

			continue

		case tok.Is(";"):
			if current != nil {
				current.StatementCount++
			}

			p.pos++
			stmtFirst = true

			continue
		}

		if stmtFirst && isTerminatorKeyword(tok) {
			terminated = true
		} else if stmtFirst && current != nil {
			terminated = false
		}

		stmtFirst = false
		p.pos++
	}

	node.EndLine = p.at(p.pos - 1).Line

	return node
}

// parseCaseLabel consumes "case <expr>:" or "default:" and starts a block.
func (p *parser) parseCaseLabel(tok m.Token, isDefault bool) *m.CaseBlock {
	p.pos++ // case or default

	label := "default"

	if !isDefault {
		var parts []string

		for !p.eof() && !p.cur().Is(":") && !p.cur().Is("{") && !p.cur().Is("}") {
			parts = append(parts, p.cur().Text)
			p.pos++
		}

		label = "case " + strings.Join(parts, " ")
	}

	p.accept(":")

	return &m.CaseBlock{
		Label:   label,
		Line:    tok.Line,
		Column:  tok.Column,
		Default: isDefault,
	}
}

// compoundTerminates skips a balanced compound statement and reports
// whether a terminator keyword appears anywhere inside it.
func (p *parser) compoundTerminates() bool {
	depth := 0
	found := false

	for !p.eof() {
		tok := p.next()

		if tok.Is("{") {
			depth++
		} else if tok.Is("}") {
			depth--
			if depth == 0 {
				return found
			}
		}

		if isTerminatorKeyword(tok) {
			found = true
		}
	}

	return found
}

// hasFallthroughComment scans the original token stream (comments included)
// for a fallthrough annotation between the two lines, inclusive.
func (p *parser) hasFallthroughComment(fromLine, toLine int) bool {
	for _, tok := range p.file.Tokens {
		if tok.Kind != m.TokenComment || tok.Line < fromLine || tok.Line > toLine {
			continue
		}

		text := strings.ToLower(tok.Text)
		if strings.Contains(text, "fall") && strings.Contains(text, "through") || strings.Contains(text, "fallthrough") {
			return true
		}
	}

	return false
}

// parseOpaque consumes one unrecognized construct: either through the next
// top-level ';' or over one balanced brace block.
func (p *parser) parseOpaque() *m.Node {
	start := p.cur()
	end := start

	for !p.eof() {
		tok := p.cur()

		if tok.Is("{") {
			p.skipBalanced("{", "}")
			end = p.at(p.pos - 1)
			p.accept(";")

			break
		}

		p.pos++
		end = tok

		if tok.Is(";") || tok.Is("}") {
			break
		}
	}

	return &m.Node{
		Kind:    m.NodeOpaque,
		Line:    start.Line,
		Column:  start.Column,
		EndLine: end.Line,
	}
}

func isMacroName(name string) bool {
	if name == "" {
		return false
	}

	hasLetter := false

	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			return false
		}

		if r >= 'A' && r <= 'Z' {
			hasLetter = true
		}
	}

	return hasLetter
}

func isTypeKeyword(tok m.Token) bool {
	if tok.Kind != m.TokenKeyword {
		return false
	}

	switch tok.Text {
	case "bool", "void", "int", "float", "double", "char", "unsigned", "signed", "long", "short", "auto":
		return true
	}

	return false
}

func isTerminatorKeyword(tok m.Token) bool {
	return tok.IsKeyword("break") || tok.IsKeyword("return") || tok.IsKeyword("continue") || tok.IsKeyword("goto")
}
