package ast

type NodeType string

const (
	NodeStringLiteral       NodeType = "StringLiteral"
	NodeIntegerLiteral      NodeType = "IntegerLiteral"
	NodeIdentifier          NodeType = "Identifier"
	NodeFunctionCall        NodeType = "FunctionCall"
	NodeTypedValue          NodeType = "TypedValue"
	NodeBinaryExpression    NodeType = "BinaryExpression"
	NodeFunctionDeclaration NodeType = "FunctionDeclaration"
	NodeParameter           NodeType = "Parameter"
	NodeIfStatement         NodeType = "IfStatement"
	NodeComment             NodeType = "Comment"
	NodeProgram             NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type" yaml:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces. Every expression may stand alone as a statement.

type Expression interface {
	Node
	expressionNode()
	statementNode()
}

type Statement interface {
	Node
	statementNode()
}

// Identifier

type Identifier struct {
	nodeImpl `yaml:",inline"`

	Name string `json:"name" yaml:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

func (*Identifier) expressionNode() {}
func (*Identifier) statementNode()  {}

// Literals

type StringLiteral struct {
	nodeImpl `yaml:",inline"`

	Value string `json:"value" yaml:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

func (*StringLiteral) expressionNode() {}
func (*StringLiteral) statementNode()  {}

type IntegerLiteral struct {
	nodeImpl `yaml:",inline"`

	Value int64 `json:"value" yaml:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

func (*IntegerLiteral) expressionNode() {}
func (*IntegerLiteral) statementNode()  {}

// Expressions

type FunctionCall struct {
	nodeImpl `yaml:",inline"`

	Callee    *Identifier  `json:"callee" yaml:"callee"`
	Arguments []Expression `json:"arguments" yaml:"arguments"`
}

func NewFunctionCall(callee *Identifier, args []Expression) *FunctionCall {
	return &FunctionCall{nodeImpl: newNodeImpl(NodeFunctionCall), Callee: callee, Arguments: args}
}

func (*FunctionCall) expressionNode() {}
func (*FunctionCall) statementNode()  {}

// TypedValue is the `Type[value]` literal construct. When Value is a bare
// Identifier its name is the literal payload, not a variable reference.
type TypedValue struct {
	nodeImpl `yaml:",inline"`

	TypeName string     `json:"typeName" yaml:"typeName"`
	Value    Expression `json:"value" yaml:"value"`
}

func NewTypedValue(typeName string, value Expression) *TypedValue {
	return &TypedValue{nodeImpl: newNodeImpl(NodeTypedValue), TypeName: typeName, Value: value}
}

func (*TypedValue) expressionNode() {}
func (*TypedValue) statementNode()  {}

// LiteralText returns the payload name when the typed value wraps a bare identifier.
func (t *TypedValue) LiteralText() (string, bool) {
	if id, ok := t.Value.(*Identifier); ok {
		return id.Name, true
	}
	return "", false
}

const (
	OperatorIs    = "is"
	OperatorIsNot = "is not"
)

type BinaryExpression struct {
	nodeImpl `yaml:",inline"`

	Operator string     `json:"operator" yaml:"operator"`
	Left     Expression `json:"left" yaml:"left"`
	Right    Expression `json:"right" yaml:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

func (*BinaryExpression) expressionNode() {}
func (*BinaryExpression) statementNode()  {}

// Statements

type Parameter struct {
	nodeImpl `yaml:",inline"`

	Name     string `json:"name" yaml:"name"`
	TypeName string `json:"typeName" yaml:"typeName"`
}

func NewParameter(name, typeName string) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, TypeName: typeName}
}

type FunctionDeclaration struct {
	nodeImpl `yaml:",inline"`

	ID     *Identifier  `json:"id" yaml:"id"`
	Params []*Parameter `json:"params" yaml:"params"`
	Body   []Statement  `json:"body" yaml:"body"`
}

func NewFunctionDeclaration(id *Identifier, params []*Parameter, body []Statement) *FunctionDeclaration {
	return &FunctionDeclaration{nodeImpl: newNodeImpl(NodeFunctionDeclaration), ID: id, Params: params, Body: body}
}

func (*FunctionDeclaration) statementNode() {}

type IfStatement struct {
	nodeImpl `yaml:",inline"`

	Condition Expression  `json:"condition" yaml:"condition"`
	Body      []Statement `json:"body" yaml:"body"`
}

func NewIfStatement(condition Expression, body []Statement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Body: body}
}

func (*IfStatement) statementNode() {}

type Comment struct {
	nodeImpl `yaml:",inline"`

	Text string `json:"text" yaml:"text"`
}

func NewComment(text string) *Comment {
	return &Comment{nodeImpl: newNodeImpl(NodeComment), Text: text}
}

func (*Comment) statementNode() {}

// Program root

type Program struct {
	nodeImpl `yaml:",inline"`

	Body []Statement `json:"body" yaml:"body"`
}

func NewProgram(body []Statement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Body: body}
}
