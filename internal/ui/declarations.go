package ui

// Declaration-only sources describing the package shape to language
// services. Keep in sync with node.go and widgets.go.

const NodeDeclarations = `package ui

type Node struct {
	Tag      string
	Widget   string
	Class    string
	Attrs    map[string]string
	Text     string
	Children []*Node
}

func (n *Node) IsText() bool
func (n *Node) With(key, value string) *Node

func Text(s string) *Node
func El(tag string, class string, children ...*Node) *Node
func Div(class string, children ...*Node) *Node
func Span(class string, children ...*Node) *Node
func P(class string, children ...*Node) *Node
func Heading(level int, class string, children ...*Node) *Node
func TextContent(n *Node) string
`

const WidgetDeclarations = `package ui

type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
	VariantOutline     Variant = "outline"
	VariantSecondary   Variant = "secondary"
	VariantGhost       Variant = "ghost"
	VariantLink        Variant = "link"
)

type Size string

const (
	SizeDefault Size = "default"
	SizeSm      Size = "sm"
	SizeLg      Size = "lg"
	SizeIcon    Size = "icon"
)

type ButtonProps struct {
	Variant  Variant
	Size     Size
	Class    string
	Disabled bool
}

type InputProps struct {
	ID          string
	Type        string
	Placeholder string
	Value       string
	Class       string
	Disabled    bool
}

func Button(p ButtonProps, children ...*Node) *Node
func Card(class string, children ...*Node) *Node
func CardHeader(children ...*Node) *Node
func CardTitle(children ...*Node) *Node
func CardDescription(children ...*Node) *Node
func CardContent(children ...*Node) *Node
func CardFooter(children ...*Node) *Node
func Input(p InputProps) *Node
func Label(htmlFor string, children ...*Node) *Node
func Badge(v Variant, children ...*Node) *Node
func Alert(v Variant, children ...*Node) *Node
func AlertTitle(children ...*Node) *Node
func AlertDescription(children ...*Node) *Node
func Separator() *Node
func Progress(value int) *Node
func Checkbox(id string, checked bool) *Node
func Switch(id string, on bool) *Node
`
