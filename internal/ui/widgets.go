package ui

import "strconv"

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

var buttonVariants = map[Variant]string{
	VariantDefault:     "bg-primary text-primary-foreground hover:bg-primary/90",
	VariantDestructive: "bg-destructive text-destructive-foreground hover:bg-destructive/90",
	VariantOutline:     "border border-input bg-background hover:bg-accent",
	VariantSecondary:   "bg-secondary text-secondary-foreground hover:bg-secondary/80",
	VariantGhost:       "hover:bg-accent hover:text-accent-foreground",
	VariantLink:        "text-primary underline-offset-4 hover:underline",
}

var buttonSizes = map[Size]string{
	SizeDefault: "h-10 px-4 py-2",
	SizeSm:      "h-9 rounded-md px-3",
	SizeLg:      "h-11 rounded-md px-8",
	SizeIcon:    "h-10 w-10",
}

func Button(p ButtonProps, children ...*Node) *Node {
	v := p.Variant
	if _, ok := buttonVariants[v]; !ok {
		v = VariantDefault
	}
	s := p.Size
	if _, ok := buttonSizes[s]; !ok {
		s = SizeDefault
	}

	n := widget("button", "button",
		cn("inline-flex items-center justify-center rounded-md text-sm font-medium", buttonVariants[v], buttonSizes[s], p.Class),
		children...)
	n.With("data-variant", string(v))
	if p.Disabled {
		n.With("disabled", "")
	}
	return n
}

func Card(class string, children ...*Node) *Node {
	return widget("div", "card", cn("rounded-lg border bg-card text-card-foreground shadow-sm", class), children...)
}

func CardHeader(children ...*Node) *Node {
	return widget("div", "card-header", "flex flex-col space-y-1.5 p-6", children...)
}

func CardTitle(children ...*Node) *Node {
	return widget("h3", "card-title", "text-2xl font-semibold leading-none tracking-tight", children...)
}

func CardDescription(children ...*Node) *Node {
	return widget("p", "card-description", "text-sm text-muted-foreground", children...)
}

func CardContent(children ...*Node) *Node {
	return widget("div", "card-content", "p-6 pt-0", children...)
}

func CardFooter(children ...*Node) *Node {
	return widget("div", "card-footer", "flex items-center p-6 pt-0", children...)
}

func Input(p InputProps) *Node {
	typ := p.Type
	if typ == "" {
		typ = "text"
	}
	n := widget("input", "input", cn("flex h-10 w-full rounded-md border border-input bg-background px-3 py-2 text-sm", p.Class))
	n.With("type", typ)
	if p.ID != "" {
		n.With("id", p.ID)
	}
	if p.Placeholder != "" {
		n.With("placeholder", p.Placeholder)
	}
	if p.Value != "" {
		n.With("value", p.Value)
	}
	if p.Disabled {
		n.With("disabled", "")
	}
	return n
}

func Label(htmlFor string, children ...*Node) *Node {
	n := widget("label", "label", "text-sm font-medium leading-none", children...)
	if htmlFor != "" {
		n.With("for", htmlFor)
	}
	return n
}

func Badge(v Variant, children ...*Node) *Node {
	if v == "" {
		v = VariantDefault
	}
	n := widget("div", "badge", "inline-flex items-center rounded-full border px-2.5 py-0.5 text-xs font-semibold", children...)
	return n.With("data-variant", string(v))
}

func Alert(v Variant, children ...*Node) *Node {
	if v == "" {
		v = VariantDefault
	}
	n := widget("div", "alert", "relative w-full rounded-lg border p-4", children...)
	n.With("role", "alert")
	return n.With("data-variant", string(v))
}

func AlertTitle(children ...*Node) *Node {
	return widget("h5", "alert-title", "mb-1 font-medium leading-none tracking-tight", children...)
}

func AlertDescription(children ...*Node) *Node {
	return widget("div", "alert-description", "text-sm", children...)
}

func Separator() *Node {
	n := widget("div", "separator", "shrink-0 bg-border h-[1px] w-full")
	return n.With("role", "separator")
}

func Progress(value int) *Node {
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}
	n := widget("div", "progress", "relative h-4 w-full overflow-hidden rounded-full bg-secondary")
	n.With("role", "progressbar")
	return n.With("aria-valuenow", strconv.Itoa(value))
}

func Checkbox(id string, checked bool) *Node {
	n := widget("button", "checkbox", "peer h-4 w-4 shrink-0 rounded-sm border border-primary")
	n.With("role", "checkbox")
	if id != "" {
		n.With("id", id)
	}
	return n.With("aria-checked", strconv.FormatBool(checked))
}

func Switch(id string, on bool) *Node {
	n := widget("button", "switch", "inline-flex h-6 w-11 shrink-0 items-center rounded-full")
	n.With("role", "switch")
	if id != "" {
		n.With("id", id)
	}
	return n.With("aria-checked", strconv.FormatBool(on))
}

func widget(tag, name, class string, children ...*Node) *Node {
	n := El(tag, class, children...)
	n.Widget = name
	return n
}
