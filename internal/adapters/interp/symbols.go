package interp

import (
	"reflect"

	"github.com/3-lines-studio/vitrine/internal/ui"
)

// Symbols exposes the widget toolkit to interpreted code under its import
// path. The key suffix is the package name.
var Symbols = map[string]map[string]reflect.Value{
	ui.ImportPath + "/ui": {
		"Node":        reflect.ValueOf((*ui.Node)(nil)),
		"Variant":     reflect.ValueOf((*ui.Variant)(nil)),
		"Size":        reflect.ValueOf((*ui.Size)(nil)),
		"ButtonProps": reflect.ValueOf((*ui.ButtonProps)(nil)),
		"InputProps":  reflect.ValueOf((*ui.InputProps)(nil)),

		"VariantDefault":     reflect.ValueOf(ui.VariantDefault),
		"VariantDestructive": reflect.ValueOf(ui.VariantDestructive),
		"VariantOutline":     reflect.ValueOf(ui.VariantOutline),
		"VariantSecondary":   reflect.ValueOf(ui.VariantSecondary),
		"VariantGhost":       reflect.ValueOf(ui.VariantGhost),
		"VariantLink":        reflect.ValueOf(ui.VariantLink),
		"SizeDefault":        reflect.ValueOf(ui.SizeDefault),
		"SizeSm":             reflect.ValueOf(ui.SizeSm),
		"SizeLg":             reflect.ValueOf(ui.SizeLg),
		"SizeIcon":           reflect.ValueOf(ui.SizeIcon),

		"Text":        reflect.ValueOf(ui.Text),
		"El":          reflect.ValueOf(ui.El),
		"Div":         reflect.ValueOf(ui.Div),
		"Span":        reflect.ValueOf(ui.Span),
		"P":           reflect.ValueOf(ui.P),
		"Heading":     reflect.ValueOf(ui.Heading),
		"TextContent": reflect.ValueOf(ui.TextContent),

		"Button":           reflect.ValueOf(ui.Button),
		"Card":             reflect.ValueOf(ui.Card),
		"CardHeader":       reflect.ValueOf(ui.CardHeader),
		"CardTitle":        reflect.ValueOf(ui.CardTitle),
		"CardDescription":  reflect.ValueOf(ui.CardDescription),
		"CardContent":      reflect.ValueOf(ui.CardContent),
		"CardFooter":       reflect.ValueOf(ui.CardFooter),
		"Input":            reflect.ValueOf(ui.Input),
		"Label":            reflect.ValueOf(ui.Label),
		"Badge":            reflect.ValueOf(ui.Badge),
		"Alert":            reflect.ValueOf(ui.Alert),
		"AlertTitle":       reflect.ValueOf(ui.AlertTitle),
		"AlertDescription": reflect.ValueOf(ui.AlertDescription),
		"Separator":        reflect.ValueOf(ui.Separator),
		"Progress":         reflect.ValueOf(ui.Progress),
		"Checkbox":         reflect.ValueOf(ui.Checkbox),
		"Switch":           reflect.ValueOf(ui.Switch),
	},
}
