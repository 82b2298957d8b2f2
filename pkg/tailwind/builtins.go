package tailwind

var (
	paletteHues   = []string{"slate", "gray", "zinc", "red", "orange", "amber", "yellow", "lime", "green", "emerald", "teal", "cyan", "sky", "blue", "indigo", "violet", "purple", "fuchsia", "pink", "rose"}
	paletteShades = []string{"50", "100", "200", "300", "400", "500", "600", "700", "800", "900", "950"}

	// Theme colors resolved through CSS variables by the html renderer.
	themeColors = []string{"primary", "primary-foreground", "secondary", "secondary-foreground", "muted", "muted-foreground", "accent", "accent-foreground", "destructive", "card", "card-foreground", "foreground", "background", "border"}

	fontSizes    = []string{"text-xs", "text-sm", "text-base", "text-lg", "text-xl", "text-2xl", "text-3xl", "text-4xl", "text-5xl", "text-6xl"}
	fontWeights  = []string{"font-thin", "font-extralight", "font-light", "font-normal", "font-medium", "font-semibold", "font-bold", "font-extrabold", "font-black"}
	lineHeights  = []string{"leading-none", "leading-tight", "leading-snug", "leading-normal", "leading-relaxed", "leading-loose", "leading-3", "leading-4", "leading-5", "leading-6", "leading-7", "leading-8", "leading-9", "leading-10"}
	overflows    = []string{"overflow-auto", "overflow-hidden", "overflow-clip", "overflow-visible", "overflow-scroll"}
	textOverflow = []string{"truncate", "text-ellipsis", "text-clip"}
	radiusSuffix = []string{"-none", "-sm", "", "-md", "-lg", "-xl", "-2xl", "-3xl", "-full"}
	borderWidths = []string{"", "-0", "-2", "-4", "-8"}
)

// Colors returns every palette color name ("black", "red-500", "primary").
func Colors() []string {
	out := []string{"black", "white", "transparent"}
	for _, hue := range paletteHues {
		for _, shade := range paletteShades {
			out = append(out, hue+"-"+shade)
		}
	}
	return append(out, themeColors...)
}

func prefixed(prefix string, values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = prefix + v
	}
	return out
}

func registerBuiltins(c *Catalog) {
	colors := Colors()

	c.Register(TextColor, prefixed("text-", colors)...)
	c.Register(FontSize, fontSizes...)
	c.Register(FontWeight, fontWeights...)
	c.Register(LineHeight, lineHeights...)
	c.Register(Overflow, overflows...)
	c.Register(TextOverflow, textOverflow...)
	c.Register(BorderRadius, prefixed("rounded", radiusSuffix)...)

	for _, side := range Sides {
		width, color := BorderCategories(side)
		c.Register(width, prefixed("border-"+side.letter(), borderWidths)...)
		c.Register(color, prefixed("border-"+side.letter()+"-", colors)...)
	}

	c.Register(CanvasBackground, prefixed("bg-", colors)...)
	c.Register(CanvasBorderRadius, prefixed("rounded", radiusSuffix)...)
	c.Register(CanvasBorderWidth, prefixed("border", borderWidths)...)
	c.Register(CanvasBorderColor, prefixed("border-", colors)...)
}

func (s Side) letter() string {
	return string(s)[:1]
}
