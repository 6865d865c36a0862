package theme

// NewSiteDark creates the default theme: near-black surfaces with the teal
// and magenta of the company site.
func NewSiteDark() *Theme {
	return &Theme{
		Name:   "site-dark",
		IsDark: true,

		Primary:   "#00a4b8", // Teal
		Secondary: "#00c5cc", // Teal hover
		Accent:    "#c72c7e", // Magenta (submit)

		BgBase:     "#0a0a0a",
		BgMantle:   "#111111",
		BgSurface0: "#1f2937", // gray-800
		BgSurface1: "#374151", // gray-700

		FgMuted:  "#6b7280", // gray-500
		FgSubtle: "#9ca3af", // gray-400
		FgBase:   "#d1d5db", // gray-300
		FgBright: "#ffffff",

		BorderDefault: "#374151",
		BorderFocused: "#00a4b8",

		Success: "#22c55e",
		Warning: "#f59e0b",
		Error:   "#ef4444",
	}
}
