package services

// Theme is a quote table color palette.
type Theme struct {
	ID          string
	Name        string
	HeaderBg    string
	HeaderText  string
	RowBg       string
	RowAltBg    string
	RowText     string
	BorderColor string
	AccentColor string
}

// DefaultThemeID is applied to newly inserted tables unless configured otherwise.
const DefaultThemeID = "default"

// Themes lists the palettes offered by the theme menu.
var Themes = []Theme{
	{ID: "default", Name: "Default", HeaderBg: "#fff", HeaderText: "#333333", RowBg: "#ffffff", RowAltBg: "#ffffff", RowText: "#333333", BorderColor: "#eeeeee", AccentColor: "#2196F3"},
	{ID: "dark", Name: "Dark", HeaderBg: "#343a40", HeaderText: "#ffffff", RowBg: "#212529", RowAltBg: "#2c3034", RowText: "#ffffff", BorderColor: "#495057", AccentColor: "#17a2b8"},
	{ID: "blue", Name: "Blue", HeaderBg: "#1976d2", HeaderText: "#ffffff", RowBg: "#f5f9ff", RowAltBg: "#e3f2fd", RowText: "#333333", BorderColor: "#bbdefb", AccentColor: "#2196F3"},
	{ID: "green", Name: "Green", HeaderBg: "#2e7d32", HeaderText: "#ffffff", RowBg: "#f1f8e9", RowAltBg: "#dcedc8", RowText: "#333333", BorderColor: "#c5e1a5", AccentColor: "#4caf50"},
	{ID: "elegant", Name: "Elegant", HeaderBg: "#37474f", HeaderText: "#ffffff", RowBg: "#ffffff", RowAltBg: "#f5f5f5", RowText: "#333333", BorderColor: "#cfd8dc", AccentColor: "#607d8b"},
}

// FindTheme looks a theme up by id.
func FindTheme(id string) (Theme, bool) {
	for _, t := range Themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}
