package units

// Pair is the state of the two-field converter form. Each field keeps the text the
// user sees; editing one side recomputes the other.
type Pair struct {
	Category Category
	From     string
	To       string
	FromText string
	ToText   string

	// Decimals controls the precision of recomputed fields.
	Decimals int
}

// NewPair returns a form for c with its default units selected.
func NewPair(c Category, decimals int) Pair {
	p := Pair{Decimals: decimals}
	p.SetCategory(c)
	return p
}

// DefaultUnits returns the initial (from, to) selection of a category.
func DefaultUnits(c Category) (string, string) {
	t, ok := catalog[c]
	if !ok || len(t.Units) == 0 {
		return "", ""
	}
	from := t.Base
	for _, u := range t.Units {
		if u.Key != from {
			return from, u.Key
		}
	}
	return from, from
}

// SetCategory switches category, selects its default units and clears both fields.
func (p *Pair) SetCategory(c Category) {
	p.Category = c
	p.From, p.To = DefaultUnits(c)
	p.FromText, p.ToText = "", ""
}

// SetFromText records input on the "from" side and recomputes the "to" side.
func (p *Pair) SetFromText(text string) {
	p.FromText = text
	p.ToText = p.render(p.From, p.To, text)
}

// SetToText records input on the "to" side and recomputes the "from" side.
func (p *Pair) SetToText(text string) {
	p.ToText = text
	p.FromText = p.render(p.To, p.From, text)
}

// SetFromUnit changes the source unit and recomputes the "to" side.
func (p *Pair) SetFromUnit(key string) {
	p.From = key
	p.ToText = p.render(p.From, p.To, p.FromText)
}

// SetToUnit changes the target unit and recomputes the "to" side.
func (p *Pair) SetToUnit(key string) {
	p.To = key
	p.ToText = p.render(p.From, p.To, p.FromText)
}

// Swap exchanges the unit selection and the displayed values together.
func (p *Pair) Swap() {
	p.From, p.To = p.To, p.From
	p.FromText, p.ToText = p.ToText, p.FromText
}

// Result returns the numeric value of the "to" side for the current input.
func (p Pair) Result() (float64, bool) {
	return ConvertText(p.Category, p.From, p.To, p.FromText)
}

func (p Pair) render(from, to, text string) string {
	v, ok := ConvertText(p.Category, from, to, text)
	if !ok {
		return ""
	}
	return FormatValue(v, p.Decimals)
}
