package awesomemap

import "github.com/tanema/gween/ease"

// Easing is a named easing curve. Name identifies the curve in configuration
// and logs; Func is the incremental function used to interpolate it.
type Easing struct {
	Name string
	Func ease.TweenFunc
}

var (
	EaseLinear    = Easing{Name: "linear", Func: ease.Linear}
	EaseIn        = Easing{Name: "ease-in", Func: ease.InCubic}
	EaseOut       = Easing{Name: "ease-out", Func: ease.OutCubic}
	EaseInOut     = Easing{Name: "ease-in-out", Func: ease.InOutCubic}
	EaseOutBack   = Easing{Name: "ease-out-back", Func: ease.OutBack}
	defaultEasing = EaseOut
)

var easings = map[string]Easing{
	EaseLinear.Name:  EaseLinear,
	EaseIn.Name:      EaseIn,
	EaseOut.Name:     EaseOut,
	EaseInOut.Name:   EaseInOut,
	EaseOutBack.Name: EaseOutBack,
}

// EasingByName looks up one of the built-in easings.
func EasingByName(name string) (Easing, bool) {
	e, ok := easings[name]
	return e, ok
}

// fn returns the easing function, falling back to the default curve for the
// zero Easing.
func (e Easing) fn() ease.TweenFunc {
	if e.Func == nil {
		return defaultEasing.Func
	}
	return e.Func
}
