package model

// Intent is the coarse category assigned to a user query.
type Intent string

const (
	IntentProductAssist Intent = "product_assist"
	IntentOrderHelp     Intent = "order_help"
	IntentOther         Intent = "other"
)

// String returns the wire label of the intent.
func (i Intent) String() string {
	return string(i)
}

// ParseIntent normalises a raw label into one of the known intents.
// Unknown values report ok=false so callers can fall back deterministically
// instead of trusting free-form classifier output.
func ParseIntent(v string) (Intent, bool) {
	switch Intent(v) {
	case IntentProductAssist:
		return IntentProductAssist, true
	case IntentOrderHelp:
		return IntentOrderHelp, true
	case IntentOther:
		return IntentOther, true
	default:
		return IntentOther, false
	}
}
