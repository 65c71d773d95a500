package domain

// Invoice numbering reset frequencies.
const (
	ResetNever   = "never"
	ResetYearly  = "yearly"
	ResetMonthly = "monthly"
)

// NumberingConfig controls how invoice numbers are generated for a tenant
// owner. Stored with the user account and applied to every invoice they
// raise.
type NumberingConfig struct {
	// Prefix leads every number, e.g. INV, BILL, TXN.
	Prefix string

	// Separator joins the number parts, e.g. "/" or "-".
	Separator string

	// SequencePadding is the zero-padded width of the sequence part.
	SequencePadding int

	// ResetFrequency determines when the sequence restarts from 1.
	ResetFrequency string
}

// DefaultNumberingConfig returns the numbering scheme used when the owner
// has not configured one: INV/S01/2025-26/0001.
func DefaultNumberingConfig() NumberingConfig {
	return NumberingConfig{
		Prefix:          "INV",
		Separator:       "/",
		SequencePadding: 4,
		ResetFrequency:  ResetYearly,
	}
}

// Normalize fills zero-valued fields with their defaults.
func (c NumberingConfig) Normalize() NumberingConfig {
	def := DefaultNumberingConfig()
	if c.Prefix == "" {
		c.Prefix = def.Prefix
	}
	if c.Separator == "" {
		c.Separator = def.Separator
	}
	if c.SequencePadding <= 0 {
		c.SequencePadding = def.SequencePadding
	}
	switch c.ResetFrequency {
	case ResetNever, ResetYearly, ResetMonthly:
	default:
		c.ResetFrequency = def.ResetFrequency
	}
	return c
}
