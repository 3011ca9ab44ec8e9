package card

// DefinitionBuilder assembles a Definition through public setters. It exists
// for catalog loading, tests and procedural generators; the produced
// Definition is a value and stays immutable once handed out.
type DefinitionBuilder struct {
	def Definition
}

// NewDefinitionBuilder starts a builder for the given id and name.
func NewDefinitionBuilder(id int, name string) *DefinitionBuilder {
	return &DefinitionBuilder{def: Definition{ID: id, Name: name}}
}

func (b *DefinitionBuilder) EnergyCost(cost int) *DefinitionBuilder {
	b.def.EnergyCost = cost
	return b
}

func (b *DefinitionBuilder) CardType(t Type) *DefinitionBuilder {
	b.def.CardType = t
	return b
}

// Effect appends one effect descriptor, preserving list order.
func (b *DefinitionBuilder) Effect(eff EffectDescriptor) *DefinitionBuilder {
	b.def.Effects = append(b.def.Effects, eff)
	return b
}

func (b *DefinitionBuilder) BuildsCombo() *DefinitionBuilder {
	b.def.BuildsCombo = true
	return b
}

func (b *DefinitionBuilder) RequiresCombo(amount int) *DefinitionBuilder {
	b.def.RequiresCombo = true
	b.def.RequiredCombo = amount
	return b
}

func (b *DefinitionBuilder) ChangesStance(s Stance) *DefinitionBuilder {
	b.def.ChangesStance = true
	b.def.NewStance = s
	return b
}

func (b *DefinitionBuilder) Upgrade(rule UpgradeRule) *DefinitionBuilder {
	b.def.CanUpgrade = true
	b.def.Upgrade = &rule
	return b
}

// Build returns the finished definition by value.
func (b *DefinitionBuilder) Build() Definition {
	return b.def
}
