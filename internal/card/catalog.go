package card

import (
	"fmt"
	"os"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"cardcore/internal/tracking"
)

// Catalog is the read-only set of card definitions, indexed by id.
// Built once at load time; lookups never mutate it.
type Catalog struct {
	defs map[int]*Definition
}

// NewCatalog builds a catalog from already-constructed definitions.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[int]*Definition, len(defs))}
	for i := range defs {
		d := defs[i]
		if d.ID == 0 {
			return nil, fmt.Errorf("card %q has no id", d.Name)
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate card id %d (%q)", d.ID, d.Name)
		}
		c.defs[d.ID] = &d
	}
	return c, nil
}

// Get returns the definition for id. Absence is a catalog desync: the
// caller holds an id the catalog never produced.
func (c *Catalog) Get(id int) (*Definition, error) {
	d, ok := c.defs[id]
	if !ok {
		return nil, fmt.Errorf("catalog desync: no definition for card id %d", id)
	}
	return d, nil
}

// Has reports whether the catalog holds a definition for id.
func (c *Catalog) Has(id int) bool {
	_, ok := c.defs[id]
	return ok
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// All returns every definition. The slice is freshly allocated; the
// definitions themselves are shared and must not be mutated.
func (c *Catalog) All() []*Definition {
	out := make([]*Definition, 0, len(c.defs))
	for _, d := range c.defs {
		out = append(out, d)
	}
	return out
}

// --- YAML catalog file ---

type catalogFile struct {
	Cards []cardEntry `yaml:"cards"`
}

type cardEntry struct {
	ID            int           `yaml:"id"`
	Name          string        `yaml:"name"`
	Cost          any           `yaml:"cost"`
	Type          string        `yaml:"type"`
	Effects       []effectEntry `yaml:"effects"`
	BuildsCombo   bool          `yaml:"builds_combo"`
	RequiresCombo bool          `yaml:"requires_combo"`
	RequiredCombo any           `yaml:"required_combo"`
	NewStance     string        `yaml:"new_stance"`
	Upgrade       *upgradeEntry `yaml:"upgrade"`
}

type effectEntry struct {
	Kind        string            `yaml:"kind"`
	Amount      any               `yaml:"amount"`
	Duration    any               `yaml:"duration"`
	Target      string            `yaml:"target"`
	Scaling     *scalingEntry     `yaml:"scaling"`
	Condition   *conditionEntry   `yaml:"condition"`
	Alternative *alternativeEntry `yaml:"alternative"`
}

type scalingEntry struct {
	Source     string `yaml:"source"`
	Multiplier any    `yaml:"multiplier"`
	Cap        any    `yaml:"cap"`
}

type conditionEntry struct {
	Kind      string `yaml:"kind"`
	Threshold any    `yaml:"threshold"`
}

type alternativeEntry struct {
	Kind     string `yaml:"kind"`
	Amount   any    `yaml:"amount"`
	Duration any    `yaml:"duration"`
	Logic    string `yaml:"logic"`
}

type upgradeEntry struct {
	Condition  string `yaml:"condition"`
	Required   any    `yaml:"required"`
	Comparator string `yaml:"comparator"`
	ReplaceAll bool   `yaml:"replace_all"`
	UpgradedID int    `yaml:"upgraded_id"`
}

// LoadCatalog parses a YAML catalog file into a Catalog.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a catalog from YAML bytes.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog YAML: %w", err)
	}

	defs := make([]Definition, 0, len(file.Cards))
	for _, entry := range file.Cards {
		def, err := entry.toDefinition()
		if err != nil {
			return nil, fmt.Errorf("card %q: %w", entry.Name, err)
		}
		defs = append(defs, def)
	}
	return NewCatalog(defs)
}

func (e cardEntry) toDefinition() (Definition, error) {
	b := NewDefinitionBuilder(e.ID, e.Name).
		EnergyCost(cast.ToInt(e.Cost)).
		CardType(parseCardType(e.Type))

	if e.BuildsCombo {
		b.BuildsCombo()
	}
	if e.RequiresCombo {
		b.RequiresCombo(cast.ToInt(e.RequiredCombo))
	}
	if e.NewStance != "" {
		b.ChangesStance(parseStance(e.NewStance))
	}

	for _, ee := range e.Effects {
		eff, err := ee.toDescriptor()
		if err != nil {
			return Definition{}, err
		}
		b.Effect(eff)
	}

	if e.Upgrade != nil {
		cmp, err := parseComparator(e.Upgrade.Comparator)
		if err != nil {
			return Definition{}, err
		}
		b.Upgrade(UpgradeRule{
			Condition:        parseCounterKind(e.Upgrade.Condition),
			RequiredValue:    cast.ToInt(e.Upgrade.Required),
			Comparator:       cmp,
			ReplaceAllCopies: e.Upgrade.ReplaceAll,
			UpgradedID:       e.Upgrade.UpgradedID,
		})
	}

	return b.Build(), nil
}

func (e effectEntry) toDescriptor() (EffectDescriptor, error) {
	eff := EffectDescriptor{
		Kind:     parseEffectKind(e.Kind),
		Amount:   cast.ToInt(e.Amount),
		Duration: cast.ToInt(e.Duration),
		Target:   parseTargetKind(e.Target),
	}
	if e.Scaling != nil {
		eff.Scaling = &ScalingRule{
			Source:     parseCounterKind(e.Scaling.Source),
			Multiplier: cast.ToFloat64(e.Scaling.Multiplier),
			Cap:        cast.ToInt(e.Scaling.Cap),
		}
	}
	if e.Condition != nil {
		eff.Condition = &Condition{
			Kind:      parseConditionKind(e.Condition.Kind),
			Threshold: cast.ToInt(e.Condition.Threshold),
		}
	}
	if e.Alternative != nil {
		logic := LogicReplace
		if e.Alternative.Logic == "additional" {
			logic = LogicAdditional
		}
		eff.Alternative = &Alternative{
			Kind:     parseEffectKind(e.Alternative.Kind),
			Amount:   cast.ToInt(e.Alternative.Amount),
			Duration: cast.ToInt(e.Alternative.Duration),
			Logic:    logic,
		}
	}
	return eff, nil
}

// --- Name parsing ---
//
// Unknown names parse to the zero kind rather than failing the whole load:
// card content is data and may reference kinds that are not implemented yet.

var effectKinds = map[string]EffectKind{}
var targetKinds = map[string]TargetKind{}
var conditionKinds = map[string]ConditionKind{}
var counterKinds = map[string]tracking.CounterKind{}
var stances = map[string]Stance{}
var cardTypes = map[string]Type{
	"attack": TypeAttack,
	"skill":  TypeSkill,
	"power":  TypePower,
}

func init() {
	for k := EffectNone; k <= EffectStanceExit; k++ {
		effectKinds[k.String()] = k
	}
	for t := TargetSelf; t <= TargetRandom; t++ {
		targetKinds[t.String()] = t
	}
	for k := CondNone; k <= CondLastCardType; k++ {
		conditionKinds[k.String()] = k
	}
	for k := tracking.CounterNone; k <= tracking.CounterMissingHealth; k++ {
		counterKinds[k.String()] = k
	}
	for s := StanceNone; s <= StanceDefensive; s++ {
		stances[s.String()] = s
	}
}

func parseEffectKind(name string) EffectKind { return effectKinds[name] }

func parseTargetKind(name string) TargetKind { return targetKinds[name] }

func parseConditionKind(name string) ConditionKind { return conditionKinds[name] }

func parseCounterKind(name string) tracking.CounterKind { return counterKinds[name] }

func parseStance(name string) Stance { return stances[name] }

func parseCardType(name string) Type { return cardTypes[name] }

func parseComparator(s string) (Comparator, error) {
	switch s {
	case ">=", "":
		return CmpGTE, nil
	case "==", "=":
		return CmpEQ, nil
	case "<=":
		return CmpLTE, nil
	case ">":
		return CmpGT, nil
	case "<":
		return CmpLT, nil
	default:
		return CmpGTE, fmt.Errorf("unknown comparator %q", s)
	}
}
