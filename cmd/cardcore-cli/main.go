package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	"cardcore/internal/rules"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "cards":
		runCards(os.Args[2:])
	case "demo":
		runDemo(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  cardcore cards [--catalog FILE]")
	fmt.Println("  cardcore demo [--catalog FILE] [--seed N] [--turns N]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  cards   List the card catalog")
	fmt.Println("  demo    Run a scripted encounter and print the combat log")
}

func runCards(args []string) {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	catalogFile := fs.String("catalog", "catalog.yaml", "path to card catalog YAML file")
	fs.Parse(args)

	catalog, err := card.LoadCatalog(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	defs := catalog.All()
	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })
	for _, d := range defs {
		fmt.Printf("%3d  %-20s %s, cost %d, %d effect(s)", d.ID, d.Name, d.CardType, d.EnergyCost, len(d.Effects))
		if d.BuildsCombo {
			fmt.Print(", builds combo")
		}
		if d.RequiresCombo {
			fmt.Printf(", needs combo %d", d.RequiredCombo)
		}
		if d.CanUpgrade {
			fmt.Printf(", upgrades to %d", d.Upgrade.UpgradedID)
		}
		fmt.Println()
	}
}

func runDemo(args []string) {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	catalogFile := fs.String("catalog", "catalog.yaml", "path to card catalog YAML file")
	seed := fs.Int64("seed", 1, "seed for random targeting")
	turns := fs.Int("turns", 10, "maximum number of turns per side")
	fs.Parse(args)

	catalog, err := card.LoadCatalog(*catalogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hero := rules.NewCombatant("Hero", 100, 3)
	foe := rules.NewCombatant("Foe", 100, 3)
	hero.SetOpponent(foe)
	foe.SetOpponent(hero)

	enc, err := rules.NewEncounter(rules.EncounterConfig{
		Catalog:    catalog,
		Events:     battlelog.NewTextLogger(os.Stdout),
		Logger:     zap.NewNop(),
		Combatants: []*rules.Combatant{hero, foe},
		Seed:       *seed,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	deck := deckFromCatalog(catalog)
	enc.Decks.Assign(hero.ID, deck...)
	enc.Decks.Assign(foe.ID, deck...)

	winner := runScript(enc, hero, foe, *turns)
	if err := enc.Finish(winner); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nFinal: %s %d HP, %s %d HP\n", hero.Name, hero.Health, foe.Name, foe.Health)
}

// runScript alternates turns, each side greedily playing every affordable
// card in deck order, until a side falls or the turn budget runs out.
func runScript(enc *rules.Encounter, hero, foe *rules.Combatant, maxTurns int) *rules.Combatant {
	for i := 0; i < maxTurns; i++ {
		for _, actor := range []*rules.Combatant{hero, foe} {
			actor.Energy = actor.MaxEnergy
			if !actor.Stunned {
				playTurn(enc, actor)
			}
			enc.EndTurn(actor)
			if hero.Health == 0 {
				return foe
			}
			if foe.Health == 0 {
				return hero
			}
		}
		enc.NextTurn(hero)
	}
	return nil
}

func playTurn(enc *rules.Encounter, actor *rules.Combatant) {
	for _, id := range enc.Decks.DefinitionIDs(actor.ID) {
		if _, err := enc.Play(actor, id); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		if actor.Energy == 0 {
			return
		}
	}
}

func deckFromCatalog(catalog *card.Catalog) []int {
	var ids []int
	for _, d := range catalog.All() {
		ids = append(ids, d.ID)
	}
	sort.Ints(ids)
	return ids
}
