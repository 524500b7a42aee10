package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/combat/internal/application/fighter"
	"github.com/younwookim/combat/internal/domain/input"
	"github.com/younwookim/combat/internal/infrastructure/config"
	"github.com/younwookim/combat/internal/infrastructure/device"
)

const (
	screenW = 640
	screenH = 360
	dt      = 1.0 / 60.0
)

// Game runs one fighter's pipeline and prints its state
type Game struct {
	fighter *fighter.Fighter
	dev     *device.Ebiten

	configDir string
	watcher   *config.Watcher

	events []string
}

// NewGame builds the demo fighter, from the config directory when one is
// given, otherwise from the built-in profile
func NewGame(configDir string) (*Game, error) {
	g := &Game{configDir: configDir}
	if err := g.load(); err != nil {
		return nil, err
	}

	if configDir != "" {
		w, err := config.NewWatcher(configDir)
		if err != nil {
			return nil, err
		}
		g.watcher = w
	}
	return g, nil
}

// load (re)builds the fighter from its profile
func (g *Game) load() error {
	profile := defaultProfile()
	if g.configDir != "" {
		loaded, err := config.NewLoader(g.configDir).LoadProfile("fighter")
		if err != nil {
			return err
		}
		profile = loaded
	}

	g.dev = device.NewEbiten()
	f, err := fighter.New(profile, g.dev)
	if err != nil {
		return err
	}

	// clip durations stand in for real animation playback
	f.Animator.AddClip("Idle", 0.5)
	f.Animator.AddClip("Jab", 0.25)
	f.Animator.AddClip("Straight", 0.35)
	f.Animator.AddClip("Crouch", 0.2)
	f.Animator.AddClip("Fireball", 0.6)
	f.Animator.AddClip("JabToStraight", 0.1)

	f.Conditions.DeclareFact("crouching", false)
	if err := f.Conditions.Define("crouched", "crouching"); err != nil {
		return err
	}

	f.Machine.SetSituation("standing")
	g.fighter = f
	g.events = nil

	f.Engine.Subscribe(func(in input.DetectedInput) {
		label := fmt.Sprintf("%6.2fs %-9s %s", in.At, in.Kind, in.ID)
		if !in.Pressed {
			label += fmt.Sprintf(" (released, held %.2fs)", in.Held)
		}
		g.events = append(g.events, label)
		if len(g.events) > 12 {
			g.events = g.events[len(g.events)-12:]
		}
	})
	return nil
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case name := <-g.watcher.Events:
			log.Printf("reloading after change to %s", name)
			if err := g.load(); err != nil {
				log.Printf("reload failed: %v", err)
			}
		default:
		}
	}

	f := g.fighter
	if err := f.Conditions.SetFact("crouching", f.Engine.IsPressed("down")); err != nil {
		return err
	}
	f.Update(dt)
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	f := g.fighter
	state := "<none>"
	if st := f.Machine.CurrentState(); st != nil {
		state = st.Animation
	}
	header := fmt.Sprintf(
		"situation: %s  state: %s  frame: %s\nplaying: %s  transition: %s  buffered: %d",
		f.Machine.CurrentSituationName(), state, f.Machine.FrameState(),
		f.Animator.Playing(), f.Machine.TransitionAnimation(), f.Machine.Buffered(),
	)
	ebitenutil.DebugPrint(screen, header)
	for i, ev := range g.events {
		ebitenutil.DebugPrintAt(screen, ev, 8, 48+14*i)
	}
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW, screenH
}

// defaultProfile is the built-in demo configuration: J jabs, K throws a
// straight, S crouches, and down, down-forward, forward + punch is a
// fireball motion.
func defaultProfile() *config.Profile {
	return &config.Profile{
		Binds: []config.BindConfig{
			{ID: "punch", Kind: "key", Key: "J"},
			{ID: "kick", Kind: "key", Key: "K"},
			{ID: "down", Kind: "key", Key: "S"},
			{ID: "forward", Kind: "key", Key: "D"},
		},
		Combinations: []config.CombinationConfig{
			{ID: "down_forward", Components: []string{"down", "forward"}, Mode: "synchronous", ReleasePropagate: true},
		},
		Conditionals: []config.ConditionalConfig{
			{ID: "attack", Default: "punch", Cases: []config.ConditionalCaseConfig{
				{Condition: "crouched", Input: "kick"},
			}},
		},
		Sequences: []config.SequenceConfig{
			{Name: "fireball", Inputs: []string{"down", "down_forward", "forward", "punch"}},
		},
		Situations: []config.SituationConfig{
			{
				Name:   "standing",
				Active: "idle",
				States: []config.StateConfig{
					{Name: "idle", Animation: "Idle"},
					{Name: "jab", Animation: "Jab"},
					{Name: "straight", Animation: "Straight"},
					{Name: "fireball", Animation: "Fireball"},
				},
				Transitions: []config.TransitionConfig{
					{From: "idle", On: "punch", To: "jab"},
					{From: "jab", On: "punch", To: "straight", Animation: "JabToStraight"},
					{From: "idle", On: "fireball", To: "fireball"},
				},
			},
		},
	}
}

func main() {
	configDir := flag.String("config", "", "directory with fighter.yaml, watched for changes")
	flag.Parse()

	game, err := NewGame(*configDir)
	if err != nil {
		log.Fatal(err)
	}
	if game.watcher != nil {
		defer func() { _ = game.watcher.Close() }()
	}

	ebiten.SetWindowSize(screenW*2, screenH*2)
	ebiten.SetWindowTitle("combat core demo")
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
