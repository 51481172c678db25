// Command boxdrop runs a scene headless at a fixed frame rate and prints
// the collision events and final resting positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/setanarut/collide"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML world config (defaults when empty)")
		scenePath  = flag.String("scene", "", "YAML scene (a box dropped on a floor when empty)")
		seconds    = flag.Float64("seconds", 3, "simulated seconds")
		fps        = flag.Float64("fps", 60, "frames per second fed to the stepper")
		draw       = flag.Bool("draw", false, "print an ASCII picture of the final state")
		watch      = flag.Bool("watch", false, "reload the config file when it changes")
	)
	flag.Parse()

	log.SetPrefix("boxdrop: ")
	log.SetFlags(0)

	cfg := collide.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = collide.LoadConfig(*configPath)
		if err != nil {
			log.Fatalln(err)
		}
	}

	world, err := collide.NewWorld(&cfg)
	if err != nil {
		log.Fatalln(err)
	}
	world.SetLogger(collide.NewLogger(os.Stderr))

	scene, err := LoadScene(*scenePath)
	if err != nil {
		log.Fatalln(err)
	}
	entities, err := scene.Build(world)
	if err != nil {
		log.Fatalln(err)
	}

	world.SetHandler(&collide.CollisionHandler{
		CollisionEnter: printContact("enter"),
		CollisionExit:  printContact("exit"),
		TriggerEnter:   printContact("trigger enter"),
		TriggerExit:    printContact("trigger exit"),
		Sleep: func(w *collide.World, b *collide.RigidBody) {
			fmt.Printf("%7.3fs sleep %v at %v\n", simTime(w), b.Entity, b.Position())
		},
		Wake: func(w *collide.World, b *collide.RigidBody) {
			fmt.Printf("%7.3fs wake  %v\n", simTime(w), b.Entity)
		},
	})

	var watcher *collide.ConfigWatcher
	if *watch && *configPath == "" {
		log.Println("-watch needs -config, running without it")
	}
	if *watch && *configPath != "" {
		watcher, err = collide.WatchConfig(*configPath)
		if err != nil {
			log.Fatalln(err)
		}
		defer watcher.Close()
	}

	if !(*fps > 0) {
		log.Fatalln("fps must be positive")
	}
	run(world, watcher, *seconds, 1 / *fps)

	fmt.Printf("after %d steps:\n", world.Stamp())
	for _, e := range entities {
		state := ""
		if b, ok := world.Registry().BodyOf(e); ok {
			state = fmt.Sprintf(" v=%v", b.Velocity)
			if b.IsSleeping() {
				state += " sleeping"
			}
		}
		fmt.Printf("  %-10s pos=(%.4f, %.4f)%s\n", e.Name, e.Transform.Position.X, e.Transform.Position.Y, state)
	}

	if *draw {
		canvas := NewCanvas(72, 24, 0.25)
		canvas.Fit(world)
		world.Draw(canvas)
		canvas.WriteTo(os.Stdout)
	}
}

// run feeds frames of length frame to a stepper until seconds of simulated
// time have passed. With a watcher the frames are paced in real time and
// config reloads are applied between them.
func run(world *collide.World, watcher *collide.ConfigWatcher, seconds, frame float64) {
	stepper := collide.NewStepper(world)
	var tick <-chan time.Time
	if watcher != nil {
		ticker := time.NewTicker(time.Duration(frame * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}
	for t := 0.0; t < seconds; t += frame {
		if tick != nil {
			<-tick
			pollConfig(world, watcher)
		}
		stepper.Advance(frame)
	}
}

func simTime(w *collide.World) float64 {
	return float64(w.Stamp()) * w.TimeStep()
}

func printContact(what string) collide.ContactFunc {
	return func(w *collide.World, c *collide.Contact) {
		fmt.Printf("%7.3fs %-13s %v / %v n=(%.2f, %.2f) depth=%.4f\n",
			simTime(w), what, c.A.Entity, c.B.Entity, c.Normal.X, c.Normal.Y, c.Depth)
	}
}

func pollConfig(world *collide.World, watcher *collide.ConfigWatcher) {
	for {
		select {
		case cfg, ok := <-watcher.Configs:
			if !ok {
				return
			}
			if err := world.ApplyConfig(cfg); err != nil {
				log.Println(err)
				continue
			}
			log.Printf("config reloaded from %s", watcher.Path())
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Println(err)
		default:
			return
		}
	}
}
