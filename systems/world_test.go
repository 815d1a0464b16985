package systems

import (
	"math/rand"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/bigfish/components"
	"github.com/pthm-cable/bigfish/config"
)

// testWorld wraps an ECS world with helpers for placing swimmers by hand.
type testWorld struct {
	w         *ecs.World
	fishMap   *ecs.Map5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish]
	playerMap *ecs.Map5[components.Position, components.Velocity, components.Body, components.Heading, components.Player]
	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	bodyMap   *ecs.Map[components.Body]
	fishComp  *ecs.Map[components.Fish]
	player    *ecs.Map[components.Player]
	cfg       *config.Config
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	w := ecs.NewWorld()
	return &testWorld{
		w:         w,
		fishMap:   ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Heading, components.Fish](w),
		playerMap: ecs.NewMap5[components.Position, components.Velocity, components.Body, components.Heading, components.Player](w),
		posMap:    ecs.NewMap[components.Position](w),
		velMap:    ecs.NewMap[components.Velocity](w),
		bodyMap:   ecs.NewMap[components.Body](w),
		fishComp:  ecs.NewMap[components.Fish](w),
		player:    ecs.NewMap[components.Player](w),
		cfg:       config.Default(),
	}
}

func (tw *testWorld) addFish(x, y, size, baseSpeed float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Size: size, MaxSpeed: tw.cfg.Fish.MaxSpeed}
	heading := components.Heading{}
	fish := components.Fish{
		BaseSpeed:    baseSpeed,
		Speed:        baseSpeed,
		Direction:    1,
		MaxChaseTime: 180,
	}
	return tw.fishMap.NewEntity(&pos, &vel, &body, &heading, &fish)
}

func (tw *testWorld) addPlayer(slot uint8, x, y, size float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	body := components.Body{Size: size, MaxSpeed: tw.cfg.Player.MaxSpeed}
	heading := components.Heading{}
	player := components.Player{Slot: slot, Name: "P"}
	return tw.playerMap.NewEntity(&pos, &vel, &body, &heading, &player)
}

func (tw *testWorld) behavior(seed int64) *BehaviorSystem {
	return NewBehaviorSystem(tw.w, BehaviorParamsFromConfig(tw.cfg), tw.cfg.Derived.Height,
		tw.cfg.Population.GridCellSize, rand.New(rand.NewSource(seed)))
}

func (tw *testWorld) bounds() Bounds {
	return Bounds{Width: tw.cfg.Derived.Width, Height: tw.cfg.Derived.Height}
}

func (tw *testWorld) collision() *CollisionSystem {
	return NewCollisionSystem(tw.w, tw.bounds(), CollisionParams{
		SizeRatio:           tw.cfg.Behavior.SizeRatio,
		PlayerGrowthDivisor: tw.cfg.Collision.PlayerGrowthDivisor,
		FishGrowth:          tw.cfg.Collision.FishGrowth,
		MinSize:             tw.cfg.Population.MinSize,
	})
}
