package ghost

// fakeEmitter 测试用发射者，字段可在测试中随时修改
type fakeEmitter struct {
	appearance Appearance
	position   Vec2
	scale      Vec2
}

func newFakeEmitter() *fakeEmitter {
	return &fakeEmitter{
		appearance: Appearance{SortLayer: 1, SortOrder: 5},
		position:   Vec2{X: 10, Y: 20},
		scale:      Vec2{X: 1, Y: 1},
	}
}

func (e *fakeEmitter) Appearance() Appearance { return e.appearance }
func (e *fakeEmitter) Position() Vec2         { return e.position }
func (e *fakeEmitter) Scale() Vec2            { return e.scale }

// newReadyController 创建已 Setup 的控制器
func newReadyController(cfg Config) (*SpawnController, *fakeEmitter) {
	emitter := newFakeEmitter()
	c := NewSpawnController(NewSpritePool(), emitter)
	if err := c.Setup(cfg); err != nil {
		panic(err)
	}
	return c, emitter
}

// poolSnapshot 池的可观察状态
type poolSnapshot struct {
	total  int
	idle   int
	active int
}

func snapshotPool(p *SpritePool) poolSnapshot {
	return poolSnapshot{total: p.Len(), idle: p.IdleCount(), active: p.ActiveCount()}
}
