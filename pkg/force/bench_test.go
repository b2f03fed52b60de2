package force

import "testing"

func benchEntities(n int) []*Entity {
	entities := make([]*Entity, n)
	for i := range entities {
		entities[i] = &Entity{ID: int64(i)}
	}
	return entities
}

func benchmarkManyBody(b *testing.B, n int, theta float64) {
	sim, err := New(DefaultConfig(), benchEntities(n), NewManyBody(WithTheta(theta)))
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		sim.Tick()
		if sim.Completed() {
			sim.Reheat()
		}
	}
}

func BenchmarkManyBodyBarnesHut100(b *testing.B)  { benchmarkManyBody(b, 100, DefaultTheta) }
func BenchmarkManyBodyExact100(b *testing.B)      { benchmarkManyBody(b, 100, 0) }
func BenchmarkManyBodyBarnesHut1000(b *testing.B) { benchmarkManyBody(b, 1000, DefaultTheta) }
func BenchmarkManyBodyExact1000(b *testing.B)     { benchmarkManyBody(b, 1000, 0) }

func BenchmarkQuadtreeBuild1000(b *testing.B) {
	entities := benchEntities(1000)
	if _, err := New(DefaultConfig(), entities); err != nil {
		b.Fatal(err)
	}
	pos := func(e *Entity) (float64, float64) { return e.X, e.Y }
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		buildQuadtree(entities, pos, nil, nil)
	}
}
