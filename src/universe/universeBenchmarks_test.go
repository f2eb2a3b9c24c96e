package universe

import (
	"fmt"
	"testing"
)

var (
	benchSizes = [][2]int{{40, 15}, {200, 200}, {1000, 1000}}
)

func Benchmark_Tick(b *testing.B) {
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(b *testing.B) {
			u := randomUniverse(s[0], s[1], 1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				u.Tick()
			}
		})
	}
}

func Benchmark_Render(b *testing.B) {
	for _, s := range benchSizes {
		b.Run(fmt.Sprintf("%dx%d", s[0], s[1]), func(b *testing.B) {
			u := randomUniverse(s[0], s[1], 1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				_ = u.Render()
			}
		})
	}
}
