package engine

import (
	"time"

	"gol/src/universe"
)

//Benchmark advances u by iterations generations without rendering or sleeping
//and returns the elapsed time
func Benchmark(u *universe.Universe, iterations int) time.Duration {
	start := time.Now()
	for i := 0; i < iterations; i++ {
		u.Tick()
	}
	return time.Since(start)
}
