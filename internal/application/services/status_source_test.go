package services_test

import (
	"sync"
	"testing"

	"github.com/Brad-Behrens/FlightSurety-DApp/internal/application/services"
	"github.com/Brad-Behrens/FlightSurety-DApp/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestSequenceStatusSource_Cycles(t *testing.T) {
	source := services.NewSequenceStatusSource(domain.StatusOnTime, domain.StatusLateWeather)

	assert.Equal(t, domain.StatusOnTime, source.Next())
	assert.Equal(t, domain.StatusLateWeather, source.Next())
	assert.Equal(t, domain.StatusOnTime, source.Next())
}

func TestFixedStatusSource(t *testing.T) {
	source := services.FixedStatusSource(domain.StatusLateTechnical)
	for i := 0; i < 5; i++ {
		assert.Equal(t, domain.StatusLateTechnical, source.Next())
	}
}

func TestSeededStatusSource_Repeatable(t *testing.T) {
	a := services.NewSeededStatusSource(42)
	b := services.NewSeededStatusSource(42)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestRandomStatusSource_OnlyKnownCodes(t *testing.T) {
	source := services.NewRandomStatusSource()
	seen := make(map[domain.StatusCode]int)

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				code := source.Next()
				mu.Lock()
				seen[code]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	for code := range seen {
		assert.True(t, code.Valid(), "unexpected code %d", code)
	}
	// 2000 uniform draws over six codes hit every code.
	assert.Len(t, seen, len(domain.StatusCodes))
}
