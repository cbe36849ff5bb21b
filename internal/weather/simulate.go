package weather

import (
	"math/rand"
	"sync"

	"github.com/jonboulle/clockwork"

	"fieldscout/pkg/models"
)

// Simulator synthesizes a plausible forecast when the upstream provider is
// unavailable. Values land in fixed climatic ranges; dates are consecutive
// calendar days starting today. Clock and generator are injected so tests are
// deterministic.
type Simulator struct {
	clock clockwork.Clock

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulator creates a Simulator. A nil clock or rng falls back to real
// time and a time-seeded generator.
func NewSimulator(clock clockwork.Clock, rng *rand.Rand) *Simulator {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(clock.Now().UnixNano()))
	}
	return &Simulator{clock: clock, rng: rng}
}

// Forecast generates days consecutive WeatherDay records:
// tempMax in [22,27), tempMin in [10,13), rain 0.5 with ~20% probability else
// 0, humidity in [65,75), wind in [12,20).
func (s *Simulator) Forecast(days int) []models.WeatherDay {
	s.mu.Lock()
	defer s.mu.Unlock()

	base := s.clock.Now()
	forecast := make([]models.WeatherDay, 0, days)
	for i := 0; i < days; i++ {
		rain := 0.0
		tempMax := 22 + s.rng.Float64()*5
		tempMin := 10 + s.rng.Float64()*3
		if s.rng.Float64() > 0.8 {
			rain = 0.5
		}
		forecast = append(forecast, models.WeatherDay{
			Date:     base.AddDate(0, 0, i).Format("2006-01-02"),
			TempMax:  tempMax,
			TempMin:  tempMin,
			Rain:     rain,
			Humidity: 65 + s.rng.Float64()*10,
			Wind:     12 + s.rng.Float64()*8,
		})
	}
	return forecast
}
