package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tsinghua-fib-lab/gridcity-sim/utils/config"
	"gopkg.in/yaml.v2"
)

func validConfig() config.Config {
	return config.Config{
		City:    config.City{GridSize: 20, Seed: 42},
		Cars:    config.Cars{InitialCount: 100},
		Control: config.Control{MaxTicks: 100},
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	c := validConfig()
	c.City.GridSize = 0
	assert.Error(t, c.Validate())

	c = validConfig()
	c.City.GridSize = -3
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Cars.InitialCount = -1
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Control.MaxTicks = 0
	assert.Error(t, c.Validate())

	// explicitly written illegal values are fatal, never defaulted
	c = validConfig()
	zero := 0
	c.Control.RecomputeInterval = &zero
	assert.Error(t, c.Validate())

	c = validConfig()
	negative := -0.5
	c.Control.CongestionWeight = &negative
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Control.RushHour = &config.RushHour{Tick: 200, Count: 10}
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Control.RushHour = &config.RushHour{Tick: 20, Count: 0}
	assert.Error(t, c.Validate())

	c = validConfig()
	badCost := 0.0
	c.Costs.Highway = &badCost
	assert.Error(t, c.Validate())

	c = validConfig()
	c.Output.URI = "mongodb://localhost:27017"
	assert.Error(t, c.Validate())
}

func TestRuntimeConfigDefaults(t *testing.T) {
	rc := config.NewRuntimeConfig(validConfig())

	assert.Equal(t, 20, rc.GridSize)
	assert.Equal(t, config.DefaultRecomputeInterval, rc.RecomputeInterval)
	assert.Equal(t, config.DefaultCongestionWeight, rc.CongestionWeight)
	assert.Equal(t, config.DefaultRoadCost, rc.RoadCost)
	assert.Equal(t, config.DefaultHighwayCost, rc.HighwayCost)
	assert.Equal(t, config.DefaultTrafficLightCost, rc.TrafficLightCost)
	assert.Equal(t, -1, rc.RushHourTick)
}

func TestRuntimeConfigOverrides(t *testing.T) {
	c := validConfig()
	interval := 3
	weight := 1.25
	road := 2.0
	c.Control.RecomputeInterval = &interval
	c.Control.CongestionWeight = &weight
	c.Control.RushHour = &config.RushHour{Tick: 20, Count: 30}
	c.Costs.Road = &road

	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, 3, rc.RecomputeInterval)
	assert.Equal(t, 1.25, rc.CongestionWeight)
	assert.Equal(t, 20, rc.RushHourTick)
	assert.Equal(t, 30, rc.RushHourCars)
	assert.Equal(t, 2.0, rc.RoadCost)
}

func TestYamlRoundTrip(t *testing.T) {
	data := `
city:
  grid_size: 10
  seed: 7
cars:
  initial_count: 25
control:
  max_ticks: 50
  recompute_interval: 4
  rush_hour:
    tick: 12
    count: 8
costs:
  highway: 0.25
output:
  csv: history.csv
`
	var c config.Config
	assert.NoError(t, yaml.UnmarshalStrict([]byte(data), &c))
	assert.NoError(t, c.Validate())

	rc := config.NewRuntimeConfig(c)
	assert.Equal(t, 10, rc.GridSize)
	assert.Equal(t, 4, rc.RecomputeInterval)
	assert.Equal(t, 12, rc.RushHourTick)
	assert.Equal(t, 0.25, rc.HighwayCost)
	assert.Equal(t, config.DefaultRoadCost, rc.RoadCost)
	assert.Equal(t, "history.csv", c.Output.CSV)
}
