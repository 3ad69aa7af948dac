package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"

	"tarcog/tarcog"
)

// 環境変数による設定の上書きの接頭辞 (TARCOG_<SECTION>_<KEY>)
const envPrefix = "TARCOG_"

var configSections = []string{"igu", "outdoor", "indoor", "run"}

type OutdoorConfig struct {
	Temperature    float64 // 外気温度, K
	WindSpeed      float64 // 風速, m/s
	WindDirection  tarcog.AirHorizontalDirection
	Solar          float64 // 日射量, W/m2
	SkyTemperature float64 // 天空温度, K
	SkyEmissivity  float64 // 天空放射率, -
	SkyModel       tarcog.SkyModel
	HModel         tarcog.BoundaryConditionsModel
	H              float64 // 与える熱伝達率, W/m2K
	Pressure       float64 // 気圧, Pa
}

type IndoorConfig struct {
	Temperature          float64 // 室温, K
	RadiationTemperature float64 // 放射温度, K
	HModel               tarcog.BoundaryConditionsModel
	H                    float64 // 与える熱伝達率, W/m2K
	Pressure             float64 // 気圧, Pa
}

type IGUConfig struct {
	Width                 float64 // m
	Height                float64 // m
	Tilt                  float64 // degree
	LayersPath            string
	Deflection            tarcog.DeflectionMode
	DeflectionTemperature float64   // 封入時温度, K
	DeflectionPressure    float64   // 封入時圧力, Pa
	MeasuredGaps          []float64 // 測定した中空層の中央幅, m
	AppliedLoad           []float64 // 固体層ごとの外力, Pa
}

type RunConfig struct {
	SolarTransmittance float64 // 日射透過率, -
	Concurrent         bool
	MaxIterations      int
}

type Config struct {
	IGU     IGUConfig
	Outdoor OutdoorConfig
	Indoor  IndoorConfig
	Run     RunConfig
}

/*
設定ファイルを読み込む。

	Args:
		path: ini ファイルへのパス
		envPath: 上書きに用いる .env ファイルへのパス（存在しない場合は無視する）

	Notes:
		TARCOG_OUTDOOR_TEMPERATURE のような環境変数は ini の [outdoor] temperature を上書きする。
		.env ファイルより実際の環境変数が優先される。
*/
func LoadConfig(path, envPath string) (*Config, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config `%s`: %w", path, err)
	}
	dotenv, err := readEnv(envPath)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(file, dotenv)
	applyEnvOverrides(file, os.Environ())
	return parseConfig(file)
}

// .env ファイルを KEY=value の並びとして読む。プロセスの環境変数は変更しない。
func readEnv(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	envs, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file `%s`: %w", path, err)
	}
	kvs := make([]string, 0, len(envs))
	for k, v := range envs {
		kvs = append(kvs, k+"="+v)
	}
	return kvs, nil
}

// TARCOG_<SECTION>_<KEY>=value を ini の値として設定する。
func applyEnvOverrides(file *ini.File, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, envPrefix) {
			continue
		}
		rest := strings.ToLower(strings.TrimPrefix(name, envPrefix))
		for _, section := range configSections {
			if key, found := strings.CutPrefix(rest, section+"_"); found && key != "" {
				file.Section(section).Key(key).SetValue(value)
				break
			}
		}
	}
}

func parseConfig(file *ini.File) (*Config, error) {
	igu := file.Section("igu")
	outdoor := file.Section("outdoor")
	indoor := file.Section("indoor")
	run := file.Section("run")

	deflection, err := deflectionModeFromString(igu.Key("deflection").MustString("off"))
	if err != nil {
		return nil, err
	}
	skyModel, err := tarcog.SkyModelFromString(outdoor.Key("sky_model").MustString("all_specified"))
	if err != nil {
		return nil, fmt.Errorf("[outdoor] sky_model: %w", err)
	}
	direction, err := tarcog.AirHorizontalDirectionFromString(outdoor.Key("wind_direction").MustString("windward"))
	if err != nil {
		return nil, fmt.Errorf("[outdoor] wind_direction: %w", err)
	}
	outdoorModel, err := tarcog.BoundaryConditionsModelFromString(outdoor.Key("h_model").MustString("calculate_h"))
	if err != nil {
		return nil, fmt.Errorf("[outdoor] h_model: %w", err)
	}
	indoorModel, err := tarcog.BoundaryConditionsModelFromString(indoor.Key("h_model").MustString("calculate_h"))
	if err != nil {
		return nil, fmt.Errorf("[indoor] h_model: %w", err)
	}

	roomTemperature := indoor.Key("temperature").MustFloat64(294.15)

	return &Config{
		IGU: IGUConfig{
			Width:                 igu.Key("width").MustFloat64(tarcog.DefaultWindowWidth),
			Height:                igu.Key("height").MustFloat64(tarcog.DefaultWindowHeight),
			Tilt:                  igu.Key("tilt").MustFloat64(tarcog.DefaultTilt),
			LayersPath:            igu.Key("layers").MustString("layers.csv"),
			Deflection:            deflection,
			DeflectionTemperature: igu.Key("deflection_temperature").MustFloat64(293.15),
			DeflectionPressure:    igu.Key("deflection_pressure").MustFloat64(tarcog.DefaultPressure),
			MeasuredGaps:          igu.Key("measured_gaps").Float64s(","),
			AppliedLoad:           igu.Key("applied_load").Float64s(","),
		},
		Outdoor: OutdoorConfig{
			Temperature:    outdoor.Key("temperature").MustFloat64(255.15),
			WindSpeed:      outdoor.Key("wind_speed").MustFloat64(5.5),
			WindDirection:  direction,
			Solar:          outdoor.Key("solar").MustFloat64(0),
			SkyTemperature: outdoor.Key("sky_temperature").MustFloat64(255.15),
			SkyEmissivity:  outdoor.Key("sky_emissivity").MustFloat64(1),
			SkyModel:       skyModel,
			HModel:         outdoorModel,
			H:              outdoor.Key("h").MustFloat64(0),
			Pressure:       outdoor.Key("pressure").MustFloat64(tarcog.DefaultPressure),
		},
		Indoor: IndoorConfig{
			Temperature:          roomTemperature,
			RadiationTemperature: indoor.Key("radiation_temperature").MustFloat64(roomTemperature),
			HModel:               indoorModel,
			H:                    indoor.Key("h").MustFloat64(0),
			Pressure:             indoor.Key("pressure").MustFloat64(tarcog.DefaultPressure),
		},
		Run: RunConfig{
			SolarTransmittance: run.Key("solar_transmittance").MustFloat64(0),
			Concurrent:         run.Key("concurrent").MustBool(false),
			MaxIterations:      run.Key("max_iterations").MustInt(tarcog.MaxIterations),
		},
	}, nil
}

func deflectionModeFromString(str string) (tarcog.DeflectionMode, error) {
	switch str {
	case "off":
		return tarcog.DeflectionOff, nil
	case "from_state":
		return tarcog.DeflectionFromState, nil
	case "measured":
		return tarcog.DeflectionMeasured, nil
	default:
		return 0, fmt.Errorf("[igu] deflection: %w: %q", tarcog.ErrInvalidModel, str)
	}
}

func (c OutdoorConfig) environment() *tarcog.Environment {
	e := tarcog.NewOutdoorEnvironment(c.Temperature, c.WindSpeed, c.Solar, c.SkyTemperature, c.SkyModel)
	e.SetWindDirection(c.WindDirection)
	e.SetSkyEmissivity(c.SkyEmissivity)
	e.SetPressure(c.Pressure)
	if c.HModel != tarcog.CalculateH {
		e.SetHCoeffModel(c.HModel, c.H)
	}
	return e
}

func (c IndoorConfig) environment() *tarcog.Environment {
	e := tarcog.NewIndoorEnvironment(c.Temperature)
	e.SetRadiationTemperature(c.RadiationTemperature)
	e.SetPressure(c.Pressure)
	if c.HModel != tarcog.CalculateH {
		e.SetHCoeffModel(c.HModel, c.H)
	}
	return e
}
