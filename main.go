package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"tarcog/tarcog"
)

type Options struct {
	ConfigPath    string
	EnvPath       string
	LayersPath    string
	OutputDataDir string
	XLSXPath      string
}

/*
複層ガラスの熱収支計算の実行

	Args:
		opts: コマンドライン引数

	Notes:
		U 値計算と SHGC 計算を解き、結果を出力フォルダに保存する。
*/
func run(opts Options) (*tarcog.System, error) {
	// ---- 事前準備 ----

	if err := os.MkdirAll(opts.OutputDataDir, 0755); err != nil {
		return nil, fmt.Errorf("`%s` is not a directory: %w", opts.OutputDataDir, err)
	}

	log.WithField("path", opts.ConfigPath).Info("load config")
	cfg, err := LoadConfig(opts.ConfigPath, opts.EnvPath)
	if err != nil {
		return nil, err
	}

	layersPath := cfg.IGU.LayersPath
	if opts.LayersPath != "" {
		layersPath = opts.LayersPath
	}
	log.WithField("path", layersPath).Info("load layers")
	rows, err := ReadLayers(layersPath)
	if err != nil {
		return nil, err
	}
	igu, err := BuildIGU(cfg.IGU, rows)
	if err != nil {
		return nil, err
	}

	// ---- 計算 ----

	systemOpts := []tarcog.Option{tarcog.WithMaxIterations(cfg.Run.MaxIterations)}
	if cfg.Run.Concurrent {
		systemOpts = append(systemOpts, tarcog.WithConcurrentRuns())
	}
	s, err := tarcog.NewSystem(igu, cfg.Indoor.environment(), cfg.Outdoor.environment(), systemOpts...)
	if err != nil {
		return nil, err
	}
	for _, r := range []tarcog.RunType{tarcog.RunUValue, tarcog.RunSHGC} {
		if !s.Converged(r) {
			log.WithFields(log.Fields{
				"run":        r,
				"iterations": s.NumberOfIterations(r),
			}).Warn("heat balance did not converge")
		}
	}

	// ---- 計算結果ファイルの保存 ----

	rec := NewRecorder(s, cfg.Run.SolarTransmittance)
	if err := rec.SaveCSV(opts.OutputDataDir); err != nil {
		return nil, err
	}
	if opts.XLSXPath != "" {
		if err := rec.SaveXLSX(opts.XLSXPath); err != nil {
			return nil, err
		}
	}

	log.WithFields(log.Fields{
		"u_value": s.UValue(),
		"shgc":    s.SHGC(cfg.Run.SolarTransmittance),
	}).Info("ratings")
	return s, nil
}

func main() {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", "tarcog.ini", "計算条件の ini ファイル")
	flag.StringVar(&opts.EnvPath, "env", ".env", "設定を上書きする環境変数ファイル")
	flag.StringVar(&opts.LayersPath, "layers", "", "層構成表 (CSV または xlsx)。指定しない場合は [igu] layers を用います。")
	flag.StringVar(&opts.OutputDataDir, "o", ".", "出力フォルダ")
	flag.StringVar(&opts.XLSXPath, "xlsx", "", "計算結果を xlsx ファイルにも出力する場合のパス")

	var logLevel string
	flag.StringVar(&logLevel, "log", "error", "ログレベルを指定します。 (Default=error)")

	// 引数を受け取る
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(level)

	start := time.Now()

	if _, err := run(opts); err != nil {
		log.Fatal(err)
	}

	log.WithField("elapsed_time", time.Since(start)).Info("done")
}
