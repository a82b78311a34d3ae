package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/ByLCY/territorio/batch"
	"github.com/ByLCY/territorio/config"
	"github.com/ByLCY/territorio/i18n"
	"github.com/ByLCY/territorio/menu"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "配置文件路径（YAML）")
	once := flag.Bool("run", false, "直接处理一次，不显示菜单")
	pdfPath := flag.String("pdf", "", "PDF 汇总输出路径，覆盖 export.pdf")
	debugDir := flag.String("debug", "", "布局调试 JSON 输出目录")
	lang := flag.String("lang", "", "界面语言（en, it），默认读取 $LANG")
	verbose := flag.Bool("v", false, "输出调试日志")
	flag.Parse()

	logger := newLogger(*verbose)
	if *lang != "" {
		i18n.Setup(*lang)
	} else {
		i18n.Setup(i18n.FromEnv())
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Info().Str("file", *configPath).Msg("配置文件不存在，使用默认配置")
		} else {
			logger.Warn().Err(err).Msg("使用默认配置")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	process := func(cfg *config.AppConfig) (*batch.Summary, error) {
		return batch.Run(ctx, cfg, batch.Options{
			Logger:   &logger,
			Progress: os.Stdout,
			DebugDir: *debugDir,
			PDF:      *pdfPath,
		})
	}

	if !*once && term.IsTerminal(int(os.Stdin.Fd())) {
		if err := menu.New(cfg, *configPath, process).Run(); err != nil && !errors.Is(err, menu.ErrInterrupted) {
			logger.Fatal().Err(err).Msg("菜单运行失败")
		}
		return
	}

	summary, err := process(cfg)
	summary.Print(os.Stdout)
	if err != nil {
		logger.Fatal().Err(err).Msg("处理失败")
	}
	if summary.Failure > 0 {
		os.Exit(1)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "用法: %s [选项]\n\n处理 maps 目录中的地图并生成地块版面。\n\n", os.Args[0])
		flag.PrintDefaults()
	}
}
